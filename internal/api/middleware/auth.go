package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/konia/fiscal-analytics/internal/api/shared/constants"
	apierrors "github.com/konia/fiscal-analytics/internal/api/shared/errors"
	"github.com/konia/fiscal-analytics/internal/auth"
	"github.com/konia/fiscal-analytics/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	IDENTITY_KEY contextKey = "identity"
)

// ExtractToken returns the access token of a request. The access_token cookie
// wins over the Authorization header; either may carry a "Bearer " prefix.
func ExtractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(constants.ACCESS_TOKEN_COOKIE); err == nil && cookie != "" {
		return strings.TrimPrefix(cookie, constants.BEARER_PREFIX)
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, constants.BEARER_PREFIX) {
		return strings.TrimPrefix(header, constants.BEARER_PREFIX)
	}
	return ""
}

// Auth returns a gin middleware that resolves the caller identity from the
// access token and rejects requests without a usable one
func Auth(tokens auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token := ExtractToken(c)
		if token == "" {
			abortWithError(c, http.StatusUnauthorized, apierrors.NewUnauthorizedError("Not authenticated"))
			return
		}

		identity, err := tokens.VerifyAccessToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrMissingCompany) {
				abortWithError(c, http.StatusForbidden, apierrors.NewForbiddenError("Company ID missing in token"))
				return
			}
			logger.WarnCtx(ctx, "Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			abortWithError(c, http.StatusUnauthorized, apierrors.NewUnauthorizedError("Invalid token"))
			return
		}

		c.Set(IDENTITY_KEY, *identity)
		c.Request = c.Request.WithContext(logger.WithFields(ctx,
			zap.String("username", identity.Username),
			zap.String("company_id", identity.CompanyID.String()),
		))

		c.Next()
	}
}

// IdentityFrom returns the identity stored by Auth
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	value, ok := c.Get(IDENTITY_KEY)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := value.(auth.Identity)
	return identity, ok
}

// abortWithError stops the chain with the standard error envelope
func abortWithError(c *gin.Context, status int, apiErr *apierrors.APIError) {
	c.AbortWithStatusJSON(status, gin.H{"error": apiErr})
}
