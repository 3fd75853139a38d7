package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/konia/fiscal-analytics/internal/api/shared/errors"
	"github.com/konia/fiscal-analytics/internal/logger"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error *apierrors.APIError `json:"error"`
}

// statusForCode maps an error code to its HTTP status
func statusForCode(code apierrors.ErrorCode) int {
	switch code {
	case apierrors.ErrCodeBadRequest, apierrors.ErrCodeValidationFailed:
		return http.StatusBadRequest
	case apierrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apierrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apierrors.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError sends an executor error with the status of its code. Errors
// that are not API errors are reported as internal errors.
func respondError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		logger.ErrorCtx(c.Request.Context(), err)
		apiErr = apierrors.NewInternalError("Internal server error")
	}
	c.JSON(statusForCode(apiErr.Code), errorResponse{Error: apiErr})
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, details string) {
	respondError(c, apierrors.NewValidationError(details))
}

// respondUnauthorized responds with an unauthorized error
func respondUnauthorized(c *gin.Context, message string) {
	respondError(c, apierrors.NewUnauthorizedError(message))
}
