package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/konia/fiscal-analytics/internal/adapter"
	"github.com/konia/fiscal-analytics/internal/domain"
)

// Token types carried in the "type" claim
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	// ErrInvalidToken is returned for tokens that fail signature, expiry or type checks
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingCompany is returned when an access token carries no company id
	ErrMissingCompany = errors.New("company id missing in token")
)

// Claims are the claims of access and refresh tokens
type Claims struct {
	Role      string `json:"role,omitempty"`
	CompanyID *int64 `json:"company_id,omitempty"`
	TenantID  string `json:"tenant_id,omitempty"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller resolved from an access token
type Identity struct {
	Username  string
	Role      string
	CompanyID domain.CompanyID
	TenantID  string
}

// Config holds token configuration
type Config struct {
	Secret           string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	TenantCompanyIDs map[string]int64
}

// TokenService issues and verifies HS256 tokens
//
//go:generate mockgen -source=token.go -destination=../mocks/token_service.go -package=mocks -mock_names=TokenService=MockTokenService
type TokenService interface {
	// IssueAccessToken issues an access token for a user of a tenant
	IssueAccessToken(username, role, tenantID string) (string, error)
	// IssueRefreshToken issues a refresh token for a user
	IssueRefreshToken(username string) (string, error)
	// VerifyAccessToken verifies an access token and resolves the caller identity
	VerifyAccessToken(token string) (*Identity, error)
	// VerifyRefreshToken verifies a refresh token and returns its subject
	VerifyRefreshToken(token string) (string, error)
	// CompanyIDForTenant maps a tenant string to its reporting company id, 0 when unknown
	CompanyIDForTenant(tenantID string) int64
	// AccessTokenTTL returns the lifetime of access tokens
	AccessTokenTTL() time.Duration
	// RefreshTokenTTL returns the lifetime of refresh tokens
	RefreshTokenTTL() time.Duration
}

type tokenService struct {
	secret  []byte
	cfg     Config
	tenants map[string]int64
	clock   adapter.Clock
}

// NewTokenService creates a token service
func NewTokenService(cfg Config, clock adapter.Clock) TokenService {
	tenants := make(map[string]int64, len(cfg.TenantCompanyIDs))
	for tenant, id := range cfg.TenantCompanyIDs {
		tenants[strings.ToLower(tenant)] = id
	}

	return &tokenService{
		secret:  []byte(cfg.Secret),
		cfg:     cfg,
		tenants: tenants,
		clock:   clock,
	}
}

func (s *tokenService) CompanyIDForTenant(tenantID string) int64 {
	return s.tenants[strings.ToLower(tenantID)]
}

func (s *tokenService) AccessTokenTTL() time.Duration {
	return s.cfg.AccessTokenTTL
}

func (s *tokenService) RefreshTokenTTL() time.Duration {
	return s.cfg.RefreshTokenTTL
}

func (s *tokenService) IssueAccessToken(username, role, tenantID string) (string, error) {
	companyID := s.CompanyIDForTenant(tenantID)
	return s.sign(Claims{
		Role:      role,
		CompanyID: &companyID,
		TenantID:  tenantID,
		Type:      TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(s.clock.Now().Add(s.cfg.AccessTokenTTL)),
		},
	})
}

func (s *tokenService) IssueRefreshToken(username string) (string, error) {
	return s.sign(Claims{
		Type: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(s.clock.Now().Add(s.cfg.RefreshTokenTTL)),
		},
	})
}

func (s *tokenService) VerifyAccessToken(token string) (*Identity, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeAccess {
		return nil, fmt.Errorf("%w: unexpected token type %q", ErrInvalidToken, claims.Type)
	}
	if claims.CompanyID == nil {
		return nil, ErrMissingCompany
	}

	return &Identity{
		Username:  claims.Subject,
		Role:      claims.Role,
		CompanyID: domain.CompanyIDFromInt(*claims.CompanyID),
		TenantID:  claims.TenantID,
	}, nil
}

func (s *tokenService) VerifyRefreshToken(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	if claims.Type != TokenTypeRefresh {
		return "", fmt.Errorf("%w: unexpected token type %q", ErrInvalidToken, claims.Type)
	}
	return claims.Subject, nil
}

func (s *tokenService) sign(claims Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) parse(token string) (*Claims, error) {
	// Cookies carry the token as "Bearer <jwt>"
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
