package dto

import (
	"time"

	"github.com/konia/fiscal-analytics/internal/domain"
)

// MessageResponse is the body of endpoints that only acknowledge an action
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse describes the logged in user
type UserResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	// CompanyID is the tenant string
	CompanyID string `json:"company_id"`
	// DBCompanyID is the numeric company id the reporting tables are keyed by
	DBCompanyID   int64    `json:"db_company_id"`
	ActiveModules []string `json:"active_modules"`
}

// LoginResponse represents the body of a successful login
type LoginResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// MeResponse represents the identity carried by the current access token
type MeResponse struct {
	Username  string           `json:"username"`
	Role      string           `json:"role"`
	CompanyID domain.CompanyID `json:"company_id"`
}

// Session carries the tokens issued by a login or refresh. The tokens are
// delivered as cookies, never in the response body.
type Session struct {
	AccessToken     string
	AccessTokenTTL  time.Duration
	RefreshToken    string
	RefreshTokenTTL time.Duration
}

// LoginResult is the outcome of a login
type LoginResult struct {
	Session  Session
	Response LoginResponse
}
