package dto

import (
	"strings"

	apierrors "github.com/konia/fiscal-analytics/internal/api/shared/errors"
)

// LoginRequest represents the request body for POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	// CompanyID is the tenant string the user belongs to (e.g. TENANT_001)
	CompanyID string `json:"company_id"`
}

// Validate validates the request body
func (r *LoginRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Username) == "" {
		missing = append(missing, "username is required")
	}
	if r.Password == "" {
		missing = append(missing, "password is required")
	}
	if strings.TrimSpace(r.CompanyID) == "" {
		missing = append(missing, "company_id is required")
	}
	if len(missing) > 0 {
		return apierrors.NewValidationError(missing...)
	}
	return nil
}
