package schema

import "gorm.io/datatypes"

// User represents the users table - dashboard accounts scoped to a tenant
type User struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Username is unique per tenant
	Username string `gorm:"column:username;not null;type:text;uniqueIndex:idx_users_tenant_username,priority:2"`
	// CompanyID is the tenant string (e.g. TENANT_001)
	CompanyID string `gorm:"column:company_id;not null;type:text;uniqueIndex:idx_users_tenant_username,priority:1"`
	// PasswordHash is hex(sha256(password + secret))
	PasswordHash string `gorm:"column:password_hash;not null;type:text"`
	Role         string `gorm:"column:role;not null;default:'viewer';type:text"`
	// ActiveModules lists the dashboard modules enabled for the user
	ActiveModules datatypes.JSONSlice[string] `gorm:"column:active_modules;type:jsonb"`
}

func (User) TableName() string {
	return "users"
}
