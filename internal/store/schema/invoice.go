package schema

import "github.com/konia/fiscal-analytics/internal/domain"

// Invoice represents the gold_cfdi master invoice table used for risk analysis
type Invoice struct {
	// UUID is the invoice identifier
	UUID string `gorm:"column:uuid;primaryKey;type:text"`
	// EmisorRFC is the issuer taxpayer id
	EmisorRFC string `gorm:"column:emisor_rfc;not null;type:text;index:idx_gold_cfdi_emisor_rfc"`
	// Total is the invoice amount
	Total float64 `gorm:"column:total;not null;default:0"`
	// Fecha is the issue timestamp, stored natively or as ISO-8601 text
	Fecha domain.FlexTime `gorm:"column:fecha;type:text"`
}

// TableName specifies the table name for the Invoice model
func (Invoice) TableName() string {
	return "gold_cfdi"
}
