package schema

// MatrixCell represents the matriz_resumen table - one pre-aggregated amount per
// company, period, segment and concept
type MatrixCell struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// CompanyID is the tenant scope as written by the ETL
	CompanyID string `gorm:"column:company_id;not null;type:text;uniqueIndex:idx_matriz_resumen_key,priority:1"`
	// Periodo is the accounting month (YYYY-MM)
	Periodo string `gorm:"column:periodo;not null;type:text;uniqueIndex:idx_matriz_resumen_key,priority:2"`
	// Segmento is PPD or PUE
	Segmento string `gorm:"column:segmento;not null;type:text;uniqueIndex:idx_matriz_resumen_key,priority:3"`
	// Concepto is one of the fixed fiscal line item labels
	Concepto string `gorm:"column:concepto;not null;type:text;uniqueIndex:idx_matriz_resumen_key,priority:4"`
	// Monto is the aggregated amount
	Monto float64 `gorm:"column:monto;not null;default:0"`
}

// TableName specifies the table name for the MatrixCell model
func (MatrixCell) TableName() string {
	return "matriz_resumen"
}
