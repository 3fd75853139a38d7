package schema

import "gorm.io/datatypes"

// DetailRecord represents the detalle_uuid table - one materialized summary per invoice chain
type DetailRecord struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// UUID is the invoice identifier
	UUID string `gorm:"column:uuid;not null;type:text"`
	// CompanyID is the tenant scope as written by the ETL
	CompanyID string `gorm:"column:company_id;not null;type:text;index:idx_detalle_uuid_company_periodo,priority:1"`
	// Periodo is the accounting month (YYYY-MM)
	Periodo string `gorm:"column:periodo;not null;type:text;index:idx_detalle_uuid_company_periodo,priority:2"`
	// Segmento is PPD, PUE or OTROS
	Segmento string `gorm:"column:segmento;not null;type:text"`
	// Flujo is EMITIDOS or RECIBIDOS
	Flujo string `gorm:"column:flujo;not null;type:text"`
	// SaldoAcumulado is the outstanding balance of the chain
	SaldoAcumulado float64 `gorm:"column:saldo_acumulado;not null;default:0"`
	// Conceptos maps concept label to amount for this chain
	Conceptos datatypes.JSONType[map[string]float64] `gorm:"column:conceptos;type:jsonb"`
	// TieneREP is true when a payment complement exists
	TieneREP bool `gorm:"column:tiene_rep;not null;default:false"`
	// DiasSinPago is the number of days without payment, when known
	DiasSinPago *int `gorm:"column:dias_sin_pago"`
	// AgingBucket is the categorical aging of the balance
	AgingBucket *string `gorm:"column:aging_bucket;type:text"`
	// RFCReceptor is the counterparty taxpayer id
	RFCReceptor *string `gorm:"column:rfc_receptor;type:text"`
	// NombreReceptor is the counterparty name
	NombreReceptor *string `gorm:"column:nombre_receptor;type:text"`
}

// TableName specifies the table name for the DetailRecord model
func (DetailRecord) TableName() string {
	return "detalle_uuid"
}

// Concept returns the amount recorded for a concept label, or 0 when absent
func (d *DetailRecord) Concept(label string) float64 {
	return d.Conceptos.Data()[label]
}
