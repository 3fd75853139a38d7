package schema

import "time"

// TraceEvent represents the trazabilidad_uuid table - one row per document in an invoice chain
type TraceEvent struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// UUID is the identifier of the document behind this event
	UUID string `gorm:"column:uuid;not null;type:text"`
	// UUIDRaiz is the root invoice of the chain
	UUIDRaiz string `gorm:"column:uuid_raiz;not null;type:text;index:idx_trazabilidad_uuid_raiz"`
	// Fecha is when the event happened, nil when the ETL had no usable date
	Fecha *time.Time `gorm:"column:fecha;type:timestamptz"`
	// Monto is the signed amount of the event
	Monto float64 `gorm:"column:monto;not null;default:0"`
	// SaldoAcumulado is the running chain balance after this event
	SaldoAcumulado float64 `gorm:"column:saldo_acumulado;not null;default:0"`
	// Concepto is the event type label
	Concepto string `gorm:"column:concepto;not null;default:'';type:text"`
	// TipoRelacion is the relation to the chain root (PAGO, PAGO_REP, ...)
	TipoRelacion string `gorm:"column:tipo_relacion;not null;default:'';type:text"`
	// Periodo is the accounting month (YYYY-MM)
	Periodo string `gorm:"column:periodo;not null;type:text"`
	// CompanyID is the tenant scope as written by the ETL
	CompanyID string `gorm:"column:company_id;not null;type:text;index:idx_trazabilidad_company_periodo"`
}

// TableName specifies the table name for the TraceEvent model
func (TraceEvent) TableName() string {
	return "trazabilidad_uuid"
}
