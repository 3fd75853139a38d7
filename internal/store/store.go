package store

import (
	"context"
	"time"

	"github.com/konia/fiscal-analytics/internal/domain"
	"github.com/konia/fiscal-analytics/internal/store/schema"
)

// DetailFilter holds the filters for detail record queries
type DetailFilter struct {
	CompanyID domain.CompanyID
	Periodo   string
	// Segmento restricts to a segment when set
	Segmento *domain.Segment
	// Flujo restricts to a flow when set
	Flujo *domain.Flow
	// UUIDSearch is a case-insensitive substring of the invoice uuid
	UUIDSearch *string
	// SaldoMin keeps records whose balance is at least this value
	SaldoMin *float64
}

// DetailSummary holds aggregates over the full (unpaginated) detail filter
type DetailSummary struct {
	Count      int64   `gorm:"column:count"`
	SaldoTotal float64 `gorm:"column:saldo_total"`
	Emitidos   int64   `gorm:"column:emitidos"`
	Recibidos  int64   `gorm:"column:recibidos"`
}

// SegmentCount is the number of detail records in a segment
type SegmentCount struct {
	Segmento string `gorm:"column:segmento"`
	Count    int64  `gorm:"column:count"`
}

// ChainAggregate is one invoice chain of the traceability listing, grouped by
// uuid_raiz in the database. SaldoUltimoEvento is the running balance of the
// chronologically last event and Periodos is the sorted, comma separated list
// of distinct periods.
type ChainAggregate struct {
	UUIDRaiz          string     `gorm:"column:uuid_raiz"`
	TotalEventos      int        `gorm:"column:total_eventos"`
	PrimerEvento      *time.Time `gorm:"column:primer_evento"`
	UltimoEvento      *time.Time `gorm:"column:ultimo_evento"`
	TotalMonto        float64    `gorm:"column:total_monto"`
	SaldoUltimoEvento float64    `gorm:"column:saldo_ultimo_evento"`
	TienePago         bool       `gorm:"column:tiene_pago"`
	Periodos          string     `gorm:"column:periodos"`
}

// Store defines the interface for read access to the fiscal reporting tables
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// Ping checks that the database is reachable
	Ping(ctx context.Context) error

	// GetUser retrieves a user by username within a tenant
	GetUser(ctx context.Context, username string, tenantID string) (*schema.User, error)
	// GetUserByUsername retrieves the first user with the given username in any tenant
	GetUserByUsername(ctx context.Context, username string) (*schema.User, error)

	// GetMatrixCells retrieves all matrix cells of a company for a period
	GetMatrixCells(ctx context.Context, companyID domain.CompanyID, periodo string) ([]schema.MatrixCell, error)
	// GetMatrixCellsByConcepts retrieves the cells of the given concepts across all periods
	GetMatrixCellsByConcepts(ctx context.Context, companyID domain.CompanyID, concepts []string) ([]schema.MatrixCell, error)
	// GetMatrixPeriods retrieves the distinct matrix periods of a company in ascending order
	GetMatrixPeriods(ctx context.Context, companyID domain.CompanyID) ([]string, error)

	// GetDetailPeriods retrieves the distinct detail periods of a company in descending order
	GetDetailPeriods(ctx context.Context, companyID domain.CompanyID) ([]string, error)
	// GetDetailRecords retrieves detail records sorted by balance descending.
	// A non-positive limit returns every matching record.
	GetDetailRecords(ctx context.Context, filter DetailFilter, limit int, offset int) ([]schema.DetailRecord, error)
	// CountDetailRecords counts the detail records matching the filter
	CountDetailRecords(ctx context.Context, filter DetailFilter) (int64, error)
	// GetDetailSummary aggregates balance and flow counts over the filter
	GetDetailSummary(ctx context.Context, filter DetailFilter) (*DetailSummary, error)
	// GetDetailSegmentCounts counts matching detail records per segment
	GetDetailSegmentCounts(ctx context.Context, filter DetailFilter) ([]SegmentCount, error)

	// GetTraceEvents retrieves the traceability events of a company ordered by date ascending
	GetTraceEvents(ctx context.Context, companyID domain.CompanyID, periodo *string) ([]schema.TraceEvent, error)
	// ListChainAggregates groups the traceability events of a company per chain root,
	// most recently active chains first. A non-positive limit returns every chain.
	ListChainAggregates(ctx context.Context, companyID domain.CompanyID, periodo *string, limit int, offset int) ([]ChainAggregate, error)
	// GetTraceEventsByRoot retrieves the events of one chain (case-insensitive root match) ordered by date ascending
	GetTraceEventsByRoot(ctx context.Context, companyID domain.CompanyID, uuidRaiz string) ([]schema.TraceEvent, error)

	// GetTimeDimension retrieves the calendar entry of a period
	GetTimeDimension(ctx context.Context, periodo string) (*schema.TimeDimension, error)

	// GetInvoiceByUUID retrieves a master invoice by its uuid
	GetInvoiceByUUID(ctx context.Context, uuid string) (*schema.Invoice, error)
	// GetInvoicesByIssuer retrieves every master invoice of an issuer
	GetInvoicesByIssuer(ctx context.Context, emisorRFC string) ([]schema.Invoice, error)
}
