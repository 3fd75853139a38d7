package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/konia/fiscal-analytics/internal/domain"
	"github.com/konia/fiscal-analytics/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool of the underlying *sql.DB.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 20
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// companyScope restricts a query to every stored representation of the company id
func companyScope(companyID domain.CompanyID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		candidates := companyID.Candidates()
		if len(candidates) == 0 {
			// Unscoped reads are never allowed
			return db.Where("1 = 0")
		}
		return db.Where("company_id IN ?", candidates)
	}
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// detailScope applies a DetailFilter
func detailScope(filter DetailFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(companyScope(filter.CompanyID)).Where("periodo = ?", filter.Periodo)
		if filter.Segmento != nil {
			db = db.Where("segmento = ?", string(*filter.Segmento))
		}
		if filter.Flujo != nil {
			db = db.Where("flujo = ?", string(*filter.Flujo))
		}
		if filter.UUIDSearch != nil && *filter.UUIDSearch != "" {
			db = db.Where("uuid ILIKE ?", "%"+escapeLike(*filter.UUIDSearch)+"%")
		}
		if filter.SaldoMin != nil {
			db = db.Where("saldo_acumulado >= ?", *filter.SaldoMin)
		}
		return db
	}
}

// Ping checks that the database is reachable
func (s *pgStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// GetUser retrieves a user by username within a tenant
func (s *pgStore) GetUser(ctx context.Context, username string, tenantID string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).
		Where("username = ? AND company_id = ?", username, tenantID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetUserByUsername retrieves the first user with the given username in any tenant
func (s *pgStore) GetUserByUsername(ctx context.Context, username string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).
		Where("username = ?", username).
		Order("id ASC").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &user, nil
}

// GetMatrixCells retrieves all matrix cells of a company for a period
func (s *pgStore) GetMatrixCells(ctx context.Context, companyID domain.CompanyID, periodo string) ([]schema.MatrixCell, error) {
	var cells []schema.MatrixCell
	err := s.db.WithContext(ctx).
		Scopes(companyScope(companyID)).
		Where("periodo = ?", periodo).
		Order("segmento ASC, concepto ASC").
		Find(&cells).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get matrix cells: %w", err)
	}

	return cells, nil
}

// GetMatrixCellsByConcepts retrieves the cells of the given concepts across all periods
func (s *pgStore) GetMatrixCellsByConcepts(ctx context.Context, companyID domain.CompanyID, concepts []string) ([]schema.MatrixCell, error) {
	if len(concepts) == 0 {
		return []schema.MatrixCell{}, nil
	}

	var cells []schema.MatrixCell
	err := s.db.WithContext(ctx).
		Scopes(companyScope(companyID)).
		Where("concepto IN ?", concepts).
		Order("periodo ASC, segmento ASC").
		Find(&cells).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get matrix cells by concepts: %w", err)
	}

	return cells, nil
}

// GetMatrixPeriods retrieves the distinct matrix periods of a company in ascending order
func (s *pgStore) GetMatrixPeriods(ctx context.Context, companyID domain.CompanyID) ([]string, error) {
	var periods []string
	err := s.db.WithContext(ctx).
		Model(&schema.MatrixCell{}).
		Scopes(companyScope(companyID)).
		Distinct("periodo").
		Order("periodo ASC").
		Pluck("periodo", &periods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get matrix periods: %w", err)
	}

	return periods, nil
}

// GetDetailPeriods retrieves the distinct detail periods of a company in descending order
func (s *pgStore) GetDetailPeriods(ctx context.Context, companyID domain.CompanyID) ([]string, error) {
	var periods []string
	err := s.db.WithContext(ctx).
		Model(&schema.DetailRecord{}).
		Scopes(companyScope(companyID)).
		Distinct("periodo").
		Order("periodo DESC").
		Pluck("periodo", &periods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get detail periods: %w", err)
	}

	return periods, nil
}

// GetDetailRecords retrieves detail records sorted by balance descending
func (s *pgStore) GetDetailRecords(ctx context.Context, filter DetailFilter, limit int, offset int) ([]schema.DetailRecord, error) {
	query := s.db.WithContext(ctx).
		Scopes(detailScope(filter)).
		Order("saldo_acumulado DESC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var records []schema.DetailRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get detail records: %w", err)
	}

	return records, nil
}

// CountDetailRecords counts the detail records matching the filter
func (s *pgStore) CountDetailRecords(ctx context.Context, filter DetailFilter) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.DetailRecord{}).
		Scopes(detailScope(filter)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count detail records: %w", err)
	}

	return count, nil
}

// GetDetailSummary aggregates balance and flow counts over the filter
func (s *pgStore) GetDetailSummary(ctx context.Context, filter DetailFilter) (*DetailSummary, error) {
	var summary DetailSummary
	err := s.db.WithContext(ctx).
		Model(&schema.DetailRecord{}).
		Scopes(detailScope(filter)).
		Select(`COUNT(*) AS count,
			COALESCE(SUM(saldo_acumulado), 0) AS saldo_total,
			COUNT(*) FILTER (WHERE flujo = ?) AS emitidos,
			COUNT(*) FILTER (WHERE flujo = ?) AS recibidos`,
			string(domain.FlowIssued), string(domain.FlowReceived)).
		Scan(&summary).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get detail summary: %w", err)
	}

	return &summary, nil
}

// GetDetailSegmentCounts counts matching detail records per segment
func (s *pgStore) GetDetailSegmentCounts(ctx context.Context, filter DetailFilter) ([]SegmentCount, error) {
	var counts []SegmentCount
	err := s.db.WithContext(ctx).
		Model(&schema.DetailRecord{}).
		Scopes(detailScope(filter)).
		Select("segmento, COUNT(*) AS count").
		Group("segmento").
		Order("segmento ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get detail segment counts: %w", err)
	}

	return counts, nil
}

// GetTraceEvents retrieves the traceability events of a company ordered by date ascending.
// Events without a date sort first so the last event of a chain always carries one when any does.
func (s *pgStore) GetTraceEvents(ctx context.Context, companyID domain.CompanyID, periodo *string) ([]schema.TraceEvent, error) {
	query := s.db.WithContext(ctx).Scopes(companyScope(companyID))
	if periodo != nil && *periodo != "" {
		query = query.Where("periodo = ?", *periodo)
	}

	var events []schema.TraceEvent
	err := query.Order("fecha ASC NULLS FIRST, id ASC").Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get trace events: %w", err)
	}

	return events, nil
}

// chainAggregateColumns selects one listing row per uuid_raiz. The last event
// follows the same ordering as GetTraceEvents: latest fecha, then highest id.
const chainAggregateColumns = `uuid_raiz,
	COUNT(*) AS total_eventos,
	MIN(fecha) AS primer_evento,
	MAX(fecha) AS ultimo_evento,
	COALESCE(SUM(monto), 0) AS total_monto,
	(ARRAY_AGG(saldo_acumulado ORDER BY fecha DESC NULLS LAST, id DESC))[1] AS saldo_ultimo_evento,
	BOOL_OR(tipo_relacion IN ?) AS tiene_pago,
	COALESCE(STRING_AGG(DISTINCT periodo, ',' ORDER BY periodo) FILTER (WHERE periodo <> ''), '') AS periodos`

// ListChainAggregates groups, sorts and paginates the chains of a company in the database
func (s *pgStore) ListChainAggregates(ctx context.Context, companyID domain.CompanyID, periodo *string, limit int, offset int) ([]ChainAggregate, error) {
	payments := []string{string(domain.RelationPayment), string(domain.RelationPaymentComplement)}

	query := s.db.WithContext(ctx).
		Model(&schema.TraceEvent{}).
		Select(chainAggregateColumns, payments).
		Scopes(companyScope(companyID))
	if periodo != nil && *periodo != "" {
		query = query.Where("periodo = ?", *periodo)
	}
	query = query.Group("uuid_raiz").Order("ultimo_evento DESC NULLS LAST, uuid_raiz ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var chains []ChainAggregate
	if err := query.Scan(&chains).Error; err != nil {
		return nil, fmt.Errorf("failed to list chain aggregates: %w", err)
	}

	return chains, nil
}

// GetTraceEventsByRoot retrieves the events of one chain ordered by date ascending
func (s *pgStore) GetTraceEventsByRoot(ctx context.Context, companyID domain.CompanyID, uuidRaiz string) ([]schema.TraceEvent, error) {
	var events []schema.TraceEvent
	err := s.db.WithContext(ctx).
		Scopes(companyScope(companyID)).
		Where("LOWER(uuid_raiz) = LOWER(?)", uuidRaiz).
		Order("fecha ASC NULLS FIRST, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get trace events by root: %w", err)
	}

	return events, nil
}

// GetTimeDimension retrieves the calendar entry of a period
func (s *pgStore) GetTimeDimension(ctx context.Context, periodo string) (*schema.TimeDimension, error) {
	var dim schema.TimeDimension
	err := s.db.WithContext(ctx).Where("periodo = ?", periodo).First(&dim).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get time dimension: %w", err)
	}

	return &dim, nil
}

// GetInvoiceByUUID retrieves a master invoice by its uuid
func (s *pgStore) GetInvoiceByUUID(ctx context.Context, uuid string) (*schema.Invoice, error) {
	var invoice schema.Invoice
	err := s.db.WithContext(ctx).Where("uuid = ?", uuid).First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return &invoice, nil
}

// GetInvoicesByIssuer retrieves every master invoice of an issuer
func (s *pgStore) GetInvoicesByIssuer(ctx context.Context, emisorRFC string) ([]schema.Invoice, error) {
	var invoices []schema.Invoice
	err := s.db.WithContext(ctx).
		Where("emisor_rfc = ?", emisorRFC).
		Order("uuid ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get invoices by issuer: %w", err)
	}

	return invoices, nil
}
