package executor

import (
	"context"
	"fmt"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/konia/fiscal-analytics/internal/api/shared/constants"
	"github.com/konia/fiscal-analytics/internal/api/shared/dto"
	apierrors "github.com/konia/fiscal-analytics/internal/api/shared/errors"
	"github.com/konia/fiscal-analytics/internal/auth"
	"github.com/konia/fiscal-analytics/internal/domain"
	"github.com/konia/fiscal-analytics/internal/kpi"
	"github.com/konia/fiscal-analytics/internal/logger"
	"github.com/konia/fiscal-analytics/internal/matrix"
	"github.com/konia/fiscal-analytics/internal/metrics"
	"github.com/konia/fiscal-analytics/internal/risk"
	"github.com/konia/fiscal-analytics/internal/store"
	"github.com/konia/fiscal-analytics/internal/store/schema"
	"github.com/konia/fiscal-analytics/internal/traceability"
)

// DetailQuery holds the filters and pagination of a detail listing
type DetailQuery struct {
	Periodo    string
	Page       int
	Limit      int
	Flujo      string
	Segmento   string
	UUIDSearch string
	SaldoMin   *float64
}

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/executor.go -package=mocks -mock_names=Executor=MockExecutor
type Executor interface {
	// Login verifies the credentials of a tenant user and issues a session
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResult, error)
	// Refresh issues a new access token from a refresh token
	Refresh(ctx context.Context, refreshToken string) (*dto.Session, error)
	// Me describes the authenticated caller
	Me(ctx context.Context, identity auth.Identity) *dto.MeResponse

	// GetMatrixSummary returns the summary matrix and fiscal KPIs of a period
	GetMatrixSummary(ctx context.Context, companyID domain.CompanyID, periodo string) (*matrix.Summary, error)
	// GetMatrixEvolution returns the balance evolution over every period of the company
	GetMatrixEvolution(ctx context.Context, companyID domain.CompanyID) (*dto.EvolutionResponse, error)
	// GetMatrixComparison compares a period with the one before it
	GetMatrixComparison(ctx context.Context, companyID domain.CompanyID, periodo string) (*matrix.Comparison, error)

	// GetDetailListing returns a page of detail records with indicators over the full filter
	GetDetailListing(ctx context.Context, companyID domain.CompanyID, query DetailQuery) (*dto.DetailListingResponse, error)

	// GetChainSummaries returns a page of reconstructed invoice chains
	GetChainSummaries(ctx context.Context, companyID domain.CompanyID, periodo *string, page, limit int) ([]traceability.ChainSummary, error)
	// GetChainDetail returns every event of one chain with its indicators
	GetChainDetail(ctx context.Context, companyID domain.CompanyID, uuidRaiz string) (*traceability.ChainDetail, error)

	// GetTimeDimension returns the calendar entry of a period
	GetTimeDimension(ctx context.Context, periodo string) (*dto.TimeDimensionResponse, error)
	// GetInvoiceRisk scores an invoice against the history of its issuer
	GetInvoiceRisk(ctx context.Context, uuid string) (*risk.Analysis, error)

	// GetAvailablePeriods lists the periods with detail records, newest first
	GetAvailablePeriods(ctx context.Context, companyID domain.CompanyID) (*dto.PeriodsResponse, error)
	// GetKPISummary returns the four KPI blocks of a period
	GetKPISummary(ctx context.Context, companyID domain.CompanyID, periodo string) (*kpi.Summary, error)
}

// Config holds executor settings
type Config struct {
	// PasswordSecret salts the legacy password hashes
	PasswordSecret string
	// BalanceMode selects how chain listings derive ultimo_saldo
	BalanceMode traceability.BalanceMode
}

type executor struct {
	config  Config
	store   store.Store
	tokens  auth.TokenService
	pool    pond.Pool
	metrics *metrics.Metrics
}

func NewExecutor(cfg Config, store store.Store, tokens auth.TokenService, pool pond.Pool, m *metrics.Metrics) Executor {
	if cfg.BalanceMode == "" {
		cfg.BalanceMode = traceability.BalanceLastEvent
	}
	return &executor{config: cfg, store: store, tokens: tokens, pool: pool, metrics: m}
}

// storeError records a failed store operation and wraps it for the client
func (e *executor) storeError(ctx context.Context, operation string, err error) error {
	e.metrics.IncStoreError(operation)
	logger.ErrorCtx(ctx, fmt.Errorf("%s: %w", operation, err), zap.String("operation", operation))
	return apierrors.NewDatabaseError(fmt.Sprintf("Failed to %s", operation), err.Error())
}

func (e *executor) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := e.store.GetUser(ctx, req.Username, req.CompanyID)
	if err != nil {
		return nil, e.storeError(ctx, "get user", err)
	}
	if user == nil || !auth.VerifyPassword(req.Password, e.config.PasswordSecret, user.PasswordHash) {
		e.metrics.IncAuthAttempt("login", false)
		logger.WarnCtx(ctx, "Login rejected",
			zap.String("username", req.Username),
			zap.String("tenant_id", req.CompanyID),
		)
		return nil, apierrors.NewUnauthorizedError("Incorrect username, company ID or password")
	}

	session, err := e.issueSession(user)
	if err != nil {
		return nil, err
	}
	e.metrics.IncAuthAttempt("login", true)

	return &dto.LoginResult{
		Session: *session,
		Response: dto.LoginResponse{
			Message: "Login successful",
			User:    dto.MapUserToDTO(user, e.tokens.CompanyIDForTenant(user.CompanyID)),
		},
	}, nil
}

// issueSession issues both tokens for a user
func (e *executor) issueSession(user *schema.User) (*dto.Session, error) {
	access, err := e.tokens.IssueAccessToken(user.Username, user.Role, user.CompanyID)
	if err != nil {
		return nil, apierrors.NewInternalError("Failed to issue access token", err.Error())
	}
	refresh, err := e.tokens.IssueRefreshToken(user.Username)
	if err != nil {
		return nil, apierrors.NewInternalError("Failed to issue refresh token", err.Error())
	}
	return &dto.Session{
		AccessToken:     access,
		AccessTokenTTL:  e.tokens.AccessTokenTTL(),
		RefreshToken:    refresh,
		RefreshTokenTTL: e.tokens.RefreshTokenTTL(),
	}, nil
}

func (e *executor) Refresh(ctx context.Context, refreshToken string) (*dto.Session, error) {
	if refreshToken == "" {
		e.metrics.IncAuthAttempt("refresh", false)
		return nil, apierrors.NewUnauthorizedError("Refresh token missing")
	}

	username, err := e.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		e.metrics.IncAuthAttempt("refresh", false)
		return nil, apierrors.NewUnauthorizedError("Invalid refresh token")
	}

	// The refresh token carries no tenant, so the user is looked up by name
	user, err := e.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, e.storeError(ctx, "get user", err)
	}
	if user == nil {
		e.metrics.IncAuthAttempt("refresh", false)
		return nil, apierrors.NewUnauthorizedError("User not found")
	}

	access, err := e.tokens.IssueAccessToken(user.Username, user.Role, user.CompanyID)
	if err != nil {
		return nil, apierrors.NewInternalError("Failed to issue access token", err.Error())
	}
	e.metrics.IncAuthAttempt("refresh", true)

	return &dto.Session{
		AccessToken:    access,
		AccessTokenTTL: e.tokens.AccessTokenTTL(),
	}, nil
}

func (e *executor) Me(ctx context.Context, identity auth.Identity) *dto.MeResponse {
	return &dto.MeResponse{
		Username:  identity.Username,
		Role:      identity.Role,
		CompanyID: identity.CompanyID,
	}
}

func (e *executor) GetMatrixSummary(ctx context.Context, companyID domain.CompanyID, periodo string) (*matrix.Summary, error) {
	cells, err := e.store.GetMatrixCells(ctx, companyID, periodo)
	if err != nil {
		return nil, e.storeError(ctx, "get matrix cells", err)
	}

	summary := matrix.Summarize(cells)
	return &summary, nil
}

func (e *executor) GetMatrixEvolution(ctx context.Context, companyID domain.CompanyID) (*dto.EvolutionResponse, error) {
	var periods []string
	var cells []schema.MatrixCell

	group := e.pool.NewGroup()
	group.SubmitErr(func() error {
		var err error
		periods, err = e.store.GetMatrixPeriods(ctx, companyID)
		if err != nil {
			return e.storeError(ctx, "get matrix periods", err)
		}
		return nil
	})
	group.SubmitErr(func() error {
		var err error
		cells, err = e.store.GetMatrixCellsByConcepts(ctx, companyID, matrix.BalanceConcepts)
		if err != nil {
			return e.storeError(ctx, "get matrix cells", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return &dto.EvolutionResponse{Evolucion: matrix.Evolution(periods, cells)}, nil
}

func (e *executor) GetMatrixComparison(ctx context.Context, companyID domain.CompanyID, periodo string) (*matrix.Comparison, error) {
	var previous *string
	if p, ok := domain.PreviousPeriod(periodo); ok {
		previous = &p
	}

	var current, prior []schema.MatrixCell

	group := e.pool.NewGroup()
	group.SubmitErr(func() error {
		var err error
		current, err = e.store.GetMatrixCells(ctx, companyID, periodo)
		if err != nil {
			return e.storeError(ctx, "get matrix cells", err)
		}
		return nil
	})
	if previous != nil {
		group.SubmitErr(func() error {
			var err error
			prior, err = e.store.GetMatrixCells(ctx, companyID, *previous)
			if err != nil {
				return e.storeError(ctx, "get matrix cells", err)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	comparison := matrix.Compare(periodo, previous, current, prior)
	return &comparison, nil
}

func (e *executor) GetDetailListing(ctx context.Context, companyID domain.CompanyID, query DetailQuery) (*dto.DetailListingResponse, error) {
	page, limit := normalizePage(query.Page, query.Limit, constants.DEFAULT_DETAIL_LIMIT)
	filter := kpi.DetailFilter(companyID, query.Periodo, query.Segmento, query.Flujo, query.UUIDSearch, query.SaldoMin)

	var (
		total   int64
		records []schema.DetailRecord
		summary *store.DetailSummary
		counts  []store.SegmentCount
		top     []schema.DetailRecord
	)

	group := e.pool.NewGroup()
	group.SubmitErr(func() error {
		var err error
		total, err = e.store.CountDetailRecords(ctx, filter)
		if err != nil {
			return e.storeError(ctx, "count detail records", err)
		}
		return nil
	})
	group.SubmitErr(func() error {
		var err error
		records, err = e.store.GetDetailRecords(ctx, filter, limit, (page-1)*limit)
		if err != nil {
			return e.storeError(ctx, "get detail records", err)
		}
		return nil
	})
	group.SubmitErr(func() error {
		var err error
		summary, err = e.store.GetDetailSummary(ctx, filter)
		if err != nil {
			return e.storeError(ctx, "get detail summary", err)
		}
		return nil
	})
	group.SubmitErr(func() error {
		var err error
		counts, err = e.store.GetDetailSegmentCounts(ctx, filter)
		if err != nil {
			return e.storeError(ctx, "get detail segment counts", err)
		}
		return nil
	})
	group.SubmitErr(func() error {
		var err error
		top, err = e.store.GetDetailRecords(ctx, filter, kpi.TOP_DETAIL_RECORDS, 0)
		if err != nil {
			return e.storeError(ctx, "get detail records", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	if summary == nil {
		summary = &store.DetailSummary{}
	}

	return &dto.DetailListingResponse{
		Total:        total,
		Page:         page,
		Limit:        limit,
		Registros:    kpi.DetailRows(records),
		KPIs:         kpi.ComputeDetailKPIs(total, *summary),
		Distribucion: kpi.Distribution(counts),
		Top10:        kpi.TopDetails(top),
	}, nil
}

func (e *executor) GetChainSummaries(ctx context.Context, companyID domain.CompanyID, periodo *string, page, limit int) ([]traceability.ChainSummary, error) {
	page, limit = normalizePage(page, limit, constants.DEFAULT_CHAIN_LIMIT)

	chains, err := e.store.ListChainAggregates(ctx, companyID, periodo, limit, (page-1)*limit)
	if err != nil {
		return nil, e.storeError(ctx, "list chain aggregates", err)
	}

	summaries := traceability.SummarizeAggregates(chains, e.config.BalanceMode)
	e.metrics.ObserveChainsListed(len(summaries))

	logger.DebugCtx(ctx, "Chains listed",
		zap.Int("chains", len(summaries)),
		zap.Int("page", page),
		zap.Int("limit", limit),
	)

	return summaries, nil
}

func (e *executor) GetChainDetail(ctx context.Context, companyID domain.CompanyID, uuidRaiz string) (*traceability.ChainDetail, error) {
	if uuidRaiz == "" {
		return nil, apierrors.NewBadRequestError("uuid_raiz is required")
	}

	events, err := e.store.GetTraceEventsByRoot(ctx, companyID, uuidRaiz)
	if err != nil {
		return nil, e.storeError(ctx, "get trace events", err)
	}

	detail, err := traceability.BuildChainDetail(uuidRaiz, events)
	if err != nil {
		return nil, apierrors.NewNotFoundError("UUID no encontrado en el sistema de trazabilidad", uuidRaiz)
	}
	return detail, nil
}

func (e *executor) GetTimeDimension(ctx context.Context, periodo string) (*dto.TimeDimensionResponse, error) {
	dim, err := e.store.GetTimeDimension(ctx, periodo)
	if err != nil {
		return nil, e.storeError(ctx, "get time dimension", err)
	}

	resp := dto.MapTimeDimensionToDTO(periodo, dim)
	return &resp, nil
}

func (e *executor) GetInvoiceRisk(ctx context.Context, uuid string) (*risk.Analysis, error) {
	target, err := e.store.GetInvoiceByUUID(ctx, uuid)
	if err != nil {
		e.metrics.IncRiskAnalysis("error")
		return nil, e.storeError(ctx, "get invoice", err)
	}
	if target == nil {
		e.metrics.IncRiskAnalysis("not_found")
		return nil, apierrors.NewNotFoundError("Invoice not found", uuid)
	}

	history, err := e.store.GetInvoicesByIssuer(ctx, target.EmisorRFC)
	if err != nil {
		e.metrics.IncRiskAnalysis("error")
		return nil, e.storeError(ctx, "get issuer invoices", err)
	}

	analysis := risk.Analyze(*target, history)
	e.metrics.IncRiskAnalysis("scored")
	return &analysis, nil
}

func (e *executor) GetAvailablePeriods(ctx context.Context, companyID domain.CompanyID) (*dto.PeriodsResponse, error) {
	periods, err := e.store.GetDetailPeriods(ctx, companyID)
	if err != nil {
		return nil, e.storeError(ctx, "get detail periods", err)
	}
	if periods == nil {
		periods = []string{}
	}
	return &dto.PeriodsResponse{Periodos: periods}, nil
}

func (e *executor) GetKPISummary(ctx context.Context, companyID domain.CompanyID, periodo string) (*kpi.Summary, error) {
	var records []schema.DetailRecord
	var events []schema.TraceEvent

	group := e.pool.NewGroup()
	group.SubmitErr(func() error {
		var err error
		records, err = e.store.GetDetailRecords(ctx, store.DetailFilter{CompanyID: companyID, Periodo: periodo}, 0, 0)
		if err != nil {
			return e.storeError(ctx, "get detail records", err)
		}
		return nil
	})
	group.SubmitErr(func() error {
		var err error
		events, err = e.store.GetTraceEvents(ctx, companyID, &periodo)
		if err != nil {
			return e.storeError(ctx, "get trace events", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	summary := kpi.Summarize(periodo, records, events)
	return &summary, nil
}

// normalizePage applies the default limit and caps it at MAX_PAGE_SIZE
func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = constants.DEFAULT_PAGE
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > constants.MAX_PAGE_SIZE {
		limit = constants.MAX_PAGE_SIZE
	}
	return page, limit
}
