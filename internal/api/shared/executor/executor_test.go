package executor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/konia/fiscal-analytics/internal/api/shared/dto"
	apierrors "github.com/konia/fiscal-analytics/internal/api/shared/errors"
	"github.com/konia/fiscal-analytics/internal/api/shared/executor"
	"github.com/konia/fiscal-analytics/internal/auth"
	"github.com/konia/fiscal-analytics/internal/domain"
	"github.com/konia/fiscal-analytics/internal/metrics"
	"github.com/konia/fiscal-analytics/internal/mocks"
	"github.com/konia/fiscal-analytics/internal/store"
	"github.com/konia/fiscal-analytics/internal/store/schema"
	"github.com/konia/fiscal-analytics/internal/traceability"
)

const testSecret = "test-secret"

type testExecutor struct {
	exec   executor.Executor
	store  *mocks.MockStore
	tokens *mocks.MockTokenService
}

func newTestExecutor(t *testing.T) *testExecutor {
	ctrl := gomock.NewController(t)
	pool := pond.NewPool(4)
	t.Cleanup(pool.StopAndWait)

	registry := prometheus.NewRegistry()
	st := mocks.NewMockStore(ctrl)
	tokens := mocks.NewMockTokenService(ctrl)

	exec := executor.NewExecutor(executor.Config{
		PasswordSecret: testSecret,
		BalanceMode:    traceability.BalanceLastEvent,
	}, st, tokens, pool, metrics.NewWithRegistry(registry, registry))

	return &testExecutor{exec: exec, store: st, tokens: tokens}
}

func requireAPIError(t *testing.T, err error, code apierrors.ErrorCode) *apierrors.APIError {
	t.Helper()
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, code, apiErr.Code)
	return apiErr
}

var company = domain.CompanyIDFromInt(2)

func testUser() *schema.User {
	return &schema.User{
		Username:      "ana",
		CompanyID:     "TENANT_001",
		PasswordHash:  auth.HashPassword("s3cret", testSecret),
		Role:          "admin",
		ActiveModules: datatypes.JSONSlice[string]{"dashboard", "riesgos"},
	}
}

func TestLogin(t *testing.T) {
	te := newTestExecutor(t)
	ctx := context.Background()

	te.store.EXPECT().GetUser(ctx, "ana", "TENANT_001").Return(testUser(), nil)
	te.tokens.EXPECT().IssueAccessToken("ana", "admin", "TENANT_001").Return("access.jwt", nil)
	te.tokens.EXPECT().IssueRefreshToken("ana").Return("refresh.jwt", nil)
	te.tokens.EXPECT().AccessTokenTTL().Return(60 * time.Minute)
	te.tokens.EXPECT().RefreshTokenTTL().Return(720 * time.Minute)
	te.tokens.EXPECT().CompanyIDForTenant("TENANT_001").Return(int64(2))

	result, err := te.exec.Login(ctx, dto.LoginRequest{Username: "ana", Password: "s3cret", CompanyID: "TENANT_001"})
	require.NoError(t, err)

	assert.Equal(t, dto.Session{
		AccessToken:     "access.jwt",
		AccessTokenTTL:  60 * time.Minute,
		RefreshToken:    "refresh.jwt",
		RefreshTokenTTL: 720 * time.Minute,
	}, result.Session)
	assert.Equal(t, "Login successful", result.Response.Message)
	assert.Equal(t, dto.UserResponse{
		Username:      "ana",
		Role:          "admin",
		CompanyID:     "TENANT_001",
		DBCompanyID:   2,
		ActiveModules: []string{"dashboard", "riesgos"},
	}, result.Response.User)
}

func TestLoginRejected(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong password", func(t *testing.T) {
		te := newTestExecutor(t)
		te.store.EXPECT().GetUser(ctx, "ana", "TENANT_001").Return(testUser(), nil)

		_, err := te.exec.Login(ctx, dto.LoginRequest{Username: "ana", Password: "nope", CompanyID: "TENANT_001"})
		apiErr := requireAPIError(t, err, apierrors.ErrCodeUnauthorized)
		assert.Equal(t, "Incorrect username, company ID or password", apiErr.Message)
	})

	t.Run("unknown user", func(t *testing.T) {
		te := newTestExecutor(t)
		te.store.EXPECT().GetUser(ctx, "ana", "TENANT_002").Return(nil, nil)

		_, err := te.exec.Login(ctx, dto.LoginRequest{Username: "ana", Password: "s3cret", CompanyID: "TENANT_002"})
		requireAPIError(t, err, apierrors.ErrCodeUnauthorized)
	})

	t.Run("missing fields", func(t *testing.T) {
		te := newTestExecutor(t)

		_, err := te.exec.Login(ctx, dto.LoginRequest{Username: "ana"})
		apiErr := requireAPIError(t, err, apierrors.ErrCodeValidationFailed)
		assert.Equal(t, "password is required, company_id is required", apiErr.Details)
	})

	t.Run("store failure", func(t *testing.T) {
		te := newTestExecutor(t)
		te.store.EXPECT().GetUser(ctx, "ana", "TENANT_001").Return(nil, errors.New("connection refused"))

		_, err := te.exec.Login(ctx, dto.LoginRequest{Username: "ana", Password: "s3cret", CompanyID: "TENANT_001"})
		apiErr := requireAPIError(t, err, apierrors.ErrCodeDatabaseError)
		assert.Equal(t, "connection refused", apiErr.Details)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a new access token", func(t *testing.T) {
		te := newTestExecutor(t)
		te.tokens.EXPECT().VerifyRefreshToken("refresh.jwt").Return("ana", nil)
		te.store.EXPECT().GetUserByUsername(ctx, "ana").Return(testUser(), nil)
		te.tokens.EXPECT().IssueAccessToken("ana", "admin", "TENANT_001").Return("access.jwt", nil)
		te.tokens.EXPECT().AccessTokenTTL().Return(time.Hour)

		session, err := te.exec.Refresh(ctx, "refresh.jwt")
		require.NoError(t, err)
		assert.Equal(t, "access.jwt", session.AccessToken)
		assert.Equal(t, time.Hour, session.AccessTokenTTL)
		assert.Empty(t, session.RefreshToken)
	})

	t.Run("missing token", func(t *testing.T) {
		te := newTestExecutor(t)

		_, err := te.exec.Refresh(ctx, "")
		apiErr := requireAPIError(t, err, apierrors.ErrCodeUnauthorized)
		assert.Equal(t, "Refresh token missing", apiErr.Message)
	})

	t.Run("invalid token", func(t *testing.T) {
		te := newTestExecutor(t)
		te.tokens.EXPECT().VerifyRefreshToken("access.jwt").Return("", auth.ErrInvalidToken)

		_, err := te.exec.Refresh(ctx, "access.jwt")
		apiErr := requireAPIError(t, err, apierrors.ErrCodeUnauthorized)
		assert.Equal(t, "Invalid refresh token", apiErr.Message)
	})

	t.Run("user removed", func(t *testing.T) {
		te := newTestExecutor(t)
		te.tokens.EXPECT().VerifyRefreshToken("refresh.jwt").Return("ana", nil)
		te.store.EXPECT().GetUserByUsername(ctx, "ana").Return(nil, nil)

		_, err := te.exec.Refresh(ctx, "refresh.jwt")
		apiErr := requireAPIError(t, err, apierrors.ErrCodeUnauthorized)
		assert.Equal(t, "User not found", apiErr.Message)
	})
}

func TestMe(t *testing.T) {
	te := newTestExecutor(t)

	me := te.exec.Me(context.Background(), auth.Identity{Username: "ana", Role: "admin", CompanyID: company, TenantID: "TENANT_001"})
	assert.Equal(t, &dto.MeResponse{Username: "ana", Role: "admin", CompanyID: company}, me)
}

func TestGetMatrixSummary(t *testing.T) {
	te := newTestExecutor(t)
	ctx := context.Background()

	te.store.EXPECT().GetMatrixCells(ctx, company, "2026-02").Return([]schema.MatrixCell{
		{Segmento: "PPD", Concepto: domain.ConceptTotalBilled, Monto: 1000},
		{Segmento: "PPD", Concepto: domain.ConceptOutstandingPPD, Monto: 400},
		{Segmento: "PUE", Concepto: domain.ConceptTotalBilled, Monto: 500},
		{Segmento: "PUE", Concepto: domain.ConceptTheoreticalPUE, Monto: 100},
	}, nil)

	summary, err := te.exec.GetMatrixSummary(ctx, company, "2026-02")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, summary.KPIs.IngresosTotales)
	assert.Equal(t, 500.0, summary.TotalGeneral)
	assert.Equal(t, domain.StatusHealthy, summary.KPIs.Status)
}

func TestGetMatrixEvolution(t *testing.T) {
	te := newTestExecutor(t)
	ctx := context.Background()

	te.store.EXPECT().GetMatrixPeriods(ctx, company).Return([]string{"2025-12", "2026-01"}, nil)
	te.store.EXPECT().GetMatrixCellsByConcepts(ctx, company, gomock.Any()).Return([]schema.MatrixCell{
		{Periodo: "2026-01", Segmento: "PPD", Concepto: domain.ConceptOutstandingPPD, Monto: 80},
	}, nil)

	resp, err := te.exec.GetMatrixEvolution(ctx, company)
	require.NoError(t, err)
	require.Len(t, resp.Evolucion, 2)
	assert.Equal(t, "2025-12", resp.Evolucion[0].Periodo)
	assert.Equal(t, 0.0, resp.Evolucion[0].SaldoPPD)
	assert.Equal(t, 80.0, resp.Evolucion[1].SaldoPPD)
}

func TestGetMatrixEvolutionStoreError(t *testing.T) {
	te := newTestExecutor(t)
	ctx := context.Background()

	te.store.EXPECT().GetMatrixPeriods(ctx, company).Return(nil, errors.New("timeout"))
	te.store.EXPECT().GetMatrixCellsByConcepts(ctx, company, gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := te.exec.GetMatrixEvolution(ctx, company)
	requireAPIError(t, err, apierrors.ErrCodeDatabaseError)
}

func TestGetMatrixComparison(t *testing.T) {
	ctx := context.Background()
	billed := []schema.MatrixCell{{Segmento: "PPD", Concepto: domain.ConceptTotalBilled, Monto: 10}}

	t.Run("january rolls back a year", func(t *testing.T) {
		te := newTestExecutor(t)
		te.store.EXPECT().GetMatrixCells(ctx, company, "2026-01").Return(billed, nil)
		te.store.EXPECT().GetMatrixCells(ctx, company, "2025-12").Return(nil, nil)

		cmp, err := te.exec.GetMatrixComparison(ctx, company, "2026-01")
		require.NoError(t, err)
		require.NotNil(t, cmp.PeriodoAnterior)
		assert.Equal(t, "2025-12", *cmp.PeriodoAnterior)
		assert.True(t, cmp.Advertencias.PeriodoActualCompleto)
		assert.False(t, cmp.Advertencias.PeriodoAnteriorCompleto)
	})

	t.Run("malformed period skips the previous month", func(t *testing.T) {
		te := newTestExecutor(t)
		te.store.EXPECT().GetMatrixCells(ctx, company, "2026-13").Return(nil, nil)

		cmp, err := te.exec.GetMatrixComparison(ctx, company, "2026-13")
		require.NoError(t, err)
		assert.Nil(t, cmp.PeriodoAnterior)
		assert.True(t, cmp.Advertencias.PeriodoAnteriorCompleto)
	})
}

func TestGetDetailListing(t *testing.T) {
	te := newTestExecutor(t)
	ctx := context.Background()

	saldoMin := 10.0
	ppd := domain.SegmentPPD
	search := "abc"
	filter := store.DetailFilter{
		CompanyID:  company,
		Periodo:    "2026-02",
		Segmento:   &ppd,
		UUIDSearch: &search,
		SaldoMin:   &saldoMin,
	}
	records := []schema.DetailRecord{
		{UUID: "abc-1", Segmento: "PPD", Flujo: "EMITIDOS", SaldoAcumulado: 300},
		{UUID: "abc-2", Segmento: "PPD", Flujo: "RECIBIDOS", SaldoAcumulado: 100},
	}

	te.store.EXPECT().CountDetailRecords(ctx, filter).Return(int64(2), nil)
	// limit is capped at 100 and page 3 skips 200 records
	te.store.EXPECT().GetDetailRecords(ctx, filter, 100, 200).Return(nil, nil)
	te.store.EXPECT().GetDetailRecords(ctx, filter, 10, 0).Return(records, nil)
	te.store.EXPECT().GetDetailSummary(ctx, filter).Return(&store.DetailSummary{Count: 2, SaldoTotal: 400, Emitidos: 1, Recibidos: 1}, nil)
	te.store.EXPECT().GetDetailSegmentCounts(ctx, filter).Return([]store.SegmentCount{{Segmento: "PPD", Count: 2}}, nil)

	resp, err := te.exec.GetDetailListing(ctx, company, executor.DetailQuery{
		Periodo:    "2026-02",
		Page:       3,
		Limit:      500,
		Flujo:      domain.FILTER_ALL,
		Segmento:   "PPD",
		UUIDSearch: "abc",
		SaldoMin:   &saldoMin,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, 3, resp.Page)
	assert.Equal(t, 100, resp.Limit)
	assert.Empty(t, resp.Registros)
	assert.Equal(t, 200.0, resp.KPIs.PromedioSaldo)
	assert.Equal(t, 100.0, resp.KPIs.RatioEmitRecib)
	assert.Equal(t, map[string]int64{"PPD": 2}, resp.Distribucion)
	require.Len(t, resp.Top10, 2)
	assert.Equal(t, "abc-1", resp.Top10[0].UUID)
}

func TestGetChainSummaries(t *testing.T) {
	t.Run("page maps to limit and offset", func(t *testing.T) {
		te := newTestExecutor(t)
		ctx := context.Background()

		lastDay := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
		te.store.EXPECT().ListChainAggregates(ctx, company, (*string)(nil), 1, 1).Return([]store.ChainAggregate{
			{UUIDRaiz: "A", TotalEventos: 2, UltimoEvento: &lastDay, TotalMonto: 0, SaldoUltimoEvento: 0, TienePago: true, Periodos: "2026-02"},
		}, nil)

		page, err := te.exec.GetChainSummaries(ctx, company, nil, 2, 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "A", page[0].UUID)
		assert.Equal(t, domain.ChainSettled, page[0].Estado)
		assert.Equal(t, "2026-02-02", page[0].UltimoEvento)
		assert.True(t, page[0].TienePago)
	})

	t.Run("limit is capped", func(t *testing.T) {
		te := newTestExecutor(t)
		ctx := context.Background()
		periodo := "2026-02"

		te.store.EXPECT().ListChainAggregates(ctx, company, &periodo, 100, 200).Return(nil, nil)

		page, err := te.exec.GetChainSummaries(ctx, company, &periodo, 3, 500)
		require.NoError(t, err)
		assert.Empty(t, page)
		assert.NotNil(t, page)
	})

	t.Run("store failure", func(t *testing.T) {
		te := newTestExecutor(t)
		ctx := context.Background()

		te.store.EXPECT().ListChainAggregates(ctx, company, (*string)(nil), 50, 0).Return(nil, errors.New("timeout"))

		_, err := te.exec.GetChainSummaries(ctx, company, nil, 1, 0)
		requireAPIError(t, err, apierrors.ErrCodeDatabaseError)
	})
}

func TestGetChainDetailNotFound(t *testing.T) {
	te := newTestExecutor(t)
	ctx := context.Background()

	te.store.EXPECT().GetTraceEventsByRoot(ctx, company, "missing").Return(nil, nil)

	_, err := te.exec.GetChainDetail(ctx, company, "missing")
	requireAPIError(t, err, apierrors.ErrCodeNotFound)
}

func TestGetTimeDimension(t *testing.T) {
	ctx := context.Background()

	t.Run("fallback", func(t *testing.T) {
		te := newTestExecutor(t)
		te.store.EXPECT().GetTimeDimension(ctx, "2030-01").Return(nil, nil)

		resp, err := te.exec.GetTimeDimension(ctx, "2030-01")
		require.NoError(t, err)
		assert.Equal(t, &dto.TimeDimensionResponse{Periodo: "2030-01", NombreMesES: "2030-01"}, resp)
	})

	t.Run("calendar entry", func(t *testing.T) {
		te := newTestExecutor(t)
		mes := 2
		te.store.EXPECT().GetTimeDimension(ctx, "2026-02").Return(&schema.TimeDimension{Periodo: "2026-02", Mes: &mes, NombreMesES: "Febrero"}, nil)

		resp, err := te.exec.GetTimeDimension(ctx, "2026-02")
		require.NoError(t, err)
		assert.Equal(t, "Febrero", resp.NombreMesES)
		assert.Equal(t, &mes, resp.Mes)
	})
}

func TestGetInvoiceRisk(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown invoice", func(t *testing.T) {
		te := newTestExecutor(t)
		te.store.EXPECT().GetInvoiceByUUID(ctx, "nope").Return(nil, nil)

		_, err := te.exec.GetInvoiceRisk(ctx, "nope")
		apiErr := requireAPIError(t, err, apierrors.ErrCodeNotFound)
		assert.Equal(t, "Invoice not found", apiErr.Message)
	})

	t.Run("scores against the issuer", func(t *testing.T) {
		te := newTestExecutor(t)
		target := schema.Invoice{UUID: "u1", EmisorRFC: "AAA010101AAA", Total: 500}
		te.store.EXPECT().GetInvoiceByUUID(ctx, "u1").Return(&target, nil)
		te.store.EXPECT().GetInvoicesByIssuer(ctx, "AAA010101AAA").Return([]schema.Invoice{target, {UUID: "u2", Total: 100}}, nil)

		analysis, err := te.exec.GetInvoiceRisk(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", analysis.UUID)
		assert.Equal(t, 40.0, analysis.RiskScore)
		assert.Equal(t, 300.0, analysis.Metrics.EmisorAvg)
		assert.True(t, analysis.Flags.RoundNumber)
	})
}

func TestGetAvailablePeriods(t *testing.T) {
	te := newTestExecutor(t)
	ctx := context.Background()

	te.store.EXPECT().GetDetailPeriods(ctx, company).Return(nil, nil)

	resp, err := te.exec.GetAvailablePeriods(ctx, company)
	require.NoError(t, err)
	assert.NotNil(t, resp.Periodos)
	assert.Empty(t, resp.Periodos)
}

func TestGetKPISummary(t *testing.T) {
	ctx := context.Background()

	t.Run("empty period", func(t *testing.T) {
		te := newTestExecutor(t)
		periodo := "2026-02"
		te.store.EXPECT().GetDetailRecords(ctx, store.DetailFilter{CompanyID: company, Periodo: periodo}, 0, 0).Return(nil, nil)
		te.store.EXPECT().GetTraceEvents(ctx, company, &periodo).Return(nil, nil)

		summary, err := te.exec.GetKPISummary(ctx, company, periodo)
		require.NoError(t, err)
		assert.Equal(t, periodo, summary.Periodo)
		assert.Equal(t, 0, summary.Portfolio.TotalPPD)
	})

	t.Run("store failure", func(t *testing.T) {
		te := newTestExecutor(t)
		te.store.EXPECT().GetDetailRecords(ctx, gomock.Any(), 0, 0).Return(nil, errors.New("boom"))
		te.store.EXPECT().GetTraceEvents(ctx, company, gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := te.exec.GetKPISummary(ctx, company, "2026-02")
		requireAPIError(t, err, apierrors.ErrCodeDatabaseError)
	})
}
