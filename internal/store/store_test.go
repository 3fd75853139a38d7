package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/konia/fiscal-analytics/internal/domain"
	"github.com/konia/fiscal-analytics/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func datePtr(year int, month time.Month, day, hour int) *time.Time {
	t := time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
	return &t
}

func buildTestDetail(companyID, periodo, uuid string, segmento domain.Segment, flujo domain.Flow, saldo float64) schema.DetailRecord {
	return schema.DetailRecord{
		UUID:           uuid,
		CompanyID:      companyID,
		Periodo:        periodo,
		Segmento:       string(segmento),
		Flujo:          string(flujo),
		SaldoAcumulado: saldo,
		Conceptos:      datatypes.NewJSONType(map[string]float64{domain.ConceptTotalBilled: saldo}),
	}
}

func buildTestEvent(companyID, periodo, root, uuid string, fecha *time.Time, monto, saldo float64) schema.TraceEvent {
	return schema.TraceEvent{
		UUID:           uuid,
		UUIDRaiz:       root,
		Fecha:          fecha,
		Monto:          monto,
		SaldoAcumulado: saldo,
		Concepto:       domain.ConceptTotalBilled,
		Periodo:        periodo,
		CompanyID:      companyID,
	}
}

func companyID(t *testing.T, s string) domain.CompanyID {
	id, err := domain.NewCompanyID(s)
	require.NoError(t, err)
	return id
}

// =============================================================================
// Tests
// =============================================================================

func testUsers(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()

	require.NoError(t, db.Create(&schema.User{
		Username:      "ana",
		CompanyID:     "TENANT_001",
		PasswordHash:  "hash-1",
		Role:          "admin",
		ActiveModules: datatypes.JSONSlice[string]{"dashboard", "kpis"},
	}).Error)
	require.NoError(t, db.Create(&schema.User{
		Username:     "ana",
		CompanyID:    "TENANT_002",
		PasswordHash: "hash-2",
		Role:         "viewer",
	}).Error)

	t.Run("get user scoped to tenant", func(t *testing.T) {
		user, err := store.GetUser(ctx, "ana", "TENANT_002")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "hash-2", user.PasswordHash)
		assert.Equal(t, "viewer", user.Role)
	})

	t.Run("active modules decode", func(t *testing.T) {
		user, err := store.GetUser(ctx, "ana", "TENANT_001")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, []string{"dashboard", "kpis"}, []string(user.ActiveModules))
	})

	t.Run("unknown tenant returns nil", func(t *testing.T) {
		user, err := store.GetUser(ctx, "ana", "TENANT_999")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("by username returns the first created", func(t *testing.T) {
		user, err := store.GetUserByUsername(ctx, "ana")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "TENANT_001", user.CompanyID)

		missing, err := store.GetUserByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func testMatrixCells(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()

	cells := []schema.MatrixCell{
		{CompanyID: "2", Periodo: "2026-01", Segmento: "PPD", Concepto: domain.ConceptTotalBilled, Monto: 1000},
		{CompanyID: "2", Periodo: "2026-01", Segmento: "PPD", Concepto: domain.ConceptOutstandingPPD, Monto: 400},
		{CompanyID: "2", Periodo: "2026-01", Segmento: "PUE", Concepto: domain.ConceptTheoreticalPUE, Monto: 50},
		{CompanyID: "2", Periodo: "2025-12", Segmento: "PPD", Concepto: domain.ConceptOutstandingPPD, Monto: 300},
		{CompanyID: "002", Periodo: "2025-11", Segmento: "PPD", Concepto: domain.ConceptOutstandingPPD, Monto: 200},
		{CompanyID: "3", Periodo: "2026-01", Segmento: "PPD", Concepto: domain.ConceptTotalBilled, Monto: 9999},
	}
	require.NoError(t, db.Create(&cells).Error)

	t.Run("cells for period are company scoped", func(t *testing.T) {
		got, err := store.GetMatrixCells(ctx, domain.CompanyIDFromInt(2), "2026-01")
		require.NoError(t, err)
		assert.Len(t, got, 3)
		for _, c := range got {
			assert.Equal(t, "2", c.CompanyID)
		}
	})

	t.Run("both representations of the company id match", func(t *testing.T) {
		periods, err := store.GetMatrixPeriods(ctx, companyID(t, "002"))
		require.NoError(t, err)
		assert.Equal(t, []string{"2025-11", "2025-12", "2026-01"}, periods)
	})

	t.Run("cells by concept", func(t *testing.T) {
		got, err := store.GetMatrixCellsByConcepts(ctx, domain.CompanyIDFromInt(2),
			[]string{domain.ConceptOutstandingPPD, domain.ConceptTheoreticalPUE})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "2025-12", got[0].Periodo)
		assert.Equal(t, "2026-01", got[1].Periodo)
	})

	t.Run("empty concept list", func(t *testing.T) {
		got, err := store.GetMatrixCellsByConcepts(ctx, domain.CompanyIDFromInt(2), nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("zero company id matches nothing", func(t *testing.T) {
		got, err := store.GetMatrixCells(ctx, domain.CompanyID{}, "2026-01")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func testDetailRecords(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()

	records := []schema.DetailRecord{
		buildTestDetail("2", "2026-01", "AAAA-1111", domain.SegmentPPD, domain.FlowIssued, 500),
		buildTestDetail("2", "2026-01", "BBBB-2222", domain.SegmentPPD, domain.FlowReceived, 300),
		buildTestDetail("2", "2026-01", "cccc-3333", domain.SegmentPUE, domain.FlowIssued, -20),
		buildTestDetail("2", "2026-01", "DDDD_4444", domain.SegmentOtros, domain.FlowIssued, 10),
		buildTestDetail("2", "2025-12", "EEEE-5555", domain.SegmentPPD, domain.FlowIssued, 1),
		buildTestDetail("9", "2026-01", "FFFF-6666", domain.SegmentPPD, domain.FlowIssued, 1),
	}
	records[0].DiasSinPago = intPtr(45)
	records[0].AgingBucket = strPtr("31-60")
	records[0].RFCReceptor = strPtr("XAXX010101000")
	require.NoError(t, db.Create(&records).Error)

	base := DetailFilter{CompanyID: domain.CompanyIDFromInt(2), Periodo: "2026-01"}

	t.Run("sorted by balance descending", func(t *testing.T) {
		got, err := store.GetDetailRecords(ctx, base, 0, 0)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "AAAA-1111", got[0].UUID)
		assert.Equal(t, "cccc-3333", got[3].UUID)
		assert.Equal(t, 500.0, got[0].Concept(domain.ConceptTotalBilled))
		require.NotNil(t, got[0].DiasSinPago)
		assert.Equal(t, 45, *got[0].DiasSinPago)
	})

	t.Run("pagination", func(t *testing.T) {
		got, err := store.GetDetailRecords(ctx, base, 2, 1)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "BBBB-2222", got[0].UUID)
		assert.Equal(t, "DDDD_4444", got[1].UUID)
	})

	t.Run("filters", func(t *testing.T) {
		seg := domain.SegmentPPD
		flow := domain.FlowIssued
		filter := base
		filter.Segmento = &seg
		filter.Flujo = &flow
		count, err := store.CountDetailRecords(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		minSaldo := 10.0
		filter = base
		filter.SaldoMin = &minSaldo
		count, err = store.CountDetailRecords(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("uuid search is case insensitive and literal", func(t *testing.T) {
		filter := base
		filter.UUIDSearch = strPtr("CCCC")
		got, err := store.GetDetailRecords(ctx, filter, 0, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "cccc-3333", got[0].UUID)

		filter.UUIDSearch = strPtr("_")
		got, err = store.GetDetailRecords(ctx, filter, 0, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "DDDD_4444", got[0].UUID)
	})

	t.Run("summary", func(t *testing.T) {
		summary, err := store.GetDetailSummary(ctx, base)
		require.NoError(t, err)
		assert.Equal(t, int64(4), summary.Count)
		assert.InDelta(t, 790.0, summary.SaldoTotal, 1e-9)
		assert.Equal(t, int64(3), summary.Emitidos)
		assert.Equal(t, int64(1), summary.Recibidos)
	})

	t.Run("summary of empty filter is zero", func(t *testing.T) {
		summary, err := store.GetDetailSummary(ctx, DetailFilter{CompanyID: domain.CompanyIDFromInt(2), Periodo: "1999-01"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), summary.Count)
		assert.Equal(t, 0.0, summary.SaldoTotal)
	})

	t.Run("segment counts", func(t *testing.T) {
		counts, err := store.GetDetailSegmentCounts(ctx, base)
		require.NoError(t, err)
		got := map[string]int64{}
		for _, c := range counts {
			got[c.Segmento] = c.Count
		}
		assert.Equal(t, map[string]int64{"OTROS": 1, "PPD": 2, "PUE": 1}, got)
	})

	t.Run("periods descending", func(t *testing.T) {
		periods, err := store.GetDetailPeriods(ctx, domain.CompanyIDFromInt(2))
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-01", "2025-12"}, periods)
	})
}

func testTraceEvents(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()

	events := []schema.TraceEvent{
		buildTestEvent("2", "2026-01", "ROOT-A", "A2", datePtr(2026, 1, 20, 10), -600, 400),
		buildTestEvent("2", "2026-01", "ROOT-A", "A1", datePtr(2026, 1, 5, 9), 1000, 1000),
		buildTestEvent("2", "2026-01", "ROOT-A", "A0", nil, 0, 0),
		buildTestEvent("2", "2025-12", "ROOT-B", "B1", datePtr(2025, 12, 1, 9), 50, 50),
		buildTestEvent("7", "2026-01", "ROOT-A", "X1", datePtr(2026, 1, 6, 9), 1, 1),
	}
	require.NoError(t, db.Create(&events).Error)

	t.Run("ordered by date with undated events first", func(t *testing.T) {
		got, err := store.GetTraceEvents(ctx, domain.CompanyIDFromInt(2), nil)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Nil(t, got[0].Fecha)
		assert.Equal(t, "B1", got[1].UUID)
		assert.Equal(t, "A2", got[3].UUID)
	})

	t.Run("period filter", func(t *testing.T) {
		periodo := "2025-12"
		got, err := store.GetTraceEvents(ctx, domain.CompanyIDFromInt(2), &periodo)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "ROOT-B", got[0].UUIDRaiz)
	})

	t.Run("root lookup is case insensitive and company scoped", func(t *testing.T) {
		got, err := store.GetTraceEventsByRoot(ctx, domain.CompanyIDFromInt(2), "root-a")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "A1", got[1].UUID)
		assert.Equal(t, "A2", got[2].UUID)
	})

	t.Run("unknown root", func(t *testing.T) {
		got, err := store.GetTraceEventsByRoot(ctx, domain.CompanyIDFromInt(2), "ROOT-Z")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func testChainAggregates(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()

	payment := buildTestEvent("2", "2026-01", "ROOT-A", "A2", datePtr(2026, 1, 20, 10), -600, 400)
	payment.TipoRelacion = string(domain.RelationPayment)

	// Insertion order differs from date order on purpose
	events := []schema.TraceEvent{
		buildTestEvent("2", "2026-02", "ROOT-A", "A3", datePtr(2026, 2, 3, 9), -100, 300),
		buildTestEvent("2", "2026-01", "ROOT-A", "A1", datePtr(2026, 1, 5, 9), 1000, 1000),
		buildTestEvent("2", "", "ROOT-A", "A0", nil, 7, 999),
		payment,
		buildTestEvent("2", "2025-12", "ROOT-B", "B1", datePtr(2025, 12, 1, 9), 50, 50),
		buildTestEvent("2", "2026-01", "ROOT-C", "C1", datePtr(2026, 1, 10, 9), 100, 80),
		buildTestEvent("2", "2026-01", "ROOT-C", "C2", datePtr(2026, 1, 10, 9), -60, 20),
		buildTestEvent("2", "2026-01", "ROOT-U", "U1", nil, 5, 5),
		buildTestEvent("7", "2026-01", "ROOT-A", "X1", datePtr(2026, 1, 6, 9), 1, 1),
	}
	require.NoError(t, db.Create(&events).Error)

	roots := func(chains []ChainAggregate) []string {
		names := make([]string, 0, len(chains))
		for _, c := range chains {
			names = append(names, c.UUIDRaiz)
		}
		return names
	}

	t.Run("grouped per root and sorted by last activity", func(t *testing.T) {
		got, err := store.ListChainAggregates(ctx, domain.CompanyIDFromInt(2), nil, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"ROOT-A", "ROOT-C", "ROOT-B", "ROOT-U"}, roots(got))

		a := got[0]
		assert.Equal(t, 4, a.TotalEventos)
		require.NotNil(t, a.PrimerEvento)
		require.NotNil(t, a.UltimoEvento)
		assert.True(t, datePtr(2026, 1, 5, 9).Equal(*a.PrimerEvento))
		assert.True(t, datePtr(2026, 2, 3, 9).Equal(*a.UltimoEvento))
		assert.Equal(t, 307.0, a.TotalMonto)
		assert.Equal(t, 300.0, a.SaldoUltimoEvento)
		assert.True(t, a.TienePago)
		assert.Equal(t, "2026-01,2026-02", a.Periodos)

		b := got[2]
		assert.False(t, b.TienePago)
		assert.Equal(t, "2025-12", b.Periodos)
	})

	t.Run("last event breaks date ties by insertion", func(t *testing.T) {
		got, err := store.ListChainAggregates(ctx, domain.CompanyIDFromInt(2), nil, 0, 0)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, 20.0, got[1].SaldoUltimoEvento)
	})

	t.Run("undated chain", func(t *testing.T) {
		got, err := store.ListChainAggregates(ctx, domain.CompanyIDFromInt(2), nil, 0, 0)
		require.NoError(t, err)
		require.Len(t, got, 4)
		u := got[3]
		assert.Nil(t, u.PrimerEvento)
		assert.Nil(t, u.UltimoEvento)
		assert.Equal(t, 5.0, u.SaldoUltimoEvento)
	})

	t.Run("pagination", func(t *testing.T) {
		got, err := store.ListChainAggregates(ctx, domain.CompanyIDFromInt(2), nil, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"ROOT-C", "ROOT-B"}, roots(got))

		got, err = store.ListChainAggregates(ctx, domain.CompanyIDFromInt(2), nil, 2, 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("period filter applies before grouping", func(t *testing.T) {
		periodo := "2026-01"
		got, err := store.ListChainAggregates(ctx, domain.CompanyIDFromInt(2), &periodo, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"ROOT-A", "ROOT-C", "ROOT-U"}, roots(got))
		assert.Equal(t, 2, got[0].TotalEventos)
		assert.Equal(t, 400.0, got[0].SaldoUltimoEvento)
		assert.Equal(t, "2026-01", got[0].Periodos)
	})

	t.Run("company scoped", func(t *testing.T) {
		got, err := store.ListChainAggregates(ctx, companyID(t, "7"), nil, 0, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].TotalEventos)
		assert.Equal(t, 1.0, got[0].SaldoUltimoEvento)
	})
}

func testTimeDimension(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()

	anio := 2026
	mes := 1
	require.NoError(t, db.Create(&schema.TimeDimension{
		Periodo:     "2026-01",
		Anio:        &anio,
		Mes:         &mes,
		NombreMesES: "Enero",
	}).Error)

	dim, err := store.GetTimeDimension(ctx, "2026-01")
	require.NoError(t, err)
	require.NotNil(t, dim)
	assert.Equal(t, "Enero", dim.NombreMesES)

	missing, err := store.GetTimeDimension(ctx, "2030-01")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testInvoices(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()

	require.NoError(t, db.Create(&schema.Invoice{
		UUID:      "INV-1",
		EmisorRFC: "AAA010101AAA",
		Total:     1000,
		Fecha:     domain.ParseFlexTime("2025-03-08T23:15:00Z"),
	}).Error)
	require.NoError(t, db.Create(&schema.Invoice{
		UUID:      "INV-2",
		EmisorRFC: "AAA010101AAA",
		Total:     123.45,
		Fecha:     domain.ParseFlexTime("garbage"),
	}).Error)
	require.NoError(t, db.Create(&schema.Invoice{
		UUID:      "INV-3",
		EmisorRFC: "BBB010101BBB",
		Total:     10,
	}).Error)

	t.Run("get by uuid parses stored text timestamp", func(t *testing.T) {
		inv, err := store.GetInvoiceByUUID(ctx, "INV-1")
		require.NoError(t, err)
		require.NotNil(t, inv)
		assert.True(t, inv.Fecha.Valid)
		assert.Equal(t, 23, inv.Fecha.Time.Hour())
	})

	t.Run("unparseable timestamp survives", func(t *testing.T) {
		inv, err := store.GetInvoiceByUUID(ctx, "INV-2")
		require.NoError(t, err)
		require.NotNil(t, inv)
		assert.False(t, inv.Fecha.Valid)
		assert.Equal(t, "garbage", inv.Fecha.Raw)
	})

	t.Run("missing invoice", func(t *testing.T) {
		inv, err := store.GetInvoiceByUUID(ctx, "INV-404")
		require.NoError(t, err)
		assert.Nil(t, inv)
	})

	t.Run("by issuer", func(t *testing.T) {
		invoices, err := store.GetInvoicesByIssuer(ctx, "AAA010101AAA")
		require.NoError(t, err)
		assert.Len(t, invoices, 2)
	})
}

// RunStoreTests runs the store test suite against a store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) (Store, *gorm.DB)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store, *gorm.DB)
	}{
		{"Users", testUsers},
		{"MatrixCells", testMatrixCells},
		{"DetailRecords", testDetailRecords},
		{"TraceEvents", testTraceEvents},
		{"ChainAggregates", testChainAggregates},
		{"TimeDimension", testTimeDimension},
		{"Invoices", testInvoices},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, db := initDB(t)
			tt.fn(t, store, db)
		})
	}
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 20, open)
	assert.Equal(t, 5, idle)
	assert.Equal(t, 5*time.Minute, lifetime)
	assert.Equal(t, 10*time.Minute, idleTime)

	open, idle, _, _ = NormalizeConnectionPoolSettings(4, 10, time.Minute, time.Minute)
	assert.Equal(t, 4, open)
	assert.Equal(t, 4, idle)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
}
