package matrix

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konia/fiscal-analytics/internal/domain"
	"github.com/konia/fiscal-analytics/internal/store/schema"
)

func cell(periodo, segmento, concepto string, monto float64) schema.MatrixCell {
	return schema.MatrixCell{
		CompanyID: "2",
		Periodo:   periodo,
		Segmento:  segmento,
		Concepto:  concepto,
		Monto:     monto,
	}
}

func TestBuildRoundTrip(t *testing.T) {
	triples := []schema.MatrixCell{
		cell("2024-03", "PPD", domain.ConceptTotalBilled, 1000.25),
		cell("2024-03", "PPD", domain.ConceptOutstandingPPD, 400.5),
		cell("2024-03", "PUE", domain.ConceptTotalBilled, 800),
		cell("2024-03", "PUE", domain.ConceptCreditNotes, -12.75),
	}

	m := Build(triples)
	for _, c := range triples {
		assert.Equal(t, c.Monto, m.Get(domain.Segment(c.Segmento), c.Concepto))
	}

	assert.Equal(t, 0.0, m.Get(domain.SegmentPUE, domain.ConceptOutstandingPPD))
	assert.Equal(t, 0.0, m.Get(domain.SegmentOtros, domain.ConceptTotalBilled))
	assert.Equal(t, 0.0, m.Get(domain.SegmentPPD, "no such concept"))
}

func TestBuildDropsUnknownSegments(t *testing.T) {
	m := Build([]schema.MatrixCell{
		cell("2024-03", "OTROS", domain.ConceptTotalBilled, 99),
		cell("2024-03", "", domain.ConceptTotalBilled, 1),
	})
	assert.Len(t, m, 2)
	assert.Empty(t, m[domain.SegmentPPD])
	assert.Empty(t, m[domain.SegmentPUE])

	raw, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"PPD":{},"PUE":{}}`, string(raw))
}

func TestComputeKPIs(t *testing.T) {
	m := Build([]schema.MatrixCell{
		cell("2024-03", "PPD", domain.ConceptTotalBilled, 1000),
		cell("2024-03", "PPD", domain.ConceptOutstandingPPD, -1500),
		cell("2024-03", "PPD", domain.ConceptCreditNotes, -30),
		cell("2024-03", "PUE", domain.ConceptTotalBilled, 3000),
		cell("2024-03", "PUE", domain.ConceptCreditNotes, -20),
	})

	kpis := ComputeKPIs(m)
	assert.Equal(t, 4000.0, kpis.IngresosTotales)
	assert.Equal(t, -1500.0, kpis.SaldoPPD)
	assert.Equal(t, 3000.0, kpis.IngresoPUE)
	assert.Equal(t, -50.0, kpis.CreditosNC)
	assert.Equal(t, -50.0, kpis.RatioPPDPUE)
	assert.Equal(t, 1.5, kpis.RatioRiesgo)
	assert.Equal(t, 1.5, kpis.RatioValor)
	assert.Equal(t, "1.5x", kpis.RatioFormato)
	assert.Equal(t, RATIO_LABEL, kpis.RatioLabel)
	assert.Equal(t, domain.StatusAtRisk, kpis.Status)
}

func TestComputeKPIsZeroDenominators(t *testing.T) {
	kpis := ComputeKPIs(Build(nil))
	assert.Equal(t, 0.0, kpis.RatioPPDPUE)
	assert.Equal(t, 0.0, kpis.RatioRiesgo)
	assert.Equal(t, "0.0x", kpis.RatioFormato)
	assert.Equal(t, domain.StatusHealthy, kpis.Status)

	// A negative PPD billed total does not produce a ratio
	kpis = ComputeKPIs(Build([]schema.MatrixCell{
		cell("2024-03", "PPD", domain.ConceptTotalBilled, -10),
		cell("2024-03", "PPD", domain.ConceptOutstandingPPD, 500),
	}))
	assert.Equal(t, 0.0, kpis.RatioRiesgo)
}

func TestStatusIsStepFunctionOfRatio(t *testing.T) {
	tests := []struct {
		outstanding float64
		want        domain.FiscalStatus
	}{
		{50, domain.StatusHealthy},
		{100, domain.StatusHealthy},
		{150, domain.StatusAtRisk},
		{300, domain.StatusAtRisk},
		{310, domain.StatusCritical},
	}

	for _, tt := range tests {
		m := Build([]schema.MatrixCell{
			cell("2024-03", "PPD", domain.ConceptTotalBilled, 100),
			cell("2024-03", "PPD", domain.ConceptOutstandingPPD, tt.outstanding),
		})
		assert.Equal(t, tt.want, ComputeKPIs(m).Status, "outstanding %v", tt.outstanding)
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]schema.MatrixCell{
		cell("2024-03", "PPD", domain.ConceptOutstandingPPD, 700),
		cell("2024-03", "PUE", domain.ConceptTheoreticalPUE, 50),
	})

	assert.Equal(t, 750.0, summary.TotalGeneral)
	assert.Equal(t, 700.0, summary.SubtotalPPD)
	assert.Equal(t, 50.0, summary.SubtotalPUE)
	assert.Equal(t, 700.0, summary.Matriz.Get(domain.SegmentPPD, domain.ConceptOutstandingPPD))
}

func TestEvolution(t *testing.T) {
	periods := []string{"2024-03", "2023-12", "2024-01"}
	cells := []schema.MatrixCell{
		cell("2023-12", "PPD", domain.ConceptOutstandingPPD, 10),
		cell("2023-12", "PUE", domain.ConceptTheoreticalPUE, 1),
		cell("2024-03", "PPD", domain.ConceptOutstandingPPD, 30),
		cell("2024-03", "PUE", domain.ConceptTheoreticalPUE, 3),
		cell("2024-03", "OTROS", domain.ConceptOutstandingPPD, 999),
	}

	points := Evolution(periods, cells)
	assert.Equal(t, []EvolutionPoint{
		{Periodo: "2023-12", SaldoPPD: 10, SaldoPUE: 1},
		{Periodo: "2024-01", SaldoPPD: 0, SaldoPUE: 0},
		{Periodo: "2024-03", SaldoPPD: 30, SaldoPUE: 3},
	}, points)

	// Input periods are not reordered in place
	assert.Equal(t, "2024-03", periods[0])
}

func TestEvolutionFallbackConcept(t *testing.T) {
	points := Evolution([]string{"2024-03"}, []schema.MatrixCell{
		cell("2024-03", "PUE", domain.ConceptOutstandingPPD, 42),
	})
	require.Len(t, points, 1)
	assert.Equal(t, 42.0, points[0].SaldoPUE)
}

func TestIsComplete(t *testing.T) {
	assert.False(t, IsComplete(nil))
	assert.False(t, IsComplete([]schema.MatrixCell{
		cell("2024-03", "PPD", domain.ConceptOutstandingPPD, 1),
	}))
	assert.True(t, IsComplete([]schema.MatrixCell{
		cell("2024-03", "PUE", domain.ConceptTotalBilled, 0),
	}))
}

func TestCompare(t *testing.T) {
	previous := "2024-02"
	current := []schema.MatrixCell{cell("2024-03", "PPD", domain.ConceptTotalBilled, 10)}
	prior := []schema.MatrixCell{cell("2024-02", "PPD", domain.ConceptOutstandingPPD, 5)}

	cmp := Compare("2024-03", &previous, current, prior)
	assert.Equal(t, "2024-03", cmp.PeriodoActual)
	require.NotNil(t, cmp.PeriodoAnterior)
	assert.Equal(t, "2024-02", *cmp.PeriodoAnterior)
	assert.True(t, cmp.Advertencias.PeriodoActualCompleto)
	assert.False(t, cmp.Advertencias.PeriodoAnteriorCompleto)
	assert.Equal(t, 10.0, cmp.MatrizActual.Get(domain.SegmentPPD, domain.ConceptTotalBilled))
	assert.Equal(t, 5.0, cmp.MatrizAnterior.Get(domain.SegmentPPD, domain.ConceptOutstandingPPD))
}

func TestCompareWithoutPreviousPeriod(t *testing.T) {
	cmp := Compare("bad", nil, nil, []schema.MatrixCell{cell("x", "PPD", domain.ConceptTotalBilled, 1)})
	assert.Nil(t, cmp.PeriodoAnterior)
	assert.False(t, cmp.Advertencias.PeriodoActualCompleto)
	assert.True(t, cmp.Advertencias.PeriodoAnteriorCompleto)
	assert.Empty(t, cmp.MatrizAnterior[domain.SegmentPPD])

	raw, err := json.Marshal(cmp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"periodo_anterior":null`)
}
