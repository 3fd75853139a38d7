package matrix

import (
	"fmt"
	"math"
	"sort"

	"github.com/konia/fiscal-analytics/internal/domain"
	"github.com/konia/fiscal-analytics/internal/store/schema"
)

// RATIO_LABEL is the caption shown next to the formatted risk ratio
const RATIO_LABEL = "Por cada $1 PUE"

// Matrix maps segment to concept to amount. Only PPD and PUE are kept.
type Matrix map[domain.Segment]map[string]float64

// Build arranges matrix cells by segment and concept, dropping unknown segments
func Build(cells []schema.MatrixCell) Matrix {
	m := Matrix{
		domain.SegmentPPD: {},
		domain.SegmentPUE: {},
	}
	for _, c := range cells {
		seg := domain.Segment(c.Segmento)
		if !seg.IsMatrixSegment() {
			continue
		}
		m[seg][c.Concepto] = c.Monto
	}
	return m
}

// Get returns the amount of a concept in a segment, 0 when absent
func (m Matrix) Get(seg domain.Segment, concept string) float64 {
	return m[seg][concept]
}

// KPIs are the fiscal indicators derived from a matrix
type KPIs struct {
	IngresosTotales float64             `json:"ingresos_totales"`
	SaldoPPD        float64             `json:"saldo_ppd"`
	IngresoPUE      float64             `json:"ingreso_pue"`
	CreditosNC      float64             `json:"creditos_nc"`
	RatioPPDPUE     float64             `json:"ratio_ppd_pue"`
	RatioRiesgo     float64             `json:"ratio_riesgo"`
	RatioValor      float64             `json:"ratio_valor"`
	RatioFormato    string              `json:"ratio_formato"`
	RatioLabel      string              `json:"ratio_label"`
	Status          domain.FiscalStatus `json:"status"`
}

// ComputeKPIs derives the fiscal indicators of a matrix
func ComputeKPIs(m Matrix) KPIs {
	billedPPD := m.Get(domain.SegmentPPD, domain.ConceptTotalBilled)
	billedPUE := m.Get(domain.SegmentPUE, domain.ConceptTotalBilled)
	outstandingPPD := m.Get(domain.SegmentPPD, domain.ConceptOutstandingPPD)
	creditNotes := m.Get(domain.SegmentPPD, domain.ConceptCreditNotes) + m.Get(domain.SegmentPUE, domain.ConceptCreditNotes)

	ratioPPDPUE := 0.0
	if billedPUE != 0 {
		ratioPPDPUE = outstandingPPD / billedPUE * 100
	}

	ratioRiesgo := 0.0
	if billedPPD > 0 {
		ratioRiesgo = math.Abs(outstandingPPD) / billedPPD
	}

	return KPIs{
		IngresosTotales: billedPPD + billedPUE,
		SaldoPPD:        outstandingPPD,
		IngresoPUE:      billedPUE,
		CreditosNC:      creditNotes,
		RatioPPDPUE:     ratioPPDPUE,
		RatioRiesgo:     ratioRiesgo,
		RatioValor:      ratioRiesgo,
		RatioFormato:    fmt.Sprintf("%.1fx", ratioRiesgo),
		RatioLabel:      RATIO_LABEL,
		Status:          domain.StatusForRatio(ratioRiesgo),
	}
}

// Summary is the matrix of a period together with its indicators
type Summary struct {
	KPIs         KPIs    `json:"kpis"`
	Matriz       Matrix  `json:"matriz"`
	TotalGeneral float64 `json:"total_general"`
	SubtotalPPD  float64 `json:"subtotal_ppd"`
	SubtotalPUE  float64 `json:"subtotal_pue"`
}

// Summarize builds the matrix of a period and its indicators
func Summarize(cells []schema.MatrixCell) Summary {
	m := Build(cells)
	outstandingPPD := m.Get(domain.SegmentPPD, domain.ConceptOutstandingPPD)
	theoreticalPUE := m.Get(domain.SegmentPUE, domain.ConceptTheoreticalPUE)

	return Summary{
		KPIs:         ComputeKPIs(m),
		Matriz:       m,
		TotalGeneral: outstandingPPD + theoreticalPUE,
		SubtotalPPD:  outstandingPPD,
		SubtotalPUE:  theoreticalPUE,
	}
}

// EvolutionPoint holds the closing balances of both segments for a period
type EvolutionPoint struct {
	Periodo  string  `json:"periodo"`
	SaldoPPD float64 `json:"saldo_ppd"`
	SaldoPUE float64 `json:"saldo_pue"`
}

// BalanceConcepts are the concepts read by Evolution
var BalanceConcepts = []string{domain.ConceptOutstandingPPD, domain.ConceptTheoreticalPUE}

// Evolution returns the closing balances of every period in ascending order.
// Periods without balance cells report zeros.
func Evolution(periods []string, cells []schema.MatrixCell) []EvolutionPoint {
	byPeriod := make(map[string][]schema.MatrixCell)
	for _, c := range cells {
		byPeriod[c.Periodo] = append(byPeriod[c.Periodo], c)
	}

	sorted := make([]string, len(periods))
	copy(sorted, periods)
	// YYYY-MM is fixed width, so lexicographic order is chronological
	sort.Strings(sorted)

	points := make([]EvolutionPoint, 0, len(sorted))
	for _, p := range sorted {
		m := Build(byPeriod[p])
		points = append(points, EvolutionPoint{
			Periodo:  p,
			SaldoPPD: segmentBalance(m, domain.SegmentPPD, domain.ConceptOutstandingPPD, domain.ConceptTheoreticalPUE),
			SaldoPUE: segmentBalance(m, domain.SegmentPUE, domain.ConceptTheoreticalPUE, domain.ConceptOutstandingPPD),
		})
	}
	return points
}

// segmentBalance reads the segment's own balance concept, falling back to the other one
func segmentBalance(m Matrix, seg domain.Segment, primary, fallback string) float64 {
	if v, ok := m[seg][primary]; ok {
		return v
	}
	return m[seg][fallback]
}

// Completeness flags whether each period of a comparison has data
type Completeness struct {
	PeriodoActualCompleto   bool `json:"periodo_actual_completo"`
	PeriodoAnteriorCompleto bool `json:"periodo_anterior_completo"`
}

// Comparison is the side by side matrix of a period and the month before it
type Comparison struct {
	PeriodoActual   string       `json:"periodo_actual"`
	PeriodoAnterior *string      `json:"periodo_anterior"`
	MatrizActual    Matrix       `json:"matriz_actual"`
	MatrizAnterior  Matrix       `json:"matriz_anterior"`
	Advertencias    Completeness `json:"advertencias"`
}

// IsComplete reports whether a period's cells include the total billed concept.
// This is a relaxed audit check; other concepts are not required.
func IsComplete(cells []schema.MatrixCell) bool {
	for _, c := range cells {
		if c.Concepto == domain.ConceptTotalBilled {
			return true
		}
	}
	return false
}

// Compare builds the comparison of a period against its previous period.
// A nil previous period means it could not be derived; it is then reported
// as complete and its matrix is empty.
func Compare(periodo string, previous *string, current, prior []schema.MatrixCell) Comparison {
	complete := Completeness{
		PeriodoActualCompleto:   IsComplete(current),
		PeriodoAnteriorCompleto: true,
	}
	if previous != nil {
		complete.PeriodoAnteriorCompleto = IsComplete(prior)
	} else {
		prior = nil
	}

	return Comparison{
		PeriodoActual:   periodo,
		PeriodoAnterior: previous,
		MatrizActual:    Build(current),
		MatrizAnterior:  Build(prior),
		Advertencias:    complete,
	}
}
