package kpi

import (
	"github.com/konia/fiscal-analytics/internal/domain"
	"github.com/konia/fiscal-analytics/internal/store"
	"github.com/konia/fiscal-analytics/internal/store/schema"
)

// TOP_DETAIL_RECORDS is the size of the top balance ranking on the detail listing
const TOP_DETAIL_RECORDS = 10

// DetailRow is one record of the detail listing
type DetailRow struct {
	UUID           string             `json:"uuid"`
	Segmento       string             `json:"segmento"`
	Flujo          string             `json:"flujo"`
	SaldoAcumulado float64            `json:"saldo_acumulado"`
	Conceptos      map[string]float64 `json:"conceptos"`
}

// TopDetail is one entry of the top balance ranking
type TopDetail struct {
	UUID           string  `json:"uuid"`
	Segmento       string  `json:"segmento"`
	SaldoAcumulado float64 `json:"saldo_acumulado"`
}

// DetailKPIs are indicators over the full filtered detail set
type DetailKPIs struct {
	TotalUUIDs     int64   `json:"total_uuids"`
	SaldoTotal     float64 `json:"saldo_total"`
	PromedioSaldo  float64 `json:"promedio_saldo"`
	RatioEmitRecib float64 `json:"ratio_emit_recib"`
}

// ComputeDetailKPIs derives the detail listing indicators from its aggregates
func ComputeDetailKPIs(total int64, summary store.DetailSummary) DetailKPIs {
	kpis := DetailKPIs{
		TotalUUIDs: total,
		SaldoTotal: summary.SaldoTotal,
	}
	if summary.Count > 0 {
		kpis.PromedioSaldo = summary.SaldoTotal / float64(summary.Count)
	}
	kpis.RatioEmitRecib = IssuedReceivedRatio(summary.Emitidos, summary.Recibidos)
	return kpis
}

// IssuedReceivedRatio is issued/received*100. Without received records it is
// 100 when anything was issued and 0 otherwise.
func IssuedReceivedRatio(issued, received int64) float64 {
	switch {
	case received > 0:
		return float64(issued) / float64(received) * 100
	case issued > 0:
		return 100
	default:
		return 0
	}
}

// Distribution maps segment to number of records
func Distribution(counts []store.SegmentCount) map[string]int64 {
	dist := make(map[string]int64, len(counts))
	for _, c := range counts {
		dist[c.Segmento] += c.Count
	}
	return dist
}

// DetailRows converts records into listing rows
func DetailRows(records []schema.DetailRecord) []DetailRow {
	rows := make([]DetailRow, 0, len(records))
	for i := range records {
		r := &records[i]
		conceptos := r.Conceptos.Data()
		if conceptos == nil {
			conceptos = map[string]float64{}
		}
		rows = append(rows, DetailRow{
			UUID:           r.UUID,
			Segmento:       r.Segmento,
			Flujo:          r.Flujo,
			SaldoAcumulado: r.SaldoAcumulado,
			Conceptos:      conceptos,
		})
	}
	return rows
}

// TopDetails converts records into ranking entries, keeping at most TOP_DETAIL_RECORDS
func TopDetails(records []schema.DetailRecord) []TopDetail {
	if len(records) > TOP_DETAIL_RECORDS {
		records = records[:TOP_DETAIL_RECORDS]
	}
	top := make([]TopDetail, 0, len(records))
	for _, r := range records {
		top = append(top, TopDetail{
			UUID:           r.UUID,
			Segmento:       r.Segmento,
			SaldoAcumulado: r.SaldoAcumulado,
		})
	}
	return top
}

// DetailFilter builds the store filter of a detail listing. FILTER_ALL and
// empty values disable the segment and flow filters.
func DetailFilter(companyID domain.CompanyID, periodo, segmento, flujo, uuidSearch string, saldoMin *float64) store.DetailFilter {
	filter := store.DetailFilter{
		CompanyID: companyID,
		Periodo:   periodo,
		SaldoMin:  saldoMin,
	}
	if segmento != "" && segmento != domain.FILTER_ALL {
		seg := domain.Segment(segmento)
		filter.Segmento = &seg
	}
	if flujo != "" && flujo != domain.FILTER_ALL {
		flow := domain.Flow(flujo)
		filter.Flujo = &flow
	}
	if uuidSearch != "" {
		filter.UUIDSearch = &uuidSearch
	}
	return filter
}
