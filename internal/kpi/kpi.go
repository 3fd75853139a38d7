package kpi

import (
	"math"
	"sort"

	"github.com/konia/fiscal-analytics/internal/domain"
	"github.com/konia/fiscal-analytics/internal/store/schema"
	"github.com/konia/fiscal-analytics/internal/traceability"
)

const (
	// CREDIT_NOTE_EXCESS_RATIO flags chains whose credit notes exceed this share of the billed amount
	CREDIT_NOTE_EXCESS_RATIO = 0.3
	// CRITICAL_UNPAID_DAYS is the age after which an issued PPD invoice without complement is critical
	CRITICAL_UNPAID_DAYS = 30
	// TOP_COUNTERPARTIES is the size of the concentration ranking
	TOP_COUNTERPARTIES = 5
	// TOP_NEGATIVE_BALANCES is the size of the negative balance ranking
	TOP_NEGATIVE_BALANCES = 10
	// LONG_CHAIN_MIN_EVENTS is the event count a chain must exceed to be reported as long
	LONG_CHAIN_MIN_EVENTS = 3
	// TOP_LONG_CHAINS caps the long chain ranking
	TOP_LONG_CHAINS = 10
)

// Bucket is a count and an amount
type Bucket struct {
	Count int     `json:"count"`
	Monto float64 `json:"monto"`
}

// PortfolioBlock describes the health of the PPD portfolio
type PortfolioBlock struct {
	AgingBuckets     map[string]Bucket `json:"aging_buckets"`
	SinRepCount      int               `json:"sin_rep_count"`
	SinRepMonto      float64           `json:"sin_rep_monto"`
	DSOPromedioDias  float64           `json:"dso_promedio_dias"`
	TasaRecuperacion float64           `json:"tasa_recuperacion"`
	TotalPPD         int               `json:"total_ppd"`
	TotalConRep      int               `json:"total_con_rep"`
}

// EfficiencyBlock describes documentary efficiency
type EfficiencyBlock struct {
	NCExcesivasCount    int     `json:"nc_excesivas_count"`
	RatioNCPct          float64 `json:"ratio_nc_pct"`
	AnticiposPendientes Bucket  `json:"anticipos_pendientes"`
	OtrosSinClasificar  Bucket  `json:"otros_sin_clasificar"`
}

// Counterparty is the outstanding amount concentrated on one receiver
type Counterparty struct {
	RFC    string  `json:"_id"`
	Nombre *string `json:"nombre"`
	Monto  float64 `json:"monto"`
	Count  int     `json:"count"`
}

// SATRiskBlock describes tax authority exposure
type SATRiskBlock struct {
	Top5RFC          []Counterparty `json:"top5_rfc"`
	ConcentracionPct float64        `json:"concentracion_pct"`
	PPDCriticosCount int            `json:"ppd_criticos_count"`
	PPDCriticosMonto float64        `json:"ppd_criticos_monto"`
}

// NegativeBalance is a detail record with a negative balance
type NegativeBalance struct {
	UUID           string  `json:"uuid"`
	Segmento       string  `json:"segmento"`
	Flujo          string  `json:"flujo"`
	RFCReceptor    *string `json:"rfc_receptor"`
	NombreReceptor *string `json:"nombre_receptor"`
	SaldoAcumulado float64 `json:"saldo_acumulado"`
	TieneREP       bool    `json:"tiene_rep"`
	DiasSinPago    *int    `json:"dias_sin_pago"`
}

// LongChain is a chain with many traceability events
type LongChain struct {
	UUIDRaiz string `json:"_id"`
	Eventos  int    `json:"eventos"`
}

// FlowShare is the count and amount of one flow
type FlowShare struct {
	Flujo string  `json:"_id"`
	Count int     `json:"count"`
	Monto float64 `json:"monto"`
}

// IntelligenceBlock describes notable invoices and chains
type IntelligenceBlock struct {
	Top10Negativos []NegativeBalance `json:"top10_negativos"`
	CadenasLargas  []LongChain       `json:"cadenas_largas"`
	DistFlujo      []FlowShare       `json:"dist_flujo"`
}

// Summary holds the four KPI blocks of a period
type Summary struct {
	Periodo      string            `json:"periodo"`
	Portfolio    PortfolioBlock    `json:"bloque1_cartera_ppd"`
	Efficiency   EfficiencyBlock   `json:"bloque2_eficiencia"`
	SATRisk      SATRiskBlock      `json:"bloque3_riesgo_sat"`
	Intelligence IntelligenceBlock `json:"bloque4_inteligencia"`
}

// Summarize computes the KPI blocks of a period from its detail records and
// traceability events. Empty inputs produce zero valued blocks.
func Summarize(periodo string, records []schema.DetailRecord, events []schema.TraceEvent) Summary {
	return Summary{
		Periodo:      periodo,
		Portfolio:    Portfolio(records),
		Efficiency:   Efficiency(records),
		SATRisk:      SATRisk(records),
		Intelligence: Intelligence(records, events),
	}
}

// Portfolio computes the PPD portfolio block
func Portfolio(records []schema.DetailRecord) PortfolioBlock {
	block := PortfolioBlock{AgingBuckets: map[string]Bucket{}}

	var daysSum float64
	var daysCount int
	for i := range records {
		r := &records[i]
		if domain.Segment(r.Segmento) != domain.SegmentPPD {
			continue
		}

		block.TotalPPD++
		if r.TieneREP {
			block.TotalConRep++
		} else if domain.Flow(r.Flujo) == domain.FlowIssued {
			block.SinRepCount++
			block.SinRepMonto += r.SaldoAcumulado
		}

		if r.AgingBucket != nil && *r.AgingBucket != "" {
			b := block.AgingBuckets[*r.AgingBucket]
			b.Count++
			b.Monto += r.SaldoAcumulado
			block.AgingBuckets[*r.AgingBucket] = b
		}

		if r.DiasSinPago != nil {
			daysSum += float64(*r.DiasSinPago)
			daysCount++
		}
	}

	if daysCount > 0 {
		block.DSOPromedioDias = domain.Round(daysSum/float64(daysCount), 1)
	}
	block.TasaRecuperacion = domain.Round(domain.Percent(float64(block.TotalConRep), float64(block.TotalPPD)), 1)

	return block
}

// Efficiency computes the documentary efficiency block
func Efficiency(records []schema.DetailRecord) EfficiencyBlock {
	var block EfficiencyBlock

	var billedSum, creditSum, advanceSum float64
	for i := range records {
		r := &records[i]
		billed := r.Concept(domain.ConceptTotalBilled)
		credit := math.Abs(r.Concept(domain.ConceptCreditNotes))
		billedSum += billed
		creditSum += credit

		if billed > 0 && credit > billed*CREDIT_NOTE_EXCESS_RATIO {
			block.NCExcesivasCount++
		}

		if advance := r.Concept(domain.ConceptAdvance); advance < 0 {
			block.AnticiposPendientes.Count++
			advanceSum += advance
		}

		if domain.Segment(r.Segmento) == domain.SegmentOtros {
			block.OtrosSinClasificar.Count++
			block.OtrosSinClasificar.Monto += r.SaldoAcumulado
		}
	}

	block.AnticiposPendientes.Monto = math.Abs(advanceSum)
	if billedSum != 0 {
		block.RatioNCPct = domain.Round(creditSum/billedSum*100, 1)
	}

	return block
}

// SATRisk computes the tax authority exposure block
func SATRisk(records []schema.DetailRecord) SATRiskBlock {
	block := SATRiskBlock{Top5RFC: []Counterparty{}}

	byRFC := make(map[string]*Counterparty)
	var order []string
	var issuedTotal float64
	issued := 0
	for i := range records {
		r := &records[i]
		if domain.Flow(r.Flujo) != domain.FlowIssued {
			continue
		}
		issued++
		issuedTotal += r.SaldoAcumulado

		if domain.Segment(r.Segmento) == domain.SegmentPPD && !r.TieneREP &&
			r.DiasSinPago != nil && *r.DiasSinPago > CRITICAL_UNPAID_DAYS {
			block.PPDCriticosCount++
			block.PPDCriticosMonto += r.SaldoAcumulado
		}

		if r.RFCReceptor == nil || *r.RFCReceptor == "" {
			continue
		}
		c, ok := byRFC[*r.RFCReceptor]
		if !ok {
			c = &Counterparty{RFC: *r.RFCReceptor, Nombre: r.NombreReceptor}
			byRFC[c.RFC] = c
			order = append(order, c.RFC)
		}
		c.Monto += r.SaldoAcumulado
		c.Count++
	}

	ranking := make([]Counterparty, 0, len(order))
	for _, rfc := range order {
		ranking = append(ranking, *byRFC[rfc])
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Monto > ranking[j].Monto
	})
	if len(ranking) > TOP_COUNTERPARTIES {
		ranking = ranking[:TOP_COUNTERPARTIES]
	}
	block.Top5RFC = ranking

	var topSum float64
	for _, c := range ranking {
		topSum += c.Monto
	}
	// Without issued records the total defaults to 1 and the share is of the top five alone
	if issued == 0 {
		issuedTotal = 1
	}
	block.ConcentracionPct = domain.Round(math.Abs(domain.Percent(topSum, issuedTotal)), 1)

	return block
}

// Intelligence computes the invoice intelligence block
func Intelligence(records []schema.DetailRecord, events []schema.TraceEvent) IntelligenceBlock {
	block := IntelligenceBlock{
		Top10Negativos: []NegativeBalance{},
		CadenasLargas:  LongChains(events),
		DistFlujo:      []FlowShare{},
	}

	flows := make(map[string]*FlowShare)
	for i := range records {
		r := &records[i]
		if r.SaldoAcumulado < 0 {
			block.Top10Negativos = append(block.Top10Negativos, NegativeBalance{
				UUID:           r.UUID,
				Segmento:       r.Segmento,
				Flujo:          r.Flujo,
				RFCReceptor:    r.RFCReceptor,
				NombreReceptor: r.NombreReceptor,
				SaldoAcumulado: r.SaldoAcumulado,
				TieneREP:       r.TieneREP,
				DiasSinPago:    r.DiasSinPago,
			})
		}

		f, ok := flows[r.Flujo]
		if !ok {
			f = &FlowShare{Flujo: r.Flujo}
			flows[r.Flujo] = f
		}
		f.Count++
		f.Monto += r.SaldoAcumulado
	}

	sort.SliceStable(block.Top10Negativos, func(i, j int) bool {
		return block.Top10Negativos[i].SaldoAcumulado < block.Top10Negativos[j].SaldoAcumulado
	})
	if len(block.Top10Negativos) > TOP_NEGATIVE_BALANCES {
		block.Top10Negativos = block.Top10Negativos[:TOP_NEGATIVE_BALANCES]
	}

	for _, f := range flows {
		block.DistFlujo = append(block.DistFlujo, *f)
	}
	sort.Slice(block.DistFlujo, func(i, j int) bool {
		return block.DistFlujo[i].Flujo < block.DistFlujo[j].Flujo
	})

	return block
}

// LongChains returns the chains with more than LONG_CHAIN_MIN_EVENTS events,
// longest first
func LongChains(events []schema.TraceEvent) []LongChain {
	chains := []LongChain{}
	for root, count := range traceability.CountByRoot(events) {
		if count > LONG_CHAIN_MIN_EVENTS {
			chains = append(chains, LongChain{UUIDRaiz: root, Eventos: count})
		}
	}

	sort.Slice(chains, func(i, j int) bool {
		if chains[i].Eventos != chains[j].Eventos {
			return chains[i].Eventos > chains[j].Eventos
		}
		return chains[i].UUIDRaiz < chains[j].UUIDRaiz
	})
	if len(chains) > TOP_LONG_CHAINS {
		chains = chains[:TOP_LONG_CHAINS]
	}
	return chains
}
