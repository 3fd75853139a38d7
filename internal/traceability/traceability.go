package traceability

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/konia/fiscal-analytics/internal/domain"
	"github.com/konia/fiscal-analytics/internal/store"
	"github.com/konia/fiscal-analytics/internal/store/schema"
)

// BalanceMode selects how a chain listing derives ultimo_saldo
type BalanceMode string

const (
	// BalanceLastEvent takes the running balance of the chronologically last event
	BalanceLastEvent BalanceMode = "last_event"
	// BalanceAmountSum sums monto over the chain, as the legacy listing does
	BalanceAmountSum BalanceMode = "amount_sum"
)

// ParseBalanceMode validates a configured balance mode
func ParseBalanceMode(s string) (BalanceMode, error) {
	switch BalanceMode(s) {
	case BalanceLastEvent, BalanceAmountSum:
		return BalanceMode(s), nil
	case "":
		return BalanceLastEvent, nil
	default:
		return "", fmt.Errorf("unsupported balance mode: %q", s)
	}
}

// ChainSummary is the listing view of one invoice chain
type ChainSummary struct {
	UUID         string            `json:"uuid"`
	UltimoSaldo  float64           `json:"ultimo_saldo"`
	TotalEventos int               `json:"total_eventos"`
	PrimerEvento string            `json:"primer_evento"`
	UltimoEvento string            `json:"ultimo_evento"`
	TotalMonto   float64           `json:"total_monto"`
	Estado       domain.ChainState `json:"estado"`
	TienePago    bool              `json:"tiene_pago"`
	Periodos     []string          `json:"periodos"`
}

// Event is one document of a chain as returned by the detail view
type Event struct {
	UUID           string  `json:"uuid"`
	UUIDRaiz       string  `json:"uuid_raiz"`
	Fecha          string  `json:"fecha"`
	Monto          float64 `json:"monto"`
	SaldoAcumulado float64 `json:"saldo_acumulado"`
	Concepto       string  `json:"concepto"`
	TipoRelacion   string  `json:"tipo_relacion"`
	Periodo        string  `json:"periodo"`
}

// ChainKPIs are the indicators computed over a single chain
type ChainKPIs struct {
	TotalEventos  int               `json:"total_eventos"`
	SaldoFinal    float64           `json:"saldo_final"`
	PrimerEvento  string            `json:"primer_evento"`
	UltimoEvento  string            `json:"ultimo_evento"`
	MontoOriginal float64           `json:"monto_original"`
	TotalPagado   float64           `json:"total_pagado"`
	Estado        domain.ChainState `json:"estado"`
	PctLiquidado  float64           `json:"pct_liquidado"`
}

// BalancePoint is one step of a chain's balance evolution
type BalancePoint struct {
	Fecha    string  `json:"fecha"`
	Saldo    float64 `json:"saldo"`
	Concepto string  `json:"concepto"`
	Monto    float64 `json:"monto"`
}

// ChainDetail is the full view of one invoice chain
type ChainDetail struct {
	UUIDRaiz       string         `json:"uuid_raiz"`
	Eventos        []Event        `json:"eventos"`
	KPIs           ChainKPIs      `json:"kpis"`
	EvolucionSaldo []BalancePoint `json:"evolucion_saldo"`
}

// SummarizeAggregates turns the chain aggregates of the store into listing
// summaries, keeping the store order
func SummarizeAggregates(chains []store.ChainAggregate, mode BalanceMode) []ChainSummary {
	summaries := make([]ChainSummary, 0, len(chains))
	for _, c := range chains {
		balance := c.SaldoUltimoEvento
		if mode == BalanceAmountSum {
			balance = c.TotalMonto
		}

		periodos := []string{}
		if c.Periodos != "" {
			periodos = strings.Split(c.Periodos, ",")
		}

		summaries = append(summaries, ChainSummary{
			UUID:         c.UUIDRaiz,
			UltimoSaldo:  balance,
			TotalEventos: c.TotalEventos,
			PrimerEvento: formatDate(c.PrimerEvento),
			UltimoEvento: formatDate(c.UltimoEvento),
			TotalMonto:   c.TotalMonto,
			Estado:       domain.ClassifyBalance(balance),
			TienePago:    c.TienePago,
			Periodos:     periodos,
		})
	}
	return summaries
}

// BuildChainDetail computes the detail view of one chain
func BuildChainDetail(uuidRaiz string, events []schema.TraceEvent) (*ChainDetail, error) {
	if len(events) == 0 {
		return nil, domain.ErrChainNotFound
	}

	ordered := sortEvents(events)
	first := ordered[0]
	last := ordered[len(ordered)-1]

	montoOriginal := 0.0
	if strings.HasPrefix(first.Concepto, domain.ORIGINAL_INVOICE_CONCEPT_PREFIX) {
		montoOriginal = first.Monto
	}
	saldoFinal := last.SaldoAcumulado
	totalPagado := math.Max(0, montoOriginal-saldoFinal)

	pctLiquidado := 0.0
	if montoOriginal != 0 {
		pctLiquidado = math.Min(100, math.Max(0, totalPagado/math.Abs(montoOriginal)*100))
	}

	detail := &ChainDetail{
		UUIDRaiz:       uuidRaiz,
		Eventos:        make([]Event, 0, len(ordered)),
		EvolucionSaldo: make([]BalancePoint, 0, len(ordered)),
		KPIs: ChainKPIs{
			TotalEventos:  len(ordered),
			SaldoFinal:    saldoFinal,
			PrimerEvento:  formatTimestamp(first.Fecha),
			UltimoEvento:  formatTimestamp(last.Fecha),
			MontoOriginal: montoOriginal,
			TotalPagado:   totalPagado,
			Estado:        domain.ClassifyBalance(saldoFinal),
			PctLiquidado:  pctLiquidado,
		},
	}

	for _, e := range ordered {
		fecha := formatTimestamp(e.Fecha)
		detail.Eventos = append(detail.Eventos, Event{
			UUID:           e.UUID,
			UUIDRaiz:       e.UUIDRaiz,
			Fecha:          fecha,
			Monto:          e.Monto,
			SaldoAcumulado: e.SaldoAcumulado,
			Concepto:       e.Concepto,
			TipoRelacion:   e.TipoRelacion,
			Periodo:        e.Periodo,
		})
		detail.EvolucionSaldo = append(detail.EvolucionSaldo, BalancePoint{
			Fecha:    fecha,
			Saldo:    e.SaldoAcumulado,
			Concepto: e.Concepto,
			Monto:    e.Monto,
		})
	}

	return detail, nil
}

// CountByRoot returns the number of events per chain root
func CountByRoot(events []schema.TraceEvent) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		counts[e.UUIDRaiz]++
	}
	return counts
}

// sortEvents returns a copy of events ordered by fecha ascending.
// Undated events sort first, matching the store ordering.
func sortEvents(events []schema.TraceEvent) []schema.TraceEvent {
	ordered := make([]schema.TraceEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Fecha, ordered[j].Fecha
		switch {
		case a == nil:
			return b != nil
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})
	return ordered
}

func formatDate(t *time.Time) string {
	if t == nil {
		return domain.EMPTY_DATE
	}
	return t.UTC().Format(domain.DATE_LAYOUT)
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
