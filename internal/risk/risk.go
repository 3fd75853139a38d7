package risk

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/konia/fiscal-analytics/internal/domain"
	"github.com/konia/fiscal-analytics/internal/store/schema"
)

const (
	// Weights of the issuer score components
	ROUND_WEIGHT   = 0.4
	HOUR_WEIGHT    = 0.3
	WEEKEND_WEIGHT = 0.3

	// DEVIATION_FACTOR is how many times the issuer mean an amount must exceed to be an outlier
	DEVIATION_FACTOR = 2.5

	// Invoices issued at or after LATE_HOUR or at or before EARLY_HOUR are atypical
	LATE_HOUR  = 22
	EARLY_HOUR = 6
)

var (
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
)

// Flags are the forensic indicators of a single invoice
type Flags struct {
	RoundNumber    bool `json:"round_number"`
	AtypicalHour   bool `json:"atypical_hour"`
	WeekendBilling bool `json:"weekend_billing"`
	MeanDeviation  bool `json:"mean_deviation"`
}

// Metrics are the amounts behind the flags
type Metrics struct {
	Total     float64 `json:"total"`
	EmisorAvg float64 `json:"emisor_avg"`
}

// Analysis is the risk assessment of an invoice
type Analysis struct {
	UUID      string  `json:"uuid"`
	RiskScore float64 `json:"risk_score"`
	Flags     Flags   `json:"flags"`
	Metrics   Metrics `json:"metrics"`
}

// Analyze scores an invoice against the full invoice history of its issuer
func Analyze(target schema.Invoice, history []schema.Invoice) Analysis {
	avg := IssuerMean(history)

	flags := Flags{
		RoundNumber:   IsRoundAmount(target.Total),
		MeanDeviation: avg > 0 && target.Total > avg*DEVIATION_FACTOR,
	}
	if target.Fecha.Valid {
		flags.AtypicalHour = IsAtypicalHour(target.Fecha.Time)
		flags.WeekendBilling = IsWeekend(target.Fecha.Time)
	}

	return Analysis{
		UUID:      target.UUID,
		RiskScore: domain.Round(IssuerScore(history), 1),
		Flags:     flags,
		Metrics: Metrics{
			Total:     target.Total,
			EmisorAvg: domain.Round(avg, 2),
		},
	}
}

// IsRoundAmount reports whether a positive amount is a multiple of 100 or 1000
func IsRoundAmount(total float64) bool {
	if total <= 0 {
		return false
	}
	d := decimal.NewFromFloat(total)
	return d.Mod(hundred).IsZero() || d.Mod(thousand).IsZero()
}

// IsAtypicalHour reports whether t falls in the late night window
func IsAtypicalHour(t time.Time) bool {
	h := t.Hour()
	return h >= LATE_HOUR || h <= EARLY_HOUR
}

// IsWeekend reports whether t falls on a Saturday or Sunday
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IssuerMean is the mean invoice amount of an issuer, 0 without invoices
func IssuerMean(history []schema.Invoice) float64 {
	if len(history) == 0 {
		return 0
	}
	var sum float64
	for _, inv := range history {
		sum += inv.Total
	}
	return sum / float64(len(history))
}

// IssuerScore weighs the share of round amounts, late hours and weekend
// invoices of an issuer. Every share is over the full invoice count; the
// hour and weekend counts only include invoices with a usable timestamp.
// Late hours here means at or after LATE_HOUR only.
func IssuerScore(history []schema.Invoice) float64 {
	total := len(history)
	if total == 0 {
		return 0
	}

	var round, late, weekend int
	for _, inv := range history {
		if inv.Total > 0 && decimal.NewFromFloat(inv.Total).Mod(hundred).IsZero() {
			round++
		}
		if !inv.Fecha.Valid {
			continue
		}
		if inv.Fecha.Time.Hour() >= LATE_HOUR {
			late++
		}
		if IsWeekend(inv.Fecha.Time) {
			weekend++
		}
	}

	n := float64(total)
	return domain.Percent(float64(round), n)*ROUND_WEIGHT +
		domain.Percent(float64(late), n)*HOUR_WEIGHT +
		domain.Percent(float64(weekend), n)*WEEKEND_WEIGHT
}
