package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Segment represents the payment method segment of an invoice
type Segment string

const (
	SegmentPPD   Segment = "PPD"
	SegmentPUE   Segment = "PUE"
	SegmentOtros Segment = "OTROS"
)

// IsMatrixSegment reports whether the segment is part of the summary matrix
func (s Segment) IsMatrixSegment() bool {
	return s == SegmentPPD || s == SegmentPUE
}

// Flow represents the direction of an invoice relative to the company
type Flow string

const (
	FlowIssued   Flow = "EMITIDOS"
	FlowReceived Flow = "RECIBIDOS"
)

// RelationType is the relation of a traceability event to its chain root
type RelationType string

const (
	RelationPayment           RelationType = "PAGO"
	RelationPaymentComplement RelationType = "PAGO_REP"
)

// IsPayment reports whether the relation records a payment or a payment complement
func (r RelationType) IsPayment() bool {
	return r == RelationPayment || r == RelationPaymentComplement
}

// ChainState is the settlement state of an invoice chain
type ChainState string

const (
	ChainSettled     ChainState = "LIQUIDADO"
	ChainOutstanding ChainState = "INSOLUTO"
	ChainNegative    ChainState = "SALDO_NEGATIVO"
)

// ClassifyBalance maps a chain's final balance to its settlement state
func ClassifyBalance(balance float64) ChainState {
	switch {
	case math.Abs(balance) < SETTLEMENT_TOLERANCE:
		return ChainSettled
	case balance > 0:
		return ChainOutstanding
	default:
		return ChainNegative
	}
}

// FiscalStatus is the traffic-light status derived from the PPD risk ratio
type FiscalStatus string

const (
	StatusHealthy  FiscalStatus = "SALUDABLE"
	StatusAtRisk   FiscalStatus = "EN RIESGO"
	StatusCritical FiscalStatus = "EN RIESGO CRÍTICO"
)

// StatusForRatio maps a risk ratio to its fiscal status
func StatusForRatio(ratio float64) FiscalStatus {
	switch {
	case ratio <= HEALTHY_RATIO_LIMIT:
		return StatusHealthy
	case ratio <= AT_RISK_RATIO_LIMIT:
		return StatusAtRisk
	default:
		return StatusCritical
	}
}

// Period is an accounting month in YYYY-MM form
type Period struct {
	Year  int
	Month int
}

// ParsePeriod parses a YYYY-MM period
func ParsePeriod(s string) (Period, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}

	return Period{Year: year, Month: month}, nil
}

// Previous returns the immediately preceding calendar month
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Year: p.Year - 1, Month: 12}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

func (p Period) String() string {
	return fmt.Sprintf("%d-%02d", p.Year, p.Month)
}

// PreviousPeriod returns the period before s, or false when s is malformed
func PreviousPeriod(s string) (string, bool) {
	p, err := ParsePeriod(s)
	if err != nil {
		return "", false
	}
	return p.Previous().String(), true
}
