package domain

const (
	// Balance tolerance under which a chain is considered settled
	SETTLEMENT_TOLERANCE = 0.01

	// Fiscal status thresholds applied to the PPD risk ratio
	HEALTHY_RATIO_LIMIT = 1.0
	AT_RISK_RATIO_LIMIT = 3.0

	// Filter value meaning "no filter" on detail listings
	FILTER_ALL = "TODOS"

	// Rendering for chain dates
	DATE_LAYOUT = "2006-01-02"
	EMPTY_DATE  = "—"

	// Concept prefix that marks the original invoice of a chain
	ORIGINAL_INVOICE_CONCEPT_PREFIX = "1."
)

// Matrix concept labels as stored by the accounting ETL
const (
	ConceptTotalBilled     = "1. (+) Total Facturado"
	ConceptCreditNotes     = "2. (-) Notas de Crédito (01)"
	ConceptAdvance         = "7. (-) Anticipo (07)"
	ConceptAppliedPayments = "8. (-) Pagos Aplicados (08/09)"
	ConceptOutstandingPPD  = "9. (=) Saldo Insoluto PPD"
	ConceptTheoreticalPUE  = "9. (=) Saldo Teórico PUE"
)
