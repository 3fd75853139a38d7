package domain

import "errors"

var (
	// ErrChainNotFound is returned when no traceability events exist for a chain root
	ErrChainNotFound = errors.New("chain not found")

	// ErrInvoiceNotFound is returned when an invoice is absent from the master collection
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvalidPeriod is returned when a period is not in YYYY-MM form
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidCompanyID is returned when a company identifier is empty or malformed
	ErrInvalidCompanyID = errors.New("invalid company id")
)
