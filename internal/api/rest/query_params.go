package rest

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/konia/fiscal-analytics/internal/api/shared/constants"
)

// PeriodQueryParams holds the period of endpoints scoped to one month
type PeriodQueryParams struct {
	Periodo string `form:"periodo" binding:"required"`
}

// DetailQueryParams holds query parameters for GET /dashboard/detalle-uuid
type DetailQueryParams struct {
	Periodo string `form:"periodo" binding:"required"`

	// Pagination
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=25"`

	// Filters, TODOS disables the segment and flow filters
	Flujo      string   `form:"flujo"`
	Segmento   string   `form:"segmento"`
	UUIDSearch string   `form:"uuid_search"`
	SaldoMin   *float64 `form:"saldo_min"`
}

// ChainListQueryParams holds query parameters for GET /dashboard/trazabilidad/uuids
type ChainListQueryParams struct {
	Periodo string `form:"periodo"`

	// Pagination
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=50"`
}

// ParsePeriodQuery parses the period query parameter
func ParsePeriodQuery(c *gin.Context) (*PeriodQueryParams, error) {
	var params PeriodQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, errors.New("periodo is required")
	}
	return &params, nil
}

// ParseDetailQuery parses query parameters for the detail listing
func ParseDetailQuery(c *gin.Context) (*DetailQueryParams, error) {
	var params DetailQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limits
	if params.Limit > constants.MAX_PAGE_SIZE {
		params.Limit = constants.MAX_PAGE_SIZE
	}

	return &params, nil
}

// Validate validates the detail listing parameters
func (p *DetailQueryParams) Validate() error {
	return validatePage(p.Page, p.Limit)
}

// ParseChainListQuery parses query parameters for the chain listing
func ParseChainListQuery(c *gin.Context) (*ChainListQueryParams, error) {
	var params ChainListQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limits
	if params.Limit > constants.MAX_PAGE_SIZE {
		params.Limit = constants.MAX_PAGE_SIZE
	}

	return &params, nil
}

// Validate validates the chain listing parameters
func (p *ChainListQueryParams) Validate() error {
	return validatePage(p.Page, p.Limit)
}

func validatePage(page, limit int) error {
	if page < 1 {
		return errors.New("page must be at least 1")
	}
	if limit < 1 {
		return errors.New("limit must be at least 1")
	}
	return nil
}
