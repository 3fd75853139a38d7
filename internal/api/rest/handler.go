package rest

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/konia/fiscal-analytics/internal/api/middleware"
	"github.com/konia/fiscal-analytics/internal/api/shared/constants"
	"github.com/konia/fiscal-analytics/internal/api/shared/dto"
	"github.com/konia/fiscal-analytics/internal/api/shared/executor"
	"github.com/konia/fiscal-analytics/internal/auth"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// Login authenticates a tenant user and sets the session cookies
	// POST /api/auth/login
	Login(c *gin.Context)

	// Refresh issues a new access token cookie from the refresh token cookie
	// POST /api/auth/refresh
	Refresh(c *gin.Context)

	// Logout clears the session cookies
	// POST /api/auth/logout
	Logout(c *gin.Context)

	// Me describes the authenticated caller
	// GET /api/auth/me
	Me(c *gin.Context)

	// GetMatrixSummary returns the summary matrix and fiscal KPIs of a period
	// GET /api/dashboard/matriz-resumen?periodo=<YYYY-MM>
	GetMatrixSummary(c *gin.Context)

	// GetMatrixEvolution returns the closing balances of every period
	// GET /api/dashboard/matriz-resumen/evolucion
	GetMatrixEvolution(c *gin.Context)

	// GetMatrixComparison compares a period with the previous month
	// GET /api/dashboard/matriz-resumen/tabla?periodo=<YYYY-MM>
	GetMatrixComparison(c *gin.Context)

	// GetDetailListing returns a page of detail records
	// GET /api/dashboard/detalle-uuid?periodo=<YYYY-MM>&page=<page>&limit=<limit>&flujo=<flujo>&segmento=<segmento>&uuid_search=<text>&saldo_min=<amount>
	GetDetailListing(c *gin.Context)

	// GetChainSummaries returns a page of invoice chains
	// GET /api/dashboard/trazabilidad/uuids?periodo=<YYYY-MM>&page=<page>&limit=<limit>
	GetChainSummaries(c *gin.Context)

	// GetChainDetail returns one invoice chain
	// GET /api/dashboard/trazabilidad/:uuid_raiz
	GetChainDetail(c *gin.Context)

	// GetTimeDimension returns the calendar entry of a period
	// GET /api/dashboard/dim-tiempo/:periodo
	GetTimeDimension(c *gin.Context)

	// GetInvoiceRisk returns the forensic risk analysis of an invoice
	// GET /api/dashboard/riesgos/:uuid
	GetInvoiceRisk(c *gin.Context)

	// GetAvailablePeriods lists the periods with detail records
	// GET /api/kpis/periodos-disponibles
	GetAvailablePeriods(c *gin.Context)

	// GetKPISummary returns the KPI blocks of a period
	// GET /api/kpis/resumen?periodo=<YYYY-MM>
	GetKPISummary(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	cookieSecure bool
	executor     executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(cookieSecure bool, exec executor.Executor) Handler {
	return &handler{
		cookieSecure: cookieSecure,
		executor:     exec,
	}
}

// setCookie writes an HttpOnly lax cookie scoped to the whole API
func (h *handler) setCookie(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(ttl.Seconds()), "/", "", h.cookieSecure, true)
}

// identity returns the caller resolved by the auth middleware
func identity(c *gin.Context) (auth.Identity, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		respondUnauthorized(c, "Not authenticated")
	}
	return id, ok
}

func (h *handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	result, err := h.executor.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setCookie(c, constants.ACCESS_TOKEN_COOKIE, constants.BEARER_PREFIX+result.Session.AccessToken, result.Session.AccessTokenTTL)
	h.setCookie(c, constants.REFRESH_TOKEN_COOKIE, result.Session.RefreshToken, result.Session.RefreshTokenTTL)

	c.JSON(http.StatusOK, result.Response)
}

func (h *handler) Refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie(constants.REFRESH_TOKEN_COOKIE)

	session, err := h.executor.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setCookie(c, constants.ACCESS_TOKEN_COOKIE, constants.BEARER_PREFIX+session.AccessToken, session.AccessTokenTTL)

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Token refreshed"})
}

func (h *handler) Logout(c *gin.Context) {
	h.setCookie(c, constants.ACCESS_TOKEN_COOKIE, "", -time.Second)
	h.setCookie(c, constants.REFRESH_TOKEN_COOKIE, "", -time.Second)

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

func (h *handler) Me(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.executor.Me(c.Request.Context(), id))
}

func (h *handler) GetMatrixSummary(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	params, err := ParsePeriodQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	summary, err := h.executor.GetMatrixSummary(c.Request.Context(), id.CompanyID, params.Periodo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *handler) GetMatrixEvolution(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	evolution, err := h.executor.GetMatrixEvolution(c.Request.Context(), id.CompanyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, evolution)
}

func (h *handler) GetMatrixComparison(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	params, err := ParsePeriodQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	comparison, err := h.executor.GetMatrixComparison(c.Request.Context(), id.CompanyID, params.Periodo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comparison)
}

func (h *handler) GetDetailListing(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	params, err := ParseDetailQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := params.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	listing, err := h.executor.GetDetailListing(c.Request.Context(), id.CompanyID, executor.DetailQuery{
		Periodo:    params.Periodo,
		Page:       params.Page,
		Limit:      params.Limit,
		Flujo:      params.Flujo,
		Segmento:   params.Segmento,
		UUIDSearch: params.UUIDSearch,
		SaldoMin:   params.SaldoMin,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

func (h *handler) GetChainSummaries(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	params, err := ParseChainListQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := params.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	var periodo *string
	if params.Periodo != "" {
		periodo = &params.Periodo
	}

	chains, err := h.executor.GetChainSummaries(c.Request.Context(), id.CompanyID, periodo, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, chains)
}

func (h *handler) GetChainDetail(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	uuidRaiz := strings.TrimSpace(c.Param("uuid_raiz"))
	detail, err := h.executor.GetChainDetail(c.Request.Context(), id.CompanyID, uuidRaiz)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *handler) GetTimeDimension(c *gin.Context) {
	if _, ok := identity(c); !ok {
		return
	}

	dim, err := h.executor.GetTimeDimension(c.Request.Context(), c.Param("periodo"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dim)
}

func (h *handler) GetInvoiceRisk(c *gin.Context) {
	if _, ok := identity(c); !ok {
		return
	}

	analysis, err := h.executor.GetInvoiceRisk(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

func (h *handler) GetAvailablePeriods(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	periods, err := h.executor.GetAvailablePeriods(c.Request.Context(), id.CompanyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, periods)
}

func (h *handler) GetKPISummary(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	params, err := ParsePeriodQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	summary, err := h.executor.GetKPISummary(c.Request.Context(), id.CompanyID, params.Periodo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "fiscal-analytics-api",
	})
}
