package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/konia/fiscal-analytics/internal/api/middleware"
	"github.com/konia/fiscal-analytics/internal/auth"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, tokens auth.TokenService, metricsHandler http.Handler) {
	// Health check and metrics endpoints (no auth, no prefix)
	router.GET("/health", handler.HealthCheck)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	api := router.Group("/api")

	// Session endpoints, authenticated by their own cookies
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/refresh", handler.Refresh)
		authGroup.POST("/logout", handler.Logout)
		authGroup.GET("/me", middleware.Auth(tokens), handler.Me)
	}

	dashboard := api.Group("/dashboard", middleware.Auth(tokens))
	{
		dashboard.GET("/matriz-resumen", handler.GetMatrixSummary)
		dashboard.GET("/matriz-resumen/evolucion", handler.GetMatrixEvolution)
		dashboard.GET("/matriz-resumen/tabla", handler.GetMatrixComparison)
		dashboard.GET("/detalle-uuid", handler.GetDetailListing)
		dashboard.GET("/trazabilidad/uuids", handler.GetChainSummaries)
		dashboard.GET("/trazabilidad/:uuid_raiz", handler.GetChainDetail)
		dashboard.GET("/dim-tiempo/:periodo", handler.GetTimeDimension)
		dashboard.GET("/riesgos/:uuid", handler.GetInvoiceRisk)
	}

	kpis := api.Group("/kpis", middleware.Auth(tokens))
	{
		kpis.GET("/periodos-disponibles", handler.GetAvailablePeriods)
		kpis.GET("/resumen", handler.GetKPISummary)
	}
}
