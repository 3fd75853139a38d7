package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/konia/fiscal-analytics/internal/api/middleware"
	"github.com/konia/fiscal-analytics/internal/api/rest"
	"github.com/konia/fiscal-analytics/internal/api/shared/executor"
	"github.com/konia/fiscal-analytics/internal/auth"
	"github.com/konia/fiscal-analytics/internal/logger"
	"github.com/konia/fiscal-analytics/internal/metrics"
)

// Config holds the server configuration
type Config struct {
	Debug          bool
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	CookieSecure   bool
	AllowedOrigins []string
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	executor   executor.Executor
	tokens     auth.TokenService
	metrics    *metrics.Metrics
	httpServer *http.Server
}

// New creates a new API server
func New(cfg Config, exec executor.Executor, tokens auth.TokenService, m *metrics.Metrics) *Server {
	return &Server{
		config:   cfg,
		executor: exec,
		tokens:   tokens,
		metrics:  m,
	}
}

// Router builds the gin engine with the middleware chain and every route
func (s *Server) Router() *gin.Engine {
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics(s.metrics))
	router.Use(middleware.SetupCORS(s.config.AllowedOrigins))

	rest.SetupRoutes(router, rest.NewHandler(s.config.CookieSecure, s.executor), s.tokens, s.metrics.Handler())

	return router
}

// Start initializes and starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.InfoCtx(ctx, "Starting API server",
		zap.String("address", addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.InfoCtx(ctx, "Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
