package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/konia/fiscal-analytics/internal/adapter"
	"github.com/konia/fiscal-analytics/internal/api/server"
	"github.com/konia/fiscal-analytics/internal/api/shared/executor"
	"github.com/konia/fiscal-analytics/internal/auth"
	"github.com/konia/fiscal-analytics/internal/config"
	"github.com/konia/fiscal-analytics/internal/logger"
	"github.com/konia/fiscal-analytics/internal/metrics"
	"github.com/konia/fiscal-analytics/internal/store"
	"github.com/konia/fiscal-analytics/internal/traceability"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "fiscal-analytics-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Fiscal Analytics API")

	balanceMode, err := traceability.ParseBalanceMode(cfg.Traceability.ListingBalanceMode)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid traceability listing balance mode", zap.Error(err))
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	// Initialize store and wait until the database answers
	dataStore := store.NewPGStore(db)
	if err := store.WaitUntilReady(ctx, dataStore, store.NewConnectBackOff(cfg.Database.ConnectTimeout)); err != nil {
		logger.FatalCtx(ctx, "Database unavailable", zap.Error(err), zap.Duration("connect_timeout", cfg.Database.ConnectTimeout))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Worker pool shared by the fan-out queries of every request
	pool := pond.NewPool(
		cfg.Worker.WorkerPoolSize,
		pond.WithQueueSize(cfg.Worker.WorkerQueueSize),
		pond.WithContext(ctx),
	)
	defer pool.StopAndWait()

	m := metrics.New()
	m.TrackWorkerPool(
		func() float64 { return float64(pool.RunningWorkers()) },
		func() float64 { return float64(pool.WaitingTasks()) },
	)

	tokens := auth.NewTokenService(auth.Config{
		Secret:           cfg.Auth.JWTSecret,
		AccessTokenTTL:   cfg.Auth.AccessTokenTTL,
		RefreshTokenTTL:  cfg.Auth.RefreshTokenTTL,
		TenantCompanyIDs: cfg.Auth.TenantCompanyIDs,
	}, adapter.NewClock())

	exec := executor.NewExecutor(executor.Config{
		PasswordSecret: cfg.Auth.JWTSecret,
		BalanceMode:    balanceMode,
	}, dataStore, tokens, pool, m)

	// Create server config
	serverConfig := server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		CookieSecure:   cfg.Auth.CookieSecure,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}

	srv := server.New(serverConfig, exec, tokens, m)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
	}

	// The request context stays alive until in-flight requests drain
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}
	cancel()

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
