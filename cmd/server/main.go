package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/koperasi/ledger/internal/adapter/http"
	"github.com/koperasi/ledger/internal/adapter/http/handler"
	"github.com/koperasi/ledger/internal/app"
	"github.com/koperasi/ledger/internal/infrastructure/config"
	"github.com/koperasi/ledger/internal/infrastructure/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	a, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	defer a.Close()
	appLogger.Info().Str("driver", cfg.StoreDriver).Msg("store ready")

	if _, added, err := a.Accounts.SeedDefaults(ctx); err != nil {
		appLogger.Warn().Err(err).Msg("failed to seed chart of accounts")
	} else if added > 0 {
		appLogger.Info().Int("added", added).Msg("seeded chart of accounts")
	}

	// Create router
	router := httpAdapter.NewRouter(newRouterConfig(a))

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}

func newRouterConfig(a *app.App) httpAdapter.RouterConfig {
	return httpAdapter.RouterConfig{
		AccountHandler:        handler.NewAccountHandler(a.Accounts),
		OpeningBalanceHandler: handler.NewOpeningBalanceHandler(a.OpeningBalance),
		JournalHandler:        handler.NewJournalHandler(a.Journals),
		ReconciliationHandler: handler.NewReconciliationHandler(a.Reconciliation),
		HealthHandler:         handler.NewHealthHandler(a, a.Config.StoreDriver),
		MetricsHandler:        a.Metrics.Handler(),
		Observer:              a.Metrics,
		Logger:                a.Logger,
	}
}
