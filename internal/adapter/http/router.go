package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/koperasi/ledger/internal/adapter/http/handler"
	"github.com/koperasi/ledger/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler        *handler.AccountHandler
	OpeningBalanceHandler *handler.OpeningBalanceHandler
	JournalHandler        *handler.JournalHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler
	MetricsHandler        http.Handler
	Observer              middleware.HTTPObserver
	Logger                zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Observer != nil {
		r.Use(middleware.Metrics(cfg.Observer))
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.User)

		// Chart of accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/equation", cfg.AccountHandler.Equation)
			r.Get("/{code}", cfg.AccountHandler.Get)
		})

		// Opening balance
		r.Route("/opening-balance", func(r chi.Router) {
			r.Get("/", cfg.OpeningBalanceHandler.Current)
			r.Get("/history", cfg.OpeningBalanceHandler.History)
			r.Get("/audit", cfg.OpeningBalanceHandler.Audit)
			r.Post("/lock", cfg.OpeningBalanceHandler.Lock)
			r.Post("/unlock", cfg.OpeningBalanceHandler.Unlock)
		})

		// General journal
		r.Route("/journals", func(r chi.Router) {
			r.Get("/", cfg.JournalHandler.List)
			r.Get("/check", cfg.JournalHandler.Check)
			r.Get("/{id}", cfg.JournalHandler.Get)
		})

		// Reconciliation
		r.Route("/reconciliation", func(r chi.Router) {
			r.Get("/", cfg.ReconciliationHandler.Report)
			r.Get("/{code}", cfg.ReconciliationHandler.Account)
		})
	})

	return r
}
