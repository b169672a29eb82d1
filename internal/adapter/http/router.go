package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/http/handler"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/http/middleware"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/infrastructure/metrics"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EntryHandler     *handler.EntryHandler
	SummaryHandler   *handler.SummaryHandler
	FilterHandler    *handler.FilterHandler
	HistoryHandler   *handler.HistoryHandler
	BalanceHandler   *handler.BalanceHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Use(middleware.RequireIdentity)

		// Entries
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", cfg.EntryHandler.Submit)
			r.Get("/", cfg.EntryHandler.List)
			r.Put("/{id}", cfg.EntryHandler.Edit)
			r.Delete("/{id}", cfg.EntryHandler.Delete)
		})

		// Summaries
		r.Route("/summaries", func(r chi.Router) {
			r.Get("/", cfg.SummaryHandler.Get)
			r.Get("/all", cfg.SummaryHandler.GetAll)
		})

		// Filters
		r.Route("/filters", func(r chi.Router) {
			r.Post("/preview", cfg.FilterHandler.Preview)
			r.Post("/apply", cfg.FilterHandler.Apply)
		})

		// History
		r.Route("/history", func(r chi.Router) {
			r.Post("/undo", cfg.HistoryHandler.Undo)
			r.Post("/redo", cfg.HistoryHandler.Redo)
			r.Get("/", cfg.HistoryHandler.Status)
		})

		// Balance
		r.Route("/balance", func(r chi.Router) {
			r.Get("/", cfg.BalanceHandler.Get)
			r.Post("/", cfg.BalanceHandler.Create)
			r.Post("/topup", cfg.BalanceHandler.Topup)
			r.Put("/unlimited", cfg.BalanceHandler.SetUnlimited)
		})
		r.Get("/balances", cfg.BalanceHandler.List)

		// Ledger
		r.Get("/ledger/consistency", cfg.BalanceHandler.Consistency)
		r.Get("/ledger/audit", cfg.BalanceHandler.AuditLog)
	})

	return r
}
