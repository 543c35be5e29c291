package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/arav/divvy/internal/adapter/http/handler"
	"github.com/arav/divvy/internal/adapter/http/middleware"
	"github.com/arav/divvy/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	UserHandler        *handler.UserHandler
	GroupHandler       *handler.GroupHandler
	ExpenseHandler     *handler.ExpenseHandler
	BalanceHandler     *handler.BalanceHandler
	SettlementHandler  *handler.SettlementHandler
	TransactionHandler *handler.TransactionHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	RateLimiter        *middleware.RateLimiter
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/users", func(r chi.Router) {
			r.Post("/", cfg.UserHandler.Create)
			r.Get("/", cfg.UserHandler.List)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", cfg.GroupHandler.Create)
			r.Get("/", cfg.GroupHandler.List)
			r.Get("/{id}", cfg.GroupHandler.Get)
			r.Get("/{id}/expenses", cfg.ExpenseHandler.ListByGroup)
			r.Get("/{id}/balances", cfg.BalanceHandler.Balances)
			r.Get("/{id}/metrics", cfg.BalanceHandler.Metrics)
			r.Get("/{id}/graph", cfg.BalanceHandler.Graph)
			r.Post("/{id}/settle", cfg.SettlementHandler.Settle)
			r.Get("/{id}/settlements", cfg.SettlementHandler.History)
		})

		r.Post("/expenses", cfg.ExpenseHandler.Create)

		r.Route("/recurring", func(r chi.Router) {
			r.Get("/", cfg.ExpenseHandler.ListRecurring)
			r.Post("/trigger", cfg.ExpenseHandler.TriggerRecurring)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Post("/{id}/payments", cfg.TransactionHandler.Pay)
		})
	})

	return r
}
