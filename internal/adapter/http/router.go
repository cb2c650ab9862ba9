package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/budgetledger/internal/adapter/http/handler"
	"github.com/iho/budgetledger/internal/adapter/http/middleware"
	"github.com/iho/budgetledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler        *handler.AccountHandler
	ClassificationHandler *handler.ClassificationHandler
	TransactionHandler    *handler.TransactionHandler
	RecurringHandler      *handler.RecurringHandler
	CalendarHandler       *handler.CalendarHandler
	LedgerHandler         *handler.LedgerHandler
	HealthHandler         *handler.HealthHandler

	Logger zerolog.Logger

	// Optional.
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          middleware.HTTPRecorder
	MetricsHandler   http.Handler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))

	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
			r.Get("/{id}/balance", cfg.TransactionHandler.Balance)
			r.Get("/{id}/next-due-date", cfg.AccountHandler.NextDueDate)
		})

		// Payees and categories
		r.Route("/payees", func(r chi.Router) {
			r.Post("/", cfg.ClassificationHandler.CreatePayee)
			r.Get("/", cfg.ClassificationHandler.ListPayees)
			r.Get("/{id}", cfg.ClassificationHandler.GetPayee)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", cfg.ClassificationHandler.CreateCategory)
			r.Get("/", cfg.ClassificationHandler.ListCategories)
			r.Get("/{id}", cfg.ClassificationHandler.GetCategory)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/transfer", cfg.TransactionHandler.CreateTransfer)
			r.Post("/income", cfg.TransactionHandler.CreateIncome)
			r.Post("/expense", cfg.TransactionHandler.CreateExpense)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Patch("/{id}/description", cfg.TransactionHandler.UpdateDescription)
			r.Patch("/{id}/date", cfg.TransactionHandler.UpdateDate)
		})

		// Recurring rules
		r.Route("/recurring-rules", func(r chi.Router) {
			r.Post("/", cfg.RecurringHandler.Create)
			r.Get("/", cfg.RecurringHandler.List)
			r.Post("/materialize", cfg.RecurringHandler.Materialize)
			r.Get("/{id}", cfg.RecurringHandler.Get)
			r.Get("/{id}/occurrences", cfg.RecurringHandler.Occurrences)
		})

		// Calendar
		r.Route("/calendar", func(r chi.Router) {
			r.Get("/easter/{year}", cfg.CalendarHandler.Easter)
			r.Get("/holidays/{year}", cfg.CalendarHandler.Holidays)
			r.Get("/closed", cfg.CalendarHandler.Closed)
			r.Get("/due-date", cfg.CalendarHandler.DueDate)
		})

		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
	})

	return r
}
