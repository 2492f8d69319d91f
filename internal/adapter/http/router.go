package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iho/finledger/internal/adapter/http/handler"
	"github.com/iho/finledger/internal/adapter/http/middleware"
	"github.com/iho/finledger/internal/infrastructure/auth"
	"github.com/iho/finledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	InstrumentHandler  *handler.InstrumentHandler
	InstallmentHandler *handler.InstallmentHandler
	LedgerHandler      *handler.LedgerHandler
	OptionsHandler     *handler.OptionsHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	JWTManager         *auth.JWTManager
	RateLimiter        *middleware.RateLimiter
	AuthEnabled        bool
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthEnabled && cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		} else {
			r.Use(middleware.HeaderIdentity)
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Get("/options", cfg.OptionsHandler.Get)

		// Instruments and their installment schedules
		r.Route("/instruments", func(r chi.Router) {
			r.Post("/", cfg.InstrumentHandler.Create)
			r.Get("/", cfg.InstrumentHandler.List)
			r.Get("/{id}", cfg.InstrumentHandler.Get)
			r.Put("/{id}", cfg.InstrumentHandler.Update)
			r.Post("/{id}/status", cfg.InstrumentHandler.ToggleStatus)
			r.Delete("/{id}", cfg.InstrumentHandler.Delete)
		})

		// Installments
		r.Route("/installments", func(r chi.Router) {
			r.Post("/status", cfg.InstallmentHandler.BulkToggleStatus)
			r.Put("/{id}", cfg.InstallmentHandler.Update)
			r.Post("/{id}/status", cfg.InstallmentHandler.ToggleStatus)
			r.Delete("/{id}", cfg.InstallmentHandler.Delete)
		})

		// Ledger
		r.Route("/ledger", func(r chi.Router) {
			r.Route("/transactions", func(r chi.Router) {
				r.Post("/", cfg.LedgerHandler.Create)
				r.Get("/", cfg.LedgerHandler.List)
				r.Get("/deleted", cfg.LedgerHandler.ListDeleted)
				r.Post("/status", cfg.LedgerHandler.BulkToggleStatus)
				r.Post("/undo", cfg.LedgerHandler.BulkUndo)
				r.Get("/{id}", cfg.LedgerHandler.Get)
				r.Put("/{id}", cfg.LedgerHandler.Update)
				r.Post("/{id}/status", cfg.LedgerHandler.ToggleStatus)
				r.Post("/{id}/undo", cfg.LedgerHandler.Undo)
				r.Delete("/{id}", cfg.LedgerHandler.Delete)
			})

			r.Route("/counterparties", func(r chi.Router) {
				r.Get("/", cfg.LedgerHandler.Counterparties)
				r.Get("/{name}", cfg.LedgerHandler.CounterpartyDetail)
				r.Get("/{name}/aging", cfg.LedgerHandler.Aging)
				r.Post("/{name}/rename", cfg.LedgerHandler.Rename)
			})
		})
	})

	return r
}
