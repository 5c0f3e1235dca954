package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Lixing-Zhang/just-java/internal/config"
	"github.com/Lixing-Zhang/just-java/internal/middleware"
)

// NewRouter wires middleware and routes for the order form API
func NewRouter(cfg *config.Config, log *slog.Logger, health *HealthHandler, orders *OrderHandler, sessions *SessionHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(middleware.PrometheusMetrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "api_key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", health.ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())

	submit := chi.Chain(
		middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log),
		middleware.APIKeyAuth(cfg.Auth),
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", orders.Menu)
		r.Get("/price", orders.Quote)
		r.With(submit...).Post("/order", orders.CreateOrder)

		r.Route("/session", func(r chi.Router) {
			r.Post("/", sessions.CreateSession)
			r.Get("/{sessionId}", sessions.GetSession)
			r.Delete("/{sessionId}", sessions.DeleteSession)
			r.Post("/{sessionId}/increment", sessions.Increment)
			r.Post("/{sessionId}/decrement", sessions.Decrement)
			r.With(submit...).Post("/{sessionId}/order", orders.CreateSessionOrder)
		})
	})

	return r
}
