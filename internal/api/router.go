// Package api provides the HTTP API for SailGate.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/sailgate/sailgate/internal/api/handler"
	"github.com/sailgate/sailgate/internal/api/middleware"
	"github.com/sailgate/sailgate/internal/eri"
	"github.com/sailgate/sailgate/internal/observability"
	"github.com/sailgate/sailgate/internal/provider/resilience"
	"github.com/sailgate/sailgate/internal/voyage"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version       string
	Logger        zerolog.Logger
	Repository    *voyage.Repository
	Scheduler     *voyage.Scheduler
	Rules         *eri.RuleSet
	Registry      *resilience.Registry
	Metrics       *observability.Metrics
	HTTPMetrics   *middleware.HTTPMetrics
	Gatherer      prometheus.Gatherer
	ForecastHours int
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing())
	if cfg.HTTPMetrics != nil {
		r.Use(cfg.HTTPMetrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.ContentTypeJSON)

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.Registry)
	forecastHandler := handler.NewForecastHandler(cfg.Repository, cfg.ForecastHours)
	decisionHandler := handler.NewDecisionHandler(cfg.Metrics)
	voyageHandler := handler.NewVoyageHandler(cfg.Repository, cfg.Scheduler)
	eriHandler := handler.NewERIHandler(cfg.Repository, cfg.Rules, cfg.ForecastHours)

	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit)
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)

	r.Get("/healthz", opsHandler.HealthCheck)
	if cfg.Gatherer != nil {
		r.Method("GET", "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.With(standardRateLimit).Get("/providers/health", opsHandler.ProviderHealth)

		// Forecast fetches can reach out to upstream providers.
		r.With(expensiveRateLimit).Get("/forecast", forecastHandler.GetForecast)

		r.With(standardRateLimit, middleware.RequireJSON).Post("/decision", decisionHandler.PostDecision)

		r.Route("/routes", func(r chi.Router) {
			r.With(standardRateLimit).Get("/", voyageHandler.ListRoutes)
			r.Route("/{routeID}", func(r chi.Router) {
				r.Use(expensiveRateLimit)
				r.Get("/forecast", forecastHandler.GetRouteForecast)
				r.Get("/schedule", voyageHandler.GetRouteSchedule)
				r.Get("/eri", eriHandler.GetRouteERI)
			})
		})
	})

	return r
}
