// Package main provides the entrypoint for the SailGate API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/sailgate/sailgate/internal/api"
	"github.com/sailgate/sailgate/internal/api/middleware"
	"github.com/sailgate/sailgate/internal/config"
	"github.com/sailgate/sailgate/internal/eri"
	"github.com/sailgate/sailgate/internal/observability"
	"github.com/sailgate/sailgate/internal/provider"
	"github.com/sailgate/sailgate/internal/provider/noaa"
	"github.com/sailgate/sailgate/internal/provider/openmeteo"
	"github.com/sailgate/sailgate/internal/provider/resilience"
	"github.com/sailgate/sailgate/internal/provider/stormglass"
	"github.com/sailgate/sailgate/internal/telemetry"
	"github.com/sailgate/sailgate/internal/voyage"
)

// Version is set at compile time via ldflags.
var Version = "dev"

func main() {
	const serviceName = "sailgate-api"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Info().Str("env", cfg.Environment).Msg("starting SailGate API")

	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	httpMetrics := middleware.NewHTTPMetrics(registry)

	cache, err := provider.NewDiskCache(provider.DiskCacheConfig{
		Root:     cfg.CacheDir,
		TTL:      cfg.CacheTTL,
		StaleTTL: cfg.CacheStaleTTL,
		Logger:   log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open forecast cache")
	}

	clients := resilience.NewRegistry()
	providers := buildProviders(cfg, log, clients)
	if len(providers) == 0 {
		log.Fatal().Msg("no forecast providers configured")
	}

	manager := provider.NewManager(provider.ManagerConfig{
		Providers: providers,
		Cache:     cache,
		Logger:    log,
		Metrics:   metrics,
		Health:    clients,
	})

	rules, err := eri.LoadRuleSetFile(cfg.ERIRulesPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ERIRulesPath).Msg("failed to load ERI rules")
	}

	repo := voyage.NewRepository(voyage.NewRegistry(), manager)
	scheduler, err := voyage.NewScheduler(voyage.SchedulerConfig{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build scheduler")
	}

	router := api.NewRouter(api.RouterConfig{
		Version:       Version,
		Logger:        log,
		Repository:    repo,
		Scheduler:     scheduler,
		Rules:         rules,
		Registry:      clients,
		Metrics:       metrics,
		HTTPMetrics:   httpMetrics,
		Gatherer:      registry,
		ForecastHours: cfg.ForecastHours,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

// buildProviders assembles the fallback chain in priority order from
// whatever upstreams are configured.
func buildProviders(cfg *config.Config, log zerolog.Logger, clients *resilience.Registry) []provider.Provider {
	var providers []provider.Provider

	if cfg.StormglassAPIKey != "" {
		httpClient := resilience.NewClient(resilience.DefaultClientConfig(stormglass.ProviderName))
		clients.Register(stormglass.ProviderName, httpClient)
		providers = append(providers, stormglass.NewClient(stormglass.ClientConfig{
			APIKey:     cfg.StormglassAPIKey,
			HTTPClient: httpClient,
			Logger:     log,
		}))
	} else {
		log.Warn().Msg("stormglass API key not set, provider disabled")
	}

	omClient := resilience.NewClient(resilience.DefaultClientConfig(openmeteo.ProviderName))
	clients.Register(openmeteo.ProviderName, omClient)
	providers = append(providers, openmeteo.NewClient(openmeteo.ClientConfig{
		BaseURL:    cfg.OpenMeteoBaseURL,
		HTTPClient: omClient,
		Logger:     log,
	}))

	if cfg.NOAAEndpoint != "" {
		noaaClient := resilience.NewClient(resilience.DefaultClientConfig(noaa.ProviderName))
		clients.Register(noaa.ProviderName, noaaClient)
		providers = append(providers, noaa.NewClient(noaa.ClientConfig{
			Endpoint:   cfg.NOAAEndpoint,
			HTTPClient: noaaClient,
			Logger:     log,
		}))
	}

	return providers
}
