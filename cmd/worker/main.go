// Package main provides the entrypoint for the SailGate refresh worker.
// It keeps route forecasts warm on a fixed interval so API reads hit the
// fresh cache tier.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/sailgate/sailgate/internal/config"
	"github.com/sailgate/sailgate/internal/observability"
	"github.com/sailgate/sailgate/internal/provider"
	"github.com/sailgate/sailgate/internal/provider/noaa"
	"github.com/sailgate/sailgate/internal/provider/openmeteo"
	"github.com/sailgate/sailgate/internal/provider/resilience"
	"github.com/sailgate/sailgate/internal/provider/stormglass"
	"github.com/sailgate/sailgate/internal/voyage"
)

// Version is set at compile time via ldflags.
var Version = "dev"

func main() {
	const serviceName = "sailgate-worker"

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

	log.Info().
		Dur("refresh_interval", cfg.RefreshInterval).
		Msg("starting SailGate worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	cache, err := provider.NewDiskCache(provider.DiskCacheConfig{
		Root:     cfg.CacheDir,
		TTL:      cfg.CacheTTL,
		StaleTTL: cfg.CacheStaleTTL,
		Logger:   log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open forecast cache")
	}

	providers := buildProviders(cfg, log)
	if len(providers) == 0 {
		log.Fatal().Msg("no forecast providers configured")
	}

	manager := provider.NewManager(provider.ManagerConfig{
		Providers: providers,
		Cache:     cache,
		Logger:    log,
		Metrics:   metrics,
	})

	repo := voyage.NewRepository(voyage.NewRegistry(), manager)
	job := voyage.NewRefreshJob(voyage.RefreshConfig{
		ForecastHours: cfg.ForecastHours,
	}, repo, log)

	planner, err := voyage.NewScheduler(voyage.SchedulerConfig{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build voyage scheduler")
	}

	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Every(cfg.RefreshInterval).Do(func() {
		job.Run(ctx)
		cache.Purge()
		logWeeklyPlans(ctx, repo, planner, log)
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule refresh job")
	}
	scheduler.StartAsync()

	// Health endpoint for orchestrators.
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("health server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	scheduler.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}

// planHorizonHours covers the scheduler's full week of windows.
const planHorizonHours = 192

// logWeeklyPlans publishes the recommended departure window per route after
// each refresh.
func logWeeklyPlans(ctx context.Context, repo *voyage.Repository, planner *voyage.Scheduler, log zerolog.Logger) {
	for _, route := range repo.Routes().All() {
		_, points, err := repo.FetchForRoute(ctx, route.ID, planHorizonHours)
		if err != nil {
			continue
		}
		schedule := planner.SuggestWeeklySchedule(route, points)
		if schedule.Recommended < 0 {
			log.Warn().Str("route", route.ID).Msg("no departure window with forecast coverage")
			continue
		}
		w := schedule.Windows[schedule.Recommended]
		event := log.Info().
			Str("route", route.ID).
			Time("depart", w.Start).
			Time("return_by", w.End)
		if w.Assessment != nil {
			event = event.Str("risk", string(w.Assessment.Level))
		}
		event.Msg("recommended departure window")
	}
}

func buildProviders(cfg *config.Config, log zerolog.Logger) []provider.Provider {
	var providers []provider.Provider

	if cfg.StormglassAPIKey != "" {
		providers = append(providers, stormglass.NewClient(stormglass.ClientConfig{
			APIKey: cfg.StormglassAPIKey,
			HTTPClient: resilience.NewClient(
				resilience.DefaultClientConfig(stormglass.ProviderName)),
			Logger: log,
		}))
	}

	providers = append(providers, openmeteo.NewClient(openmeteo.ClientConfig{
		BaseURL: cfg.OpenMeteoBaseURL,
		HTTPClient: resilience.NewClient(
			resilience.DefaultClientConfig(openmeteo.ProviderName)),
		Logger: log,
	}))

	if cfg.NOAAEndpoint != "" {
		providers = append(providers, noaa.NewClient(noaa.ClientConfig{
			Endpoint: cfg.NOAAEndpoint,
			HTTPClient: resilience.NewClient(
				resilience.DefaultClientConfig(noaa.ProviderName)),
			Logger: log,
		}))
	}

	return providers
}
