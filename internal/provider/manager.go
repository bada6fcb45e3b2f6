package provider

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sailgate/sailgate/internal/marine"
	"github.com/sailgate/sailgate/internal/observability"
	"github.com/sailgate/sailgate/internal/provider/resilience"
)

// cacheScope keys cached results by request, not by the provider that
// happened to serve them; the fallback chain is one logical source.
const cacheScope = "multi"

// ManagerConfig configures the fallback manager.
type ManagerConfig struct {
	// Providers in priority order. The first success wins.
	Providers []Provider

	// Cache is the disk-backed forecast cache (required).
	Cache *DiskCache

	// Logger for fetch attempts and fallbacks.
	Logger zerolog.Logger

	// Metrics is optional acquisition instrumentation.
	Metrics *observability.Metrics

	// Health is the optional client registry fed with per-provider
	// outcomes for the health endpoint.
	Health *resilience.Registry
}

// Manager orchestrates ordered, sequential fallback across providers and
// mediates all cache access. Providers are never raced in parallel; the
// ordering is deterministic and caller-configured.
type Manager struct {
	providers []Provider
	cache     *DiskCache
	logger    zerolog.Logger
	metrics   *observability.Metrics
	health    *resilience.Registry
}

// NewManager creates a fallback manager.
func NewManager(cfg ManagerConfig) *Manager {
	return &Manager{
		providers: cfg.Providers,
		cache:     cfg.Cache,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		health:    cfg.Health,
	}
}

// FetchWithFallback returns the best-available forecast for the location
// and horizon. Resolution order: fresh cache, providers in priority order
// (an empty result counts as a failure), stale cache, and finally a typed
// error carrying the last provider's failure code.
func (m *Manager) FetchWithFallback(ctx context.Context, lat, lon float64, hours int) ([]marine.ForecastPoint, error) {
	key := CacheKey{Scope: cacheScope, Lat: lat, Lon: lon, Hours: hours}

	cached := m.cache.Load(key)
	if cached != nil && cached.Freshness == Fresh {
		m.logger.Info().
			Float64("lat", lat).
			Float64("lon", lon).
			Int("hours", hours).
			Msg("forecast cache hit")
		m.countCacheHit("fresh")
		return cached.Points, nil
	}
	if cached == nil && m.metrics != nil {
		m.metrics.CacheMisses.Inc()
	}

	var lastErr *Error
	for _, p := range m.providers {
		m.logger.Info().
			Str("provider", p.Name()).
			Float64("lat", lat).
			Float64("lon", lon).
			Int("hours", hours).
			Msg("fetching forecast")

		start := time.Now()
		points, err := p.FetchForecast(ctx, lat, lon, hours)
		m.observeFetch(p.Name(), time.Since(start), err == nil && len(points) > 0)

		if err == nil && len(points) == 0 {
			err = NewError(CodeEmpty, p.Name()+" returned no data")
		}
		if err != nil {
			pe, ok := AsError(err)
			if !ok {
				pe = WrapError(CodeUnknown, p.Name()+" failed", err)
			}
			m.logger.Warn().
				Str("provider", p.Name()).
				Str("code", string(pe.Code)).
				Str("detail", pe.Message).
				Msg("provider failed, trying next")
			if m.health != nil {
				m.health.RecordFailure(p.Name(), pe)
			}
			lastErr = pe
			continue
		}
		if m.health != nil {
			m.health.RecordSuccess(p.Name())
		}

		if saveErr := m.cache.Save(key, points); saveErr != nil {
			// A cache write failure degrades future availability but must
			// not fail a successful fetch.
			m.logger.Error().Err(saveErr).Msg("failed to write forecast cache")
		} else if m.metrics != nil {
			m.metrics.CacheWrites.Inc()
		}
		return points, nil
	}

	if cached != nil {
		m.logger.Warn().
			Float64("lat", lat).
			Float64("lon", lon).
			Time("fetched_at", cached.FetchedAt).
			Msg("all providers failed, serving stale forecast")
		m.countCacheHit("stale")
		return cached.Points, nil
	}

	if lastErr != nil {
		return nil, &Error{Code: lastErr.Code, Message: "all providers failed", Err: lastErr}
	}
	return nil, NewError(CodeUnknown, "all providers failed")
}

func (m *Manager) countCacheHit(tier string) {
	if m.metrics != nil {
		m.metrics.CacheHits.WithLabelValues(tier).Inc()
	}
}

func (m *Manager) observeFetch(provider string, d time.Duration, ok bool) {
	if m.metrics == nil {
		return
	}
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	m.metrics.FetchAttempts.WithLabelValues(provider, outcome).Inc()
	m.metrics.FetchDuration.WithLabelValues(provider).Observe(d.Seconds())
}
