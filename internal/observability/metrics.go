// Package observability exposes Prometheus instrumentation for the
// forecast acquisition layer and the conditioning pipeline.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for forecast
// acquisition and scoring.
type Metrics struct {
	FetchAttempts *prometheus.CounterVec   // labels: provider, outcome={success,failure}
	FetchDuration *prometheus.HistogramVec // labels: provider
	CacheHits     *prometheus.CounterVec   // labels: tier={fresh,stale}
	CacheMisses   prometheus.Counter
	CacheWrites   prometheus.Counter
	Decisions     *prometheus.CounterVec // labels: decision
}

// NewMetrics creates and registers all metrics with the given registerer.
// Pass prometheus.DefaultRegisterer in production; tests use a private
// registry to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FetchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sailgate",
			Name:      "provider_fetch_attempts_total",
			Help:      "Forecast fetch attempts per provider and outcome.",
		}, []string{"provider", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sailgate",
			Name:      "provider_fetch_duration_seconds",
			Help:      "Duration of forecast fetches per provider.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"provider"}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sailgate",
			Name:      "forecast_cache_hits_total",
			Help:      "Forecast cache hits by freshness tier.",
		}, []string{"tier"}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sailgate",
			Name:      "forecast_cache_misses_total",
			Help:      "Forecast cache misses.",
		}),
		CacheWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sailgate",
			Name:      "forecast_cache_writes_total",
			Help:      "Successful forecast cache writes.",
		}),
		Decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sailgate",
			Name:      "voyage_decisions_total",
			Help:      "Fused voyage decisions by label.",
		}, []string{"decision"}),
	}

	reg.MustRegister(
		m.FetchAttempts,
		m.FetchDuration,
		m.CacheHits,
		m.CacheMisses,
		m.CacheWrites,
		m.Decisions,
	)
	return m
}
