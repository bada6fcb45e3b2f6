package voyage

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// RefreshConfig controls the periodic cache warm job.
type RefreshConfig struct {
	// Concurrency is the number of parallel route fetches.
	Concurrency int

	// ForecastHours is the window requested per route.
	ForecastHours int

	// Timeout bounds a single route refresh.
	Timeout time.Duration
}

// DefaultRefreshConfig returns the standard warm-job settings.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Concurrency:   2,
		ForecastHours: 72,
		Timeout:       30 * time.Second,
	}
}

// RefreshJob keeps route forecasts warm by fetching every registered route
// through the provider fallback chain, which persists results to the cache.
type RefreshJob struct {
	config RefreshConfig
	repo   *Repository
	logger zerolog.Logger

	metrics RefreshMetrics
	mu      sync.Mutex
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	TotalRuns        int64
	SuccessfulRoutes int64
	FailedRoutes     int64
	LastRunAt        time.Time
	LastRunDuration  time.Duration
}

// RefreshResult summarizes one job run.
type RefreshResult struct {
	StartTime  time.Time
	Duration   time.Duration
	Successful int
	Failed     int
	Errors     []RefreshError
}

// RefreshError records one failed route refresh.
type RefreshError struct {
	RouteID string
	Error   string
}

// NewRefreshJob builds a refresh job, filling config defaults.
func NewRefreshJob(cfg RefreshConfig, repo *Repository, logger zerolog.Logger) *RefreshJob {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultRefreshConfig().Concurrency
	}
	if cfg.ForecastHours <= 0 {
		cfg.ForecastHours = DefaultRefreshConfig().ForecastHours
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRefreshConfig().Timeout
	}
	return &RefreshJob{config: cfg, repo: repo, logger: logger}
}

// Run refreshes every registered route once and returns a summary.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	start := time.Now()
	routes := j.repo.Routes().All()

	j.logger.Info().
		Int("routes", len(routes)).
		Int("concurrency", j.config.Concurrency).
		Msg("starting route forecast refresh")

	routesChan := make(chan Route, len(routes))
	resultsChan := make(chan routeResult, len(routes))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.refreshWorker(ctx, routesChan, resultsChan)
		}()
	}

	for _, r := range routes {
		routesChan <- r
	}
	close(routesChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	result := &RefreshResult{StartTime: start}
	for rr := range resultsChan {
		if rr.err != nil {
			result.Failed++
			result.Errors = append(result.Errors, RefreshError{RouteID: rr.routeID, Error: rr.err.Error()})
		} else {
			result.Successful++
		}
	}
	result.Duration = time.Since(start)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("route forecast refresh completed")

	return result
}

type routeResult struct {
	routeID string
	err     error
}

func (j *RefreshJob) refreshWorker(ctx context.Context, routes <-chan Route, results chan<- routeResult) {
	for route := range routes {
		select {
		case <-ctx.Done():
			return
		default:
			results <- routeResult{routeID: route.ID, err: j.refreshRoute(ctx, route)}
		}
	}
}

func (j *RefreshJob) refreshRoute(ctx context.Context, route Route) error {
	routeCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	_, _, err := j.repo.FetchForRoute(routeCtx, route.ID, j.config.ForecastHours)
	if err != nil {
		j.logger.Warn().Err(err).Str("route", route.ID).Msg("route refresh failed")
	}
	return err
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.metrics.TotalRuns++
	j.metrics.SuccessfulRoutes += int64(result.Successful)
	j.metrics.FailedRoutes += int64(result.Failed)
	j.metrics.LastRunAt = result.StartTime.Add(result.Duration)
	j.metrics.LastRunDuration = result.Duration
}

// Metrics returns a copy of the accumulated job statistics.
func (j *RefreshJob) Metrics() RefreshMetrics {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.metrics
}
