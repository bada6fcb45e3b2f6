// Package resilience wraps outbound forecast-provider HTTP calls with
// bounded retries, per-call timeouts and a circuit breaker. Retries stay
// local and fast; cross-provider recovery belongs to the fallback chain.
package resilience

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig holds circuit breaker settings for one provider client.
type BreakerConfig struct {
	// Name identifies the breaker for logging.
	Name string

	// MaxRequests allowed through in half-open state. Default: 1.
	MaxRequests uint32

	// Interval for clearing counts while closed. Default: 0 (disabled).
	Interval time.Duration

	// OpenTimeout is how long the breaker stays open before probing.
	// Default: 60 seconds.
	OpenTimeout time.Duration

	// ReadyToTrip overrides the default trip condition (five or more
	// requests with at least half failing).
	ReadyToTrip func(counts gobreaker.Counts) bool

	// OnStateChange is notified on breaker transitions.
	OnStateChange func(name string, from gobreaker.State, to gobreaker.State)
}

// DefaultBreakerConfig returns the settings used for forecast providers.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:        name,
		MaxRequests: 1,
		OpenTimeout: 60 * time.Second,
		ReadyToTrip: defaultReadyToTrip,
	}
}

func defaultReadyToTrip(counts gobreaker.Counts) bool {
	failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
	return counts.Requests >= 5 && failureRatio >= 0.5
}

func newBreaker[T any](cfg BreakerConfig) *gobreaker.CircuitBreaker[T] {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: cfg.ReadyToTrip,
	}
	if cfg.OnStateChange != nil {
		settings.OnStateChange = cfg.OnStateChange
	}
	return gobreaker.NewCircuitBreaker[T](settings)
}
