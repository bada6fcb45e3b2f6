package resilience

import (
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Health is a snapshot of one provider client's availability.
type Health struct {
	// Name is the provider identifier.
	Name string

	// BreakerState is the current circuit breaker state.
	BreakerState gobreaker.State

	// Counts contains breaker request statistics.
	Counts gobreaker.Counts

	// LastSuccessAt is when the provider last served a forecast.
	LastSuccessAt *time.Time

	// LastFailureAt is when the provider last failed.
	LastFailureAt *time.Time

	// LastError is the most recent failure message, if any.
	LastError string
}

// Healthy reports whether the breaker is closed.
func (h *Health) Healthy() bool {
	return h.BreakerState == gobreaker.StateClosed
}

// Registry tracks provider clients and their recent outcomes for the
// operational health endpoint.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*trackedClient
}

type trackedClient struct {
	client        *Client
	lastSuccessAt *time.Time
	lastFailureAt *time.Time
	lastError     string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*trackedClient)}
}

// Register adds a provider client to the registry.
func (r *Registry) Register(name string, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = &trackedClient{client: client}
}

// RecordSuccess notes a successful fetch for the provider.
func (r *Registry) RecordSuccess(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clients[name]; ok {
		now := time.Now()
		c.lastSuccessAt = &now
	}
}

// RecordFailure notes a failed fetch for the provider.
func (r *Registry) RecordFailure(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clients[name]; ok {
		now := time.Now()
		c.lastFailureAt = &now
		if err != nil {
			c.lastError = err.Error()
		}
	}
}

// HealthOf returns the health snapshot for one provider, or nil if it is
// not registered.
func (r *Registry) HealthOf(name string) *Health {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[name]
	if !ok {
		return nil
	}
	return snapshot(name, c)
}

// AllHealth returns snapshots for every registered provider.
func (r *Registry) AllHealth() []*Health {
	r.mu.RLock()
	defer r.mu.RUnlock()
	health := make([]*Health, 0, len(r.clients))
	for name, c := range r.clients {
		health = append(health, snapshot(name, c))
	}
	return health
}

func snapshot(name string, c *trackedClient) *Health {
	return &Health{
		Name:          name,
		BreakerState:  c.client.BreakerState(),
		Counts:        c.client.BreakerCounts(),
		LastSuccessAt: c.lastSuccessAt,
		LastFailureAt: c.lastFailureAt,
		LastError:     c.lastError,
	}
}
