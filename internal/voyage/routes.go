package voyage

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sailgate/sailgate/pkg/geo"
)

// Route describes a named voyage corridor as an ordered list of waypoints.
// The first waypoint is the forecast reference point for the whole corridor.
type Route struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Waypoints      []geo.Point `json:"waypoints"`
	PlannedSpeedKt float64     `json:"planned_speed_kt"`
}

// DistanceNM returns the total leg distance along the route.
func (r Route) DistanceNM() float64 {
	return geo.RouteDistanceNM(r.Waypoints)
}

// Reference returns the forecast anchor point for the route.
func (r Route) Reference() geo.Point {
	if len(r.Waypoints) == 0 {
		return geo.Point{}
	}
	return r.Waypoints[0]
}

// Registry is a concurrency-safe in-memory route catalog.
type Registry struct {
	mu     sync.RWMutex
	routes map[string]Route
}

// NewRegistry returns a registry seeded with the built-in routes.
func NewRegistry() *Registry {
	reg := &Registry{routes: make(map[string]Route)}
	for _, r := range builtinRoutes() {
		reg.routes[r.ID] = r
	}
	return reg
}

// Get looks up a route by ID.
func (reg *Registry) Get(id string) (Route, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.routes[id]
	if !ok {
		return Route{}, fmt.Errorf("unknown route %q", id)
	}
	return r, nil
}

// Put registers or replaces a route.
func (reg *Registry) Put(r Route) error {
	if r.ID == "" {
		return fmt.Errorf("route ID required")
	}
	if len(r.Waypoints) < 2 {
		return fmt.Errorf("route %q needs at least two waypoints", r.ID)
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.routes[r.ID] = r
	return nil
}

// All returns every registered route sorted by ID.
func (reg *Registry) All() []Route {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]Route, 0, len(reg.routes))
	for _, r := range reg.routes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func builtinRoutes() []Route {
	return []Route{
		{
			ID:   "MW4-AGI",
			Name: "Mina Wharf 4 to Al Ghallan Island",
			Waypoints: []geo.Point{
				{Lat: 24.3488, Lon: 54.4651},
				{Lat: 24.40, Lon: 54.70},
				{Lat: 24.45, Lon: 54.65},
			},
			PlannedSpeedKt: 10,
		},
	}
}
