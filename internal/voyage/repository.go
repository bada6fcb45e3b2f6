package voyage

import (
	"context"
	"fmt"

	"github.com/sailgate/sailgate/internal/marine"
	"github.com/sailgate/sailgate/internal/provider"
)

// Repository resolves forecasts for registered routes through the provider
// manager's cache and fallback chain.
type Repository struct {
	routes  *Registry
	manager *provider.Manager
}

// NewRepository wires the route catalog to the provider manager.
func NewRepository(routes *Registry, manager *provider.Manager) *Repository {
	return &Repository{routes: routes, manager: manager}
}

// Routes exposes the underlying route catalog.
func (r *Repository) Routes() *Registry {
	return r.routes
}

// FetchForPoint fetches a forecast window at an arbitrary position.
func (r *Repository) FetchForPoint(ctx context.Context, lat, lon float64, hours int) ([]marine.ForecastPoint, error) {
	return r.manager.FetchWithFallback(ctx, lat, lon, hours)
}

// FetchForRoute fetches the forecast window at a route's reference point.
func (r *Repository) FetchForRoute(ctx context.Context, routeID string, hours int) (Route, []marine.ForecastPoint, error) {
	route, err := r.routes.Get(routeID)
	if err != nil {
		return Route{}, nil, err
	}
	ref := route.Reference()
	points, err := r.manager.FetchWithFallback(ctx, ref.Lat, ref.Lon, hours)
	if err != nil {
		return route, nil, fmt.Errorf("fetch forecast for route %s: %w", routeID, err)
	}
	return route, points, nil
}
