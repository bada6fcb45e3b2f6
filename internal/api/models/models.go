// Package models defines the API request and response shapes.
package models

import (
	"time"

	"github.com/sailgate/sailgate/internal/eri"
	"github.com/sailgate/sailgate/internal/marine"
	"github.com/sailgate/sailgate/internal/voyage"
)

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ForecastResponse wraps a forecast window for one position.
type ForecastResponse struct {
	Lat    float64                `json:"lat"`
	Lon    float64                `json:"lon"`
	Hours  int                    `json:"hours"`
	Points []marine.ForecastPoint `json:"points"`
}

// RouteForecastResponse wraps a forecast window for a registered route.
type RouteForecastResponse struct {
	Route  voyage.Route           `json:"route"`
	Hours  int                    `json:"hours"`
	Points []marine.ForecastPoint `json:"points"`
}

// ERIPoint is one scored hour in an ERI response.
type ERIPoint struct {
	Timestamp     time.Time `json:"timestamp"`
	Score         float64   `json:"score"`
	Source        string    `json:"source"`
	HasMissing    bool      `json:"has_missing"`
	BiasCorrected bool      `json:"bias_corrected"`
}

// ERIResponse wraps the scored timeseries for a route.
type ERIResponse struct {
	RouteID string     `json:"route_id"`
	Points  []ERIPoint `json:"points"`
}

// NewERIResponse flattens computed ERI points into the wire shape.
func NewERIResponse(routeID string, points []eri.Point) ERIResponse {
	out := ERIResponse{RouteID: routeID, Points: make([]ERIPoint, 0, len(points))}
	for _, p := range points {
		out.Points = append(out.Points, ERIPoint{
			Timestamp:     p.Timestamp,
			Score:         p.Score,
			Source:        p.Quality.Source,
			HasMissing:    p.Quality.HasMissing,
			BiasCorrected: p.Quality.BiasCorrected,
		})
	}
	return out
}
