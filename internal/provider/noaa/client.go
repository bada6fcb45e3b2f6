// Package noaa adapts a NOAA WaveWatch III JSON export endpoint to the
// provider contract. The endpoint is deployment-specific and configured,
// not hardcoded.
package noaa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/sailgate/sailgate/internal/marine"
	"github.com/sailgate/sailgate/internal/provider"
	"github.com/sailgate/sailgate/internal/provider/resilience"
)

// ProviderName identifies this adapter.
const ProviderName = "noaa-ww3"

// ClientConfig holds configuration for the NOAA WW3 adapter.
type ClientConfig struct {
	// Endpoint is the WW3 JSON export URL (required).
	Endpoint string

	// HTTPClient is the resilient client to use (optional).
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is the NOAA WaveWatch III provider adapter.
type Client struct {
	endpoint   string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a NOAA WW3 adapter.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string { return ProviderName }

// FetchForecast fetches wave-model forecasts for the location.
func (c *Client) FetchForecast(ctx context.Context, lat, lon float64, hours int) ([]marine.ForecastPoint, error) {
	if c.endpoint == "" {
		return nil, provider.NewError(provider.CodeConfig, "NOAA WW3 endpoint not configured")
	}

	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%.4f", lat))
	query.Set("lon", fmt.Sprintf("%.4f", lon))
	query.Set("hours", fmt.Sprintf("%d", hours))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, provider.WrapError(provider.CodeConfig, "building NOAA request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, provider.TransportError(ProviderName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, provider.StatusError(ProviderName, resp.StatusCode)
	}

	var body exportResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, provider.WrapError(provider.CodeData, "decoding NOAA response", err)
	}
	if len(body.Data) == 0 {
		return nil, provider.NewError(provider.CodeData, "NOAA payload missing data")
	}

	points := make([]marine.ForecastPoint, 0, len(body.Data))
	for _, rec := range body.Data {
		ts, err := time.Parse(time.RFC3339, rec.Time)
		if err != nil {
			c.logger.Warn().Str("time", rec.Time).Msg("skipping NOAA record with bad timestamp")
			continue
		}
		points = append(points, marine.ForecastPoint{
			Time:           ts.UTC(),
			Lat:            lat,
			Lon:            lon,
			Hs:             rec.Hs,
			Tp:             rec.Tp,
			Dp:             rec.Dp,
			WindSpeed:      knots(rec.WindSpeed),
			WindDirection:  rec.WindDir,
			SwellHeight:    rec.SwellHeight,
			SwellPeriod:    rec.SwellPeriod,
			SwellDirection: rec.SwellDirection,
		})
	}
	if len(points) == 0 {
		return nil, provider.NewError(provider.CodeData, "NOAA returned no usable records")
	}
	return points, nil
}

// NOAA WW3 export wire structures.

type exportResponse struct {
	Data []exportRecord `json:"data"`
}

// knots converts the model's m/s wind to the canonical knot unit.
func knots(v *float64) *float64 {
	if v == nil {
		return nil
	}
	k := marine.MetersPerSecondToKnots(*v)
	return &k
}

type exportRecord struct {
	Time           string   `json:"time"`
	Hs             *float64 `json:"hs"`
	Tp             *float64 `json:"tp"`
	Dp             *float64 `json:"dp"`
	WindSpeed      *float64 `json:"wind_speed"`
	WindDir        *float64 `json:"wind_dir"`
	SwellHeight    *float64 `json:"swell_height"`
	SwellPeriod    *float64 `json:"swell_period"`
	SwellDirection *float64 `json:"swell_direction"`
}
