// Package openmeteo adapts the keyless Open-Meteo marine API to the
// provider contract.
package openmeteo

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

const (
	// ProviderName identifies this adapter.
	ProviderName = "open-meteo"

	// DefaultBaseURL is the Open-Meteo marine API endpoint.
	DefaultBaseURL = "https://marine-api.open-meteo.com/v1/marine"
)

// ClientConfig holds configuration for the Open-Meteo adapter.
type ClientConfig struct {
	// BaseURL overrides the API endpoint (optional).
	BaseURL string

	// HTTPClient is the resilient client to use (optional).
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is the Open-Meteo marine provider adapter. The API needs no key,
// which makes it the usual free fallback behind paid sources.
type Client struct {
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates an Open-Meteo adapter.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string { return ProviderName }

// FetchForecast fetches hourly marine forecasts for the location.
func (c *Client) FetchForecast(ctx context.Context, lat, lon float64, hours int) ([]marine.ForecastPoint, error) {
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.4f", lat))
	query.Set("longitude", fmt.Sprintf("%.4f", lon))
	query.Set("hourly", "wave_height,wave_period,wave_direction,wind_wave_height,wind_wave_period")
	query.Set("forecast_hours", fmt.Sprintf("%d", hours))
	query.Set("timeformat", "iso8601")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, provider.WrapError(provider.CodeConfig, "building open-meteo request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, provider.TransportError(ProviderName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, provider.StatusError(ProviderName, resp.StatusCode)
	}

	var body marineResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, provider.WrapError(provider.CodeData, "decoding open-meteo response", err)
	}
	return c.toForecast(&body, lat, lon), nil
}

// toForecast converts the parallel hourly arrays into canonical points.
// Arrays can be ragged when the API truncates a series; indexes past an
// array's end are treated as not reported.
func (c *Client) toForecast(resp *marineResponse, lat, lon float64) []marine.ForecastPoint {
	points := make([]marine.ForecastPoint, 0, len(resp.Hourly.Time))
	for i, raw := range resp.Hourly.Time {
		ts, err := time.Parse("2006-01-02T15:04", raw)
		if err != nil {
			c.logger.Warn().Str("time", raw).Msg("skipping open-meteo record with bad timestamp")
			continue
		}
		points = append(points, marine.ForecastPoint{
			Time:        ts.UTC(),
			Lat:         lat,
			Lon:         lon,
			Hs:          at(resp.Hourly.WaveHeight, i),
			Tp:          at(resp.Hourly.WavePeriod, i),
			Dp:          at(resp.Hourly.WaveDirection, i),
			SwellHeight: at(resp.Hourly.WindWaveHeight, i),
			SwellPeriod: at(resp.Hourly.WindWavePeriod, i),
		})
	}
	return points
}

func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

// Open-Meteo wire structures.

type marineResponse struct {
	Hourly struct {
		Time           []string   `json:"time"`
		WaveHeight     []*float64 `json:"wave_height"`
		WavePeriod     []*float64 `json:"wave_period"`
		WaveDirection  []*float64 `json:"wave_direction"`
		WindWaveHeight []*float64 `json:"wind_wave_height"`
		WindWavePeriod []*float64 `json:"wind_wave_period"`
	} `json:"hourly"`
}
