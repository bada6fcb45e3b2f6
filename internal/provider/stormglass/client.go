// Package stormglass adapts the Stormglass point-weather API to the
// provider contract.
package stormglass

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
	ProviderName = "stormglass"

	// DefaultBaseURL is the Stormglass point-weather endpoint.
	DefaultBaseURL = "https://api.stormglass.io/v2/weather/point"
)

// requestedParams are the marine quantities asked of every fetch.
const requestedParams = "waveHeight,wavePeriod,waveDirection,windSpeed,windDirection,swellHeight,swellPeriod,swellDirection"

// ClientConfig holds configuration for the Stormglass adapter.
type ClientConfig struct {
	// APIKey authenticates requests (required).
	APIKey string

	// BaseURL overrides the API endpoint (optional).
	BaseURL string

	// HTTPClient is the resilient client to use (optional).
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is the Stormglass provider adapter.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a Stormglass adapter.
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
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string { return ProviderName }

// FetchForecast fetches hourly marine forecasts for the location.
func (c *Client) FetchForecast(ctx context.Context, lat, lon float64, hours int) ([]marine.ForecastPoint, error) {
	if c.apiKey == "" {
		return nil, provider.NewError(provider.CodeConfig, "stormglass API key missing")
	}

	start := time.Now().UTC()
	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%.4f", lat))
	query.Set("lng", fmt.Sprintf("%.4f", lon))
	query.Set("params", requestedParams)
	query.Set("start", start.Format(time.RFC3339))
	query.Set("end", start.Add(time.Duration(hours)*time.Hour).Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, provider.WrapError(provider.CodeConfig, "building stormglass request", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, provider.TransportError(ProviderName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, provider.StatusError(ProviderName, resp.StatusCode)
	}

	var body pointResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, provider.WrapError(provider.CodeData, "decoding stormglass response", err)
	}
	return c.toForecast(&body, lat, lon), nil
}

// toForecast converts the Stormglass wire format to canonical points.
func (c *Client) toForecast(resp *pointResponse, lat, lon float64) []marine.ForecastPoint {
	points := make([]marine.ForecastPoint, 0, len(resp.Hours))
	for _, h := range resp.Hours {
		ts, err := time.Parse(time.RFC3339, h.Time)
		if err != nil {
			c.logger.Warn().Str("time", h.Time).Msg("skipping stormglass record with bad timestamp")
			continue
		}
		points = append(points, marine.ForecastPoint{
			Time:           ts.UTC(),
			Lat:            lat,
			Lon:            lon,
			Hs:             h.WaveHeight.value(),
			Tp:             h.WavePeriod.value(),
			Dp:             h.WaveDirection.value(),
			WindSpeed:      knots(h.WindSpeed.value()),
			WindDirection:  h.WindDirection.value(),
			SwellHeight:    h.SwellHeight.value(),
			SwellPeriod:    h.SwellPeriod.value(),
			SwellDirection: h.SwellDirection.value(),
		})
	}
	return points
}

// Stormglass wire structures. Each quantity arrives keyed by model source;
// the "sg" merged value is used.

type pointResponse struct {
	Hours []hourRecord `json:"hours"`
}

type hourRecord struct {
	Time           string      `json:"time"`
	WaveHeight     sourceValue `json:"waveHeight"`
	WavePeriod     sourceValue `json:"wavePeriod"`
	WaveDirection  sourceValue `json:"waveDirection"`
	WindSpeed      sourceValue `json:"windSpeed"`
	WindDirection  sourceValue `json:"windDirection"`
	SwellHeight    sourceValue `json:"swellHeight"`
	SwellPeriod    sourceValue `json:"swellPeriod"`
	SwellDirection sourceValue `json:"swellDirection"`
}

type sourceValue struct {
	SG *float64 `json:"sg"`
}

func (v sourceValue) value() *float64 { return v.SG }

// knots converts a reported m/s wind to the canonical knot unit.
func knots(v *float64) *float64 {
	if v == nil {
		return nil
	}
	k := marine.MetersPerSecondToKnots(*v)
	return &k
}
