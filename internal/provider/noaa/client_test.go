package noaa_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sailgate/sailgate/internal/provider"
	"github.com/sailgate/sailgate/internal/provider/noaa"
	"github.com/sailgate/sailgate/internal/provider/resilience"
)

func TestClient_FetchForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "24.3488", r.URL.Query().Get("lat"))
		assert.Equal(t, "54.4651", r.URL.Query().Get("lon"))
		assert.Equal(t, "48", r.URL.Query().Get("hours"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": [
				{
					"time": "2026-03-01T06:00:00Z",
					"hs": 1.8,
					"tp": 8.2,
					"dp": 320.0,
					"wind_speed": 7.7,
					"wind_dir": 310.0,
					"swell_height": 1.1,
					"swell_period": 10.5,
					"swell_direction": 315.0
				},
				{
					"time": "2026-03-01T09:00:00Z",
					"hs": 2.1,
					"tp": 8.0
				}
			]
		}`))
	}))
	defer server.Close()

	client := noaa.NewClient(noaa.ClientConfig{
		Endpoint:   server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	points, err := client.FetchForecast(context.Background(), 24.3488, 54.4651, 48)
	require.NoError(t, err)
	require.Len(t, points, 2)

	first := points[0]
	assert.Equal(t, time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC), first.Time)
	require.NotNil(t, first.Hs)
	assert.Equal(t, 1.8, *first.Hs)
	require.NotNil(t, first.WindSpeed)
	assert.Equal(t, 14.97, *first.WindSpeed) // 7.7 m/s converted to knots
	require.NotNil(t, first.SwellDirection)
	assert.Equal(t, 315.0, *first.SwellDirection)

	second := points[1]
	require.NotNil(t, second.Hs)
	assert.Equal(t, 2.1, *second.Hs)
	assert.Nil(t, second.WindSpeed)
}

func TestClient_FetchForecast_MissingEndpoint(t *testing.T) {
	client := noaa.NewClient(noaa.ClientConfig{})

	_, err := client.FetchForecast(context.Background(), 24.3488, 54.4651, 48)
	require.Error(t, err)

	provErr, ok := provider.AsError(err)
	require.True(t, ok)
	assert.Equal(t, provider.CodeConfig, provErr.Code)
}

func TestClient_FetchForecast_EmptyPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := noaa.NewClient(noaa.ClientConfig{
		Endpoint:   server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	_, err := client.FetchForecast(context.Background(), 24.3488, 54.4651, 48)
	require.Error(t, err)

	provErr, ok := provider.AsError(err)
	require.True(t, ok)
	assert.Equal(t, provider.CodeData, provErr.Code)
}

func TestClient_FetchForecast_NoUsableRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [{"time": "yesterday", "hs": 1.0}]}`))
	}))
	defer server.Close()

	client := noaa.NewClient(noaa.ClientConfig{
		Endpoint:   server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	_, err := client.FetchForecast(context.Background(), 24.3488, 54.4651, 48)
	require.Error(t, err)

	provErr, ok := provider.AsError(err)
	require.True(t, ok)
	assert.Equal(t, provider.CodeData, provErr.Code)
}

func TestClient_Name(t *testing.T) {
	client := noaa.NewClient(noaa.ClientConfig{})
	assert.Equal(t, noaa.ProviderName, client.Name())
}
