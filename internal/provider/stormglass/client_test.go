package stormglass_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sailgate/sailgate/internal/provider"
	"github.com/sailgate/sailgate/internal/provider/resilience"
	"github.com/sailgate/sailgate/internal/provider/stormglass"
)

func TestClient_FetchForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "****", r.Header.Get("Authorization"))
		assert.Equal(t, "24.3488", r.URL.Query().Get("lat"))
		assert.Equal(t, "54.4651", r.URL.Query().Get("lng"))
		assert.NotEmpty(t, r.URL.Query().Get("start"))
		assert.NotEmpty(t, r.URL.Query().Get("end"))
		assert.Contains(t, r.URL.Query().Get("params"), "waveHeight")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"hours": [
				{
					"time": "2026-03-01T06:00:00+00:00",
					"waveHeight": {"sg": 1.2},
					"wavePeriod": {"sg": 7.5},
					"waveDirection": {"sg": 310.0},
					"windSpeed": {"sg": 6.2},
					"windDirection": {"sg": 295.0},
					"swellHeight": {"sg": 0.6},
					"swellPeriod": {"sg": 9.0}
				},
				{
					"time": "not-a-timestamp",
					"waveHeight": {"sg": 1.3}
				},
				{
					"time": "2026-03-01T07:00:00+00:00",
					"waveHeight": {"sg": 1.4}
				}
			]
		}`))
	}))
	defer server.Close()

	client := stormglass.NewClient(stormglass.ClientConfig{
		APIKey:     "****",
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	points, err := client.FetchForecast(context.Background(), 24.3488, 54.4651, 24)
	require.NoError(t, err)
	require.Len(t, points, 2) // bad-timestamp record skipped

	first := points[0]
	assert.Equal(t, time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC), first.Time)
	assert.Equal(t, 24.3488, first.Lat)
	assert.Equal(t, 54.4651, first.Lon)
	require.NotNil(t, first.Hs)
	assert.Equal(t, 1.2, *first.Hs)
	require.NotNil(t, first.WindSpeed)
	assert.Equal(t, 12.05, *first.WindSpeed) // 6.2 m/s converted to knots
	require.NotNil(t, first.SwellPeriod)
	assert.Equal(t, 9.0, *first.SwellPeriod)
	assert.Nil(t, first.SwellDirection)

	second := points[1]
	assert.Equal(t, time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC), second.Time)
	require.NotNil(t, second.Hs)
	assert.Equal(t, 1.4, *second.Hs)
	assert.Nil(t, second.WindSpeed)
}

func TestClient_FetchForecast_MissingAPIKey(t *testing.T) {
	client := stormglass.NewClient(stormglass.ClientConfig{})

	points, err := client.FetchForecast(context.Background(), 24.3488, 54.4651, 24)
	require.Error(t, err)
	assert.Nil(t, points)

	provErr, ok := provider.AsError(err)
	require.True(t, ok)
	assert.Equal(t, provider.CodeConfig, provErr.Code)
}

func TestClient_FetchForecast_QuotaExceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := stormglass.NewClient(stormglass.ClientConfig{
		APIKey:     "****",
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	_, err := client.FetchForecast(context.Background(), 24.3488, 54.4651, 24)
	require.Error(t, err)

	provErr, ok := provider.AsError(err)
	require.True(t, ok)
	assert.Equal(t, provider.CodeQuota, provErr.Code)
}

func TestClient_Name(t *testing.T) {
	client := stormglass.NewClient(stormglass.ClientConfig{APIKey: "****"})
	assert.Equal(t, stormglass.ProviderName, client.Name())
}
