// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting for the API and worker binaries.
type Config struct {
	// Environment is the deployment environment name (development, production).
	Environment string

	// HTTPAddr is the listen address for the API server.
	HTTPAddr string

	// Providers, in fallback priority order.
	StormglassAPIKey string
	OpenMeteoBaseURL string
	NOAAEndpoint     string

	// Forecast cache.
	CacheDir      string
	CacheTTL      time.Duration
	CacheStaleTTL time.Duration

	// ForecastHours is the default window requested from providers.
	ForecastHours int

	// ERIRulesPath points at the threshold rules YAML file.
	ERIRulesPath string

	// RefreshInterval drives the worker's cache warm schedule.
	RefreshInterval time.Duration

	// Telemetry.
	TelemetryEnabled bool
	OTLPEndpoint     string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment:      getenvDefault("APP_ENV", "development"),
		HTTPAddr:         ":" + getenvDefault("APP_PORT", "8080"),
		StormglassAPIKey: os.Getenv("STORMGLASS_API_KEY"),
		OpenMeteoBaseURL: os.Getenv("OPENMETEO_BASE_URL"),
		NOAAEndpoint:     os.Getenv("NOAA_ENDPOINT"),
		CacheDir:         getenvDefault("FORECAST_CACHE_DIR", "data/cache"),
		ForecastHours:    getenvInt("FORECAST_HOURS", 72),
		ERIRulesPath:     getenvDefault("ERI_RULES_PATH", "configs/eri_rules.yaml"),
		TelemetryEnabled: os.Getenv("OTEL_ENABLED") == "true",
		OTLPEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	var err error
	if cfg.CacheTTL, err = getenvDuration("FORECAST_CACHE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CacheStaleTTL, err = getenvDuration("FORECAST_CACHE_STALE_TTL", 3*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", 30*time.Minute); err != nil {
		return nil, err
	}

	if cfg.CacheStaleTTL < cfg.CacheTTL {
		return nil, fmt.Errorf("FORECAST_CACHE_STALE_TTL must not be shorter than FORECAST_CACHE_TTL")
	}
	if cfg.ForecastHours <= 0 {
		return nil, fmt.Errorf("FORECAST_HOURS must be positive")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
