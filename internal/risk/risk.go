// Package risk summarizes a forecast window into a coarse Low/Medium/High
// assessment used by the voyage scheduler.
package risk

import (
	"errors"
	"fmt"

	"github.com/sailgate/sailgate/internal/marine"
)

// ErrEmptyForecast reports an assessment attempted over no points.
var ErrEmptyForecast = errors.New("forecast data required for risk assessment")

// Level is the coarse risk classification.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Config holds the wave and wind thresholds separating the levels.
type Config struct {
	MediumWaveM  float64
	HighWaveM    float64
	MediumWindKt float64
	HighWindKt   float64
}

// DefaultConfig returns the operational thresholds.
func DefaultConfig() Config {
	return Config{
		MediumWaveM:  2.0,
		HighWaveM:    3.0,
		MediumWindKt: 22.0,
		HighWindKt:   28.0,
	}
}

// Metrics are the summary statistics backing an assessment. Pointer fields
// are nil when the forecast never reported that quantity.
type Metrics struct {
	MaxWaveHeightM  float64  `json:"max_wave_height_m"`
	MaxWindSpeedKt  float64  `json:"max_wind_speed_kt"`
	DominantWaveDir *float64 `json:"dominant_wave_dir,omitempty"`
	DominantWindDir *float64 `json:"dominant_wind_dir,omitempty"`
	AvgSwellPeriodS *float64 `json:"avg_swell_period_s,omitempty"`
}

// Assessment is the result of scoring one forecast window.
type Assessment struct {
	Level   Level    `json:"level"`
	Reasons []string `json:"reasons"`
	Metrics Metrics  `json:"metrics"`
}

// Assess classifies a forecast window against the configured thresholds.
// The level is driven by worst-case wave height and wind speed over the
// window.
func Assess(points []marine.ForecastPoint, cfg Config) (Assessment, error) {
	if len(points) == 0 {
		return Assessment{}, ErrEmptyForecast
	}

	maxWave := collectMax(points, func(p marine.ForecastPoint) *float64 { return p.Hs })
	maxWind := collectMax(points, func(p marine.ForecastPoint) *float64 { return p.WindSpeed })

	level := LevelLow
	var reasons []string

	switch {
	case maxWave >= cfg.HighWaveM:
		level = LevelHigh
		reasons = append(reasons, fmt.Sprintf(
			"significant wave height %.2f m exceeds high threshold %.2f m", maxWave, cfg.HighWaveM))
	case maxWave >= cfg.MediumWaveM:
		level = LevelMedium
		reasons = append(reasons, fmt.Sprintf(
			"significant wave height %.2f m exceeds medium threshold %.2f m", maxWave, cfg.MediumWaveM))
	}

	switch {
	case maxWind >= cfg.HighWindKt:
		level = LevelHigh
		reasons = append(reasons, fmt.Sprintf(
			"wind speed %.2f kt exceeds high threshold %.2f kt", maxWind, cfg.HighWindKt))
	case maxWind >= cfg.MediumWindKt:
		if level == LevelLow {
			level = LevelMedium
		}
		reasons = append(reasons, fmt.Sprintf(
			"wind speed %.2f kt exceeds medium threshold %.2f kt", maxWind, cfg.MediumWindKt))
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "all monitored conditions below thresholds")
	}

	metrics := Metrics{
		MaxWaveHeightM:  marine.Round2(maxWave),
		MaxWindSpeedKt:  marine.Round2(maxWind),
		DominantWaveDir: roundedMean(points, func(p marine.ForecastPoint) *float64 { return p.Dp }),
		DominantWindDir: roundedMean(points, func(p marine.ForecastPoint) *float64 { return p.WindDirection }),
		AvgSwellPeriodS: roundedMean(points, func(p marine.ForecastPoint) *float64 { return p.SwellPeriod }),
	}

	return Assessment{Level: level, Reasons: reasons, Metrics: metrics}, nil
}

func collectMax(points []marine.ForecastPoint, field func(marine.ForecastPoint) *float64) float64 {
	var maxValue float64
	for _, p := range points {
		if v := field(p); v != nil && *v > maxValue {
			maxValue = *v
		}
	}
	return maxValue
}

func roundedMean(points []marine.ForecastPoint, field func(marine.ForecastPoint) *float64) *float64 {
	var sum float64
	var n int
	for _, p := range points {
		if v := field(p); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := marine.Round2(sum / float64(n))
	return &mean
}
