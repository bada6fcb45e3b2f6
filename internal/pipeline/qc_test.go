package pipeline_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sailgate/sailgate/internal/marine"
	"github.com/sailgate/sailgate/internal/pipeline"
)

func wavePoint(ts time.Time, value float64, flag marine.QualityFlag) marine.DataPoint {
	return marine.DataPoint{
		Timestamp: ts,
		Position:  marine.Position{Latitude: 24.35, Longitude: 54.47},
		Measurements: []marine.Measurement{
			{Variable: marine.VarWaveHeight, Value: value, Unit: marine.UnitMeters, Flag: flag},
		},
		Meta: marine.Metadata{Source: "test"},
	}
}

func waveSeries(values ...float64) marine.Timeseries {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	points := make([]marine.DataPoint, 0, len(values))
	for i, v := range values {
		points = append(points, wavePoint(base.Add(time.Duration(i)*time.Hour), v, marine.FlagRaw))
	}
	return marine.Timeseries{Points: points}
}

func TestApplyQualityControls_PhysicalClip(t *testing.T) {
	series := waveSeries(1.0, 1.2, 6.0)
	bounds := pipeline.PhysicalBounds{marine.VarWaveHeight: {Min: 0, Max: 4.0}}

	cleaned := pipeline.ApplyQualityControls(series, bounds, pipeline.DefaultIQRMultiplier)
	require.Len(t, cleaned.Points, 3)

	m, _ := cleaned.Points[2].Measurement(marine.VarWaveHeight)
	assert.Equal(t, 4.0, m.Value)
	assert.Equal(t, marine.FlagClipped, m.Flag)

	m, _ = cleaned.Points[0].Measurement(marine.VarWaveHeight)
	assert.Equal(t, 1.0, m.Value)
	assert.Equal(t, marine.FlagRaw, m.Flag)
}

func TestApplyQualityControls_IQRClip(t *testing.T) {
	series := waveSeries(1.0, 1.0, 1.1, 1.1, 1.2, 1.2, 1.3, 10.0)

	cleaned := pipeline.ApplyQualityControls(series, nil, pipeline.DefaultIQRMultiplier)
	require.Len(t, cleaned.Points, 8)

	outlier, _ := cleaned.Points[7].Measurement(marine.VarWaveHeight)
	assert.Less(t, outlier.Value, 2.0)
	assert.Equal(t, marine.FlagClipped, outlier.Flag)

	for _, p := range cleaned.Points[:7] {
		m, _ := p.Measurement(marine.VarWaveHeight)
		assert.Equal(t, marine.FlagRaw, m.Flag)
	}
}

func TestApplyQualityControls_PreservesExistingFlag(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	series := marine.Timeseries{Points: []marine.DataPoint{
		wavePoint(base, 1.0, marine.FlagImputed),
	}}

	cleaned := pipeline.ApplyQualityControls(series, nil, pipeline.DefaultIQRMultiplier)
	m, _ := cleaned.Points[0].Measurement(marine.VarWaveHeight)
	assert.Equal(t, marine.FlagImputed, m.Flag)
}

func TestApplyQualityControls_Idempotent(t *testing.T) {
	series := waveSeries(1.0, 1.0, 1.1, 1.1, 1.2, 1.2, 1.3, 10.0)
	bounds := pipeline.PhysicalBounds{marine.VarWaveHeight: {Min: 0, Max: 4.0}}

	once := pipeline.ApplyQualityControls(series, bounds, pipeline.DefaultIQRMultiplier)
	twice := pipeline.ApplyQualityControls(once, bounds, pipeline.DefaultIQRMultiplier)

	assert.Equal(t, once, twice)
}

func TestIQRBounds_SmallSampleUnbounded(t *testing.T) {
	r := pipeline.IQRBounds([]float64{1.0, 2.0, 100.0}, pipeline.DefaultIQRMultiplier)
	assert.True(t, math.IsInf(r.Min, -1))
	assert.True(t, math.IsInf(r.Max, 1))
}

func TestIQRBounds_InclusiveQuantiles(t *testing.T) {
	r := pipeline.IQRBounds([]float64{1, 2, 3, 4}, pipeline.DefaultIQRMultiplier)
	assert.Equal(t, -0.5, r.Min)
	assert.Equal(t, 5.5, r.Max)
}

func TestRangeClip(t *testing.T) {
	r := pipeline.Range{Min: 0, Max: 4}
	assert.Equal(t, 0.0, r.Clip(-1))
	assert.Equal(t, 2.5, r.Clip(2.5))
	assert.Equal(t, 4.0, r.Clip(9))
}
