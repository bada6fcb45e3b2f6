package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sailgate/sailgate/internal/marine"
	"github.com/sailgate/sailgate/internal/pipeline"
)

func TestApplyBiasCorrection_Disabled(t *testing.T) {
	series := waveSeries(2.0, 3.0)

	out := pipeline.ApplyBiasCorrection(series, nil, false)
	require.Len(t, out.Points, 2)
	for i, p := range out.Points {
		m, _ := p.Measurement(marine.VarWaveHeight)
		original, _ := series.Points[i].Measurement(marine.VarWaveHeight)
		assert.Equal(t, original.Value, m.Value)
		assert.False(t, p.Meta.BiasCorrected)
	}
}

func TestApplyBiasCorrection_RescalesToBackground(t *testing.T) {
	series := waveSeries(2.0, 3.0)
	background := map[marine.Variable][]float64{
		marine.VarWaveHeight: {0.9, 1.0, 1.1},
	}

	out := pipeline.ApplyBiasCorrection(series, background, true)
	require.Len(t, out.Points, 2)

	// Series mean 2.5 sigma 0.5; background mean 1.0 sigma ~0.0816.
	lo, _ := out.Points[0].Measurement(marine.VarWaveHeight)
	hi, _ := out.Points[1].Measurement(marine.VarWaveHeight)
	assert.InDelta(t, 0.9184, lo.Value, 1e-4)
	assert.InDelta(t, 1.0816, hi.Value, 1e-4)

	for _, p := range out.Points {
		assert.True(t, p.Meta.BiasCorrected)
	}
}

func TestApplyBiasCorrection_ZeroVariancePassthrough(t *testing.T) {
	series := waveSeries(1.5, 1.5, 1.5)
	background := map[marine.Variable][]float64{
		marine.VarWaveHeight: {0.9, 1.0, 1.1},
	}

	out := pipeline.ApplyBiasCorrection(series, background, true)
	for _, p := range out.Points {
		m, _ := p.Measurement(marine.VarWaveHeight)
		assert.Equal(t, 1.5, m.Value)
		assert.True(t, p.Meta.BiasCorrected)
	}
}

func TestApplyBiasCorrection_MissingBackgroundPassthrough(t *testing.T) {
	series := waveSeries(2.0, 3.0)

	out := pipeline.ApplyBiasCorrection(series, map[marine.Variable][]float64{}, true)
	vals := make([]float64, 0, 2)
	for _, p := range out.Points {
		m, _ := p.Measurement(marine.VarWaveHeight)
		vals = append(vals, m.Value)
		assert.True(t, p.Meta.BiasCorrected)
	}
	assert.Equal(t, []float64{2.0, 3.0}, vals)
}
