package pipeline

import (
	"math"

	"github.com/sailgate/sailgate/internal/marine"
)

// sigmaTolerance guards the z-score rescale against division by a
// near-zero standard deviation.
const sigmaTolerance = 1e-9

// ApplyBiasCorrection rescales each variable so its mean and standard
// deviation match the background climatology. When disabled the input is
// returned unchanged. A zero standard deviation on either side passes the
// value through untouched. Every output point is marked bias-corrected
// when the stage ran, whether or not any value moved.
func ApplyBiasCorrection(series marine.Timeseries, background map[marine.Variable][]float64, enabled bool) marine.Timeseries {
	if !enabled {
		return series
	}

	values := make(map[marine.Variable][]float64)
	for _, point := range series.Points {
		for _, m := range point.Measurements {
			values[m.Variable] = append(values[m.Variable], m.Value)
		}
	}

	seriesStats := make(map[marine.Variable]stats, len(values))
	backgroundStats := make(map[marine.Variable]stats, len(values))
	for variable, vs := range values {
		seriesStats[variable] = computeStats(vs)
		backgroundStats[variable] = computeStats(background[variable])
	}

	corrected := make([]marine.DataPoint, 0, len(series.Points))
	for _, point := range series.Points {
		measurements := make([]marine.Measurement, 0, len(point.Measurements))
		for _, m := range point.Measurements {
			observed := seriesStats[m.Variable]
			reference := backgroundStats[m.Variable]

			value := m.Value
			if math.Abs(observed.sigma) > sigmaTolerance && math.Abs(reference.sigma) > sigmaTolerance {
				normalized := (value - observed.mean) / observed.sigma
				value = normalized*reference.sigma + reference.mean
			}
			measurements = append(measurements, marine.Measurement{
				Variable: m.Variable,
				Value:    value,
				Unit:     m.Unit,
				Flag:     m.Flag,
			})
		}

		meta := point.Meta
		meta.BiasCorrected = true
		corrected = append(corrected, marine.DataPoint{
			Timestamp:    point.Timestamp,
			Position:     point.Position,
			Measurements: measurements,
			Meta:         meta,
		})
	}
	return marine.Timeseries{Points: corrected}
}

type stats struct {
	mean  float64
	sigma float64
}

// computeStats returns the mean and population standard deviation. A
// single sample has zero spread by definition.
func computeStats(values []float64) stats {
	if len(values) == 0 {
		return stats{}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if len(values) < 2 {
		return stats{mean: mean}
	}

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return stats{mean: mean, sigma: math.Sqrt(sq / float64(len(values)))}
}
