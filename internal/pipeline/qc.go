// Package pipeline implements the signal-conditioning stages applied to
// marine timeseries: quality control, bias correction and weighted
// ensemble fusion. Every stage is a pure function returning a new series.
package pipeline

import (
	"math"
	"sort"

	"github.com/sailgate/sailgate/internal/marine"
)

// DefaultIQRMultiplier is the standard Tukey fence multiplier.
const DefaultIQRMultiplier = 1.5

// Range is a closed clipping interval. Use math.Inf for an open side.
type Range struct {
	Min float64
	Max float64
}

// Unbounded returns a range that never clips.
func Unbounded() Range {
	return Range{Min: math.Inf(-1), Max: math.Inf(1)}
}

// Clip returns v limited to the range.
func (r Range) Clip(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// PhysicalBounds maps each variable to its physically plausible range.
type PhysicalBounds map[marine.Variable]Range

// DefaultPhysicalBounds are operational plausibility limits for the Gulf
// service area.
var DefaultPhysicalBounds = PhysicalBounds{
	marine.VarWaveHeight:     {Min: 0, Max: 20},
	marine.VarWavePeriod:     {Min: 0, Max: 30},
	marine.VarWaveDirection:  {Min: 0, Max: 360},
	marine.VarWindSpeed:      {Min: 0, Max: 120},
	marine.VarWindDirection:  {Min: 0, Max: 360},
	marine.VarSwellHeight:    {Min: 0, Max: 15},
	marine.VarSwellPeriod:    {Min: 0, Max: 30},
	marine.VarSwellDirection: {Min: 0, Max: 360},
	marine.VarTideHeight:     {Min: -5, Max: 5},
}

// ApplyQualityControls clips every measurement to the intersection of the
// caller-supplied physical bound and a per-variable IQR bound computed over
// the whole series. Measurements whose value changed (compared at two
// decimals) are flagged clipped; unchanged measurements keep their flag.
func ApplyQualityControls(series marine.Timeseries, bounds PhysicalBounds, iqrMultiplier float64) marine.Timeseries {
	values := make(map[marine.Variable][]float64)
	for _, point := range series.Points {
		for _, m := range point.Measurements {
			values[m.Variable] = append(values[m.Variable], m.Value)
		}
	}

	iqrBounds := make(map[marine.Variable]Range, len(values))
	for variable, vs := range values {
		iqrBounds[variable] = IQRBounds(vs, iqrMultiplier)
	}

	cleaned := make([]marine.DataPoint, 0, len(series.Points))
	for _, point := range series.Points {
		measurements := make([]marine.Measurement, 0, len(point.Measurements))
		for _, m := range point.Measurements {
			physical, ok := bounds[m.Variable]
			if !ok {
				physical = Unbounded()
			}
			statistical, ok := iqrBounds[m.Variable]
			if !ok {
				statistical = Unbounded()
			}

			// Physical bound first, then the statistical fence.
			clipped := statistical.Clip(physical.Clip(m.Value))

			flag := m.Flag
			if marine.Round2(clipped) != marine.Round2(m.Value) {
				flag = marine.FlagClipped
			}
			measurements = append(measurements, marine.Measurement{
				Variable: m.Variable,
				Value:    clipped,
				Unit:     m.Unit,
				Flag:     flag,
			})
		}
		cleaned = append(cleaned, marine.DataPoint{
			Timestamp:    point.Timestamp,
			Position:     point.Position,
			Measurements: measurements,
			Meta:         point.Meta,
		})
	}
	return marine.Timeseries{Points: cleaned}
}

// IQRBounds computes Tukey fences over the sample using the inclusive
// quantile method. Fewer than four samples is too small for a meaningful
// interquartile range; the bounds degrade to unbounded.
func IQRBounds(values []float64, multiplier float64) Range {
	if len(values) < 4 {
		return Unbounded()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := quantileInclusive(sorted, 0.25)
	q3 := quantileInclusive(sorted, 0.75)
	iqr := q3 - q1
	return Range{Min: q1 - multiplier*iqr, Max: q3 + multiplier*iqr}
}

// quantileInclusive interpolates the p-quantile of sorted data treating the
// sample as covering the whole population (h = p*(n-1), linear between
// neighbors).
func quantileInclusive(sorted []float64, p float64) float64 {
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
