package pipeline

import (
	"errors"
	"math"
	"sort"

	"github.com/sailgate/sailgate/internal/marine"
)

// EnsembleSource is the source name stamped on ensemble output points.
const EnsembleSource = "ensemble"

// ensembleTimeKey groups points sharing an exact second-resolution timestamp.
const ensembleTimeKey = "2006-01-02 15:04:05"

// ErrZeroWeightSum reports an ensemble weight mapping that sums to zero.
var ErrZeroWeightSum = errors.New("ensemble weights must have positive sum")

// NormalizeWeights scales the weight mapping so it sums to one. Each
// normalized weight is rounded to four decimals.
func NormalizeWeights(weights map[string]float64) (map[string]float64, error) {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return nil, ErrZeroWeightSum
	}
	normalized := make(map[string]float64, len(weights))
	for source, w := range weights {
		normalized[source] = math.Round(w/total*10000) / 10000
	}
	return normalized, nil
}

type weightedMeasurement struct {
	measurement marine.Measurement
	weight      float64
}

type timeBucket struct {
	base       marine.DataPoint
	biasFlag   bool
	order      []marine.Variable
	byVariable map[marine.Variable][]weightedMeasurement
}

// WeightedEnsemble fuses several timeseries into one by per-variable
// weighted averaging within exact-timestamp groups. Points from sources
// without a configured weight are silently excluded. For each variable the
// contributing weights are re-summed, so a source missing one variable
// does not skew the others. The result is ordered by ascending timestamp.
func WeightedEnsemble(seriesList []marine.Timeseries, weights map[string]float64) (marine.Timeseries, error) {
	normalized, err := NormalizeWeights(weights)
	if err != nil {
		return marine.Timeseries{}, err
	}

	buckets := make(map[string]*timeBucket)
	var keys []string

	for _, series := range seriesList {
		for _, point := range series.Points {
			weight, ok := normalized[point.Meta.Source]
			if !ok {
				continue
			}
			key := point.Timestamp.UTC().Format(ensembleTimeKey)
			bucket, ok := buckets[key]
			if !ok {
				bucket = &timeBucket{base: point, byVariable: make(map[marine.Variable][]weightedMeasurement)}
				buckets[key] = bucket
				keys = append(keys, key)
			}
			bucket.biasFlag = bucket.biasFlag || point.Meta.BiasCorrected
			for _, m := range point.Measurements {
				if _, seen := bucket.byVariable[m.Variable]; !seen {
					bucket.order = append(bucket.order, m.Variable)
				}
				bucket.byVariable[m.Variable] = append(bucket.byVariable[m.Variable], weightedMeasurement{
					measurement: m,
					weight:      weight,
				})
			}
		}
	}

	sort.Strings(keys)

	points := make([]marine.DataPoint, 0, len(keys))
	for _, key := range keys {
		bucket := buckets[key]
		measurements := make([]marine.Measurement, 0, len(bucket.order))
		for _, variable := range bucket.order {
			contributors := bucket.byVariable[variable]

			var weightSum float64
			for _, c := range contributors {
				weightSum += c.weight
			}
			if weightSum == 0 {
				continue
			}

			var weighted float64
			anyClipped := false
			anyImputed := false
			for _, c := range contributors {
				weighted += c.measurement.Value * c.weight
				switch c.measurement.Flag {
				case marine.FlagClipped:
					anyClipped = true
				case marine.FlagImputed:
					anyImputed = true
				}
			}

			flag := marine.FlagRaw
			if anyClipped {
				flag = marine.FlagClipped
			} else if anyImputed {
				flag = marine.FlagImputed
			}

			measurements = append(measurements, marine.Measurement{
				Variable: variable,
				Value:    weighted / weightSum,
				Unit:     contributors[0].measurement.Unit,
				Flag:     flag,
			})
		}

		points = append(points, marine.DataPoint{
			Timestamp:    bucket.base.Timestamp,
			Position:     bucket.base.Position,
			Measurements: measurements,
			Meta: marine.Metadata{
				Source:         EnsembleSource,
				Units:          bucket.base.Meta.Units,
				BiasCorrected:  bucket.biasFlag,
				EnsembleWeight: 1.0,
			},
		})
	}
	return marine.Timeseries{Points: points}, nil
}
