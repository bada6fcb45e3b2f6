package eri

import (
	"time"

	"github.com/sailgate/sailgate/internal/marine"
)

// Quality is the provenance badge attached to every scored point.
type Quality struct {
	Source        string `json:"source"`
	HasMissing    bool   `json:"has_missing"`
	BiasCorrected bool   `json:"bias_corrected"`
}

// Point is one scored timestamp. Score is bounded to [0, base score].
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Score     float64   `json:"score"`
	Quality   Quality   `json:"quality"`
}

type severity int

const (
	severityNone severity = iota
	severityCaution
	severityDanger
)

// classify grades a value against a rule's thresholds.
func classify(value float64, rule ThresholdRule) severity {
	if rule.Direction == DirectionMax {
		switch {
		case value >= rule.Danger:
			return severityDanger
		case value >= rule.Caution:
			return severityCaution
		}
		return severityNone
	}
	switch {
	case value <= rule.Danger:
		return severityDanger
	case value <= rule.Caution:
		return severityCaution
	}
	return severityNone
}

// ComputeTimeseries scores each point of the series against the rule set,
// preserving input order. A variable a rule expects but the point lacks
// costs a caution-level penalty and marks the point as having missing
// data; an absent signal is never free.
func ComputeTimeseries(series marine.Timeseries, rules *RuleSet) []Point {
	points := make([]Point, 0, len(series.Points))
	for _, point := range series.Points {
		var penalty float64
		hasMissing := false

		for _, rule := range rules.Rules {
			measurement, ok := point.Measurement(rule.Variable)
			if !ok {
				hasMissing = true
				penalty += rule.Weight * rules.CautionPenalty
				continue
			}
			switch classify(measurement.Value, rule) {
			case severityDanger:
				penalty += rule.Weight * rules.DangerPenalty
			case severityCaution:
				penalty += rule.Weight * rules.CautionPenalty
			}
		}

		score := rules.BaseScore - penalty
		if score < 0 {
			score = 0
		}
		points = append(points, Point{
			Timestamp: point.Timestamp,
			Score:     marine.Round2(score),
			Quality: Quality{
				Source:        point.Meta.Source,
				HasMissing:    hasMissing,
				BiasCorrected: point.Meta.BiasCorrected,
			},
		})
	}
	return points
}
