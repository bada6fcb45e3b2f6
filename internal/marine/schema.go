// Package marine defines the canonical data model shared by the forecast
// acquisition layer and the conditioning pipeline: positions, measurements,
// timeseries and the flat provider point schema.
package marine

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Model errors.
var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrUnitMismatch       = errors.New("unit inconsistent with variable")
	ErrDuplicateVariable  = errors.New("duplicate variable in data point")
)

// Variable identifies a physical quantity carried by a measurement.
type Variable string

const (
	VarWaveHeight     Variable = "wave_height"
	VarWavePeriod     Variable = "wave_period"
	VarWaveDirection  Variable = "wave_direction"
	VarWindSpeed      Variable = "wind_speed"
	VarWindDirection  Variable = "wind_direction"
	VarSwellHeight    Variable = "swell_height"
	VarSwellPeriod    Variable = "swell_period"
	VarSwellDirection Variable = "swell_direction"
	VarTideHeight     Variable = "tide_height"
)

// ParseVariable converts a string into a known Variable.
func ParseVariable(s string) (Variable, error) {
	v := Variable(s)
	if _, ok := variableUnits[v]; !ok {
		return "", fmt.Errorf("unknown marine variable %q", s)
	}
	return v, nil
}

// Unit is a physical unit attached to a measurement value.
type Unit string

const (
	UnitMeters          Unit = "m"
	UnitSeconds         Unit = "s"
	UnitDegrees         Unit = "deg"
	UnitMetersPerSecond Unit = "m/s"
	UnitKnots           Unit = "kt"
	UnitFeet            Unit = "ft"
)

// variableUnits lists the dimensionally consistent units per variable.
var variableUnits = map[Variable][]Unit{
	VarWaveHeight:     {UnitMeters, UnitFeet},
	VarWavePeriod:     {UnitSeconds},
	VarWaveDirection:  {UnitDegrees},
	VarWindSpeed:      {UnitKnots, UnitMetersPerSecond},
	VarWindDirection:  {UnitDegrees},
	VarSwellHeight:    {UnitMeters, UnitFeet},
	VarSwellPeriod:    {UnitSeconds},
	VarSwellDirection: {UnitDegrees},
	VarTideHeight:     {UnitMeters, UnitFeet},
}

// Accepts reports whether u is dimensionally consistent with v.
func (v Variable) Accepts(u Unit) bool {
	for _, candidate := range variableUnits[v] {
		if candidate == u {
			return true
		}
	}
	return false
}

// QualityFlag describes how a measurement value was produced.
type QualityFlag string

const (
	FlagRaw     QualityFlag = "raw"
	FlagImputed QualityFlag = "imputed"
	FlagClipped QualityFlag = "clipped"
)

// Position is a WGS84 coordinate pair in degrees.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks the coordinate numeric ranges.
func (p Position) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 || p.Longitude < -180 || p.Longitude > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

// Measurement is a single observed or forecast value for one variable.
type Measurement struct {
	Variable Variable    `json:"variable"`
	Value    float64     `json:"value"`
	Unit     Unit        `json:"unit"`
	Flag     QualityFlag `json:"quality_flag"`
}

// Validate checks the variable/unit pairing.
func (m Measurement) Validate() error {
	if !m.Variable.Accepts(m.Unit) {
		return fmt.Errorf("%w: %s in %s", ErrUnitMismatch, m.Variable, m.Unit)
	}
	return nil
}

// Metadata describes the provenance of a data point's measurements.
type Metadata struct {
	Source         string            `json:"source"`
	SourceURL      string            `json:"source_url,omitempty"`
	Units          map[Variable]Unit `json:"units,omitempty"`
	BiasCorrected  bool              `json:"bias_corrected"`
	EnsembleWeight float64           `json:"ensemble_weight,omitempty"`
}

// DataPoint is one timestamped set of measurements at a position.
// A point carries at most one measurement per variable.
type DataPoint struct {
	Timestamp    time.Time     `json:"timestamp"`
	Position     Position      `json:"position"`
	Measurements []Measurement `json:"measurements"`
	Meta         Metadata      `json:"metadata"`
}

// Measurement returns the measurement for a variable, if present.
func (p DataPoint) Measurement(v Variable) (Measurement, bool) {
	for _, m := range p.Measurements {
		if m.Variable == v {
			return m, true
		}
	}
	return Measurement{}, false
}

// Validate checks position, unit consistency and the one-measurement-per-
// variable invariant.
func (p DataPoint) Validate() error {
	if err := p.Position.Validate(); err != nil {
		return err
	}
	seen := make(map[Variable]bool, len(p.Measurements))
	for _, m := range p.Measurements {
		if err := m.Validate(); err != nil {
			return err
		}
		if seen[m.Variable] {
			return fmt.Errorf("%w: %s", ErrDuplicateVariable, m.Variable)
		}
		seen[m.Variable] = true
	}
	return nil
}

// Timeseries is an ordered sequence of data points. The type itself does not
// enforce ordering; callers sort explicitly before ensemble or scoring.
type Timeseries struct {
	Points []DataPoint `json:"points"`
}

// SortedByTime returns a new timeseries with points ordered by ascending
// timestamp. The receiver is left untouched.
func (ts Timeseries) SortedByTime() Timeseries {
	points := make([]DataPoint, len(ts.Points))
	copy(points, ts.Points)
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	return Timeseries{Points: points}
}
