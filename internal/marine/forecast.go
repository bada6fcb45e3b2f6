package marine

import "time"

// ForecastPoint is the flat wire-canonical record every provider adapter
// normalizes to. Optional fields are pointers; nil means the provider did
// not report that quantity for the hour.
type ForecastPoint struct {
	Time time.Time `json:"time"`
	Lat  float64   `json:"lat"`
	Lon  float64   `json:"lon"`

	Hs             *float64 `json:"hs,omitempty"`              // significant wave height (m)
	Tp             *float64 `json:"tp,omitempty"`              // peak wave period (s)
	Dp             *float64 `json:"dp,omitempty"`              // wave direction (deg)
	WindSpeed      *float64 `json:"wind_speed,omitempty"`      // wind speed (kt)
	WindDirection  *float64 `json:"wind_dir,omitempty"`        // wind direction (deg)
	SwellHeight    *float64 `json:"swell_height,omitempty"`    // swell height (m)
	SwellPeriod    *float64 `json:"swell_period,omitempty"`    // swell period (s)
	SwellDirection *float64 `json:"swell_direction,omitempty"` // swell direction (deg)
}

// Float returns a pointer to v, for building optional ForecastPoint fields.
func Float(v float64) *float64 { return &v }

// forecastUnits maps the canonical forecast schema onto measurement units.
var forecastUnits = map[Variable]Unit{
	VarWaveHeight:     UnitMeters,
	VarWavePeriod:     UnitSeconds,
	VarWaveDirection:  UnitDegrees,
	VarWindSpeed:      UnitKnots,
	VarWindDirection:  UnitDegrees,
	VarSwellHeight:    UnitMeters,
	VarSwellPeriod:    UnitSeconds,
	VarSwellDirection: UnitDegrees,
}

// ToDataPoint converts a flat forecast point into the measurement-based
// form consumed by the conditioning pipeline. Only reported quantities
// become measurements.
func (fp ForecastPoint) ToDataPoint(source string) DataPoint {
	fields := []struct {
		variable Variable
		value    *float64
	}{
		{VarWaveHeight, fp.Hs},
		{VarWavePeriod, fp.Tp},
		{VarWaveDirection, fp.Dp},
		{VarWindSpeed, fp.WindSpeed},
		{VarWindDirection, fp.WindDirection},
		{VarSwellHeight, fp.SwellHeight},
		{VarSwellPeriod, fp.SwellPeriod},
		{VarSwellDirection, fp.SwellDirection},
	}

	measurements := make([]Measurement, 0, len(fields))
	units := make(map[Variable]Unit)
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		unit := forecastUnits[f.variable]
		measurements = append(measurements, Measurement{
			Variable: f.variable,
			Value:    *f.value,
			Unit:     unit,
			Flag:     FlagRaw,
		})
		units[f.variable] = unit
	}

	return DataPoint{
		Timestamp:    fp.Time.UTC(),
		Position:     Position{Latitude: fp.Lat, Longitude: fp.Lon},
		Measurements: measurements,
		Meta:         Metadata{Source: source, Units: units},
	}
}

// ForecastToTimeseries converts provider points into a timeseries tagged
// with the given source name.
func ForecastToTimeseries(points []ForecastPoint, source string) Timeseries {
	dataPoints := make([]DataPoint, 0, len(points))
	for _, fp := range points {
		dataPoints = append(dataPoints, fp.ToDataPoint(source))
	}
	return Timeseries{Points: dataPoints}
}
