package marine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sailgate/sailgate/internal/marine"
)

func TestParseVariable(t *testing.T) {
	v, err := marine.ParseVariable("wave_height")
	require.NoError(t, err)
	assert.Equal(t, marine.VarWaveHeight, v)

	_, err = marine.ParseVariable("barometric_mood")
	require.Error(t, err)
}

func TestVariableAccepts(t *testing.T) {
	assert.True(t, marine.VarWaveHeight.Accepts(marine.UnitMeters))
	assert.True(t, marine.VarWaveHeight.Accepts(marine.UnitFeet))
	assert.False(t, marine.VarWaveHeight.Accepts(marine.UnitSeconds))

	assert.True(t, marine.VarWindSpeed.Accepts(marine.UnitKnots))
	assert.True(t, marine.VarWindSpeed.Accepts(marine.UnitMetersPerSecond))
	assert.False(t, marine.VarWindSpeed.Accepts(marine.UnitDegrees))
}

func TestPositionValidate(t *testing.T) {
	assert.NoError(t, marine.Position{Latitude: 24.35, Longitude: 54.47}.Validate())
	assert.NoError(t, marine.Position{Latitude: -90, Longitude: 180}.Validate())

	assert.ErrorIs(t, marine.Position{Latitude: 91}.Validate(), marine.ErrInvalidCoordinates)
	assert.ErrorIs(t, marine.Position{Longitude: -181}.Validate(), marine.ErrInvalidCoordinates)
}

func TestMeasurementValidate(t *testing.T) {
	ok := marine.Measurement{Variable: marine.VarWaveHeight, Value: 1.2, Unit: marine.UnitMeters, Flag: marine.FlagRaw}
	assert.NoError(t, ok.Validate())

	bad := marine.Measurement{Variable: marine.VarWavePeriod, Value: 8, Unit: marine.UnitMeters}
	assert.ErrorIs(t, bad.Validate(), marine.ErrUnitMismatch)
}

func TestDataPointValidate_DuplicateVariable(t *testing.T) {
	p := marine.DataPoint{
		Position: marine.Position{Latitude: 24.35, Longitude: 54.47},
		Measurements: []marine.Measurement{
			{Variable: marine.VarWaveHeight, Value: 1.0, Unit: marine.UnitMeters, Flag: marine.FlagRaw},
			{Variable: marine.VarWaveHeight, Value: 1.1, Unit: marine.UnitMeters, Flag: marine.FlagRaw},
		},
	}
	assert.ErrorIs(t, p.Validate(), marine.ErrDuplicateVariable)
}

func TestDataPointMeasurementLookup(t *testing.T) {
	p := marine.DataPoint{
		Measurements: []marine.Measurement{
			{Variable: marine.VarWindSpeed, Value: 12.5, Unit: marine.UnitKnots, Flag: marine.FlagRaw},
		},
	}

	m, ok := p.Measurement(marine.VarWindSpeed)
	require.True(t, ok)
	assert.Equal(t, 12.5, m.Value)

	_, ok = p.Measurement(marine.VarWaveHeight)
	assert.False(t, ok)
}

func TestTimeseriesSortedByTime(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	ts := marine.Timeseries{Points: []marine.DataPoint{
		{Timestamp: base.Add(2 * time.Hour)},
		{Timestamp: base},
		{Timestamp: base.Add(time.Hour)},
	}}

	sorted := ts.SortedByTime()
	require.Len(t, sorted.Points, 3)
	assert.Equal(t, base, sorted.Points[0].Timestamp)
	assert.Equal(t, base.Add(time.Hour), sorted.Points[1].Timestamp)
	assert.Equal(t, base.Add(2*time.Hour), sorted.Points[2].Timestamp)

	// Receiver untouched.
	assert.Equal(t, base.Add(2*time.Hour), ts.Points[0].Timestamp)
}

func TestForecastPointToDataPoint(t *testing.T) {
	fp := marine.ForecastPoint{
		Time:      time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC),
		Lat:       24.35,
		Lon:       54.47,
		Hs:        marine.Float(1.2),
		WindSpeed: marine.Float(14.0),
	}

	dp := fp.ToDataPoint("stormglass")
	require.NoError(t, dp.Validate())
	assert.Equal(t, "stormglass", dp.Meta.Source)
	assert.Len(t, dp.Measurements, 2)

	hs, ok := dp.Measurement(marine.VarWaveHeight)
	require.True(t, ok)
	assert.Equal(t, 1.2, hs.Value)
	assert.Equal(t, marine.UnitMeters, hs.Unit)
	assert.Equal(t, marine.FlagRaw, hs.Flag)

	wind, ok := dp.Measurement(marine.VarWindSpeed)
	require.True(t, ok)
	assert.Equal(t, marine.UnitKnots, wind.Unit)
}

func TestForecastToTimeseries(t *testing.T) {
	points := []marine.ForecastPoint{
		{Time: time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC), Hs: marine.Float(1.0)},
		{Time: time.Date(2026, 8, 1, 7, 0, 0, 0, time.UTC), Hs: marine.Float(1.1)},
	}

	ts := marine.ForecastToTimeseries(points, "open-meteo")
	require.Len(t, ts.Points, 2)
	for _, p := range ts.Points {
		assert.Equal(t, "open-meteo", p.Meta.Source)
	}
}
