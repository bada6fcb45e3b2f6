package voyage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sailgate/sailgate/internal/voyage"
	"github.com/sailgate/sailgate/pkg/geo"
)

func TestRegistry_BuiltinRoute(t *testing.T) {
	reg := voyage.NewRegistry()

	route, err := reg.Get("MW4-AGI")
	require.NoError(t, err)

	assert.Equal(t, "Mina Wharf 4 to Al Ghallan Island", route.Name)
	assert.Len(t, route.Waypoints, 3)
	assert.Equal(t, 10.0, route.PlannedSpeedKt)
	assert.Equal(t, geo.Point{Lat: 24.3488, Lon: 54.4651}, route.Reference())
	assert.Greater(t, route.DistanceNM(), 0.0)
}

func TestRegistry_GetUnknown(t *testing.T) {
	reg := voyage.NewRegistry()

	_, err := reg.Get("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown route")
}

func TestRegistry_Put(t *testing.T) {
	reg := voyage.NewRegistry()

	err := reg.Put(voyage.Route{
		ID:   "AGI-MW4",
		Name: "Al Ghallan Island to Mina Wharf 4",
		Waypoints: []geo.Point{
			{Lat: 24.45, Lon: 54.65},
			{Lat: 24.3488, Lon: 54.4651},
		},
		PlannedSpeedKt: 8,
	})
	require.NoError(t, err)

	route, err := reg.Get("AGI-MW4")
	require.NoError(t, err)
	assert.Equal(t, 8.0, route.PlannedSpeedKt)
}

func TestRegistry_PutValidation(t *testing.T) {
	reg := voyage.NewRegistry()

	err := reg.Put(voyage.Route{Waypoints: []geo.Point{{}, {}}})
	assert.Error(t, err)

	err = reg.Put(voyage.Route{ID: "ONE", Waypoints: []geo.Point{{Lat: 24, Lon: 54}}})
	assert.Error(t, err)
}

func TestRegistry_AllSorted(t *testing.T) {
	reg := voyage.NewRegistry()
	require.NoError(t, reg.Put(voyage.Route{
		ID:        "ZZ-TOP",
		Waypoints: []geo.Point{{Lat: 24, Lon: 54}, {Lat: 25, Lon: 54}},
	}))
	require.NoError(t, reg.Put(voyage.Route{
		ID:        "AA-BOT",
		Waypoints: []geo.Point{{Lat: 24, Lon: 54}, {Lat: 25, Lon: 54}},
	}))

	all := reg.All()
	require.Len(t, all, 3)
	assert.Equal(t, "AA-BOT", all[0].ID)
	assert.Equal(t, "MW4-AGI", all[1].ID)
	assert.Equal(t, "ZZ-TOP", all[2].ID)
}

func TestRoute_ReferenceEmpty(t *testing.T) {
	assert.Equal(t, geo.Point{}, voyage.Route{}.Reference())
}
