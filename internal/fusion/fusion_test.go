package fusion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sailgate/sailgate/internal/fusion"
)

func TestDecideAndETA_CoastalRouteConditionalWindow(t *testing.T) {
	in := fusion.Inputs{
		CombinedFt:      6.0,
		WindPrimaryKt:   20.0,
		HsOnshoreFt:     1.5,
		HsOffshoreFt:    3.0,
		WindSecondaryKt: 20.0,
		Alert:           "rough at times westward",
		OffshoreWeight:  0.35,
		DistanceNM:      35.0,
		PlannedSpeedKt:  12.0,
	}

	result, err := fusion.DecideAndETA(in, fusion.DefaultCoefficients())
	require.NoError(t, err)

	assert.Equal(t, fusion.DecisionCoastalWindow, result.Decision)
	assert.Equal(t, 1.43, result.HsFusedM)
	assert.Equal(t, 20.0, result.WindFusedKt)
	assert.Equal(t, 3.32, result.ETAHours)
	assert.Equal(t, 45, result.BufferMinutes)
}

func TestDecideAndETA_HighSeasForcesNoGo(t *testing.T) {
	in := fusion.Inputs{
		CombinedFt:      8.0,
		WindPrimaryKt:   24.0,
		HsOnshoreFt:     4.0,
		HsOffshoreFt:    6.0,
		WindSecondaryKt: 26.0,
		Alert:           "High seas westward",
		OffshoreWeight:  0.65,
		DistanceNM:      80.0,
		PlannedSpeedKt:  14.0,
	}

	result, err := fusion.DecideAndETA(in, fusion.DefaultCoefficients())
	require.NoError(t, err)

	assert.Equal(t, fusion.DecisionNoGo, result.Decision)
	assert.Equal(t, 2.16, result.HsFusedM)
	assert.Equal(t, 26.0, result.WindFusedKt)
	assert.Equal(t, 6.81, result.ETAHours)
	assert.Equal(t, 60, result.BufferMinutes)
}

func TestDecideAndETA_ClearConditionsGo(t *testing.T) {
	in := fusion.Inputs{
		CombinedFt:      2.5,
		WindPrimaryKt:   12.0,
		HsOnshoreFt:     1.0,
		HsOffshoreFt:    1.2,
		WindSecondaryKt: 11.0,
		OffshoreWeight:  0.30,
		DistanceNM:      20.0,
		PlannedSpeedKt:  13.0,
	}

	result, err := fusion.DecideAndETA(in, fusion.DefaultCoefficients())
	require.NoError(t, err)

	assert.Equal(t, fusion.DecisionGo, result.Decision)
	assert.Equal(t, 0.52, result.HsFusedM)
	assert.Equal(t, 12.0, result.WindFusedKt)
	assert.Equal(t, 1.59, result.ETAHours)
	assert.Equal(t, 45, result.BufferMinutes)
}

func TestDecideAndETA_FogForcesNoGo(t *testing.T) {
	in := fusion.Inputs{
		CombinedFt:      2.0,
		WindPrimaryKt:   10.0,
		HsOnshoreFt:     1.0,
		HsOffshoreFt:    1.0,
		WindSecondaryKt: 10.0,
		Alert:           "Fog banks until noon",
		OffshoreWeight:  0.5,
		DistanceNM:      20.0,
		PlannedSpeedKt:  12.0,
	}

	result, err := fusion.DecideAndETA(in, fusion.DefaultCoefficients())
	require.NoError(t, err)
	assert.Equal(t, fusion.DecisionNoGo, result.Decision)
}

func TestInputsValidate(t *testing.T) {
	valid := fusion.Inputs{
		CombinedFt:     2.0,
		OffshoreWeight: 0.5,
		DistanceNM:     20.0,
		PlannedSpeedKt: 12.0,
	}
	assert.NoError(t, valid.Validate())

	negative := valid
	negative.CombinedFt = -1
	assert.ErrorIs(t, negative.Validate(), fusion.ErrNegativeInput)

	weight := valid
	weight.OffshoreWeight = 1.2
	assert.ErrorIs(t, weight.Validate(), fusion.ErrOffshoreWeightRange)

	distance := valid
	distance.DistanceNM = 0
	assert.ErrorIs(t, distance.Validate(), fusion.ErrNonPositiveDistance)

	speed := valid
	speed.PlannedSpeedKt = 0
	assert.ErrorIs(t, speed.Validate(), fusion.ErrNonPositiveSpeed)
}

func TestDecideAndETA_RejectsInvalidInputs(t *testing.T) {
	_, err := fusion.DecideAndETA(fusion.Inputs{DistanceNM: -1}, fusion.DefaultCoefficients())
	require.Error(t, err)
}
