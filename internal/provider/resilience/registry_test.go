package resilience_test

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sailgate/sailgate/internal/provider/resilience"
)

func TestRegistry_HealthOf(t *testing.T) {
	reg := resilience.NewRegistry()
	reg.Register("stormglass", resilience.NewClient(resilience.DefaultClientConfig("stormglass")))

	health := reg.HealthOf("stormglass")
	require.NotNil(t, health)
	assert.Equal(t, "stormglass", health.Name)
	assert.Equal(t, gobreaker.StateClosed, health.BreakerState)
	assert.True(t, health.Healthy())
	assert.Nil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)

	assert.Nil(t, reg.HealthOf("unregistered"))
}

func TestRegistry_RecordsOutcomes(t *testing.T) {
	reg := resilience.NewRegistry()
	reg.Register("stormglass", resilience.NewClient(resilience.DefaultClientConfig("stormglass")))

	reg.RecordSuccess("stormglass")
	health := reg.HealthOf("stormglass")
	require.NotNil(t, health)
	assert.NotNil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)

	reg.RecordFailure("stormglass", errors.New("upstream timeout"))
	health = reg.HealthOf("stormglass")
	require.NotNil(t, health)
	assert.NotNil(t, health.LastFailureAt)
	assert.Equal(t, "upstream timeout", health.LastError)

	// Outcomes for unregistered providers are dropped, not panicked on.
	reg.RecordSuccess("unregistered")
	reg.RecordFailure("unregistered", errors.New("x"))
}

func TestRegistry_AllHealth(t *testing.T) {
	reg := resilience.NewRegistry()
	reg.Register("a", resilience.NewClient(resilience.DefaultClientConfig("a")))
	reg.Register("b", resilience.NewClient(resilience.DefaultClientConfig("b")))

	all := reg.AllHealth()
	assert.Len(t, all, 2)
}
