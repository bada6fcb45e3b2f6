package eri_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sailgate/sailgate/internal/eri"
	"github.com/sailgate/sailgate/internal/marine"
)

const validRules = `
base_score: 100.0
caution_penalty: 15.0
danger_penalty: 40.0
rules:
  - variable: wave_height
    direction: max
    caution: 1.0
    danger: 2.0
    weight: 0.5
  - variable: wave_period
    direction: min
    caution: 6.0
    danger: 4.0
    weight: 0.5
`

func TestLoadRuleSet(t *testing.T) {
	rules, err := eri.LoadRuleSet(strings.NewReader(validRules))
	require.NoError(t, err)

	assert.Equal(t, 100.0, rules.BaseScore)
	assert.Equal(t, 15.0, rules.CautionPenalty)
	assert.Equal(t, 40.0, rules.DangerPenalty)
	require.Len(t, rules.Rules, 2)
	assert.Equal(t, marine.VarWaveHeight, rules.Rules[0].Variable)
	assert.Equal(t, eri.DirectionMax, rules.Rules[0].Direction)
	assert.Equal(t, eri.DirectionMin, rules.Rules[1].Direction)
}

func TestLoadRuleSet_DefaultDirection(t *testing.T) {
	doc := `
base_score: 100.0
caution_penalty: 15.0
danger_penalty: 40.0
rules:
  - variable: wind_speed
    caution: 10.0
    danger: 12.0
    weight: 1.0
`
	rules, err := eri.LoadRuleSet(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, eri.DirectionMax, rules.Rules[0].Direction)
}

func TestLoadRuleSet_Rejections(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"unknown variable", `
base_score: 100.0
rules:
  - variable: moon_phase
    caution: 1.0
    danger: 2.0
    weight: 0.5
`},
		{"unknown direction", `
base_score: 100.0
rules:
  - variable: wave_height
    direction: sideways
    caution: 1.0
    danger: 2.0
    weight: 0.5
`},
		{"negative weight", `
base_score: 100.0
rules:
  - variable: wave_height
    caution: 1.0
    danger: 2.0
    weight: -0.5
`},
		{"no rules", `
base_score: 100.0
rules: []
`},
		{"non-positive base score", `
base_score: 0
rules:
  - variable: wave_height
    caution: 1.0
    danger: 2.0
    weight: 0.5
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := eri.LoadRuleSet(strings.NewReader(tc.doc))
			assert.Error(t, err)
		})
	}
}
