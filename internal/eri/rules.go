// Package eri computes the Environmental Risk Index: a bounded score
// derived from threshold rules evaluated against a conditioned marine
// timeseries.
package eri

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sailgate/sailgate/internal/marine"
)

// Direction controls which side of a threshold is hazardous.
type Direction string

const (
	// DirectionMax means higher values are worse.
	DirectionMax Direction = "max"
	// DirectionMin means lower values are worse.
	DirectionMin Direction = "min"
)

// ThresholdRule grades one variable against caution and danger levels.
type ThresholdRule struct {
	Variable  marine.Variable
	Caution   float64
	Danger    float64
	Weight    float64
	Direction Direction
}

// RuleSet is an immutable scoring configuration loaded from a rule file.
type RuleSet struct {
	BaseScore      float64
	CautionPenalty float64
	DangerPenalty  float64
	Rules          []ThresholdRule
}

type ruleDocument struct {
	BaseScore      float64 `yaml:"base_score"`
	CautionPenalty float64 `yaml:"caution_penalty"`
	DangerPenalty  float64 `yaml:"danger_penalty"`
	Rules          []struct {
		Variable  string  `yaml:"variable"`
		Caution   float64 `yaml:"caution"`
		Danger    float64 `yaml:"danger"`
		Weight    float64 `yaml:"weight"`
		Direction string  `yaml:"direction"`
	} `yaml:"rules"`
}

// LoadRuleSet parses a YAML rule document. Unknown variables and malformed
// rules are rejected; these indicate configuration bugs, not transient
// conditions.
func LoadRuleSet(r io.Reader) (*RuleSet, error) {
	var doc ruleDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding rule set: %w", err)
	}
	if doc.BaseScore <= 0 {
		return nil, fmt.Errorf("rule set base_score must be positive, got %v", doc.BaseScore)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("rule set contains no rules")
	}

	rules := make([]ThresholdRule, 0, len(doc.Rules))
	for i, raw := range doc.Rules {
		variable, err := marine.ParseVariable(raw.Variable)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		direction := Direction(raw.Direction)
		switch direction {
		case "":
			direction = DirectionMax
		case DirectionMax, DirectionMin:
		default:
			return nil, fmt.Errorf("rule %d: unknown direction %q", i, raw.Direction)
		}
		if raw.Weight < 0 {
			return nil, fmt.Errorf("rule %d: negative weight %v", i, raw.Weight)
		}
		rules = append(rules, ThresholdRule{
			Variable:  variable,
			Caution:   raw.Caution,
			Danger:    raw.Danger,
			Weight:    raw.Weight,
			Direction: direction,
		})
	}

	return &RuleSet{
		BaseScore:      doc.BaseScore,
		CautionPenalty: doc.CautionPenalty,
		DangerPenalty:  doc.DangerPenalty,
		Rules:          rules,
	}, nil
}

// LoadRuleSetFile loads a rule set from a YAML file on disk.
func LoadRuleSetFile(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rule set: %w", err)
	}
	defer f.Close()
	return LoadRuleSet(f)
}
