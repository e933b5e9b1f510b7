// Package config loads and validates a solve run's configuration: the
// objective list, population/termination tuning, and output options. The
// problem description itself (fleet, jobs, matrices) is the problem-intake
// collaborator's concern and is out of scope here.
package config

import (
	"fmt"
	"os"
	"time"

	"sigs.k8s.io/yaml"

	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/objective"
)

// Algorithm defaults, applied by SetDefaults_RunConfig for any field the
// caller left zero.
const (
	DefaultPopulationCapacity = 5
	DefaultMaxGenerations     = 1000
	DefaultMaxTime            = 5 * time.Minute
	DefaultNeighborhoodMinK   = 3
	DefaultNeighborhoodMaxK   = 8
	DefaultRandomRemovalCount = 4
)

// ObjectiveConfig is the wire-shape of one requested objective entry.
type ObjectiveConfig struct {
	Kind      string   `json:"kind"`
	Weight    float64  `json:"weight,omitempty"`
	MaxStdDev float64  `json:"maxStdDev,omitempty"`
	Goal      *Goal    `json:"goal,omitempty"`
}

// Goal is the wire-shape of an objective's goal criterion.
type Goal struct {
	Value     float64    `json:"value,omitempty"`
	Variation *Variation `json:"variation,omitempty"`
}

// Variation is the wire-shape of a plateau/variation goal.
type Variation struct {
	SampleSize int     `json:"sampleSize"`
	Fraction   float64 `json:"fraction"`
}

// RunConfig is the top-level solve configuration loaded from YAML.
type RunConfig struct {
	Seed               uint64            `json:"seed"`
	PopulationCapacity int               `json:"populationCapacity,omitempty"`
	MaxGenerations     int               `json:"maxGenerations,omitempty"`
	MaxTime            time.Duration     `json:"maxTime,omitempty"`
	CostObjective      string            `json:"costObjective"`
	PrimaryObjectives  []ObjectiveConfig `json:"primaryObjectives"`
	SecondaryObjectives []ObjectiveConfig `json:"secondaryObjectives,omitempty"`
	NeighborhoodMinK   int               `json:"neighborhoodMinK,omitempty"`
	NeighborhoodMaxK   int               `json:"neighborhoodMaxK,omitempty"`
	RandomRemovalCount int               `json:"randomRemovalCount,omitempty"`
}

// Load reads and unmarshals a RunConfig from a YAML file at path, applies
// defaults, and validates it.
func Load(path string) (*RunConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg RunConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	SetDefaults_RunConfig(&cfg)
	if err := Validate_RunConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults_RunConfig fills unset fields with their defaults, touching
// only what the caller left zero.
func SetDefaults_RunConfig(cfg *RunConfig) {
	if cfg.PopulationCapacity == 0 {
		cfg.PopulationCapacity = DefaultPopulationCapacity
	}
	if cfg.MaxGenerations == 0 {
		cfg.MaxGenerations = DefaultMaxGenerations
	}
	if cfg.MaxTime == 0 {
		cfg.MaxTime = DefaultMaxTime
	}
	if cfg.NeighborhoodMinK == 0 {
		cfg.NeighborhoodMinK = DefaultNeighborhoodMinK
	}
	if cfg.NeighborhoodMaxK == 0 {
		cfg.NeighborhoodMaxK = DefaultNeighborhoodMaxK
	}
	if cfg.RandomRemovalCount == 0 {
		cfg.RandomRemovalCount = DefaultRandomRemovalCount
	}
}

// Validate_RunConfig checks the configuration-time-fatal conditions: a
// missing cost objective, negative weights, or an inverted neighborhood
// range.
func Validate_RunConfig(cfg *RunConfig) error {
	if len(cfg.PrimaryObjectives) == 0 {
		return model.NewConfigurationError("at least one primary objective is required")
	}
	if cfg.CostObjective == "" {
		return model.NewConfigurationError("costObjective must name the reportable-cost objective")
	}
	found := false
	for _, o := range append(append([]ObjectiveConfig{}, cfg.PrimaryObjectives...), cfg.SecondaryObjectives...) {
		if o.Kind == cfg.CostObjective {
			found = true
		}
		if o.Weight < 0 {
			return model.NewConfigurationError("objective %q has a negative weight %v", o.Kind, o.Weight)
		}
	}
	if !found {
		return model.NewConfigurationError("costObjective %q does not name any configured objective", cfg.CostObjective)
	}
	if cfg.NeighborhoodMinK > cfg.NeighborhoodMaxK {
		return model.NewConfigurationError("neighborhoodMinK must not exceed neighborhoodMaxK")
	}
	return nil
}

// ToSpecs converts the wire-shape objective configs into objective.Spec
// values Build consumes.
func ToSpecs(configs []ObjectiveConfig) []objective.Spec {
	specs := make([]objective.Spec, 0, len(configs))
	for _, c := range configs {
		spec := objective.Spec{Kind: objective.Kind(c.Kind), Weight: c.Weight, MaxStdDev: c.MaxStdDev}
		if c.Goal != nil {
			goal := &objective.ValueGoal{Value: c.Goal.Value}
			if c.Goal.Variation != nil {
				goal.Variation = &objective.VariationCriterion{
					SampleSize: c.Goal.Variation.SampleSize,
					Fraction:   c.Goal.Variation.Fraction,
				}
			}
			spec.Goal = goal
		}
		specs = append(specs, spec)
	}
	return specs
}
