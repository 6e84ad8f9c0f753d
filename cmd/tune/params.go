package main

import (
	"math"

	"github.com/pthm-cable/flock/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	apply   func(cfg *config.Config, v float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters:
// the health economy and reproduction of both species plus the
// regulator's predator cap.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Prey
			{Name: "prey_decay", Path: "species.prey.health_decay_rate", Min: 0.2, Max: 3.0, Default: 1.0,
				apply: func(c *config.Config, v float64) { c.Species.Prey.HealthDecayRate = v }},
			{Name: "prey_food", Path: "species.prey.food_generation_rate", Min: 0.5, Max: 4.0, Default: 2.0,
				apply: func(c *config.Config, v float64) { c.Species.Prey.FoodGenerationRate = v }},
			{Name: "prey_repro_thresh", Path: "species.prey.reproduction_threshold", Min: 40, Max: 95, Default: 70,
				apply: func(c *config.Config, v float64) { c.Species.Prey.ReproductionThreshold = v }},
			{Name: "prey_repro_cost", Path: "species.prey.reproduction_cost", Min: 10, Max: 40, Default: 30,
				apply: func(c *config.Config, v float64) { c.Species.Prey.ReproductionCost = v }},
			{Name: "prey_cooldown", Path: "species.prey.reproduction_cooldown", Min: 2, Max: 20, Default: 8,
				apply: func(c *config.Config, v float64) { c.Species.Prey.ReproductionCooldown = v }},
			// Predator
			{Name: "pred_decay", Path: "species.predator.health_decay_rate", Min: 1.0, Max: 8.0, Default: 4.0,
				apply: func(c *config.Config, v float64) { c.Species.Predator.HealthDecayRate = v }},
			{Name: "pred_kill_bonus", Path: "species.predator.kill_bonus", Min: 10, Max: 80, Default: 40,
				apply: func(c *config.Config, v float64) { c.Species.Predator.KillBonus = v }},
			{Name: "pred_repro_thresh", Path: "species.predator.reproduction_threshold", Min: 50, Max: 98, Default: 85,
				apply: func(c *config.Config, v float64) { c.Species.Predator.ReproductionThreshold = v }},
			{Name: "pred_repro_cost", Path: "species.predator.reproduction_cost", Min: 10, Max: 60, Default: 40,
				apply: func(c *config.Config, v float64) { c.Species.Predator.ReproductionCost = v }},
			{Name: "pred_cooldown", Path: "species.predator.reproduction_cooldown", Min: 5, Max: 40, Default: 20,
				apply: func(c *config.Config, v float64) { c.Species.Predator.ReproductionCooldown = v }},
			{Name: "pred_hunt_cooldown", Path: "species.predator.hunting_cooldown", Min: 0, Max: 120, Default: 30,
				apply: func(c *config.Config, v float64) { c.Species.Predator.HuntingCooldown = int(math.Round(v)) }},
			// Regulator
			{Name: "max_pred_ratio", Path: "population.max_predator_ratio", Min: 0.1, Max: 0.5, Default: 0.3,
				apply: func(c *config.Config, v float64) { c.Population.MaxPredatorRatio = v }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg. Reproduction
// costs are capped at their thresholds so the result always validates.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].apply(cfg, v)
	}

	for _, s := range []*config.SpeciesProfileConfig{&cfg.Species.Prey, &cfg.Species.Predator} {
		s.ReproductionCost = min(s.ReproductionCost, s.ReproductionThreshold)
	}
	cfg.ComputeDerived()
}
