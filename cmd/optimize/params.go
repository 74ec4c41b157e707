package main

import (
	"github.com/pthm-cable/emergence/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value

	get func(cfg *config.Config) float64
	set func(cfg *config.Config, v float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{
				Name: "photosynthesis_rate", Path: "plant.photosynthesis_rate",
				Min: 0.05, Max: 0.6, Default: 0.2,
				get: func(c *config.Config) float64 { return c.Plant.PhotosynthesisRate },
				set: func(c *config.Config, v float64) { c.Plant.PhotosynthesisRate = v },
			},
			{
				Name: "upkeep_rate", Path: "structure.upkeep_rate",
				Min: 0.02, Max: 0.5, Default: 0.1,
				get: func(c *config.Config) float64 { return c.Structure.UpkeepRate },
				set: func(c *config.Config, v float64) { c.Structure.UpkeepRate = v },
			},
			{
				// Upper bound stays below the default starting mass of 1.0
				Name: "despawn_mass", Path: "structure.despawn_mass",
				Min: 0.02, Max: 0.5, Default: 0.1,
				get: func(c *config.Config) float64 { return c.Structure.DespawnMass },
				set: func(c *config.Config, v float64) { c.Structure.DespawnMass = v },
			},
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

// ApplyToConfig writes clamped parameter values into cfg and refreshes derived values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].set(cfg, v)
	}
	return cfg.Recompute()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(cfg)
	}
	return v
}
