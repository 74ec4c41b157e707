// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Structure  StructureConfig  `yaml:"structure"`
	Plant      PlantConfig      `yaml:"plant"`
	Population PopulationConfig `yaml:"population"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the hex map dimensions in tiles.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PhysicsConfig holds simulation timing.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // seconds per tick
}

// StructureConfig holds defaults for newly spawned structures.
type StructureConfig struct {
	StartingMass float64 `yaml:"starting_mass"`
	DespawnMass  float64 `yaml:"despawn_mass"` // absolute mass, not a fraction
	UpkeepRate   float64 `yaml:"upkeep_rate"`  // fraction of mass lost per second
}

// PlantConfig holds plant growth parameters.
type PlantConfig struct {
	PhotosynthesisRate float64 `yaml:"photosynthesis_rate"` // mass per second per unit of mass^(2/3)
}

// PopulationConfig holds the starting population.
type PopulationConfig struct {
	InitialPlants int `yaml:"initial_plants"`
	InitialFungi  int `yaml:"initial_fungi"`
	InitialUnits  int `yaml:"initial_units"`
}

// TerrainConfig holds terrain generation parameters.
type TerrainConfig struct {
	Scale          float64 `yaml:"scale"`           // Base noise frequency per tile
	Octaves        int     `yaml:"octaves"`         // FBM octaves
	HighThreshold  float64 `yaml:"high_threshold"`  // Normalized noise above this is high ground
	RockyThreshold float64 `yaml:"rocky_threshold"` // Normalized noise above this is impassable rock
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TileCount int // World.Width * World.Height
	// Mass a plant tends toward when growth and upkeep balance: (rate/upkeep)^3.
	// Zero when upkeep is zero.
	PlantEquilibriumMass float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := parse(nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return parse(data)
}

// Parse loads configuration from YAML bytes layered over the embedded defaults.
func Parse(data []byte) (*Config, error) {
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Unmarshal into same struct - only overwrites fields present in data
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects values the simulation core would otherwise trust blindly.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %dx%d", c.World.Width, c.World.Height))
	}
	if c.Physics.DT <= 0 {
		errs = append(errs, fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT))
	}

	s := c.Structure
	if s.UpkeepRate < 0 {
		errs = append(errs, fmt.Errorf("structure.upkeep_rate must not be negative, got %v", s.UpkeepRate))
	}
	if s.DespawnMass >= s.StartingMass {
		errs = append(errs, fmt.Errorf("structure.despawn_mass (%v) must be below starting_mass (%v)", s.DespawnMass, s.StartingMass))
	}
	if s.UpkeepRate*c.Physics.DT > 1 {
		errs = append(errs, fmt.Errorf("structure.upkeep_rate*dt must not exceed 1, got %v", s.UpkeepRate*c.Physics.DT))
	}
	if c.Plant.PhotosynthesisRate < 0 {
		errs = append(errs, fmt.Errorf("plant.photosynthesis_rate must not be negative, got %v", c.Plant.PhotosynthesisRate))
	}

	p := c.Population
	if p.InitialPlants < 0 || p.InitialFungi < 0 || p.InitialUnits < 0 {
		errs = append(errs, errors.New("population counts must not be negative"))
	} else if total := p.InitialPlants + p.InitialFungi + p.InitialUnits; total > c.World.Width*c.World.Height {
		errs = append(errs, fmt.Errorf("initial population %d exceeds tile count %d", total, c.World.Width*c.World.Height))
	}

	t := c.Terrain
	if t.Scale <= 0 {
		errs = append(errs, fmt.Errorf("terrain.scale must be positive, got %v", t.Scale))
	}
	if t.Octaves < 1 {
		errs = append(errs, fmt.Errorf("terrain.octaves must be at least 1, got %d", t.Octaves))
	}
	if t.HighThreshold > t.RockyThreshold {
		errs = append(errs, fmt.Errorf("terrain.high_threshold (%v) must not exceed rocky_threshold (%v)", t.HighThreshold, t.RockyThreshold))
	}

	if c.Telemetry.StatsWindow <= 0 {
		errs = append(errs, fmt.Errorf("telemetry.stats_window must be positive, got %v", c.Telemetry.StatsWindow))
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TileCount = c.World.Width * c.World.Height
	c.Derived.PlantEquilibriumMass = 0
	if c.Structure.UpkeepRate > 0 {
		r := c.Plant.PhotosynthesisRate / c.Structure.UpkeepRate
		c.Derived.PlantEquilibriumMass = r * r * r
	}
}

// Recompute refreshes derived values after fields were changed in code.
func (c *Config) Recompute() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
