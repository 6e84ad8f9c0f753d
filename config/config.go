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
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Population PopulationConfig `yaml:"population"`
	Flocking   FlockingConfig   `yaml:"flocking"`
	Species    SpeciesConfig    `yaml:"species"`
	Obstacles  ObstaclesConfig  `yaml:"obstacles"`
	Cursor     CursorConfig     `yaml:"cursor"`
	Audio      AudioConfig      `yaml:"audio"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimulationConfig holds fixed-timestep driver parameters.
type SimulationConfig struct {
	TickRate      float64 `yaml:"tick_rate"`      // Fixed steps per second
	MaxFrameTime  float64 `yaml:"max_frame_time"` // Cap on frame time fed to the accumulator (seconds)
	TimeScale     float64 `yaml:"time_scale"`     // Integration multiplier
	AudioInterval int     `yaml:"audio_interval"` // Ticks between audio frame notifications
}

// PopulationConfig holds initial population and regulator bounds.
type PopulationConfig struct {
	Initial          int     `yaml:"initial"`
	PreyRatio        float64 `yaml:"prey_ratio"` // Species ratio used at startup and on reset
	MaxBoids         int     `yaml:"max_boids"`
	MaxPredatorRatio float64 `yaml:"max_predator_ratio"`
	MinPredators     int     `yaml:"min_predators"`
	MinPreyRatio     float64 `yaml:"min_prey_ratio"`
}

// FlockingConfig holds the classical boid rule parameters.
type FlockingConfig struct {
	SeparationWeight  float64 `yaml:"separation_weight"`
	AlignmentWeight   float64 `yaml:"alignment_weight"`
	CohesionWeight    float64 `yaml:"cohesion_weight"`
	SeparationRadius  float64 `yaml:"separation_radius"`
	AlignmentRadius   float64 `yaml:"alignment_radius"`
	CohesionRadius    float64 `yaml:"cohesion_radius"`
	DensityRadius     float64 `yaml:"density_radius"`
	DensityThreshold  float64 `yaml:"density_threshold"`
	DensityNormalizer float64 `yaml:"density_normalizer"`
	SpawnSpeed        float64 `yaml:"spawn_speed"`
}

// SpeciesConfig holds one constant table per species.
type SpeciesConfig struct {
	Prey     SpeciesProfileConfig `yaml:"prey"`
	Predator SpeciesProfileConfig `yaml:"predator"`
}

// SpeciesProfileConfig is the tuning table for a single species.
type SpeciesProfileConfig struct {
	MaxSpeed              float64 `yaml:"max_speed"`
	MinSpeed              float64 `yaml:"min_speed"`
	MaxForce              float64 `yaml:"max_force"`
	SteeringFactor        float64 `yaml:"steering_factor"`
	MaxHealth             float64 `yaml:"max_health"`
	InitialHealth         float64 `yaml:"initial_health"`
	HealthDecayRate       float64 `yaml:"health_decay_rate"`    // Health lost per second
	FoodGenerationRate    float64 `yaml:"food_generation_rate"` // Health regained per second
	ReproductionThreshold float64 `yaml:"reproduction_threshold"`
	ReproductionCost      float64 `yaml:"reproduction_cost"`
	ReproductionCooldown  float64 `yaml:"reproduction_cooldown"` // Seconds
	DetectionRadius       float64 `yaml:"detection_radius"`      // Prey: predators seen; predator: prey seen
	FleeStrength          float64 `yaml:"flee_strength"`
	KillBonus             float64 `yaml:"kill_bonus"`
	HuntingCooldown       int     `yaml:"hunting_cooldown"` // Ticks after a kill
	Size                  float64 `yaml:"size"`
	Restitution           float64 `yaml:"restitution"`
	SpawnOffset           float64 `yaml:"spawn_offset"`
}

// ObstaclesConfig holds wall drawing, indexing and collision parameters.
type ObstaclesConfig struct {
	CellSize        float64 `yaml:"cell_size"`
	PointSize       float64 `yaml:"point_size"`
	MinDrawDistance float64 `yaml:"min_draw_distance"`
	LookAheadSteps  float64 `yaml:"look_ahead_steps"`
	DetectionMargin float64 `yaml:"detection_margin"`
	AvoidForce      float64 `yaml:"avoid_force"`
	PushEpsilon     float64 `yaml:"push_epsilon"`
}

// CursorConfig holds pointer avoidance parameters.
type CursorConfig struct {
	AvoidanceRadius float64 `yaml:"avoidance_radius"`
	RangeMultiplier float64 `yaml:"range_multiplier"`
	MinDistance     float64 `yaml:"min_distance"`
	Cutoff          float64 `yaml:"cutoff"`
	Strength        float64 `yaml:"strength"`
}

// AudioConfig holds sonification parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
	MaxVoices  int     `yaml:"max_voices"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
	PerfWindow  int     `yaml:"perf_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT           float32 // Seconds per fixed tick
	MaxFrameTime float32
	ArenaW       float32
	ArenaH       float32
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

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
// Panics if the embedded file is broken, which is a build defect.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.ComputeDerived()

	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Simulation.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("simulation.tick_rate must be positive, got %v", c.Simulation.TickRate))
	}
	if c.Simulation.MaxFrameTime <= 0 {
		errs = append(errs, fmt.Errorf("simulation.max_frame_time must be positive, got %v", c.Simulation.MaxFrameTime))
	}
	if c.Population.MaxBoids <= 0 {
		errs = append(errs, fmt.Errorf("population.max_boids must be positive, got %d", c.Population.MaxBoids))
	}
	if c.Population.MinPredators < 0 || c.Population.MinPredators > c.Population.MaxBoids {
		errs = append(errs, fmt.Errorf("population.min_predators must be in [0, max_boids], got %d", c.Population.MinPredators))
	}
	for name, r := range map[string]float64{
		"population.prey_ratio":         c.Population.PreyRatio,
		"population.max_predator_ratio": c.Population.MaxPredatorRatio,
		"population.min_prey_ratio":     c.Population.MinPreyRatio,
	} {
		if r < 0 || r > 1 {
			errs = append(errs, fmt.Errorf("%s must be in [0, 1], got %v", name, r))
		}
	}
	if c.Obstacles.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("obstacles.cell_size must be positive, got %v", c.Obstacles.CellSize))
	}
	if c.Obstacles.MinDrawDistance <= 0 {
		errs = append(errs, fmt.Errorf("obstacles.min_draw_distance must be positive, got %v", c.Obstacles.MinDrawDistance))
	}
	for name, s := range map[string]SpeciesProfileConfig{"prey": c.Species.Prey, "predator": c.Species.Predator} {
		if s.MinSpeed < 0 || s.MinSpeed > s.MaxSpeed {
			errs = append(errs, fmt.Errorf("species.%s: min_speed %v outside [0, max_speed %v]", name, s.MinSpeed, s.MaxSpeed))
		}
		if s.MaxHealth <= 0 {
			errs = append(errs, fmt.Errorf("species.%s: max_health must be positive", name))
		}
		if s.ReproductionCost > s.ReproductionThreshold {
			errs = append(errs, fmt.Errorf("species.%s: reproduction_cost %v exceeds reproduction_threshold %v", name, s.ReproductionCost, s.ReproductionThreshold))
		}
		if s.Restitution < 0 || s.Restitution > 1 {
			errs = append(errs, fmt.Errorf("species.%s: restitution must be in [0, 1], got %v", name, s.Restitution))
		}
	}

	return errors.Join(errs...)
}

// ComputeDerived calculates values derived from loaded config.
// Call it again after editing a loaded Config in place.
func (c *Config) ComputeDerived() {
	c.Derived.DT = float32(1.0 / c.Simulation.TickRate)
	c.Derived.MaxFrameTime = float32(c.Simulation.MaxFrameTime)
	c.Derived.ArenaW = float32(c.Screen.Width)
	c.Derived.ArenaH = float32(c.Screen.Height)
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
