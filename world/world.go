// Package world owns the agent population and obstacle set and advances
// them with a fixed-timestep clock. It has no rendering dependencies so
// it runs headless, under test and behind any front end.
package world

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/systems"
	"github.com/pthm-cable/flock/telemetry"
)

// Options configures a World beyond what the config file holds.
type Options struct {
	Seed          int64
	Width, Height float32 // arena size; zero uses the configured screen size

	Audio     Audio                    // optional sonification collaborator
	Collector *telemetry.Collector     // optional event statistics
	Perf      *telemetry.PerfCollector // optional phase timing
	OnWindow  func(telemetry.WindowStats)
	Logger    *slog.Logger
}

// Weights are the user-tunable flocking weights.
type Weights struct {
	Separation float32
	Alignment  float32
	Cohesion   float32
}

// birth is a newborn waiting for the end of the tick.
type birth struct {
	parentID uint32
	off      systems.Offspring
}

// World is the simulation: agents as ECS entities, drawn obstacles and
// their spatial index, the cursor, and the fixed-timestep clock.
type World struct {
	cfg      *config.Config
	profiles components.Profiles
	logger   *slog.Logger
	rng      *rand.Rand

	ecs    *ecs.World
	mapper *ecs.Map8[
		components.Position,
		components.Velocity,
		components.Acceleration,
		components.Body,
		components.Motion,
		components.Health,
		components.Reproduction,
		components.Organism,
	]
	filter *ecs.Filter8[
		components.Position,
		components.Velocity,
		components.Acceleration,
		components.Body,
		components.Motion,
		components.Health,
		components.Reproduction,
		components.Organism,
	]

	obstacles *systems.Obstacles
	resolver  *systems.CollisionResolver
	regulator systems.Regulator
	flock     systems.FlockParams
	cursor    systems.Cursor
	cursorCfg systems.CursorParams
	bounds    systems.Bounds

	audio     Audio
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	onWindow  func(telemetry.WindowStats)

	// Clock
	running     bool
	accumulator float64
	dt          float64
	timeScale   float32
	tick        int32

	nextID uint32

	// Per-tick scratch, reused to avoid churn in the hot loop
	agents     []systems.Agent
	births     []birth
	removals   []ecs.Entity
	candidates []systems.Candidate
	candEnts   []ecs.Entity
	states     []AgentState
}

// New creates a world and seeds its initial population.
func New(cfg *config.Config, opts Options) *World {
	w := &World{
		cfg:       cfg,
		profiles:  components.ProfilesFromConfig(cfg),
		logger:    opts.Logger,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		audio:     opts.Audio,
		collector: opts.Collector,
		perf:      opts.Perf,
		onWindow:  opts.OnWindow,
		running:   true,
		dt:        1.0 / cfg.Simulation.TickRate,
		timeScale: float32(cfg.Simulation.TimeScale),
		nextID:    1,
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}

	w.bounds = systems.Bounds{Width: opts.Width, Height: opts.Height}
	if w.bounds.Width <= 0 || w.bounds.Height <= 0 {
		w.bounds = systems.Bounds{Width: cfg.Derived.ArenaW, Height: cfg.Derived.ArenaH}
	}

	oc := cfg.Obstacles
	w.obstacles = systems.NewObstacles(float32(oc.CellSize), float32(oc.PointSize), float32(oc.MinDrawDistance))
	w.resolver = &systems.CollisionResolver{
		Grid:            w.obstacles.Grid(),
		LookAheadSteps:  float32(oc.LookAheadSteps),
		DetectionMargin: float32(oc.DetectionMargin),
		AvoidForce:      float32(oc.AvoidForce),
		PushEpsilon:     float32(oc.PushEpsilon),
	}

	pc := cfg.Population
	w.regulator = systems.Regulator{
		MaxBoids:         pc.MaxBoids,
		MaxPredatorRatio: pc.MaxPredatorRatio,
		MinPredators:     pc.MinPredators,
		MinPreyRatio:     pc.MinPreyRatio,
	}

	fc := cfg.Flocking
	w.flock = systems.FlockParams{
		SeparationWeight:  float32(fc.SeparationWeight),
		AlignmentWeight:   float32(fc.AlignmentWeight),
		CohesionWeight:    float32(fc.CohesionWeight),
		SeparationRadius:  float32(fc.SeparationRadius),
		AlignmentRadius:   float32(fc.AlignmentRadius),
		CohesionRadius:    float32(fc.CohesionRadius),
		DensityRadius:     float32(fc.DensityRadius),
		DensityThreshold:  float32(fc.DensityThreshold),
		DensityNormalizer: float32(fc.DensityNormalizer),
	}

	cc := cfg.Cursor
	w.cursorCfg = systems.CursorParams{
		AvoidanceRadius: float32(cc.AvoidanceRadius),
		RangeMultiplier: float32(cc.RangeMultiplier),
		MinDistance:     float32(cc.MinDistance),
		Cutoff:          float32(cc.Cutoff),
		Strength:        float32(cc.Strength),
	}

	w.initECS()
	w.seedPopulation()

	return w
}

func (w *World) initECS() {
	w.ecs = ecs.NewWorld()
	w.mapper = ecs.NewMap8[
		components.Position,
		components.Velocity,
		components.Acceleration,
		components.Body,
		components.Motion,
		components.Health,
		components.Reproduction,
		components.Organism,
	](w.ecs)
	w.filter = ecs.NewFilter8[
		components.Position,
		components.Velocity,
		components.Acceleration,
		components.Body,
		components.Motion,
		components.Health,
		components.Reproduction,
		components.Organism,
	](w.ecs)
}

// seedPopulation spawns the initial agents at the configured species ratio.
func (w *World) seedPopulation() {
	pc := w.cfg.Population
	total := min(pc.Initial, pc.MaxBoids)
	prey := int(math.Round(float64(total) * pc.PreyRatio))

	for i := 0; i < total; i++ {
		species := components.SpeciesPrey
		if i >= prey {
			species = components.SpeciesPredator
		}
		x := w.rng.Float32() * w.bounds.Width
		y := w.rng.Float32() * w.bounds.Height
		w.Spawn(x, y, species)
	}
}

// spawn creates an agent entity from its profile.
func (w *World) spawn(species components.Species, pos, vel systems.Vec2, healthValue float32, generation uint32,
	motion components.Motion, body components.Body) ecs.Entity {
	prof := w.profiles.Get(species)

	id := w.nextID
	w.nextID++

	p := components.Position{X: pos.X, Y: pos.Y}
	v := components.Velocity{X: vel.X, Y: vel.Y}
	acc := components.Acceleration{}
	health := components.Health{
		Value:     min(healthValue, prof.MaxHealth),
		Max:       prof.MaxHealth,
		DecayRate: prof.HealthDecayRate,
		RegenRate: prof.FoodGenerationRate,
	}
	repro := components.Reproduction{
		Threshold:        prof.ReproductionThreshold,
		Cost:             prof.ReproductionCost,
		Cooldown:         prof.ReproductionCooldown,
		CooldownDuration: prof.ReproductionCooldown,
	}
	org := components.Organism{
		ID:         id,
		Species:    species,
		Generation: generation,
	}

	return w.mapper.NewEntity(&p, &v, &acc, &body, &motion, &health, &repro, &org)
}

// randomHeading returns a velocity of the configured spawn speed in a
// random direction, clamped into the species' speed range.
func (w *World) randomHeading(m components.Motion) systems.Vec2 {
	heading := w.rng.Float64() * 2 * math.Pi
	speed := float32(w.cfg.Flocking.SpawnSpeed)
	v := systems.Vec2{
		X: float32(math.Cos(heading)) * speed,
		Y: float32(math.Sin(heading)) * speed,
	}
	return systems.ClampSpeed(v, m.MinSpeed, m.MaxSpeed)
}

// Reset discards every agent and reseeds the population. Obstacles stay.
func (w *World) Reset() {
	w.removals = w.removals[:0]
	query := w.filter.Query()
	for query.Next() {
		w.removals = append(w.removals, query.Entity())
	}
	for _, e := range w.removals {
		w.ecs.RemoveEntity(e)
	}

	w.tick = 0
	w.accumulator = 0
	w.nextID = 1
	if w.collector != nil {
		w.collector.Reset(0)
	}
	w.seedPopulation()

	prey, pred := w.Counts()
	w.logger.Info("world_reset", "prey", prey, "predators", pred)
}
