// Package game is the raylib front end: it feeds pointer and keyboard input
// into a world.World, advances it with real frame time and draws it.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/audio"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/systems"
	"github.com/pthm-cable/flock/telemetry"
	"github.com/pthm-cable/flock/ui"
	"github.com/pthm-cable/flock/world"
)

const (
	dragThreshold = 4  // pixels a press may move and still count as a click
	eraseRadius   = 18 // pixels
	selectRadius  = 20 // pixels
)

// Options configures a Game.
type Options struct {
	Seed      int64
	LogStats  bool
	OutputDir string
	Headless  bool
	Audio     bool
	Logger    *slog.Logger
}

// Game holds the simulation and everything needed to show it.
type Game struct {
	cfg    *config.Config
	world  *world.World
	logger *slog.Logger

	sonifier      *audio.Sonifier
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	headless      bool

	// UI
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	inspector *ui.Inspector
	perfPanel *ui.PerfPanel
	overlays  *ui.OverlayRegistry

	// Input
	gesture    Gesture
	selectedID uint32

	// Render scratch: agent states before and after the last Advance
	prev     map[uint32]world.AgentState
	agents   []world.AgentState
	screenW  float32
	screenH  float32
	maxSpeed float32
}

// NewGame builds the world and, unless headless, the UI around it.
// Raylib must already be initialised when not headless.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g := &Game{
		cfg:           cfg,
		logger:        logger,
		logStats:      opts.LogStats,
		headless:      opts.Headless,
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		gesture:       Gesture{DragThreshold: dragThreshold},
		prev:          make(map[uint32]world.AgentState),
		screenW:       cfg.Derived.ArenaW,
		screenH:       cfg.Derived.ArenaH,
		maxSpeed:      float32(max(cfg.Species.Prey.MaxSpeed, cfg.Species.Predator.MaxSpeed)),
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("create output manager: %w", err)
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, fmt.Errorf("write config snapshot: %w", err)
		}
		g.outputManager = om
	}

	var sink world.Audio
	if opts.Audio {
		g.sonifier = audio.NewSonifier(cfg.Audio)
		if err := g.sonifier.Start(); err != nil {
			// Non-fatal, the simulation runs without sound
			logger.Warn("audio unavailable", "error", err)
		}
		sink = g.sonifier
	}

	g.world = world.New(cfg, world.Options{
		Seed:      opts.Seed,
		Audio:     sink,
		Collector: g.collector,
		Perf:      g.perfCollector,
		OnWindow:  g.onWindow,
		Logger:    logger,
	})

	if !opts.Headless {
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlsPanel(10, 10, 220)
		g.inspector = ui.NewInspector(10, 0, 220, g.maxSpeed)
		g.perfPanel = ui.NewPerfPanel(0, 0)
		g.overlays = ui.NewOverlayRegistry()
	}

	return g, nil
}

// Update processes input and advances the simulation by the last frame's
// duration.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.handleInput()

	g.rememberPositions()
	g.world.Advance(float64(rl.GetFrameTime()))
}

// UpdateHeadless runs exactly one tick.
func (g *Game) UpdateHeadless() {
	g.world.Step()
}

// rememberPositions keeps the pre-advance state for render interpolation.
func (g *Game) rememberPositions() {
	clear(g.prev)
	g.agents = g.world.AppendAgents(g.agents[:0])
	for _, a := range g.agents {
		g.prev[a.ID] = a
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.world.Tick()
}

// World exposes the simulation for callers that drive it directly.
func (g *Game) World() *world.World {
	return g.world
}

// Unload releases audio and flushes output files.
func (g *Game) Unload() {
	if g.sonifier != nil {
		g.sonifier.Close()
	}
	if err := g.outputManager.Close(); err != nil {
		g.logger.Error("failed to close output", "error", err)
	}
}

// lerpWrapped interpolates between two positions on a torus. A jump of more
// than half the arena means the agent wrapped, so the current position is
// used as is.
func lerpWrapped(prev, cur systems.Vec2, alpha, width, height float32) systems.Vec2 {
	dx := cur.X - prev.X
	dy := cur.Y - prev.Y
	if dx > width/2 || dx < -width/2 || dy > height/2 || dy < -height/2 {
		return cur
	}
	return systems.Vec2{X: prev.X + dx*alpha, Y: prev.Y + dy*alpha}
}
