package world

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/systems"
)

// Spawn inserts an agent at (x, y) with a random heading and the species'
// initial health. Returns the new agent's ID.
func (w *World) Spawn(x, y float32, species components.Species) uint32 {
	prof := w.profiles.Get(species)
	motion := components.MotionFromProfile(prof)
	body := components.BodyFromProfile(prof)
	vel := w.randomHeading(motion)

	id := w.nextID
	w.spawn(species, systems.Vec2{X: x, Y: y}, vel, prof.InitialHealth, 0, motion, body)
	return id
}

// BeginStroke starts drawing a wall at (x, y).
func (w *World) BeginStroke(x, y float32) {
	w.obstacles.BeginStroke(x, y)
}

// ExtendStroke continues the current wall to (x, y).
func (w *World) ExtendStroke(x, y float32) {
	w.obstacles.ExtendStroke(x, y)
}

// EndStroke finishes the current wall.
func (w *World) EndStroke() {
	w.obstacles.EndStroke()
}

// EraseAt removes obstacle points and agents within radius of (x, y).
// Returns whether anything changed.
func (w *World) EraseAt(x, y, radius float32) bool {
	changed := w.obstacles.EraseAt(x, y, radius)

	center := systems.Vec2{X: x, Y: y}
	w.removals = w.removals[:0]
	query := w.filter.Query()
	for query.Next() {
		pos, _, _, _, _, _, _, _ := query.Get()
		if systems.Dist(center, systems.Vec2{X: pos.X, Y: pos.Y}) <= radius {
			w.removals = append(w.removals, query.Entity())
		}
	}
	for _, e := range w.removals {
		pos, _, _, _, _, _, _, _ := w.mapper.Get(e)
		w.removeAgent(e, pos.X, pos.Y)
	}

	return changed || len(w.removals) > 0
}

// ClearObstacles removes every wall.
func (w *World) ClearObstacles() {
	w.obstacles.Clear()
}

// IsNearObstacle reports whether any wall lies within radius of (x, y).
func (w *World) IsNearObstacle(x, y, radius float32) bool {
	return w.obstacles.IsNear(x, y, radius)
}

// SetBehaviorWeights replaces the flocking weights. Negative values are clamped to zero.
func (w *World) SetBehaviorWeights(wt Weights) {
	w.flock.SeparationWeight = max(0, wt.Separation)
	w.flock.AlignmentWeight = max(0, wt.Alignment)
	w.flock.CohesionWeight = max(0, wt.Cohesion)
}

// BehaviorWeights returns the current flocking weights.
func (w *World) BehaviorWeights() Weights {
	return Weights{
		Separation: w.flock.SeparationWeight,
		Alignment:  w.flock.AlignmentWeight,
		Cohesion:   w.flock.CohesionWeight,
	}
}

// Resize changes the arena bounds and wraps agents left outside back in.
func (w *World) Resize(width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	w.bounds = systems.Bounds{Width: width, Height: height}

	query := w.filter.Query()
	for query.Next() {
		pos, _, _, _, _, _, _, _ := query.Get()
		if pos.X < 0 || pos.X >= width || pos.Y < 0 || pos.Y >= height {
			systems.WrapPosition(pos, w.bounds)
		}
	}
}

// SetCursor records the pointer position. Off-arena positions disable avoidance.
func (w *World) SetCursor(x, y float32) {
	inside := x >= 0 && y >= 0 && x < w.bounds.Width && y < w.bounds.Height
	w.cursor = systems.Cursor{X: x, Y: y, Active: inside}
}

// ClearCursor disables cursor avoidance.
func (w *World) ClearCursor() {
	w.cursor.Active = false
}

// SetRunning pauses or resumes the clock.
func (w *World) SetRunning(running bool) {
	w.running = running
	if !running {
		w.accumulator = 0
	}
}

// Running reports whether the clock advances.
func (w *World) Running() bool {
	return w.running
}

// entityByID finds a live agent. Linear; only used off the hot path.
func (w *World) entityByID(id uint32) (ecs.Entity, bool) {
	query := w.filter.Query()
	for query.Next() {
		_, _, _, _, _, _, _, org := query.Get()
		if org.ID == id {
			e := query.Entity()
			query.Close()
			return e, true
		}
	}
	return ecs.Entity{}, false
}

// Kill removes the agent with the given ID. Returns false if it is not alive.
func (w *World) Kill(id uint32) bool {
	e, ok := w.entityByID(id)
	if !ok {
		return false
	}
	pos, _, _, _, _, _, _, _ := w.mapper.Get(e)
	w.removeAgent(e, pos.X, pos.Y)
	return true
}
