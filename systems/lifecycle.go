package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/flock/components"
)

// UpdateHealth applies one tick of decay and passive regeneration, clamped
// to [0, Max]. Returns true once the agent has starved.
func UpdateHealth(h *components.Health, dt float32) bool {
	h.Value += (h.RegenRate - h.DecayRate) * dt
	h.Value = clampFloat(h.Value, 0, h.Max)
	return h.Value <= 0
}

// UpdateReproductionState ticks the cooldown and recomputes readiness.
// An agent is ready only while its cooldown has expired and its health
// is at or above the threshold.
func UpdateReproductionState(h components.Health, r *components.Reproduction, dt float32) {
	if r.Cooldown > 0 {
		r.Cooldown = max(0, r.Cooldown-dt)
	}
	r.Ready = r.Cooldown <= 0 && h.Value >= r.Threshold
}

// Offspring describes a newborn. It is buffered until the end of the tick
// and only then becomes an entity.
type Offspring struct {
	Species    components.Species
	Generation uint32
	Pos        Vec2
	Vel        Vec2
	Health     float32
	Motion     components.Motion
	Body       components.Body
}

// Reproduce charges the parent and describes its child.
// The parent pays Cost health, restarts its cooldown and loses readiness.
// The child spawns within the species spawn offset, inherits the parent's
// movement limits and starts with the health its parent paid.
func Reproduce(
	pos Vec2,
	h *components.Health,
	r *components.Reproduction,
	org *components.Organism,
	m components.Motion,
	body components.Body,
	prof *components.Profile,
	rng *rand.Rand,
) Offspring {
	h.Value = max(0, h.Value-r.Cost)
	r.Cooldown = r.CooldownDuration
	r.Ready = false

	off := prof.SpawnOffset
	childPos := Vec2{
		X: pos.X + (rng.Float32()*2-1)*off,
		Y: pos.Y + (rng.Float32()*2-1)*off,
	}
	heading := rng.Float32() * 2 * math.Pi
	speed := (m.MinSpeed + m.MaxSpeed) / 2
	childVel := Vec2{
		X: float32(math.Cos(float64(heading))) * speed,
		Y: float32(math.Sin(float64(heading))) * speed,
	}

	return Offspring{
		Species:    org.Species,
		Generation: org.Generation + 1,
		Pos:        childPos,
		Vel:        childVel,
		Health:     min(r.Cost, h.Max),
		Motion:     m,
		Body:       body,
	}
}
