package systems

import (
	"math"

	"github.com/pthm-cable/flock/components"
)

// ChasePrey steers a predator toward the nearest live prey inside its
// detection radius. Pull grows linearly as the gap closes. Returns the index
// of the prey caught this tick (bodies touching), or -1.
// A predator still digesting (hunt cooldown > 0) neither steers nor catches.
func ChasePrey(agents []Agent, idx int, m components.Motion, prof *components.Profile, huntCooldown int32) (Vec2, int) {
	if huntCooldown > 0 {
		return Vec2{}, -1
	}

	self := agents[idx]
	target := -1
	bestDist := float32(math.MaxFloat32)
	for j := range agents {
		o := &agents[j]
		if j == idx || o.Killed || o.Species != components.SpeciesPrey {
			continue
		}
		d := Dist(self.Pos, o.Pos)
		if d <= prof.DetectionRadius && d < bestDist {
			target, bestDist = j, d
		}
	}
	if target < 0 {
		return Vec2{}, -1
	}

	prey := agents[target]
	dir := prey.Pos.Sub(self.Pos).Normalize()
	if dir.IsZero() {
		// On top of the prey: keep pushing along the current heading.
		dir = self.Vel.Normalize()
		if dir.IsZero() {
			dir = Vec2{1, 0}
		}
	}

	proximity := float32(1)
	if prof.DetectionRadius > 0 {
		proximity += 1 - bestDist/prof.DetectionRadius
	}
	desired := dir.Scale(m.MaxSpeed * proximity)
	steer := desired.Sub(self.Vel).Limit(2 * m.MaxForce)

	caught := -1
	if bestDist <= self.Radius+prey.Radius {
		caught = target
	}
	return steer, caught
}

// ConsumeKill credits a predator for a kill and starts its hunt cooldown.
func ConsumeKill(h *components.Health, org *components.Organism, prof *components.Profile) {
	h.Value = min(h.Max, h.Value+prof.KillBonus)
	org.HuntCooldown = prof.HuntingCooldown
}

// TickHuntCooldown counts a predator's hunt cooldown down by one tick.
func TickHuntCooldown(org *components.Organism) {
	if org.HuntCooldown > 0 {
		org.HuntCooldown--
	}
}

// FleePredators steers prey away from every predator within detection range.
// Closer predators weigh more (inverse square), and the whole response is
// amplified up to 3x as the nearest one closes in.
func FleePredators(agents []Agent, idx int, m components.Motion, prof *components.Profile) Vec2 {
	self := agents[idx]

	var away Vec2
	nearest := float32(math.MaxFloat32)
	seen := 0
	for j := range agents {
		o := &agents[j]
		if j == idx || o.Species != components.SpeciesPredator {
			continue
		}
		diff := self.Pos.Sub(o.Pos)
		d := diff.Len()
		if d > prof.DetectionRadius {
			continue
		}
		dir := diff.Normalize()
		if dir.IsZero() {
			dir = self.Vel.Normalize()
		}
		away = away.Add(dir.Scale(1 / max(d*d, 0.5)))
		nearest = min(nearest, d)
		seen++
	}
	if seen == 0 || away.IsZero() {
		return Vec2{}
	}

	flee := away.SetMag(m.MaxSpeed * prof.FleeStrength).Sub(self.Vel)
	flee = flee.Limit(3 * m.MaxForce)

	proximity := float32(1)
	if prof.DetectionRadius > 0 {
		proximity = clampFloat(1+2*(1-nearest/prof.DetectionRadius), 1, 3)
	}
	return flee.Scale(proximity)
}
