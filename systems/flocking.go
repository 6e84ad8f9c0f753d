package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
)

// Agent is the read-only per-tick snapshot of one boid.
// Forces for every agent are computed against the same snapshot so update
// order never leaks into steering.
type Agent struct {
	Entity  ecs.Entity
	ID      uint32
	Species components.Species
	Pos     Vec2
	Vel     Vec2
	Radius  float32
	Killed  bool // set when a predator claims this agent during the tick
}

// FlockParams holds the flocking weights and base radii.
type FlockParams struct {
	SeparationWeight float32
	AlignmentWeight  float32
	CohesionWeight   float32

	SeparationRadius float32
	AlignmentRadius  float32
	CohesionRadius   float32

	DensityRadius     float32
	DensityThreshold  float32
	DensityNormalizer float32
}

// Dense-crowd adjustments.
const (
	denseSeparationBoost = 1.2
	denseCohesionDamp    = 0.8
	maxSeparationFactor  = 1.5 // separation factor never exceeds this multiple of its weight
)

// countWithin counts live neighbours of agents[idx] within radius.
// When sameSpecies is set only agents of the same species are counted.
func countWithin(agents []Agent, idx int, radius float32, sameSpecies bool) int {
	self := agents[idx]
	r2 := radius * radius
	n := 0
	for j := range agents {
		o := &agents[j]
		if j == idx || o.Killed {
			continue
		}
		if sameSpecies && o.Species != self.Species {
			continue
		}
		if o.Pos.Sub(self.Pos).LenSq() <= r2 {
			n++
		}
	}
	return n
}

// Separation steers away from crowding neighbours of any species.
// The radius widens with the local crowd and each neighbour pushes with
// inverse-square weight. The result already carries the separation weight,
// scaled up with crowding.
func Separation(agents []Agent, idx int, m components.Motion, p FlockParams) Vec2 {
	self := agents[idx]

	crowd := countWithin(agents, idx, p.SeparationRadius, false)
	radius := p.SeparationRadius * (1 + 0.05*float32(crowd))
	r2 := radius * radius

	var sum Vec2
	n := 0
	for j := range agents {
		o := &agents[j]
		if j == idx || o.Killed {
			continue
		}
		diff := self.Pos.Sub(o.Pos)
		d2 := diff.LenSq()
		if d2 > r2 {
			continue
		}
		// Coincident agents contribute nothing; the rest of the crowd separates them.
		sum = sum.Add(diff.Normalize().Scale(1 / max(d2, 0.5)))
		n++
	}
	if n == 0 || sum.IsZero() {
		return Vec2{}
	}

	steer := sum.Scale(1 / float32(n)).SetMag(m.MaxSpeed).Sub(self.Vel)
	steer = steer.Limit(m.MaxForce * (1 + min(0.5, float32(n)/30)))

	factor := p.SeparationWeight * min(maxSeparationFactor, 1+float32(n)/20)
	return steer.Scale(factor)
}

// Alignment steers toward the average heading of same-species neighbours.
func Alignment(agents []Agent, idx int, m components.Motion, p FlockParams) Vec2 {
	self := agents[idx]

	crowd := countWithin(agents, idx, p.AlignmentRadius, true)
	radius := p.AlignmentRadius * (1 + 0.01*float32(crowd))
	r2 := radius * radius

	var sum Vec2
	n := 0
	for j := range agents {
		o := &agents[j]
		if j == idx || o.Killed || o.Species != self.Species {
			continue
		}
		if o.Pos.Sub(self.Pos).LenSq() > r2 {
			continue
		}
		sum = sum.Add(o.Vel)
		n++
	}
	if n == 0 || sum.IsZero() {
		return Vec2{}
	}

	steer := sum.Scale(1 / float32(n)).SetMag(m.MaxSpeed).Sub(self.Vel)
	return steer.Limit(m.MaxForce)
}

// Cohesion steers toward the centroid of same-species neighbours.
// The radius shrinks as the crowd grows so dense flocks stop collapsing inward.
func Cohesion(agents []Agent, idx int, m components.Motion, p FlockParams) Vec2 {
	self := agents[idx]

	crowd := countWithin(agents, idx, p.CohesionRadius, true)
	radius := p.CohesionRadius * max(0.5, 1-0.02*float32(crowd))
	r2 := radius * radius

	var centroid Vec2
	n := 0
	for j := range agents {
		o := &agents[j]
		if j == idx || o.Killed || o.Species != self.Species {
			continue
		}
		if o.Pos.Sub(self.Pos).LenSq() > r2 {
			continue
		}
		centroid = centroid.Add(o.Pos)
		n++
	}
	if n == 0 {
		return Vec2{}
	}

	centroid = centroid.Scale(1 / float32(n))
	desired := centroid.Sub(self.Pos)
	if desired.IsZero() {
		return Vec2{}
	}
	steer := desired.SetMag(m.MaxSpeed).Sub(self.Vel)
	return steer.Limit(m.MaxForce)
}

// LocalDensity returns the neighbour count within the density radius,
// normalised so that DensityNormalizer neighbours read as 1.
func LocalDensity(agents []Agent, idx int, p FlockParams) float32 {
	if p.DensityNormalizer <= 0 {
		return 0
	}
	return float32(countWithin(agents, idx, p.DensityRadius, false)) / p.DensityNormalizer
}

// Flock combines separation, alignment and cohesion into one steering force.
// Above the density threshold separation is boosted and cohesion damped.
func Flock(agents []Agent, idx int, m components.Motion, p FlockParams) Vec2 {
	sep := Separation(agents, idx, m, p)
	ali := Alignment(agents, idx, m, p).Scale(p.AlignmentWeight)
	coh := Cohesion(agents, idx, m, p).Scale(p.CohesionWeight)

	if LocalDensity(agents, idx, p) > p.DensityThreshold {
		sep = sep.Scale(denseSeparationBoost)
		coh = coh.Scale(denseCohesionDamp)
	}

	return sep.Add(ali).Add(coh)
}

// ApplyForce accumulates a steering force, scaled by the species' steering factor.
func ApplyForce(acc *components.Acceleration, f Vec2, steeringFactor float32) {
	acc.X += f.X * steeringFactor
	acc.Y += f.Y * steeringFactor
}
