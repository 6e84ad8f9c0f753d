package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/flock/components"
)

var testMotion = components.Motion{MaxSpeed: 3, MinSpeed: 1, MaxForce: 0.1, SteeringFactor: 1}

var testFlock = FlockParams{
	SeparationWeight:  1.5,
	AlignmentWeight:   1,
	CohesionWeight:    1,
	SeparationRadius:  30,
	AlignmentRadius:   50,
	CohesionRadius:    50,
	DensityRadius:     40,
	DensityThreshold:  0.5,
	DensityNormalizer: 10,
}

func prey(id uint32, x, y, vx, vy float32) Agent {
	return Agent{ID: id, Species: components.SpeciesPrey, Pos: Vec2{x, y}, Vel: Vec2{vx, vy}, Radius: 3}
}

func predator(id uint32, x, y, vx, vy float32) Agent {
	return Agent{ID: id, Species: components.SpeciesPredator, Pos: Vec2{x, y}, Vel: Vec2{vx, vy}, Radius: 4.5}
}

func isFinite(v Vec2) bool {
	return !math.IsNaN(float64(v.X)) && !math.IsNaN(float64(v.Y)) &&
		!math.IsInf(float64(v.X), 0) && !math.IsInf(float64(v.Y), 0)
}

func TestSeparation_PushesAway(t *testing.T) {
	agents := []Agent{
		prey(1, 100, 100, 0, 0),
		prey(2, 110, 100, 0, 0),
	}
	f := Separation(agents, 0, testMotion, testFlock)
	if f.X >= 0 {
		t.Errorf("expected push toward -X, got %+v", f)
	}
	if math.Abs(float64(f.Y)) > 1e-6 {
		t.Errorf("expected no Y component, got %f", f.Y)
	}
}

func TestSeparation_AdaptiveCap(t *testing.T) {
	// Many close neighbours: force may exceed MaxForce*weight but never
	// MaxForce*1.5 (adaptive cap) times the capped factor 1.5*weight.
	agents := []Agent{prey(0, 100, 100, 0, 0)}
	for i := 1; i <= 40; i++ {
		a := float64(i) * 0.3
		agents = append(agents, prey(uint32(i), 100+float32(math.Cos(a))*5, 100+float32(math.Sin(a))*5, 0, 0))
	}
	f := Separation(agents, 0, testMotion, testFlock)
	limit := testMotion.MaxForce * 1.5 * testFlock.SeparationWeight * maxSeparationFactor
	if f.Len() > limit+1e-5 {
		t.Errorf("separation %f exceeds cap %f", f.Len(), limit)
	}
}

func TestSeparation_CoincidentNoNaN(t *testing.T) {
	agents := []Agent{
		prey(1, 100, 100, 1, 0),
		prey(2, 100, 100, 1, 0),
	}
	f := Separation(agents, 0, testMotion, testFlock)
	if !isFinite(f) {
		t.Errorf("separation not finite: %+v", f)
	}
}

func TestAlignment_MatchesHeading(t *testing.T) {
	agents := []Agent{
		prey(1, 100, 100, 0, 1),
		prey(2, 110, 100, 2, 0),
		prey(3, 100, 110, 2, 0),
	}
	f := Alignment(agents, 0, testMotion, testFlock)
	if f.X <= 0 {
		t.Errorf("expected steering toward +X, got %+v", f)
	}
	if f.Len() > testMotion.MaxForce+1e-6 {
		t.Errorf("alignment %f exceeds max force", f.Len())
	}
}

func TestAlignment_IgnoresOtherSpecies(t *testing.T) {
	agents := []Agent{
		prey(1, 100, 100, 1, 0),
		predator(2, 110, 100, -3, 0),
	}
	if f := Alignment(agents, 0, testMotion, testFlock); !f.IsZero() {
		t.Errorf("prey should not align with predators, got %+v", f)
	}
}

func TestCohesion_TowardCentroid(t *testing.T) {
	agents := []Agent{
		prey(1, 100, 100, 0, 0),
		prey(2, 120, 100, 0, 0),
		prey(3, 120, 110, 0, 0),
	}
	f := Cohesion(agents, 0, testMotion, testFlock)
	if f.X <= 0 || f.Y <= 0 {
		t.Errorf("expected pull toward (+X,+Y), got %+v", f)
	}
}

func TestCohesion_RadiusShrinksInCrowd(t *testing.T) {
	// 25 same-species neighbours within 50 halve the radius to 25,
	// so a lone agent at distance 40 no longer attracts.
	agents := []Agent{prey(0, 500, 500, 0, 0)}
	for i := 1; i <= 25; i++ {
		agents = append(agents, prey(uint32(i), 500, 500, 0, 0))
	}
	agents = append(agents, prey(99, 540, 500, 0, 0))

	f := Cohesion(agents, 0, testMotion, testFlock)
	if !f.IsZero() {
		t.Errorf("coincident flock plus distant agent should give zero cohesion, got %+v", f)
	}
}

func TestLocalDensity(t *testing.T) {
	agents := []Agent{prey(0, 0, 0, 0, 0)}
	for i := 1; i <= 5; i++ {
		agents = append(agents, prey(uint32(i), float32(i), 0, 0, 0))
	}
	agents = append(agents, prey(9, 100, 0, 0, 0))

	if got := LocalDensity(agents, 0, testFlock); math.Abs(float64(got-0.5)) > 1e-6 {
		t.Errorf("expected density 0.5, got %f", got)
	}
}

func TestFlock_SkipsKilled(t *testing.T) {
	killed := prey(2, 105, 100, 0, 0)
	killed.Killed = true
	agents := []Agent{prey(1, 100, 100, 1, 0), killed}

	if f := Flock(agents, 0, testMotion, testFlock); !f.IsZero() {
		t.Errorf("killed neighbours should exert no force, got %+v", f)
	}
}

func TestApplyForce_SteeringFactor(t *testing.T) {
	var acc components.Acceleration
	ApplyForce(&acc, Vec2{1, -2}, 0.5)
	ApplyForce(&acc, Vec2{1, 0}, 0.5)
	if acc.X != 1 || acc.Y != -1 {
		t.Errorf("expected (1,-1), got (%v,%v)", acc.X, acc.Y)
	}
}
