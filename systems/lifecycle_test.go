package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/flock/components"
)

func TestUpdateHealth(t *testing.T) {
	dt := float32(1.0 / 60.0)
	tests := []struct {
		name      string
		h         components.Health
		want      float32
		wantStarv bool
	}{
		{"decay only", components.Health{Value: 50, Max: 100, DecayRate: 6}, 50 - 6*dt, false},
		{"net regen", components.Health{Value: 50, Max: 100, DecayRate: 1, RegenRate: 2}, 50 + dt, false},
		{"clamped at max", components.Health{Value: 100, Max: 100, RegenRate: 5}, 100, false},
		{"starves at zero", components.Health{Value: 0.01, Max: 100, DecayRate: 6}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.h
			starved := UpdateHealth(&h, dt)
			if math.Abs(float64(h.Value-tt.want)) > 1e-5 {
				t.Errorf("expected health %.6f, got %.6f", tt.want, h.Value)
			}
			if starved != tt.wantStarv {
				t.Errorf("expected starved=%v, got %v", tt.wantStarv, starved)
			}
			if h.Value < 0 || h.Value > h.Max {
				t.Errorf("health %f outside [0, %f]", h.Value, h.Max)
			}
		})
	}
}

func TestUpdateReproductionState_ReadyAtThreshold(t *testing.T) {
	h := components.Health{Value: 70, Max: 100}
	r := components.Reproduction{Threshold: 70, Cost: 30, Cooldown: 0}

	UpdateReproductionState(h, &r, 1.0/60)
	if !r.Ready {
		t.Error("agent at threshold with no cooldown should be ready")
	}
}

func TestUpdateReproductionState_Gates(t *testing.T) {
	tests := []struct {
		name     string
		health   float32
		cooldown float32
		want     bool
	}{
		{"below threshold", 69.9, 0, false},
		{"cooling down", 90, 1, false},
		{"cooldown expiring this tick", 90, 0.01, true},
		{"healthy and idle", 90, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := components.Health{Value: tt.health, Max: 100}
			r := components.Reproduction{Threshold: 70, Cooldown: tt.cooldown}
			UpdateReproductionState(h, &r, 1.0/60)
			if r.Ready != tt.want {
				t.Errorf("expected ready=%v, got %v", tt.want, r.Ready)
			}
			if r.Cooldown < 0 {
				t.Errorf("cooldown went negative: %f", r.Cooldown)
			}
		})
	}
}

func TestReproduce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	prof := components.Profile{SpawnOffset: 10}
	h := components.Health{Value: 80, Max: 100}
	r := components.Reproduction{Threshold: 70, Cost: 30, CooldownDuration: 8, Ready: true}
	org := components.Organism{ID: 4, Species: components.SpeciesPrey, Generation: 2}
	m := components.Motion{MaxSpeed: 3, MinSpeed: 1, MaxForce: 0.1, SteeringFactor: 1.2}
	body := components.Body{Radius: 3, Restitution: 0.6}

	child := Reproduce(Vec2{200, 200}, &h, &r, &org, m, body, &prof, rng)

	if h.Value != 50 {
		t.Errorf("parent should pay the cost: expected 50, got %f", h.Value)
	}
	if r.Ready {
		t.Error("parent should no longer be ready")
	}
	if r.Cooldown != 8 {
		t.Errorf("expected cooldown 8, got %f", r.Cooldown)
	}
	if child.Species != components.SpeciesPrey {
		t.Errorf("child species %v, want prey", child.Species)
	}
	if child.Generation != 3 {
		t.Errorf("expected generation 3, got %d", child.Generation)
	}
	if child.Motion != m || child.Body != body {
		t.Error("child should inherit movement limits and body")
	}
	if child.Health != 30 {
		t.Errorf("child should start with the paid cost, got %f", child.Health)
	}
	if d := Dist(child.Pos, Vec2{200, 200}); d > 10*math.Sqrt2+1e-4 {
		t.Errorf("child spawned %f away, beyond offset", d)
	}
	if s := child.Vel.Len(); s < m.MinSpeed-1e-5 || s > m.MaxSpeed+1e-5 {
		t.Errorf("child speed %f outside [%f, %f]", s, m.MinSpeed, m.MaxSpeed)
	}
}
