package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/flock/components"
)

func TestClampSpeed(t *testing.T) {
	tests := []struct {
		name    string
		v       Vec2
		wantLen float32
	}{
		{"too fast", Vec2{6, 8}, 3},
		{"too slow", Vec2{0.3, 0.4}, 1},
		{"within range", Vec2{1.2, 1.6}, 2},
		{"zero stays zero", Vec2{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampSpeed(tt.v, 1, 3)
			if math.Abs(float64(got.Len()-tt.wantLen)) > 1e-5 {
				t.Errorf("expected speed %f, got %f", tt.wantLen, got.Len())
			}
		})
	}
}

func TestIntegrateVelocity(t *testing.T) {
	vel := components.Velocity{X: 2, Y: 0}
	acc := components.Acceleration{X: 5, Y: 0}
	m := components.Motion{MaxSpeed: 3, MinSpeed: 1}

	IntegrateVelocity(&vel, acc, m, 1)

	if math.Abs(float64(vel.X-3)) > 1e-6 || vel.Y != 0 {
		t.Errorf("expected velocity clamped to (3,0), got (%f,%f)", vel.X, vel.Y)
	}
}

func TestWrapPosition(t *testing.T) {
	b := Bounds{Width: 100, Height: 50}
	tests := []struct {
		in, want components.Position
	}{
		{components.Position{X: 101, Y: 25}, components.Position{X: 1, Y: 25}},
		{components.Position{X: -1, Y: -1}, components.Position{X: 99, Y: 49}},
		{components.Position{X: 50, Y: 50}, components.Position{X: 50, Y: 0}},
	}
	for _, tt := range tests {
		p := tt.in
		WrapPosition(&p, b)
		if math.Abs(float64(p.X-tt.want.X)) > 1e-4 || math.Abs(float64(p.Y-tt.want.Y)) > 1e-4 {
			t.Errorf("WrapPosition(%v) = %v, want %v", tt.in, p, tt.want)
		}
	}
}

func TestCursorAvoidance(t *testing.T) {
	p := CursorParams{AvoidanceRadius: 60, RangeMultiplier: 2, MinDistance: 5, Cutoff: 200, Strength: 0.05}
	c := Cursor{X: 100, Y: 100, Active: true}

	near := CursorAvoidance(Vec2{110, 100}, c, p)
	if near.X <= 0 || near.Y != 0 {
		t.Errorf("expected push toward +X, got %v", near)
	}
	far := CursorAvoidance(Vec2{200, 100}, c, p)
	if far.Len() >= near.Len() {
		t.Errorf("force should weaken with distance: near=%f far=%f", near.Len(), far.Len())
	}
	if f := CursorAvoidance(Vec2{230, 100}, c, p); !f.IsZero() {
		t.Errorf("beyond radius*multiplier should be ignored, got %v", f)
	}

	// MinDistance floors the denominator.
	touching := CursorAvoidance(Vec2{101, 100}, c, p)
	want := p.Strength * p.AvoidanceRadius / p.MinDistance
	if math.Abs(float64(touching.Len()-want)) > 1e-5 {
		t.Errorf("expected floored strength %f, got %f", want, touching.Len())
	}

	onTop := CursorAvoidance(Vec2{100, 100}, c, p)
	if !isFinite(onTop) || onTop.IsZero() {
		t.Errorf("expected finite push at zero distance, got %v", onTop)
	}

	c.Active = false
	if f := CursorAvoidance(Vec2{110, 100}, c, p); !f.IsZero() {
		t.Errorf("inactive cursor should exert no force, got %v", f)
	}
}

func TestCursorAvoidance_Cutoff(t *testing.T) {
	p := CursorParams{AvoidanceRadius: 200, RangeMultiplier: 2, MinDistance: 5, Cutoff: 100, Strength: 1}
	c := Cursor{X: 0, Y: 0, Active: true}
	if f := CursorAvoidance(Vec2{150, 0}, c, p); !f.IsZero() {
		t.Errorf("cutoff should short-circuit, got %v", f)
	}
}
