package systems

import (
	"math"
	"testing"
)

func newResolver(points ...ObstaclePoint) *CollisionResolver {
	g := NewObstacleGrid(20)
	for _, p := range points {
		g.Insert(p)
	}
	return &CollisionResolver{
		Grid:            g,
		LookAheadSteps:  5,
		DetectionMargin: 10,
		AvoidForce:      0.5,
		PushEpsilon:     0.5,
	}
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name string
		v, n Vec2
		want Vec2
	}{
		{"head on", Vec2{3, 0}, Vec2{-1, 0}, Vec2{-3, 0}},
		{"glancing", Vec2{3, 4}, Vec2{-1, 0}, Vec2{-3, 4}},
		{"diagonal wall", Vec2{1, 0}, Vec2{-float32(math.Sqrt2) / 2, float32(math.Sqrt2) / 2}, Vec2{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflect(tt.v, tt.n)
			if math.Abs(float64(got.X-tt.want.X)) > 1e-5 || math.Abs(float64(got.Y-tt.want.Y)) > 1e-5 {
				t.Errorf("Reflect(%v, %v) = %v, want %v", tt.v, tt.n, got, tt.want)
			}
		})
	}
}

func TestResolveMove_HeadOnBounce(t *testing.T) {
	c := newResolver(ObstaclePoint{ID: 1, X: 105, Y: 100, Size: 2})
	restitution := float32(0.6)

	pos, vel, hit := c.ResolveMove(Vec2{100, 100}, Vec2{3, 0}, 3, restitution, 1, 1)
	if !hit {
		t.Fatal("expected a collision")
	}
	if math.Abs(float64(vel.X+3*restitution)) > 1e-5 {
		t.Errorf("expected vel.X %f, got %f", -3*restitution, vel.X)
	}
	if math.Abs(float64(vel.Y)) > 1e-6 {
		t.Errorf("expected vel.Y 0, got %f", vel.Y)
	}
	if Dist(pos, Vec2{105, 100}) < 3+1 {
		t.Errorf("agent left overlapping the obstacle at %v", pos)
	}
}

func TestResolveMove_MinSpeedFloor(t *testing.T) {
	c := newResolver(ObstaclePoint{ID: 1, X: 105, Y: 100, Size: 2})

	_, vel, hit := c.ResolveMove(Vec2{100, 100}, Vec2{3, 0}, 3, 0.1, 1, 1)
	if !hit {
		t.Fatal("expected a collision")
	}
	if math.Abs(float64(vel.Len()-1)) > 1e-5 {
		t.Errorf("bounce speed should be floored at 1, got %f", vel.Len())
	}
}

func TestResolveMove_NoTunnelling(t *testing.T) {
	// Thin wall at x=120; a 30-unit step would skip it without sub-stepping.
	c := newResolver(ObstaclePoint{ID: 1, X: 120, Y: 100, Size: 2})

	pos, vel, hit := c.ResolveMove(Vec2{100, 100}, Vec2{30, 0}, 3, 0.5, 1, 1)
	if !hit {
		t.Fatal("fast agent tunnelled through the wall")
	}
	if pos.X >= 120 {
		t.Errorf("agent ended past the wall at %v", pos)
	}
	if vel.X >= 0 {
		t.Errorf("expected reflected velocity, got %v", vel)
	}
}

func TestResolveMove_FreePath(t *testing.T) {
	c := newResolver(ObstaclePoint{ID: 1, X: 500, Y: 500, Size: 2})

	pos, vel, hit := c.ResolveMove(Vec2{100, 100}, Vec2{3, 1}, 3, 0.6, 1, 1)
	if hit {
		t.Error("unexpected collision")
	}
	if pos != (Vec2{103, 101}) || vel != (Vec2{3, 1}) {
		t.Errorf("free move altered: pos=%v vel=%v", pos, vel)
	}
}

func TestAvoidanceForce(t *testing.T) {
	c := newResolver(ObstaclePoint{ID: 1, X: 120, Y: 100, Size: 8})

	f := c.AvoidanceForce(Vec2{100, 100}, Vec2{3, 0}, 3)
	if f.X >= 0 {
		t.Errorf("expected repulsion toward -X, got %v", f)
	}
	if f.Len() > 3*c.AvoidForce+1e-5 {
		t.Errorf("avoidance %f exceeds cap", f.Len())
	}

	if f := c.AvoidanceForce(Vec2{300, 300}, Vec2{3, 0}, 3); !f.IsZero() {
		t.Errorf("expected no force far from walls, got %v", f)
	}
}

func TestAvoidanceForce_EmptyGrid(t *testing.T) {
	c := newResolver()
	if f := c.AvoidanceForce(Vec2{0, 0}, Vec2{1, 0}, 3); !f.IsZero() {
		t.Errorf("expected zero force, got %v", f)
	}
}
