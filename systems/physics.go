package systems

import "github.com/pthm-cable/flock/components"

// Bounds represents the arena size. Agents wrap across its edges.
type Bounds struct {
	Width, Height float32
}

// ClampSpeed keeps |v| within [minSpeed, maxSpeed]. A zero vector stays zero.
func ClampSpeed(v Vec2, minSpeed, maxSpeed float32) Vec2 {
	l := v.Len()
	switch {
	case l < epsilon:
		return v
	case l > maxSpeed:
		return v.Scale(maxSpeed / l)
	case l < minSpeed:
		return v.Scale(minSpeed / l)
	}
	return v
}

// IntegrateVelocity adds the accumulated acceleration to the velocity and
// clamps the speed. The acceleration is left in place for inspection; it is
// cleared at the start of the next force pass.
func IntegrateVelocity(vel *components.Velocity, acc components.Acceleration, m components.Motion, timeScale float32) {
	v := Vec2{vel.X + acc.X*timeScale, vel.Y + acc.Y*timeScale}
	v = ClampSpeed(v, m.MinSpeed, m.MaxSpeed)
	vel.X, vel.Y = v.X, v.Y
}

// WrapPosition folds a position back into the arena.
func WrapPosition(pos *components.Position, b Bounds) {
	pos.X = wrap(pos.X, b.Width)
	pos.Y = wrap(pos.Y, b.Height)
}
