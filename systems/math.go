// Package systems contains the per-agent simulation math: steering, predation,
// lifecycle, obstacle indexing, collision response and population control.
package systems

import "math"

// epsilon guards normalisation of near-zero vectors.
const epsilon = 1e-6

// Vec2 is a 2D float32 vector.
// components.Position, Velocity and Acceleration convert to and from it directly.
type Vec2 struct {
	X, Y float32
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v*s.
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }

// LenSq returns the squared length.
func (v Vec2) LenSq() float32 { return v.X*v.X + v.Y*v.Y }

// Len returns the length.
func (v Vec2) Len() float32 { return float32(math.Sqrt(float64(v.LenSq()))) }

// IsZero reports whether v is too short to normalise.
func (v Vec2) IsZero() bool { return v.LenSq() < epsilon*epsilon }

// Normalize returns the unit vector, or the zero vector for near-zero input.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l < epsilon {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// SetMag returns v rescaled to length m (zero stays zero).
func (v Vec2) SetMag(m float32) Vec2 {
	return v.Normalize().Scale(m)
}

// Limit caps the length of v at max.
func (v Vec2) Limit(max float32) Vec2 {
	lsq := v.LenSq()
	if lsq > max*max && lsq > 0 {
		l := float32(math.Sqrt(float64(lsq)))
		return v.Scale(max / l)
	}
	return v
}

// Dist returns the distance between two points.
func Dist(a, b Vec2) float32 {
	return a.Sub(b).Len()
}

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// wrap returns a modulo b in [0, b).
func wrap(a, b float32) float32 {
	if b <= 0 {
		return a
	}
	r := float32(math.Mod(float64(a), float64(b)))
	if r < 0 {
		r += b
	}
	return r
}
