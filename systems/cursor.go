package systems

// Cursor is the pointer position in arena coordinates.
type Cursor struct {
	X, Y   float32
	Active bool // false when the pointer is off the canvas
}

// CursorParams tunes pointer avoidance.
type CursorParams struct {
	AvoidanceRadius float32
	RangeMultiplier float32 // influence extends to AvoidanceRadius*RangeMultiplier
	MinDistance     float32 // floor on the distance used for strength
	Cutoff          float32 // beyond this distance the cursor is ignored outright
	Strength        float32
}

// CursorAvoidance pushes an agent directly away from the pointer.
// Strength is proportional to AvoidanceRadius / max(MinDistance, d).
func CursorAvoidance(pos Vec2, c Cursor, p CursorParams) Vec2 {
	if !c.Active {
		return Vec2{}
	}

	diff := pos.Sub(Vec2{c.X, c.Y})
	d2 := diff.LenSq()
	if d2 > p.Cutoff*p.Cutoff {
		return Vec2{}
	}
	d := diff.Len()
	if d > p.AvoidanceRadius*p.RangeMultiplier {
		return Vec2{}
	}

	dir := diff.Normalize()
	if dir.IsZero() {
		dir = Vec2{1, 0}
	}
	return dir.Scale(p.Strength * p.AvoidanceRadius / max(p.MinDistance, d))
}
