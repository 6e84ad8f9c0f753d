package systems

import "math"

// Obstacles owns the user-drawn walls: retired strokes, the stroke being
// drawn, and the grid index. Every mutation updates the grid before returning.
type Obstacles struct {
	grid    *ObstacleGrid
	strokes [][]ObstaclePoint
	active  []ObstaclePoint
	drawing bool
	last    Vec2

	pointSize       float32
	minDrawDistance float32
	nextID          uint32
}

// NewObstacles creates an empty obstacle set.
func NewObstacles(cellSize, pointSize, minDrawDistance float32) *Obstacles {
	if minDrawDistance <= 0 {
		minDrawDistance = 1
	}
	return &Obstacles{
		grid:            NewObstacleGrid(cellSize),
		pointSize:       pointSize,
		minDrawDistance: minDrawDistance,
	}
}

// Grid returns the spatial index. Callers must treat it as read-only.
func (o *Obstacles) Grid() *ObstacleGrid {
	return o.grid
}

// Drawing reports whether a stroke is in progress.
func (o *Obstacles) Drawing() bool {
	return o.drawing
}

// BeginStroke starts a new stroke at (x, y), retiring any stroke in progress.
func (o *Obstacles) BeginStroke(x, y float32) {
	if o.drawing {
		o.EndStroke()
	}
	o.drawing = true
	o.active = nil
	o.addPoint(x, y)
}

// ExtendStroke continues the current stroke to (x, y). Moves shorter than the
// minimum draw distance are ignored; longer moves are filled with evenly
// spaced points so the wall has no gaps.
func (o *Obstacles) ExtendStroke(x, y float32) {
	if !o.drawing {
		o.BeginStroke(x, y)
		return
	}

	target := Vec2{x, y}
	delta := target.Sub(o.last)
	dist := delta.Len()
	if dist < o.minDrawDistance {
		return
	}

	from := o.last
	steps := int(math.Ceil(float64(dist / o.minDrawDistance)))
	for i := 1; i <= steps; i++ {
		p := from.Add(delta.Scale(float32(i) / float32(steps)))
		o.addPoint(p.X, p.Y)
	}
}

// EndStroke retires the current stroke into the permanent set.
func (o *Obstacles) EndStroke() {
	if !o.drawing {
		return
	}
	if len(o.active) > 0 {
		o.strokes = append(o.strokes, o.active)
	}
	o.active = nil
	o.drawing = false
}

// EraseAt removes every point within radius of (x, y).
// Strokes left empty are dropped. Returns whether anything was removed.
func (o *Obstacles) EraseAt(x, y, radius float32) bool {
	center := Vec2{x, y}
	changed := false

	keep := o.strokes[:0]
	for _, stroke := range o.strokes {
		stroke, removed := o.eraseFrom(stroke, center, radius)
		if removed {
			changed = true
		}
		if len(stroke) > 0 {
			keep = append(keep, stroke)
		}
	}
	for i := len(keep); i < len(o.strokes); i++ {
		o.strokes[i] = nil
	}
	o.strokes = keep

	if len(o.active) > 0 {
		var removed bool
		o.active, removed = o.eraseFrom(o.active, center, radius)
		changed = changed || removed
	}

	return changed
}

func (o *Obstacles) eraseFrom(stroke []ObstaclePoint, center Vec2, radius float32) ([]ObstaclePoint, bool) {
	removed := false
	kept := stroke[:0]
	for _, p := range stroke {
		if Dist(center, p.Pos()) <= radius {
			o.grid.Remove(p)
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	return kept, removed
}

// Clear removes all strokes, including one in progress.
func (o *Obstacles) Clear() {
	o.strokes = nil
	o.active = nil
	o.drawing = false
	o.grid.Clear()
}

// Len returns the number of obstacle points.
func (o *Obstacles) Len() int {
	return o.grid.Len()
}

// Strokes returns the retired strokes. Callers must not modify them.
func (o *Obstacles) Strokes() [][]ObstaclePoint {
	return o.strokes
}

// ActiveStroke returns the stroke being drawn, if any.
func (o *Obstacles) ActiveStroke() []ObstaclePoint {
	return o.active
}

// Points returns a copy of every obstacle point.
func (o *Obstacles) Points() []ObstaclePoint {
	out := make([]ObstaclePoint, 0, o.grid.Len())
	for _, s := range o.strokes {
		out = append(out, s...)
	}
	return append(out, o.active...)
}

// IsNear reports whether any obstacle lies within radius of (x, y).
func (o *Obstacles) IsNear(x, y, radius float32) bool {
	return o.grid.IsNear(x, y, radius)
}

func (o *Obstacles) addPoint(x, y float32) {
	o.nextID++
	p := ObstaclePoint{ID: o.nextID, X: x, Y: y, Size: o.pointSize}
	o.active = append(o.active, p)
	o.grid.Insert(p)
	o.last = Vec2{x, y}
}
