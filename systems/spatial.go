package systems

import "math"

// ObstaclePoint is one immutable sample of a drawn wall.
type ObstaclePoint struct {
	ID   uint32
	X, Y float32
	Size float32 // diameter
}

// Pos returns the point's position.
func (p ObstaclePoint) Pos() Vec2 { return Vec2{p.X, p.Y} }

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int32
}

// ObstacleGrid buckets obstacle points into fixed-size cells for proximity queries.
// The grid is sparse so walls drawn anywhere (including outside a shrunken
// arena) stay indexed.
type ObstacleGrid struct {
	cellSize float32
	cells    map[Cell][]ObstaclePoint
	count    int
	maxSize  float32 // largest point diameter seen, widens the scanned cell range
}

// NewObstacleGrid creates an empty grid with the given cell size.
func NewObstacleGrid(cellSize float32) *ObstacleGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &ObstacleGrid{
		cellSize: cellSize,
		cells:    make(map[Cell][]ObstaclePoint),
	}
}

// CellSize returns the edge length of a cell.
func (g *ObstacleGrid) CellSize() float32 {
	return g.cellSize
}

// CellOf returns the cell containing (x, y).
func (g *ObstacleGrid) CellOf(x, y float32) Cell {
	return Cell{
		X: int32(math.Floor(float64(x / g.cellSize))),
		Y: int32(math.Floor(float64(y / g.cellSize))),
	}
}

// Len returns the number of indexed points.
func (g *ObstacleGrid) Len() int {
	return g.count
}

// Insert adds a point to the cell containing it.
func (g *ObstacleGrid) Insert(p ObstaclePoint) {
	c := g.CellOf(p.X, p.Y)
	g.cells[c] = append(g.cells[c], p)
	g.count++
	if p.Size > g.maxSize {
		g.maxSize = p.Size
	}
}

// Remove deletes the point with p's ID from its cell.
// Returns false if it was not indexed.
func (g *ObstacleGrid) Remove(p ObstaclePoint) bool {
	c := g.CellOf(p.X, p.Y)
	bucket := g.cells[c]
	for i := range bucket {
		if bucket[i].ID != p.ID {
			continue
		}
		last := len(bucket) - 1
		bucket[i] = bucket[last]
		bucket = bucket[:last]
		if len(bucket) == 0 {
			delete(g.cells, c)
		} else {
			g.cells[c] = bucket
		}
		g.count--
		return true
	}
	return false
}

// Clear removes all points.
func (g *ObstacleGrid) Clear() {
	clear(g.cells)
	g.count = 0
	g.maxSize = 0
}

// Rebuild replaces the grid contents with points.
func (g *ObstacleGrid) Rebuild(points []ObstaclePoint) {
	g.Clear()
	for _, p := range points {
		g.Insert(p)
	}
}

// QueryRadiusInto appends every point whose disc lies within radius of (x, y).
// Reuse dst across calls to avoid allocations.
func (g *ObstacleGrid) QueryRadiusInto(dst []ObstaclePoint, x, y, radius float32) []ObstaclePoint {
	if g.count == 0 || radius < 0 {
		return dst
	}

	reach := radius + g.maxSize/2
	lo := g.CellOf(x-reach, y-reach)
	hi := g.CellOf(x+reach, y+reach)

	for cy := lo.Y; cy <= hi.Y; cy++ {
		for cx := lo.X; cx <= hi.X; cx++ {
			for _, p := range g.cells[Cell{cx, cy}] {
				dx := p.X - x
				dy := p.Y - y
				limit := radius + p.Size/2
				if dx*dx+dy*dy <= limit*limit {
					dst = append(dst, p)
				}
			}
		}
	}

	return dst
}

// Nearest returns the point closest to (x, y) among those within radius.
func (g *ObstacleGrid) Nearest(x, y, radius float32) (ObstaclePoint, float32, bool) {
	var (
		best     ObstaclePoint
		bestDist float32 = math.MaxFloat32
		found    bool
	)

	if g.count == 0 || radius < 0 {
		return best, 0, false
	}

	reach := radius + g.maxSize/2
	lo := g.CellOf(x-reach, y-reach)
	hi := g.CellOf(x+reach, y+reach)

	for cy := lo.Y; cy <= hi.Y; cy++ {
		for cx := lo.X; cx <= hi.X; cx++ {
			for _, p := range g.cells[Cell{cx, cy}] {
				d := Dist(Vec2{x, y}, p.Pos())
				if d <= radius+p.Size/2 && d < bestDist {
					best, bestDist, found = p, d, true
				}
			}
		}
	}

	return best, bestDist, found
}

// IsNear reports whether any point's disc lies within radius of (x, y).
func (g *ObstacleGrid) IsNear(x, y, radius float32) bool {
	_, _, ok := g.Nearest(x, y, radius)
	return ok
}
