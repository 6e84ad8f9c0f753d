package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/systems"
	"github.com/pthm-cable/flock/ui"
)

const (
	velocityScale = 8   // pixels per unit of speed
	forceScale    = 120 // pixels per unit of force
)

// drawActiveOverlays renders enabled debug overlays on top of the agents.
func (g *Game) drawActiveOverlays() {
	if g.overlays.IsEnabled(ui.OverlayVelocity) {
		g.drawVectors(false)
	}
	if g.overlays.IsEnabled(ui.OverlayForces) {
		g.drawVectors(true)
	}

	a, ok := g.selected()
	if !ok {
		return
	}
	selectionRing(a)
	if g.overlays.IsEnabled(ui.OverlayRadii) {
		g.drawRadii(a.X, a.Y, a.Species)
	}
}

// drawVectors draws each agent's velocity, or the net force it received.
func (g *Game) drawVectors(forces bool) {
	color := rl.Color{R: 120, G: 220, B: 120, A: 200}
	if forces {
		color = rl.Color{R: 240, G: 200, B: 80, A: 200}
	}
	for _, a := range g.agents {
		dx, dy := a.VX*velocityScale, a.VY*velocityScale
		if forces {
			dx, dy = a.AX*forceScale, a.AY*forceScale
		}
		rl.DrawLineV(rl.Vector2{X: a.X, Y: a.Y}, rl.Vector2{X: a.X + dx, Y: a.Y + dy}, color)
	}
}

// drawRadii shows the flocking radii and the species' detection radius.
func (g *Game) drawRadii(x, y float32, species components.Species) {
	fc := g.cfg.Flocking
	center := rl.Vector2{X: x, Y: y}

	rl.DrawCircleLinesV(center, float32(fc.SeparationRadius), rl.Color{R: 255, G: 120, B: 120, A: 160})
	rl.DrawCircleLinesV(center, float32(fc.AlignmentRadius), rl.Color{R: 120, G: 200, B: 255, A: 120})
	if fc.CohesionRadius != fc.AlignmentRadius {
		rl.DrawCircleLinesV(center, float32(fc.CohesionRadius), rl.Color{R: 120, G: 255, B: 160, A: 120})
	}

	detect := g.cfg.Species.Prey.DetectionRadius
	if species == components.SpeciesPredator {
		detect = g.cfg.Species.Predator.DetectionRadius
	}
	rl.DrawCircleLinesV(center, float32(detect), rl.Color{R: 255, G: 220, B: 90, A: 100})
}

// drawObstacleGrid shades the spatial-hash cells that hold wall points.
func (g *Game) drawObstacleGrid() {
	obs := g.world.Obstacles()
	grid := obs.Grid()
	size := grid.CellSize()
	color := rl.Color{R: 60, G: 70, B: 90, A: 70}

	seen := make(map[systems.Cell]bool, grid.Len())
	for _, stroke := range obs.Strokes() {
		for _, p := range stroke {
			c := grid.CellOf(p.X, p.Y)
			if seen[c] {
				continue
			}
			seen[c] = true
			rl.DrawRectangleV(
				rl.Vector2{X: float32(c.X) * size, Y: float32(c.Y) * size},
				rl.Vector2{X: size, Y: size},
				color,
			)
		}
	}
}
