package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/systems"
	"github.com/pthm-cable/flock/ui"
	"github.com/pthm-cable/flock/world"
)

var background = rl.Color{R: 12, G: 16, B: 22, A: 255}

// Draw renders the game and applies control panel changes.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(background)

	if g.overlays.IsEnabled(ui.OverlayGrid) {
		g.drawObstacleGrid()
	}
	g.drawWalls()
	g.drawAgents()
	g.drawActiveOverlays()
	g.drawUI()

	rl.EndDrawing()
}

// drawWalls renders every obstacle point as a filled circle.
func (g *Game) drawWalls() {
	color := ui.DefaultTheme().WallColor
	obs := g.world.Obstacles()
	for _, stroke := range obs.Strokes() {
		for _, p := range stroke {
			rl.DrawCircleV(rl.Vector2{X: p.X, Y: p.Y}, p.Size/2, color)
		}
	}
	for _, p := range obs.ActiveStroke() {
		rl.DrawCircleV(rl.Vector2{X: p.X, Y: p.Y}, p.Size/2, rl.White)
	}
}

// drawAgents renders agents as oriented triangles, interpolated between
// the last two ticks.
func (g *Game) drawAgents() {
	th := ui.DefaultTheme()
	alpha := float32(g.world.Alpha())
	width, height := g.world.Size()
	tint := g.overlays.IsEnabled(ui.OverlayHealthTint)
	outline := g.overlays.IsEnabled(ui.OverlayReady)

	g.agents = g.world.AppendAgents(g.agents[:0])
	for _, a := range g.agents {
		pos := systems.Vec2{X: a.X, Y: a.Y}
		if p, ok := g.prev[a.ID]; ok {
			pos = lerpWrapped(systems.Vec2{X: p.X, Y: p.Y}, pos, alpha, width, height)
		}

		color := th.PreyColor
		if a.Species == components.SpeciesPredator {
			color = th.PredatorColor
		}
		if tint && a.MaxHealth > 0 {
			color = healthTint(color, a.Health/a.MaxHealth)
		}

		heading := float32(math.Atan2(float64(a.VY), float64(a.VX)))
		drawOrientedTriangle(pos.X, pos.Y, heading, a.Radius, color, outline && a.Ready)
	}
}

// healthTint darkens c toward 35% brightness as health runs out.
func healthTint(c rl.Color, ratio float32) rl.Color {
	f := 1 - 0.65*(1-min(max(ratio, 0), 1))
	return rl.Color{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
		A: c.A,
	}
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color, outlined bool) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	front := rl.Vector2{X: x + cos*radius*1.6, Y: y + sin*radius*1.6}

	backAngle := float64(heading) + math.Pi*0.8
	backLeft := rl.Vector2{
		X: x + float32(math.Cos(backAngle))*radius,
		Y: y + float32(math.Sin(backAngle))*radius,
	}
	backAngle = float64(heading) - math.Pi*0.8
	backRight := rl.Vector2{
		X: x + float32(math.Cos(backAngle))*radius,
		Y: y + float32(math.Sin(backAngle))*radius,
	}

	// DrawTriangle requires counter-clockwise winding
	rl.DrawTriangle(front, backRight, backLeft, color)
	if outlined {
		rl.DrawTriangleLines(front, backLeft, backRight, rl.White)
	}
}

// drawUI renders the HUD, controls, inspector and performance panel.
func (g *Game) drawUI() {
	prey, pred := g.world.Counts()
	sw := int32(rl.GetScreenWidth())
	sh := int32(rl.GetScreenHeight())

	g.hud.Draw(ui.HUDData{
		Title:         "Flock",
		PreyCount:     prey,
		PredatorCount: pred,
		WallPoints:    g.world.Obstacles().Len(),
		Tick:          g.world.Tick(),
		FPS:           rl.GetFPS(),
		Paused:        !g.world.Running(),
		Drawing:       g.world.Obstacles().Drawing(),
	}, sw)
	g.hud.DrawControls(sh, "Drag: wall | Right drag: erase | Click: prey | Shift+click: predator | Ctrl+click: inspect | Space: pause | C: clear | Tab: panel")

	res := g.controls.Draw(g.world.BehaviorWeights(), !g.world.Running(), g.overlays)
	if res.WeightsChanged {
		g.world.SetBehaviorWeights(res.Weights)
	}
	if res.Reset {
		g.world.Reset()
		g.selectedID = 0
		clear(g.prev)
	}
	if res.ClearWalls {
		g.world.ClearObstacles()
	}
	if res.TogglePause {
		g.world.SetRunning(!g.world.Running())
	}

	if a, ok := g.selected(); ok {
		g.inspector.SetPosition(sw-230, 100)
		g.inspector.Draw(a)
	}

	if g.overlays.IsEnabled(ui.OverlayPerformance) {
		g.perfPanel.SetPosition(sw-250, sh-180)
		g.perfPanel.Draw(g.perfCollector.Stats())
	}
}

// selectionRing marks the inspected agent.
func selectionRing(a world.AgentState) {
	rl.DrawCircleLines(int32(a.X), int32(a.Y), a.Radius*2.5, rl.Yellow)
}
