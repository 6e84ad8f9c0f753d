package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/components"
)

// handleInput processes keyboard and pointer input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.world.SetRunning(!g.world.Running())
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.world.ClearObstacles()
	}
	for _, key := range g.overlays.Keys() {
		if rl.IsKeyPressed(key) {
			g.overlays.HandleKeyPress(key)
		}
	}

	g.handlePointer()
}

// handleResize propagates window size changes to the arena.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenW && h == g.screenH {
		return
	}
	g.screenW, g.screenH = w, h
	g.world.Resize(w, h)
	g.logger.Debug("arena_resized", "width", w, "height", h)
}

// handlePointer tracks the cursor and turns button gestures into wall
// strokes, erasing, spawns and selection. Presses that land on the
// controls panel belong to raygui.
func (g *Game) handlePointer() {
	mouse := rl.GetMousePosition()
	x, y := mouse.X, mouse.Y

	overPanel := g.controls.Contains(x, y)
	if overPanel || !rl.IsCursorOnScreen() {
		g.world.ClearCursor()
	} else {
		g.world.SetCursor(x, y)
	}

	if !g.gesture.Active() && !overPanel {
		switch {
		case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
			g.apply(g.gesture.Press(x, y, ButtonDraw), x, y)
		case rl.IsMouseButtonPressed(rl.MouseButtonRight):
			g.apply(g.gesture.Press(x, y, ButtonErase), x, y)
		}
		return
	}
	if !g.gesture.Active() {
		return
	}

	released := rl.IsMouseButtonReleased(rl.MouseButtonLeft) || rl.IsMouseButtonReleased(rl.MouseButtonRight)
	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		g.apply(g.gesture.Move(x, y), x, y)
	}
	if released {
		mods := Modifiers{
			Shift: rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
			Ctrl:  rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl),
		}
		g.apply(g.gesture.Release(mods), x, y)
	}
}

// apply performs a gesture action at (x, y).
func (g *Game) apply(a Action, x, y float32) {
	switch a {
	case ActionBeginStroke:
		sx, sy := g.gesture.Start()
		g.world.BeginStroke(sx, sy)
		g.world.ExtendStroke(x, y)
	case ActionExtendStroke:
		g.world.ExtendStroke(x, y)
	case ActionEndStroke:
		g.world.EndStroke()
	case ActionErase:
		g.world.EraseAt(x, y, eraseRadius)
	case ActionSpawnPrey:
		g.world.Spawn(x, y, components.SpeciesPrey)
	case ActionSpawnPredator:
		g.world.Spawn(x, y, components.SpeciesPredator)
	case ActionSelect:
		g.selectAt(x, y)
	}
}
