package game

// Action is what a pointer gesture asks the world to do.
type Action int

const (
	ActionNone Action = iota
	ActionBeginStroke
	ActionExtendStroke
	ActionEndStroke
	ActionErase
	ActionSpawnPrey
	ActionSpawnPredator
	ActionSelect
)

// Button identifies the pointer button that started a gesture.
type Button int

const (
	ButtonNone Button = iota
	ButtonDraw
	ButtonErase
)

// Modifiers held when a gesture ends.
type Modifiers struct {
	Shift bool
	Ctrl  bool
}

// Gesture turns raw pointer events into world actions.
//
// A draw-button press that ends within DragThreshold of where it started
// is a click and spawns an agent. Once it moves further it becomes a wall
// stroke that starts at the press point. The erase button erases on press
// and on every move.
type Gesture struct {
	DragThreshold float32

	button   Button
	startX   float32
	startY   float32
	dragging bool
}

// Active reports whether a button is held.
func (g *Gesture) Active() bool {
	return g.button != ButtonNone
}

// Press starts a gesture.
func (g *Gesture) Press(x, y float32, b Button) Action {
	g.button = b
	g.startX, g.startY = x, y
	g.dragging = false
	if b == ButtonErase {
		return ActionErase
	}
	return ActionNone
}

// Move reports pointer motion while a button is held.
func (g *Gesture) Move(x, y float32) Action {
	switch g.button {
	case ButtonErase:
		return ActionErase
	case ButtonDraw:
		if g.dragging {
			return ActionExtendStroke
		}
		dx, dy := x-g.startX, y-g.startY
		if dx*dx+dy*dy > g.DragThreshold*g.DragThreshold {
			g.dragging = true
			return ActionBeginStroke
		}
	}
	return ActionNone
}

// Release ends the gesture.
func (g *Gesture) Release(mods Modifiers) Action {
	b, dragging := g.button, g.dragging
	g.button = ButtonNone
	g.dragging = false

	if b != ButtonDraw {
		return ActionNone
	}
	switch {
	case dragging:
		return ActionEndStroke
	case mods.Ctrl:
		return ActionSelect
	case mods.Shift:
		return ActionSpawnPredator
	default:
		return ActionSpawnPrey
	}
}

// Start returns where the current gesture began.
func (g *Gesture) Start() (x, y float32) {
	return g.startX, g.startY
}
