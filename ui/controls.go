package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/world"
)

const maxWeight = 5

// ControlsResult reports what the user changed this frame.
type ControlsResult struct {
	Weights        world.Weights
	WeightsChanged bool
	Reset          bool
	ClearWalls     bool
	TogglePause    bool
}

// ControlsPanel renders the flocking sliders, action buttons and overlay
// toggles. It can be collapsed to its title bar.
type ControlsPanel struct {
	renderer  *Renderer
	x, y      int32
	width     int32
	minimized bool
	height    int32 // last drawn height, for hit testing
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		height:   30,
	}
}

// Minimized reports whether the panel is collapsed.
func (c *ControlsPanel) Minimized() bool {
	return c.minimized
}

// Toggle collapses or expands the panel.
func (c *ControlsPanel) Toggle() bool {
	c.minimized = !c.minimized
	return c.minimized
}

// Contains reports whether a screen point falls on the panel, so pointer
// input there is not forwarded to the world.
func (c *ControlsPanel) Contains(x, y float32) bool {
	return x >= float32(c.x) && x < float32(c.x+c.width) &&
		y >= float32(c.y) && y < float32(c.y+c.height)
}

// Draw renders the panel and returns the user's changes.
func (c *ControlsPanel) Draw(weights world.Weights, paused bool, overlays *OverlayRegistry) ControlsResult {
	r := c.renderer
	padding := float32(r.Theme.Padding)
	res := ControlsResult{Weights: weights}

	x := float32(c.x)
	y := float32(c.y)
	w := float32(c.width)

	if c.minimized {
		c.height = 30
		r.DrawPanel(c.x, c.y, c.width, c.height)
		rl.DrawText("Controls", c.x+r.Theme.Padding, c.y+8, 14, rl.White)
		if gui.Button(rl.Rectangle{X: x + w - 28, Y: y + 4, Width: 22, Height: 22}, "+") {
			c.minimized = false
		}
		return res
	}

	r.DrawPanel(c.x, c.y, c.width, c.height)
	rl.DrawText("Controls", c.x+r.Theme.Padding, c.y+8, 14, rl.White)
	if gui.Button(rl.Rectangle{X: x + w - 28, Y: y + 4, Width: 22, Height: 22}, "-") {
		c.minimized = true
	}
	y += 34

	slider := func(label string, value float32) float32 {
		rl.DrawText(label, int32(x+padding), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		y += 14
		next := gui.SliderBar(
			rl.Rectangle{X: x + padding, Y: y, Width: w - padding*2 - 40, Height: 16},
			"", "",
			value, 0, maxWeight,
		)
		rl.DrawText(fmt.Sprintf("%.2f", next), int32(x+w-padding-34), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
		y += 24
		return next
	}

	res.Weights.Separation = slider("Separation", weights.Separation)
	res.Weights.Alignment = slider("Alignment", weights.Alignment)
	res.Weights.Cohesion = slider("Cohesion", weights.Cohesion)
	res.WeightsChanged = res.Weights != weights

	half := (w - padding*3) / 2
	if gui.Button(rl.Rectangle{X: x + padding, Y: y, Width: half, Height: 24}, "Reset") {
		res.Reset = true
	}
	if gui.Button(rl.Rectangle{X: x + padding*2 + half, Y: y, Width: half, Height: 24}, "Clear Walls") {
		res.ClearWalls = true
	}
	y += 30
	if gui.Button(rl.Rectangle{X: x + padding, Y: y, Width: w - padding*2, Height: 24}, toggleText(paused, "Resume", "Pause")) {
		res.TogglePause = true
	}
	y += 34

	if overlays != nil {
		y = c.drawOverlays(x+padding, y, w-padding*2, overlays)
	}

	c.height = int32(y-float32(c.y)) + r.Theme.Padding
	return res
}

// drawOverlays draws one toggle button per overlay, grouped by category.
func (c *ControlsPanel) drawOverlays(x, y, width float32, overlays *OverlayRegistry) float32 {
	r := c.renderer
	for _, cat := range overlays.Categories() {
		rl.DrawText(categoryLabel(cat), int32(x), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += float32(r.Theme.LineHeight) + 2

		for _, desc := range overlays.ByCategory(cat) {
			label := fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
			if overlays.IsEnabled(desc.ID) {
				label = "* " + label
			}
			if gui.Button(rl.Rectangle{X: x, Y: y, Width: width, Height: 20}, label) {
				overlays.Toggle(desc.ID)
			}
			y += 24
		}
		y += 4
	}
	return y
}

func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
