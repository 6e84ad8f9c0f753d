package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/world"
)

func speedOf(a world.AgentState) float32 {
	return float32(math.Hypot(float64(a.VX), float64(a.VY)))
}

// AgentSections describes the inspector layout for one agent.
func AgentSections(maxSpeed float32) []SectionDescriptor {
	return []SectionDescriptor{
		{
			ID:    "vitals",
			Title: "Vitals",
			Fields: []FieldDescriptor{
				{ID: "health", Label: "Health", Widget: WidgetHealthBar},
				{ID: "age", Label: "Age", Widget: WidgetText, Format: "%.1fs",
					Getter: func(a world.AgentState) float32 { return a.Age }},
				{ID: "generation", Label: "Generation", Widget: WidgetText,
					TextGetter: func(a world.AgentState) string { return fmt.Sprintf("%d", a.Generation) }},
				{ID: "ready", Label: "Breeding", Widget: WidgetText,
					TextGetter: func(a world.AgentState) string {
						if a.Ready {
							return "ready"
						}
						return "cooling down"
					}},
			},
		},
		{
			ID:    "motion",
			Title: "Motion",
			Fields: []FieldDescriptor{
				{ID: "speed", Label: "Speed", Widget: WidgetBar, Range: FieldRange{Max: maxSpeed}, Getter: speedOf},
				{ID: "force", Label: "Force", Widget: WidgetText, Format: "%.3f",
					Getter: func(a world.AgentState) float32 {
						return float32(math.Hypot(float64(a.AX), float64(a.AY)))
					}},
				{ID: "position", Label: "Position", Widget: WidgetText,
					TextGetter: func(a world.AgentState) string { return fmt.Sprintf("%.0f, %.0f", a.X, a.Y) }},
			},
		},
	}
}

// Inspector renders the selected agent's panel.
type Inspector struct {
	renderer *Renderer
	sections []SectionDescriptor
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32, maxSpeed float32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		sections: AgentSections(maxSpeed),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector for a and returns the Y below the panel.
func (ins *Inspector) Draw(a world.AgentState) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	contentWidth := ins.width - padding*2

	r.DrawPanel(ins.x, ins.y, ins.width, 190)

	y := ins.y + padding
	title := fmt.Sprintf("Prey #%d", a.ID)
	color := r.Theme.PreyColor
	if a.Species == components.SpeciesPredator {
		title = fmt.Sprintf("Predator #%d", a.ID)
		color = r.Theme.PredatorColor
	}
	rl.DrawText(title, ins.x+padding, y, 16, color)
	y += r.Theme.LineHeight + 6

	for _, sd := range ins.sections {
		y = r.DrawSection(ins.x+padding, y, sd, a, contentWidth)
	}
	return y
}
