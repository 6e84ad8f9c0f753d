// Package ui provides a descriptor-driven UI for the flock viewer.
// Panels are described as data (fields, sections, overlays) so they can
// be updated alongside the simulation without touching layout code.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/world"
)

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText      WidgetType = iota // Plain text with format string
	WidgetBar                         // Progress bar over Range
	WidgetHealthBar                   // Health bar with color thresholds
	WidgetSpacer                      // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// FieldDescriptor defines how to display a single value of an agent.
type FieldDescriptor struct {
	ID         string
	Label      string
	Widget     WidgetType
	Format     string     // Printf format for numeric text fields
	Range      FieldRange // Value range for bars
	Visible    func(world.AgentState) bool
	Getter     func(world.AgentState) float32
	TextGetter func(world.AgentState) string
}

// SectionDescriptor groups fields under a header.
type SectionDescriptor struct {
	ID      string
	Title   string
	Fields  []FieldDescriptor
	Visible func(world.AgentState) bool
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillLow     rl.Color
	BarFillMedium  rl.Color
	BarFillHigh    rl.Color
	PreyColor      rl.Color
	PredatorColor  rl.Color
	WallColor      rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillLow:     rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillMedium:  rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillHigh:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		PreyColor:      rl.Color{R: 90, G: 170, B: 255, A: 255},
		PredatorColor:  rl.Color{R: 255, G: 90, B: 70, A: 255},
		WallColor:      rl.Color{R: 170, G: 170, B: 160, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     80,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
