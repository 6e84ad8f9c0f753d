package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/world"
)

// Each terminal cell covers cellW x cellH world units, roughly the aspect
// of a monospace glyph.
const (
	cellW = 8
	cellH = 16
)

var (
	preyColor     = tcell.NewRGBColor(110, 200, 255)
	predatorColor = tcell.NewRGBColor(255, 90, 70)

	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	activeStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// arrows are indexed by heading octant, starting east and turning
// clockwise in screen space (y grows downward).
var arrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// headingGlyph picks the arrow closest to the velocity direction.
func headingGlyph(vx, vy float32) rune {
	if vx == 0 && vy == 0 {
		return '•'
	}
	angle := math.Atan2(float64(vy), float64(vx))
	octant := int(math.Round(angle/(math.Pi/4))) & 7
	return arrows[octant]
}

// cellOf maps a world position to a terminal cell.
func cellOf(x, y float32) (col, row int) {
	return int(x / cellW), int(y / cellH)
}

// worldOf maps a terminal cell to the world position at its centre.
func worldOf(col, row int) (x, y float32) {
	return (float32(col) + 0.5) * cellW, (float32(row) + 0.5) * cellH
}

// arenaFor returns the world size that fills cols x rows cells, keeping
// the last row for the status line.
func arenaFor(cols, rows int) (width, height float32) {
	return float32(max(cols, 1) * cellW), float32(max(rows-1, 1) * cellH)
}

// agentStyle dims the species color as health runs out and bolds
// agents ready to reproduce.
func agentStyle(a world.AgentState) tcell.Style {
	color := preyColor
	if a.Species == components.SpeciesPredator {
		color = predatorColor
	}
	r, g, b := color.RGB()
	if a.MaxHealth > 0 {
		f := 1 - 0.65*(1-min(max(a.Health/a.MaxHealth, 0), 1))
		r, g, b = int32(float32(r)*f), int32(float32(g)*f), int32(float32(b)*f)
	}
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(r, g, b))
	if a.Ready {
		style = style.Bold(true)
	}
	return style
}
