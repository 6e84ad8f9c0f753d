package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	PreyCount     int
	PredatorCount int
	WallPoints    int
	Tick          int32
	FPS           int32
	Paused        bool
	Drawing       bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD at the top-right of the screen.
func (h *HUD) Draw(data HUDData, screenWidth int32) {
	th := h.renderer.Theme
	x := screenWidth - 230

	rl.DrawText(data.Title, x, 10, 20, rl.White)

	rl.DrawText(fmt.Sprintf("Prey: %d", data.PreyCount), x, 35, 16, th.PreyColor)
	rl.DrawText(fmt.Sprintf("Predators: %d", data.PredatorCount), x+90, 35, 16, th.PredatorColor)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Walls: %d", data.Tick, data.FPS, data.WallPoints),
		x, 55, 14, rl.LightGray,
	)

	status := "Running"
	switch {
	case data.Paused:
		status = "PAUSED"
	case data.Drawing:
		status = "Drawing"
	}
	rl.DrawText(status, x, 73, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase tick timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	phases := telemetry.Phases()
	height := int32(len(phases))*14 + 56
	p.renderer.DrawPanel(p.x-6, p.y-6, 250, height)

	x, y := p.x, p.y
	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(
		fmt.Sprintf("Avg: %s  Max: %s", stats.AvgTickDuration.Round(time.Microsecond), stats.MaxTickDuration.Round(time.Microsecond)),
		x, y, 12, rl.Yellow,
	)
	y += 16

	for _, ph := range phases {
		pct := stats.PhasePct[ph]
		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", ph, stats.PhaseAvg[ph].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
