// Package main runs the flock in a terminal. Mouse button 1 draws walls,
// button 2 erases; p and n spawn prey and predators at the pointer, r
// resets, c clears walls, space pauses and q quits.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/flock/audio"
	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/world"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	eraseRadius   = 18
)

type term struct {
	screen     tcell.Screen
	world      *world.World
	sonifier   *audio.Sonifier
	cols, rows int

	pointerX, pointerY float32
	pointerIn          bool
	buttons            tcell.ButtonMask

	agents []world.AgentState
	last   time.Time
}

func newTerm(cfg *config.Config, seed int64, withAudio bool, logger *slog.Logger) (*term, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	t := &term{screen: screen, last: time.Now()}
	t.cols, t.rows = screen.Size()
	width, height := arenaFor(t.cols, t.rows)

	var sink world.Audio
	if withAudio && cfg.Audio.Enabled {
		t.sonifier = audio.NewSonifier(cfg.Audio)
		if err := t.sonifier.Start(); err != nil {
			// Non-fatal, the flock runs silently
			logger.Warn("audio unavailable", "error", err)
			t.sonifier = nil
		} else {
			sink = t.sonifier
		}
	}

	t.world = world.New(cfg, world.Options{
		Seed:   seed,
		Width:  width,
		Height: height,
		Audio:  sink,
		Logger: logger,
	})
	return t, nil
}

func (t *term) handleResize() {
	t.screen.Sync()
	cols, rows := t.screen.Size()
	if cols == t.cols && rows == t.rows {
		return
	}
	t.cols, t.rows = cols, rows
	t.world.Resize(arenaFor(cols, rows))
}

func (t *term) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	if row >= t.rows-1 {
		t.pointerIn = false
		t.world.ClearCursor()
		if t.world.Obstacles().Drawing() {
			t.world.EndStroke()
		}
		t.buttons = 0
		return
	}

	x, y := worldOf(col, row)
	t.pointerX, t.pointerY, t.pointerIn = x, y, true
	t.world.SetCursor(x, y)

	buttons := ev.Buttons()
	drawing := buttons&tcell.Button1 != 0
	wasDrawing := t.buttons&tcell.Button1 != 0

	switch {
	case drawing && !wasDrawing:
		t.world.BeginStroke(x, y)
	case drawing:
		t.world.ExtendStroke(x, y)
	case wasDrawing:
		t.world.EndStroke()
	}
	if buttons&tcell.Button2 != 0 {
		t.world.EraseAt(x, y, eraseRadius)
	}
	t.buttons = buttons
}

// handleKey returns false when the viewer should exit.
func (t *term) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case ' ':
		t.world.SetRunning(!t.world.Running())
	case 'r':
		t.world.Reset()
	case 'c':
		t.world.ClearObstacles()
	case 'p':
		if t.pointerIn {
			t.world.Spawn(t.pointerX, t.pointerY, components.SpeciesPrey)
		}
	case 'n':
		if t.pointerIn {
			t.world.Spawn(t.pointerX, t.pointerY, components.SpeciesPredator)
		}
	}
	return true
}

func (t *term) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventMouse:
		t.handleMouse(ev)
	case *tcell.EventResize:
		t.handleResize()
	}
	return true
}

func (t *term) draw() {
	t.screen.Clear()

	obs := t.world.Obstacles()
	for _, stroke := range obs.Strokes() {
		for _, p := range stroke {
			col, row := cellOf(p.X, p.Y)
			t.screen.SetContent(col, row, '█', nil, wallStyle)
		}
	}
	for _, p := range obs.ActiveStroke() {
		col, row := cellOf(p.X, p.Y)
		t.screen.SetContent(col, row, '█', nil, activeStyle)
	}

	t.agents = t.world.AppendAgents(t.agents[:0])
	for _, a := range t.agents {
		col, row := cellOf(a.X, a.Y)
		t.screen.SetContent(col, row, headingGlyph(a.VX, a.VY), nil, agentStyle(a))
	}

	t.drawStatus()
	t.screen.Show()
}

func (t *term) drawStatus() {
	prey, pred := t.world.Counts()
	state := "running"
	if !t.world.Running() {
		state = "paused"
	}

	row := t.rows - 1
	for col := range t.cols {
		t.screen.SetContent(col, row, ' ', nil, statusStyle)
	}

	col := 0
	put := func(s string, style tcell.Style) {
		for _, r := range s {
			if col >= t.cols {
				return
			}
			t.screen.SetContent(col, row, r, nil, style)
			col++
		}
	}
	put(" ● ", statusStyle.Foreground(preyColor))
	put(fmt.Sprintf("prey %d ", prey), statusStyle)
	put(" ● ", statusStyle.Foreground(predatorColor))
	put(fmt.Sprintf("predators %d | walls %d | tick %d | %s | p/n spawn  r reset  c clear  q quit",
		pred, t.world.Obstacles().Len(), t.world.Tick(), state), statusStyle)
}

func (t *term) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !t.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			t.world.Advance(now.Sub(t.last).Seconds())
			t.last = now
			t.draw()
		}
	}
}

func (t *term) cleanup() {
	if t.sonifier != nil {
		t.sonifier.Close()
	}
	t.screen.Fini()
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	withAudio := flag.Bool("audio", false, "Enable sonification")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// The terminal owns stdout.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	t, err := newTerm(cfg, rngSeed, *withAudio, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer t.cleanup()

	t.run()
}
