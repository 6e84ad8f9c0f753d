package world

import (
	"cmp"
	"slices"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/systems"
)

// AgentState is the read-only view of one agent handed to renderers and
// the audio collaborator.
type AgentState struct {
	ID         uint32
	Species    components.Species
	X, Y       float32
	VX, VY     float32
	AX, AY     float32 // net force applied in the last tick
	Radius     float32
	Health     float32
	MaxHealth  float32
	Ready      bool // ready to reproduce
	Generation uint32
	Age        float32
}

func stateOf(
	pos *components.Position,
	vel *components.Velocity,
	acc *components.Acceleration,
	body *components.Body,
	health *components.Health,
	repro *components.Reproduction,
	org *components.Organism,
) AgentState {
	return AgentState{
		ID:         org.ID,
		Species:    org.Species,
		X:          pos.X,
		Y:          pos.Y,
		VX:         vel.X,
		VY:         vel.Y,
		AX:         acc.X,
		AY:         acc.Y,
		Radius:     body.Radius,
		Health:     health.Value,
		MaxHealth:  health.Max,
		Ready:      repro.Ready,
		Generation: org.Generation,
		Age:        org.Age,
	}
}

// AppendAgents appends the state of every live agent to dst, ordered by ID.
func (w *World) AppendAgents(dst []AgentState) []AgentState {
	start := len(dst)
	query := w.filter.Query()
	for query.Next() {
		pos, vel, acc, body, _, health, repro, org := query.Get()
		dst = append(dst, stateOf(pos, vel, acc, body, health, repro, org))
	}
	slices.SortFunc(dst[start:], func(a, b AgentState) int { return cmp.Compare(a.ID, b.ID) })
	return dst
}

// Agents returns a fresh copy of every live agent's state.
func (w *World) Agents() []AgentState {
	return w.AppendAgents(nil)
}

// Agent returns the state of one agent.
func (w *World) Agent(id uint32) (AgentState, bool) {
	e, ok := w.entityByID(id)
	if !ok {
		return AgentState{}, false
	}
	pos, vel, acc, body, _, health, repro, org := w.mapper.Get(e)
	return stateOf(pos, vel, acc, body, health, repro, org), true
}

// Obstacles returns the wall set. Callers must not mutate it.
func (w *World) Obstacles() *systems.Obstacles {
	return w.obstacles
}

// Counts returns the live population per species.
func (w *World) Counts() (prey, predators int) {
	query := w.filter.Query()
	for query.Next() {
		_, _, _, _, _, _, _, org := query.Get()
		if org.Species == components.SpeciesPredator {
			predators++
		} else {
			prey++
		}
	}
	return prey, predators
}

// Tick returns the number of fixed ticks run since the last reset.
func (w *World) Tick() int32 {
	return w.tick
}

// Size returns the arena bounds.
func (w *World) Size() (width, height float32) {
	return w.bounds.Width, w.bounds.Height
}

// Cursor returns the current pointer state.
func (w *World) Cursor() systems.Cursor {
	return w.cursor
}

// Config returns the configuration the world was built from.
func (w *World) Config() *config.Config {
	return w.cfg
}
