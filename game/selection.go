package game

import (
	"github.com/pthm-cable/flock/systems"
	"github.com/pthm-cable/flock/world"
)

// nearestAgent returns the agent closest to (x, y) within radius.
func nearestAgent(agents []world.AgentState, x, y, radius float32) (world.AgentState, bool) {
	p := systems.Vec2{X: x, Y: y}
	var best world.AgentState
	bestDist := radius
	found := false
	for _, a := range agents {
		d := systems.Dist(p, systems.Vec2{X: a.X, Y: a.Y})
		if d <= bestDist {
			best, bestDist, found = a, d, true
		}
	}
	return best, found
}

// selectAt selects the agent under the pointer, or clears the selection.
func (g *Game) selectAt(x, y float32) {
	g.agents = g.world.AppendAgents(g.agents[:0])
	if a, ok := nearestAgent(g.agents, x, y, selectRadius); ok {
		g.selectedID = a.ID
		return
	}
	g.selectedID = 0
}

// selected returns the selected agent while it is alive.
func (g *Game) selected() (world.AgentState, bool) {
	if g.selectedID == 0 {
		return world.AgentState{}, false
	}
	a, ok := g.world.Agent(g.selectedID)
	if !ok {
		g.selectedID = 0
	}
	return a, ok
}
