// Package components defines ECS components for the simulation.
package components

// Position represents an agent's arena position.
type Position struct {
	X, Y float32
}

// Velocity represents an agent's velocity in units per tick.
type Velocity struct {
	X, Y float32
}

// Acceleration accumulates steering forces during a tick.
// It is cleared after integration.
type Acceleration struct {
	X, Y float32
}
