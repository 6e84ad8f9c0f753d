// Package telemetry provides ecosystem statistics, performance timing and CSV output.
package telemetry

import "github.com/pthm-cable/flock/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventBirth EventType = iota
	EventKill
	EventStarvation
	EventCull
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventBirth:
		return "birth"
	case EventKill:
		return "kill"
	case EventStarvation:
		return "starvation"
	case EventCull:
		return "cull"
	default:
		return "unknown"
	}
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int32
	EntityID uint32
	Species  components.Species

	TargetID uint32 // parent for births, predator for kills
}

// NewBirthEvent creates a birth event.
func NewBirthEvent(tick int32, childID, parentID uint32, species components.Species) Event {
	return Event{
		Type:     EventBirth,
		Tick:     tick,
		EntityID: childID,
		Species:  species,
		TargetID: parentID,
	}
}

// NewKillEvent creates a kill event. The prey is the subject.
func NewKillEvent(tick int32, preyID, predatorID uint32) Event {
	return Event{
		Type:     EventKill,
		Tick:     tick,
		EntityID: preyID,
		Species:  components.SpeciesPrey,
		TargetID: predatorID,
	}
}

// NewStarvationEvent creates a death-by-health event.
func NewStarvationEvent(tick int32, id uint32, species components.Species) Event {
	return Event{
		Type:     EventStarvation,
		Tick:     tick,
		EntityID: id,
		Species:  species,
	}
}

// NewCullEvent creates a regulator removal event.
func NewCullEvent(tick int32, id uint32, species components.Species) Event {
	return Event{
		Type:     EventCull,
		Tick:     tick,
		EntityID: id,
		Species:  species,
	}
}

// IsDeath reports whether the event removed an agent.
func (e Event) IsDeath() bool {
	return e.Type != EventBirth
}
