package engine

import (
	"github.com/ohade/strategy-game/event"
)

// System is one stage of the tick pipeline
// Priority fixes the pipeline position (lower runs first); the ordering
// between stages is a simulation guarantee, not an optimization
type System interface {
	// Name identifies the system in logs and telemetry
	Name() string

	// Priority determines execution order; lower values run first
	Priority() int

	// EventTypes lists the event types routed to HandleEvent
	EventTypes() []event.EventType

	// HandleEvent processes a routed event before the tick's Update pass
	HandleEvent(ev event.GameEvent)

	// Update advances the system by the frame's delta time
	Update()
}
