package event

import (
	"github.com/ohade/strategy-game/core"
)

// GameEvent is the unit of communication between the command layer,
// systems, and observers
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}

// MoveOrderPayload directs units toward a world point
type MoveOrderPayload struct {
	Units []core.Entity
	X, Y  float64
}

// AttackOrderPayload sets an explicit enemy target for units
type AttackOrderPayload struct {
	Units  []core.Entity
	Target core.Entity
}

// LaunchOrderPayload queues fighter launches. Count <= 0 means "all"
type LaunchOrderPayload struct {
	Carrier core.Entity
	Count   int
}

// RecallOrderPayload starts landing sequences for the listed fighters
type RecallOrderPayload struct {
	Carrier  core.Entity
	Fighters []core.Entity
}

// EmergencyMovePayload overrides a carrier movement lock for the tick
type EmergencyMovePayload struct {
	Carrier core.Entity
	X, Y    float64
}

// UnitDestroyedPayload reports a destruction during the sweep
type UnitDestroyedPayload struct {
	Unit    core.Entity
	Faction core.Faction
}

// FighterLaunchedPayload reports a completed launch
type FighterLaunchedPayload struct {
	Carrier core.Entity
	Fighter core.Entity
	Point   int
}

// FighterSecuredPayload reports a completed landing
type FighterSecuredPayload struct {
	Carrier core.Entity
	Fighter core.Entity
}

// LandingAbortedPayload reports an emergency abort
type LandingAbortedPayload struct {
	Carrier core.Entity
	Fighter core.Entity
}
