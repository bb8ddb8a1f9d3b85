package component

import (
	"github.com/ohade/strategy-game/constant"
	"github.com/ohade/strategy-game/core"
)

// LaunchPoint is one fixed tube through which a single fighter departs at
// a time. Offsets are carrier-relative: forward along the heading,
// lateral across it
type LaunchPoint struct {
	OffsetForward float64
	OffsetLateral float64

	Status constant.PointStatus

	// Occupant is the launch request currently holding the point
	// (reserved or emerging); NoEntity when free or cooling
	Occupant core.Entity

	// EmergeRemaining counts down the emergence phase while Busy
	EmergeRemaining float64

	// CooldownRemaining counts down before the point returns to Available
	CooldownRemaining float64
}

// LaunchRequest is one pending entry in a carrier's FIFO launch queue
type LaunchRequest struct {
	ID    core.Entity // id pre-assigned to the fighter that will emerge
	Stage constant.LaunchStage
	Point int // index into Points once reserved, -1 while queued
}

// CarrierComponent is the capability record that makes a unit a carrier.
// Presence of this component, not a type hierarchy, selects carrier
// behavior
type CarrierComponent struct {
	Capacity int
	Stored   []core.Entity

	Points      []LaunchPoint
	LaunchQueue []LaunchRequest

	// NextPoint rotates reservations across launch points round-robin
	NextPoint int

	// InFlight counts fighters launched from this carrier that have not
	// been secured or destroyed; Stored plus InFlight never exceeds
	// Capacity
	InFlight int

	// MovementLocked is derived once per tick from the set of active
	// launch and landing operations, never poked from call sites
	MovementLocked bool

	// EmergencyOverride is asserted by an EmergencyMove order and
	// consumed at the end of the tick
	EmergencyOverride bool
}

// FreeStored returns the number of fighters available to launch
func (c *CarrierComponent) FreeStored() int {
	return len(c.Stored)
}

// AtCapacity reports whether another fighter can be secured
func (c *CarrierComponent) AtCapacity() bool {
	return len(c.Stored) >= c.Capacity
}

// LandingComponent tags a fighter that is in a landing sequence
type LandingComponent struct {
	Carrier core.Entity
	Stage   constant.LandingStage

	// Backoff delays approach retry after an emergency abort
	Backoff float64
}
