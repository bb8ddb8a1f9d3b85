package component

import (
	"github.com/ohade/strategy-game/core"
)

// UnitComponent is the identity and lifecycle record every simulated unit
// carries. Destruction flips State to StateDestroyed and nothing else; the
// death system owns removal from the active set
type UnitComponent struct {
	Faction      core.Faction
	State        core.UnitState
	VisionRadius float64

	// Home is the carrier this unit launched from, NoEntity for units
	// that never lived in a hangar. Used to release carrier capacity
	// when an in-flight fighter is destroyed
	Home core.Entity
}

// MoverComponent holds a unit's movement intent. At most one of the two
// target kinds is set: a point, or a live unit to follow
type MoverComponent struct {
	HasPoint       bool
	PointX, PointY float64
	TargetUnit     core.Entity // NoEntity when absent
}

// Cleared reports whether the mover carries no intent
func (m MoverComponent) Cleared() bool {
	return !m.HasPoint && m.TargetUnit == core.NoEntity
}
