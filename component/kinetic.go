package component

import (
	"github.com/ohade/strategy-game/core"
)

// KineticComponent is the physical body of a unit: motion state plus the
// bounds that constrain it each tick
type KineticComponent struct {
	core.Kinetic

	Mass        float64
	Radius      float64
	MaxSpeed    float64
	MaxAccel    float64
	MaxTurnRate float64 // radians per second

	// Immovable bodies (carriers) absorb no collision displacement
	Immovable bool

	// Suspended removes the body from collision participation while a
	// fighter sits inside a carrier's landing envelope
	Suspended bool

	// ContactResolved is set when a penetration was corrected this tick
	// and cleared at the start of the next resolution pass
	ContactResolved bool

	// PredictedContact is set when extrapolated motion crosses a carrier
	// hull within the prediction window
	PredictedContact bool
}
