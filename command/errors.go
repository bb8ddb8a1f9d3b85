package command

import "errors"

// Order rejection reasons, returned synchronously at dispatch so callers
// can react before the tick runs. Accepted orders may still degrade to
// no-ops inside the tick when the world changes underneath them
var (
	// ErrInvalidTarget rejects orders naming a missing or destroyed unit
	ErrInvalidTarget = errors.New("invalid target")

	// ErrCapacityExceeded rejects launches from an empty bay and recalls
	// into a full one
	ErrCapacityExceeded = errors.New("carrier capacity exceeded")

	// ErrInvalidFaction rejects attack orders against friendly units
	ErrInvalidFaction = errors.New("invalid faction pairing")

	// ErrStageViolation rejects operations that would skip a launch or
	// landing stage
	ErrStageViolation = errors.New("lifecycle stage violation")
)
