package parameter

// Physics tuning for the kinematic and collision phases.
// Units are world units, seconds, and radians unless noted.

const (
	// ArrivalEpsilon is the point-target arrival threshold; inside it the
	// unit snaps to the target, zeroes velocity, and goes idle
	ArrivalEpsilon = 5.0

	// CollisionTolerance is the residual penetration allowed after a
	// resolution pass
	CollisionTolerance = 0.01

	// CoincidentEpsilon is the center distance below which two units are
	// treated as fully co-located; separation falls back to the +X axis
	// so resolution stays deterministic
	CoincidentEpsilon = 0.1

	// MisalignDamping scales the sideways-drag factor applied when a
	// unit's velocity is not aligned with its heading
	MisalignDamping = 0.8

	// ProximityRepulseGain converts closing speed into repulsive
	// acceleration near a carrier's hull
	ProximityRepulseGain = 2.0

	// ContactPredictionTime is how far ahead carrier collision warnings
	// extrapolate unit motion
	ContactPredictionTime = 2.0
)
