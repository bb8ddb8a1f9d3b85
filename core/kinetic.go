package core

// Kinetic holds the continuous motion state of an entity.
// Positions are world units, velocities world units per second,
// heading radians counterclockwise from +X.
type Kinetic struct {
	X, Y       float64
	VelX, VelY float64
	// AccelX and AccelY accumulate steering and avoidance input for the
	// current tick; integration consumes and clears them
	AccelX, AccelY float64
	Heading        float64
}
