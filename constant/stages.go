package constant

// LaunchStage tracks a single launch request through a carrier's tube
type LaunchStage uint8

const (
	LaunchQueued LaunchStage = iota
	LaunchReserved
	LaunchEmerging
	LaunchDone
)

func (s LaunchStage) String() string {
	switch s {
	case LaunchQueued:
		return "queued"
	case LaunchReserved:
		return "reserved"
	case LaunchEmerging:
		return "emerging"
	case LaunchDone:
		return "launched"
	}
	return "unknown"
}

// LandingStage tracks a recalled fighter through the landing sequence.
// Transitions are strictly monotonic; the only backward edge is the
// emergency abort from Aligning/Final back to Approaching
type LandingStage uint8

const (
	LandingRequested LandingStage = iota
	LandingApproaching
	LandingAligning
	LandingFinal
	LandingSecured
)

func (s LandingStage) String() string {
	switch s {
	case LandingRequested:
		return "requested"
	case LandingApproaching:
		return "approaching"
	case LandingAligning:
		return "aligning"
	case LandingFinal:
		return "landing"
	case LandingSecured:
		return "secured"
	}
	return "unknown"
}

// PointStatus is the occupancy state of a carrier launch point
type PointStatus uint8

const (
	PointAvailable PointStatus = iota
	PointReserved
	PointBusy
	PointCooling
)

func (s PointStatus) String() string {
	switch s {
	case PointAvailable:
		return "available"
	case PointReserved:
		return "reserved"
	case PointBusy:
		return "busy"
	case PointCooling:
		return "cooling"
	}
	return "unknown"
}
