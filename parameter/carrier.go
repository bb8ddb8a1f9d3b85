package parameter

import "math"

// Carrier baseline stats. The carrier is treated as infinitely massive for
// collision displacement; CarrierMass is still used for the avoidance bias
const (
	CarrierHP          = 500.0
	CarrierRadius      = 50.0
	CarrierMass        = 10.0
	CarrierMaxSpeed    = 50.0
	CarrierAccel       = 50.0
	CarrierTurnRate    = math.Pi / 4 // 45 deg/s
	CarrierAttackRange = 300.0
	CarrierAttackPower = 40.0
	CarrierCooldown    = 2.0
	CarrierVision      = 400.0

	CarrierCapacity = 10

	// Launch point geometry relative to carrier radius: bow tubes at 80%
	// forward, side tubes offset 30% laterally
	LaunchPointForward = 0.8
	LaunchPointLateral = 0.3

	// LaunchPointCooldown is the per-tube recovery time after a fighter
	// emerges
	LaunchPointCooldown = 1.0

	// LaunchEmergeDuration is the timed emergence phase during which the
	// carrier holds position
	LaunchEmergeDuration = 0.5

	// LaunchBoostFactor scales the fighter's max speed into its initial
	// launch velocity along the tube heading
	LaunchBoostFactor = 1.5

	// LaunchPatrolDistance places the fresh fighter's patrol point ahead
	// of the carrier
	LaunchPatrolDistance = 200.0

	// Landing geometry and tolerances
	LandingApproachDistance = 120.0
	LandingAlignDistance    = 30.0
	LandingAlignHeading     = math.Pi / 6 // 30 deg heading tolerance
	LandingSecureDistance   = 10.0

	// LandingAbortBackoff delays retry after an emergency-move abort kicks
	// a fighter back to approach
	LandingAbortBackoff = 1.5

	// LandingClosingFactor sizes an aligning lander's maximum turn radius
	// as a fraction of the align envelope. Speed is capped at
	// MaxTurnRate * LandingAlignDistance * LandingClosingFactor; at full
	// fighter speed the turn circle is wider than the envelope and a
	// tangential approach orbits the carrier instead of closing
	LandingClosingFactor = 0.5

	// ProximityRadiusFactor sizes the avoidance buffer as a multiple of
	// the carrier radius
	ProximityRadiusFactor = 3.0
)
