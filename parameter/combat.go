package parameter

import "math"

// Fighter baseline stats
const (
	FighterHP          = 100.0
	FighterRadius      = 15.0
	FighterMass        = 1.0
	FighterMaxSpeed    = 150.0
	FighterAccel       = 200.0
	FighterTurnRate    = math.Pi // 180 deg/s
	FighterAttackRange = 50.0
	FighterAttackPower = 10.0
	FighterCooldown    = 1.0
	FighterVision      = 250.0
)

// LockOnRadius bounds automatic target acquisition around a move order
const LockOnRadius = 200.0
