package physics

import (
	"math"

	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/parameter"
	"github.com/ohade/strategy-game/vmath"
)

// SteerProfile bounds how a body may change its motion in one tick
type SteerProfile struct {
	MaxSpeed    float64
	MaxAccel    float64
	MaxTurnRate float64 // radians per second
}

// ApplySeek turns the body toward the target at its bounded turn rate and
// accumulates forward acceleration along the current heading. Momentum is
// the point: heading and velocity lag direction changes, and a heavy slow
// turner drifts wide where a fighter pivots.
//
// Braking starts inside the distance needed to stop from max speed;
// sideways drag bleeds velocity while the nose is off the target line
func ApplySeek(k *core.Kinetic, targetX, targetY float64, p *SteerProfile, dt float64) {
	targetHeading := vmath.AngleTo(k.X, k.Y, targetX, targetY)
	k.Heading = vmath.TurnToward(k.Heading, targetHeading, p.MaxTurnRate*dt)

	dist := vmath.Dist(k.X, k.Y, targetX, targetY)
	if dist < vmath.Epsilon {
		return
	}

	forwardX := math.Cos(k.Heading)
	forwardY := math.Sin(k.Heading)

	// Alignment of the nose with the target line, in [-1, 1]
	alignment := vmath.Dot(forwardX, forwardY, targetX-k.X, targetY-k.Y) / math.Max(0.1, dist)
	alignment = vmath.Clamp(alignment, -1, 1)

	accel := p.MaxAccel
	if p.MaxAccel > 0 {
		brakingDistance := (p.MaxSpeed * p.MaxSpeed) / (2 * p.MaxAccel)
		if dist < brakingDistance {
			accel = -accel
		}
	}

	k.AccelX += forwardX * accel * alignment
	k.AccelY += forwardY * accel * alignment

	// Sideways drag while misaligned
	damping := 1.0 - parameter.MisalignDamping*dt*(1.0-math.Abs(alignment))
	if damping < 0 {
		damping = 0
	}
	k.VelX *= damping
	k.VelY *= damping
}

// Arrived reports whether the body is inside the arrival envelope of a
// point target
func Arrived(k *core.Kinetic, targetX, targetY float64) bool {
	return vmath.Dist(k.X, k.Y, targetX, targetY) < parameter.ArrivalEpsilon
}

// FaceToward snaps or turns the heading toward a point without thrust,
// used while a fighter aligns with a landing deck
func FaceToward(k *core.Kinetic, targetX, targetY, maxTurnRate, dt float64) {
	targetHeading := vmath.AngleTo(k.X, k.Y, targetX, targetY)
	k.Heading = vmath.TurnToward(k.Heading, targetHeading, maxTurnRate*dt)
}
