package physics

import (
	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/vmath"
)

// Integrate performs physics integration: v += a*dt, p += v*dt.
// Accumulated acceleration is consumed and cleared; maxSpeed caps the
// resulting velocity magnitude
func Integrate(k *core.Kinetic, maxSpeed, dt float64) {
	k.VelX += k.AccelX * dt
	k.VelY += k.AccelY * dt
	k.AccelX = 0
	k.AccelY = 0

	k.VelX, k.VelY = vmath.ClampMagnitude(k.VelX, k.VelY, maxSpeed)

	k.X += k.VelX * dt
	k.Y += k.VelY * dt
}

// SetImpulse overrides velocity (launch boost, hard redirect)
func SetImpulse(k *core.Kinetic, vx, vy float64) {
	k.VelX = vx
	k.VelY = vy
}

// Halt zeroes motion on arrival
func Halt(k *core.Kinetic) {
	k.VelX = 0
	k.VelY = 0
	k.AccelX = 0
	k.AccelY = 0
}

// Speed returns the current velocity magnitude
func Speed(k *core.Kinetic) float64 {
	return vmath.Magnitude(k.VelX, k.VelY)
}
