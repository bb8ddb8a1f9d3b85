package physics

import (
	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/parameter"
	"github.com/ohade/strategy-game/vmath"
)

// Contact describes one overlapping pair found during narrow phase.
// Transient: computed, resolved, and discarded within a single tick
type Contact struct {
	A, B core.Entity

	// Penetration depth along the separation normal
	Depth float64

	// Unit normal pointing from A toward B
	NormalX, NormalY float64
}

// Overlap tests circle-circle penetration. Returns the contact depth and
// normal from a toward b when the circles interpenetrate beyond tolerance.
// Fully co-located pairs separate along +X so resolution order and
// direction stay deterministic
func Overlap(a, b *core.Kinetic, radiusA, radiusB float64) (Contact, bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := vmath.Magnitude(dx, dy)
	minDist := radiusA + radiusB

	if dist >= minDist-parameter.CollisionTolerance {
		return Contact{}, false
	}

	var nx, ny float64
	if dist < parameter.CoincidentEpsilon {
		nx, ny = 1, 0
		dist = 0
	} else {
		nx, ny = dx/dist, dy/dist
	}

	return Contact{
		Depth:   minDist - dist,
		NormalX: nx,
		NormalY: ny,
	}, true
}

// ResolveMassSplit displaces two bodies out of penetration along the
// contact normal, split in inverse proportion to mass: a body with twice
// the mass moves half as far. An immovable body absorbs nothing and its
// partner takes the full correction
func ResolveMassSplit(a, b *core.Kinetic, c Contact, massA, massB float64, immovableA, immovableB bool) (moveA, moveB float64) {
	switch {
	case immovableA && immovableB:
		return 0, 0
	case immovableA:
		moveB = c.Depth
	case immovableB:
		moveA = c.Depth
	default:
		total := massA + massB
		moveA = c.Depth * (massB / total)
		moveB = c.Depth * (massA / total)
	}

	a.X -= c.NormalX * moveA
	a.Y -= c.NormalY * moveA
	b.X += c.NormalX * moveB
	b.Y += c.NormalY * moveB
	return moveA, moveB
}

// ClosingSpeed returns the rate at which mover approaches the point
// (x, y); negative when receding
func ClosingSpeed(mover *core.Kinetic, x, y float64) float64 {
	dx := x - mover.X
	dy := y - mover.Y
	nx, ny := vmath.Normalize(dx, dy)
	return vmath.Dot(mover.VelX, mover.VelY, nx, ny)
}

// ApplyProximityRepulsion pushes a unit away from a hull it is closing on.
// The bias is an acceleration input for the coming integration, scaled by
// closing speed, so avoidance acts before penetration instead of only
// reacting after it
func ApplyProximityRepulsion(unit *core.Kinetic, hullX, hullY float64) {
	closing := ClosingSpeed(unit, hullX, hullY)
	if closing <= 0 {
		return
	}

	nx, ny := vmath.Normalize(unit.X-hullX, unit.Y-hullY)
	unit.AccelX += nx * closing * parameter.ProximityRepulseGain
	unit.AccelY += ny * closing * parameter.ProximityRepulseGain
}

// PredictContact extrapolates both bodies linearly and reports whether
// they cross within the prediction window
func PredictContact(a, b *core.Kinetic, radiusA, radiusB, lookahead float64) bool {
	futureAX := a.X + a.VelX*lookahead
	futureAY := a.Y + a.VelY*lookahead
	futureBX := b.X + b.VelX*lookahead
	futureBY := b.Y + b.VelY*lookahead

	return vmath.Dist(futureAX, futureAY, futureBX, futureBY) < radiusA+radiusB
}
