package vmath

import "math"

// Tau is one full turn in radians
const Tau = 2 * math.Pi

// NormalizeAngle wraps an angle into [0, Tau)
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, Tau)
	if a < 0 {
		a += Tau
	}
	return a
}

// AngleTo returns the heading from (x1, y1) toward (x2, y2) in [0, Tau)
func AngleTo(x1, y1, x2, y2 float64) float64 {
	return NormalizeAngle(math.Atan2(y2-y1, x2-x1))
}

// AngleDiff returns the signed shortest-arc difference from current to
// target, in (-Pi, Pi]. Positive means counterclockwise
func AngleDiff(current, target float64) float64 {
	diff := math.Mod(target-current, Tau)
	if diff > math.Pi {
		diff -= Tau
	} else if diff <= -math.Pi {
		diff += Tau
	}
	return diff
}

// TurnToward rotates current toward target along the shortest arc, moving
// at most maxStep radians. Reaches target exactly when within maxStep
func TurnToward(current, target, maxStep float64) float64 {
	diff := AngleDiff(current, target)
	if math.Abs(diff) <= maxStep {
		return NormalizeAngle(target)
	}
	if diff > 0 {
		return NormalizeAngle(current + maxStep)
	}
	return NormalizeAngle(current - maxStep)
}
