package vmath

import "math"

// Epsilon guards divisions by near-zero magnitudes
const Epsilon = 1e-9

// Magnitude returns the length of vector (x, y)
func Magnitude(x, y float64) float64 {
	return math.Hypot(x, y)
}

// MagnitudeSq returns the squared length, avoiding the sqrt for comparisons
func MagnitudeSq(x, y float64) float64 {
	return x*x + y*y
}

// Normalize returns the unit vector of (x, y), or (0, 0) for a zero vector
func Normalize(x, y float64) (float64, float64) {
	mag := math.Hypot(x, y)
	if mag < Epsilon {
		return 0, 0
	}
	return x / mag, y / mag
}

// Dist returns the distance between two points
func Dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// DistSq returns the squared distance between two points
func DistSq(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Dot returns the dot product of two vectors
func Dot(ax, ay, bx, by float64) float64 {
	return ax*bx + ay*by
}

// ClampMagnitude scales (x, y) down to max length if it exceeds it.
// Returns the (possibly unchanged) vector
func ClampMagnitude(x, y, max float64) (float64, float64) {
	magSq := x*x + y*y
	if magSq <= max*max || magSq < Epsilon {
		return x, y
	}
	scale := max / math.Sqrt(magSq)
	return x * scale, y * scale
}

// Clamp limits v to the range [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rotate rotates vector (x, y) by angle radians counterclockwise
func Rotate(x, y, angle float64) (float64, float64) {
	sin, cos := math.Sincos(angle)
	return x*cos - y*sin, x*sin + y*cos
}
