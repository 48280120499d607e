package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// TileSize is the edge length of one level tile in world units.
const TileSize = 1.0

// Epsilon is the tolerance used when comparing world-space floats.
const Epsilon = 1e-9

var (
	Up    = cp.Vector{X: 0, Y: 1}
	Down  = cp.Vector{X: 0, Y: -1}
	Right = cp.Vector{X: 1, Y: 0}
	Left  = cp.Vector{X: -1, Y: 0}
)

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// AngleBetween returns the unsigned angle between a and b in degrees, in [0, 180].
// A zero-length vector yields 0.
func AngleBetween(a, b cp.Vector) float64 {
	la := a.Length()
	lb := b.Length()
	if la < Epsilon || lb < Epsilon {
		return 0
	}
	c := a.Dot(b) / (la * lb)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c) * 180 / math.Pi
}

// Approx reports whether a and b are within tol of each other.
func Approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// ApproxVec compares both components of two vectors.
func ApproxVec(a, b cp.Vector, tol float64) bool {
	return Approx(a.X, b.X, tol) && Approx(a.Y, b.Y, tol)
}
