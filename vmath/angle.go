package vmath

import "math"

// TwoPi is one full revolution in radians
const TwoPi = 2 * math.Pi

func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }
func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// WrapAngle reduces an angle to [0, 2π)
// Phase angles are allowed to grow unbounded; this is for display only
func WrapAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	return a
}

// IsFinite reports whether f is neither NaN nor ±Inf
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
