package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector used by all simulation state
// Y is up; the ecliptic is the XZ plane
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FNeg(v Vec3F) Vec3F {
	return Vec3F{-v.X, -v.Y, -v.Z}
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FCross(a, b Vec3F) Vec3F {
	return Vec3F{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

// V3FDist returns the euclidean distance between two points
func V3FDist(a, b Vec3F) float64 {
	return V3FMag(V3FSub(b, a))
}

func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FLerp moves a toward b by fraction t of the remaining distance
// t = 0 returns a, t = 1 returns b
func V3FLerp(a, b Vec3F, t float64) Vec3F {
	return Vec3F{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// V3FRotateX rotates v about the X axis by angle radians (right-handed)
func V3FRotateX(v Vec3F, angle float64) Vec3F {
	s, c := math.Sincos(angle)
	return Vec3F{
		X: v.X,
		Y: v.Y*c - v.Z*s,
		Z: v.Y*s + v.Z*c,
	}
}

// V3FRotateY rotates v about the Y axis by angle radians (right-handed)
func V3FRotateY(v Vec3F, angle float64) Vec3F {
	s, c := math.Sincos(angle)
	return Vec3F{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// V3FIsFinite reports whether every component is neither NaN nor infinite
func V3FIsFinite(v Vec3F) bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}
