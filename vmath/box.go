package vmath

import "math"

// Box3 is an axis-aligned bounding box
// The zero value is empty; the first ExpandByPoint collapses it onto that point
type Box3 struct {
	Min, Max Vec3F
	valid    bool
}

// BoundsOf returns the smallest box containing every point
func BoundsOf(points ...Vec3F) Box3 {
	var b Box3
	for _, p := range points {
		b.ExpandByPoint(p)
	}
	return b
}

// ExpandByPoint grows the box to include p
func (b *Box3) ExpandByPoint(p Vec3F) {
	if !b.valid {
		b.Min, b.Max, b.valid = p, p, true
		return
	}
	b.Min = Vec3F{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)}
	b.Max = Vec3F{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)}
}

// IsEmpty reports whether no point was ever added
func (b Box3) IsEmpty() bool {
	return !b.valid
}

// Size returns the box extent per axis, zero for an empty box
func (b Box3) Size() Vec3F {
	if !b.valid {
		return Vec3F{}
	}
	return V3FSub(b.Max, b.Min)
}

// Center returns the midpoint of the box
func (b Box3) Center() Vec3F {
	if !b.valid {
		return Vec3F{}
	}
	return V3FScale(V3FAdd(b.Min, b.Max), 0.5)
}
