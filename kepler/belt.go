package kepler

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/orrery/vmath"
)

// AsteroidBelt scatters n static points at uniform angle with radius in [inner, outer)
// and height in [-height, height)
func AsteroidBelt(rng *rand.Rand, n int, inner, outer, height float64) []vmath.Vec3F {
	pts := make([]vmath.Vec3F, n)
	for i := range pts {
		angle := rng.Float64() * vmath.TwoPi
		dist := inner + rng.Float64()*(outer-inner)
		h := -height + rng.Float64()*2*height
		sin, cos := math.Sincos(angle)
		pts[i] = vmath.Vec3F{X: cos * dist, Y: h, Z: sin * dist}
	}
	return pts
}

// Ring is a flat annulus in its parent's equatorial plane
type Ring struct {
	Inner, Outer float64
}

// Points samples the ring edge-to-edge on `bands` concentric circles of `segments` points each
// Points are parent-local; callers tilt them with the parent
func (r Ring) Points(bands, segments int) []vmath.Vec3F {
	if bands < 2 {
		bands = 2
	}
	pts := make([]vmath.Vec3F, 0, bands*segments)
	for b := 0; b < bands; b++ {
		rad := r.Inner + (r.Outer-r.Inner)*float64(b)/float64(bands-1)
		for s := 0; s < segments; s++ {
			sin, cos := math.Sincos(float64(s) / float64(segments) * vmath.TwoPi)
			pts = append(pts, vmath.Vec3F{X: cos * rad, Z: sin * rad})
		}
	}
	return pts
}
