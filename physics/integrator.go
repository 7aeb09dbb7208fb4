package physics

import (
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

// Integrator advances bodies with semi-implicit Euler over pairwise gravity
type Integrator struct {
	G           float64
	SofteningSq float64

	// Scratch force accumulator reused across steps
	forces []vmath.Vec3F
}

// StepStats reports pair evaluations of one step
type StepStats struct {
	Pairs    int // Ordered pairs evaluated
	Softened int // Ordered pairs skipped by the softening threshold
}

// NewIntegrator returns an integrator with the default constant and softening
func NewIntegrator() *Integrator {
	return &Integrator{
		G:           parameter.GravitationalConstant,
		SofteningSq: parameter.SofteningDistanceSq,
	}
}

// PairForce is the force on a from b, zero and false when closer than the softening distance
// The product of masses is formed first so that PairForce(b, a) is the exact negation
func PairForce(a, b *Body, g, softeningSq float64) (vmath.Vec3F, bool) {
	d := vmath.V3FSub(b.Position, a.Position)
	distSq := vmath.V3FMagSq(d)
	if distSq < softeningSq {
		return vmath.Vec3F{}, false
	}
	mag := g * (a.Mass * b.Mass) / distSq
	return vmath.V3FScale(vmath.V3FNormalize(d), mag), true
}

// Step advances all bodies by dt
// Forces are summed from the positions at entry before any body moves
func (in *Integrator) Step(bodies []Body, dt float64) StepStats {
	var stats StepStats
	n := len(bodies)
	if cap(in.forces) < n {
		in.forces = make([]vmath.Vec3F, n)
	}
	forces := in.forces[:n]

	// Pass 1: force snapshot
	for i := range bodies {
		var total vmath.Vec3F
		for j := range bodies {
			if i == j {
				continue
			}
			stats.Pairs++
			f, ok := PairForce(&bodies[i], &bodies[j], in.G, in.SofteningSq)
			if !ok {
				stats.Softened++
				continue
			}
			total = vmath.V3FAdd(total, f)
		}
		forces[i] = total
	}

	// Pass 2: velocity first, then position with the new velocity
	for i := range bodies {
		b := &bodies[i]
		accel := vmath.V3FScale(forces[i], 1/b.Mass)
		b.Velocity = vmath.V3FAdd(b.Velocity, vmath.V3FScale(accel, dt))
		b.Position = vmath.V3FAdd(b.Position, vmath.V3FScale(b.Velocity, dt))
	}

	return stats
}
