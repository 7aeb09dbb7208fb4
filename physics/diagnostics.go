package physics

import (
	"github.com/lixenwraith/orrery/vmath"
)

// TotalMomentum is Σ m·v
func TotalMomentum(bodies []Body) vmath.Vec3F {
	var p vmath.Vec3F
	for i := range bodies {
		p = vmath.V3FAdd(p, vmath.V3FScale(bodies[i].Velocity, bodies[i].Mass))
	}
	return p
}

// KineticEnergy is Σ ½·m·|v|²
func KineticEnergy(bodies []Body) float64 {
	var e float64
	for i := range bodies {
		e += 0.5 * bodies[i].Mass * vmath.V3FMagSq(bodies[i].Velocity)
	}
	return e
}

// PotentialEnergy sums -G·mᵢ·mⱼ/r over unordered pairs, skipping softened pairs like the force does
func PotentialEnergy(bodies []Body, g, softeningSq float64) float64 {
	var e float64
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			distSq := vmath.V3FMagSq(vmath.V3FSub(bodies[j].Position, bodies[i].Position))
			if distSq < softeningSq {
				continue
			}
			e -= g * bodies[i].Mass * bodies[j].Mass / vmath.V3FDist(bodies[i].Position, bodies[j].Position)
		}
	}
	return e
}

// TotalEnergy is kinetic plus potential energy
func TotalEnergy(bodies []Body, g, softeningSq float64) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies, g, softeningSq)
}

// CenterOfMass is the mass-weighted centroid, origin for an empty or massless set
func CenterOfMass(bodies []Body) vmath.Vec3F {
	var c vmath.Vec3F
	var total float64
	for i := range bodies {
		c = vmath.V3FAdd(c, vmath.V3FScale(bodies[i].Position, bodies[i].Mass))
		total += bodies[i].Mass
	}
	if total > 0 {
		c = vmath.V3FScale(c, 1/total)
	}
	return c
}

// Bounds is the axis-aligned box of all positions
func Bounds(bodies []Body) vmath.Box3 {
	var box vmath.Box3
	for i := range bodies {
		box.ExpandByPoint(bodies[i].Position)
	}
	return box
}

// Positions copies out current positions
func Positions(bodies []Body) []vmath.Vec3F {
	out := make([]vmath.Vec3F, len(bodies))
	for i := range bodies {
		out[i] = bodies[i].Position
	}
	return out
}
