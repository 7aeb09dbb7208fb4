// Package physics integrates pairwise Newtonian gravity for the three-body view
package physics

import (
	"math"

	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

// State is a body's initial condition as entered in a preset or the editor form
type State struct {
	Mass     float64
	Position vmath.Vec3F
	Velocity vmath.Vec3F
	Color    uint32
}

// Body is a gravitating point mass
// Radius is visual only and fixed at construction
type Body struct {
	Mass     float64
	Position vmath.Vec3F
	Velocity vmath.Vec3F
	Radius   float64
	Color    uint32
}

// RadiusForMass is the visual sphere radius, cube-root of mass with a floor
func RadiusForMass(mass float64) float64 {
	return max(parameter.BodyRadiusFloor, math.Cbrt(mass)*parameter.BodyRadiusScale)
}

// NewBodies builds a fresh body set; nothing from a previous run is carried over
func NewBodies(states []State) []Body {
	bodies := make([]Body, len(states))
	for i, s := range states {
		bodies[i] = Body{
			Mass:     s.Mass,
			Position: s.Position,
			Velocity: s.Velocity,
			Radius:   RadiusForMass(s.Mass),
			Color:    s.Color,
		}
	}
	return bodies
}
