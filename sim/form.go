package sim

import (
	"strconv"
	"strings"

	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/physics"
	"github.com/lixenwraith/orrery/vmath"
)

// Form field names reported as substituted
const (
	FieldMass = "mass"
	FieldPosX = "pos.x"
	FieldPosY = "pos.y"
	FieldPosZ = "pos.z"
	FieldVelX = "vel.x"
	FieldVelY = "vel.y"
	FieldVelZ = "vel.z"
)

// BodyForm is the raw editor input for one body
type BodyForm struct {
	Mass     string
	Position [3]string
	Velocity [3]string
}

// FieldCount is the number of editable fields per body
const FieldCount = 7

// FieldNames lists fields in editor order
var FieldNames = [FieldCount]string{FieldMass, FieldPosX, FieldPosY, FieldPosZ, FieldVelX, FieldVelY, FieldVelZ}

// Field returns the text of field i in editor order; out of range yields ""
func (f BodyForm) Field(i int) string {
	switch {
	case i == 0:
		return f.Mass
	case i >= 1 && i <= 3:
		return f.Position[i-1]
	case i >= 4 && i < FieldCount:
		return f.Velocity[i-4]
	}
	return ""
}

// WithField returns a copy of f with field i replaced
func (f BodyForm) WithField(i int, v string) BodyForm {
	switch {
	case i == 0:
		f.Mass = v
	case i >= 1 && i <= 3:
		f.Position[i-1] = v
	case i >= 4 && i < FieldCount:
		f.Velocity[i-4] = v
	}
	return f
}

// FormFromState renders a state into editor text
func FormFromState(s physics.State) BodyForm {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return BodyForm{
		Mass:     f(s.Mass),
		Position: [3]string{f(s.Position.X), f(s.Position.Y), f(s.Position.Z)},
		Velocity: [3]string{f(s.Velocity.X), f(s.Velocity.Y), f(s.Velocity.Z)},
	}
}

// ParseBodyForm converts editor text to a state
// Missing or non-numeric fields fall back to DefaultMass or DefaultComponent; non-positive or non-finite mass becomes DefaultMass
// Returns the names of every substituted field
func ParseBodyForm(f BodyForm) (physics.State, []string) {
	var subst []string

	mass, ok := parseField(f.Mass)
	if !ok || !(mass > 0) {
		mass = parameter.DefaultMass
		subst = append(subst, FieldMass)
	}

	component := func(raw, name string) float64 {
		v, ok := parseField(raw)
		if !ok {
			subst = append(subst, name)
			return parameter.DefaultComponent
		}
		return v
	}

	s := physics.State{Mass: mass}
	s.Position = vmath.Vec3F{
		X: component(f.Position[0], FieldPosX),
		Y: component(f.Position[1], FieldPosY),
		Z: component(f.Position[2], FieldPosZ),
	}
	s.Velocity = vmath.Vec3F{
		X: component(f.Velocity[0], FieldVelX),
		Y: component(f.Velocity[1], FieldVelY),
		Z: component(f.Velocity[2], FieldVelZ),
	}
	return s, subst
}

func parseField(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !vmath.IsFinite(v) {
		return 0, false
	}
	return v, true
}
