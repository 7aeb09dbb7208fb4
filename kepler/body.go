package kepler

import (
	"github.com/lixenwraith/orrery/vmath"
)

// Spin is a body's rotation about its own axis
type Spin struct {
	Angle       float64
	PeriodHours float64 // Negative = retrograde, zero = no spin
	Rate        float64
}

// SetTimeScale recomputes the rate from the stored period, keeping the current angle
func (s *Spin) SetTimeScale(ts float64) {
	s.Rate = SpinRate(s.PeriodHours, ts)
}

// Advance applies one tick of rotation
func (s *Spin) Advance() {
	s.Angle += s.Rate
}

// BodyConfig is the static description a Body is built from
type BodyConfig struct {
	Name                string
	Elements            Elements
	Phase               float64
	RotationPeriodHours float64
	AxialTilt           float64 // Radians
}

// Body is a planet on a Keplerian orbit around the scene origin
// Phase is left unbounded; trig keeps positions periodic
type Body struct {
	Name        string
	Elements    Elements
	Phase       float64
	AngularRate float64
	Spin        Spin
	AxialTilt   float64

	timeScale float64
	path      []vmath.Vec3F
}

// NewBody validates the elements and precomputes the orbit polyline
func NewBody(cfg BodyConfig, ts float64, segments int) (*Body, error) {
	if err := cfg.Elements.Validate(); err != nil {
		return nil, err
	}
	b := &Body{
		Name:      cfg.Name,
		Elements:  cfg.Elements,
		Phase:     cfg.Phase,
		AxialTilt: cfg.AxialTilt,
		Spin:      Spin{PeriodHours: cfg.RotationPeriodHours},
	}
	b.SetTimeScale(ts)
	b.path = OrbitPath(b.Elements, segments)
	return b, nil
}

// SetTimeScale re-derives both rates; phase and spin angle are untouched
func (b *Body) SetTimeScale(ts float64) {
	b.timeScale = ts
	b.AngularRate = AngularRate(b.Elements.PeriodDays, ts)
	b.Spin.SetTimeScale(ts)
}

// SetElements replaces the orbit, recomputing the rate and the polyline
func (b *Body) SetElements(el Elements) error {
	if err := el.Validate(); err != nil {
		return err
	}
	b.Elements = el
	b.AngularRate = AngularRate(el.PeriodDays, b.timeScale)
	b.path = OrbitPath(el, len(b.path)-1)
	return nil
}

// Advance applies one tick of orbital motion and spin
func (b *Body) Advance() {
	b.Phase += b.AngularRate
	b.Spin.Advance()
}

// Position is the current heliocentric position
func (b *Body) Position() vmath.Vec3F {
	return Position(b.Elements, b.Phase)
}

// Radius is the current heliocentric distance
func (b *Body) Radius() float64 {
	return Radius(b.Elements.SemiMajorAxis, b.Elements.Eccentricity, b.Phase)
}

// Path returns the precomputed orbit polyline, shared and read-only
func (b *Body) Path() []vmath.Vec3F {
	return b.path
}

// TimeScale returns the scale the current rates were derived from
func (b *Body) TimeScale() float64 {
	return b.timeScale
}
