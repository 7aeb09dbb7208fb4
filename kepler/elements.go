// Package kepler evaluates Keplerian ellipses and advances orbital phase and spin for the solar-system view
package kepler

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/orrery/vmath"
)

var (
	ErrEccentricity  = errors.New("eccentricity outside [0, 1)")
	ErrSemiMajorAxis = errors.New("semi-major axis must be positive")
	ErrPeriod        = errors.New("orbital period must be non-zero and finite")
)

// Elements are the fixed orbital parameters of a body
// Inclination is in radians
type Elements struct {
	SemiMajorAxis float64
	Eccentricity  float64
	Inclination   float64
	PeriodDays    float64
}

// Validate reports the first element that would make the conic equation non-physical
func (el Elements) Validate() error {
	if !(el.Eccentricity >= 0 && el.Eccentricity < 1) {
		return fmt.Errorf("%w: %v", ErrEccentricity, el.Eccentricity)
	}
	if !(el.SemiMajorAxis > 0) || math.IsInf(el.SemiMajorAxis, 0) {
		return fmt.Errorf("%w: %v", ErrSemiMajorAxis, el.SemiMajorAxis)
	}
	if err := validatePeriod(el.PeriodDays); err != nil {
		return err
	}
	if !vmath.IsFinite(el.Inclination) {
		return fmt.Errorf("inclination not finite: %v", el.Inclination)
	}
	return nil
}

func validatePeriod(p float64) error {
	if p == 0 || !vmath.IsFinite(p) {
		return fmt.Errorf("%w: %v", ErrPeriod, p)
	}
	return nil
}

// Radius is the polar conic-section equation r = a(1-e²)/(1+e·cosθ)
func Radius(a, e, theta float64) float64 {
	return a * (1 - e*e) / (1 + e*math.Cos(theta))
}

// Position returns the orbit-plane point at phase theta, tilted by the inclination about x
func Position(el Elements, theta float64) vmath.Vec3F {
	r := Radius(el.SemiMajorAxis, el.Eccentricity, theta)
	x := r * math.Cos(theta)
	zEcl := r * math.Sin(theta)
	sinI, cosI := math.Sincos(el.Inclination)
	return vmath.Vec3F{
		X: x,
		Y: -zEcl * sinI,
		Z: zEcl * cosI,
	}
}

// OrbitPath samples the full ellipse as a closed polyline of segments+1 points
func OrbitPath(el Elements, segments int) []vmath.Vec3F {
	if segments < 3 {
		segments = 3
	}
	pts := make([]vmath.Vec3F, segments+1)
	for i := 0; i <= segments; i++ {
		theta := float64(i) / float64(segments) * vmath.TwoPi
		pts[i] = Position(el, theta)
	}
	return pts
}

// AngularRate is the per-tick phase increment for a period in days under time scale ts
func AngularRate(periodDays, ts float64) float64 {
	return vmath.TwoPi / periodDays * ts
}

// SpinRate is the per-tick spin increment; a negative period yields a retrograde (negative) rate
func SpinRate(periodHours, ts float64) float64 {
	if periodHours == 0 {
		return 0
	}
	return vmath.TwoPi / (periodHours / 24) * ts
}
