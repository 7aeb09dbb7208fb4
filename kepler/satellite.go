package kepler

import (
	"fmt"
	"math"

	"github.com/lixenwraith/orrery/vmath"
)

// Satellite circles its parent in the parent's local frame without its own inclination
type Satellite struct {
	Name        string
	Distance    float64 // Scene units from the parent center
	PeriodDays  float64
	Phase       float64
	AngularRate float64
}

// NewSatellite validates the orbit and derives the rate under time scale ts
func NewSatellite(name string, distance, periodDays, phase, ts float64) (*Satellite, error) {
	if !(distance > 0) || math.IsInf(distance, 0) {
		return nil, fmt.Errorf("satellite %s: %w: %v", name, ErrSemiMajorAxis, distance)
	}
	if err := validatePeriod(periodDays); err != nil {
		return nil, fmt.Errorf("satellite %s: %w", name, err)
	}
	s := &Satellite{
		Name:       name,
		Distance:   distance,
		PeriodDays: periodDays,
		Phase:      phase,
	}
	s.SetTimeScale(ts)
	return s, nil
}

// SetTimeScale recomputes the rate from the stored period, keeping the phase
func (s *Satellite) SetTimeScale(ts float64) {
	s.AngularRate = AngularRate(s.PeriodDays, ts)
}

// Advance applies one tick of orbital motion
func (s *Satellite) Advance() {
	s.Phase += s.AngularRate
}

// Local is the parent-relative offset
func (s *Satellite) Local() vmath.Vec3F {
	sin, cos := math.Sincos(s.Phase)
	return vmath.Vec3F{X: cos * s.Distance, Y: 0, Z: sin * s.Distance}
}
