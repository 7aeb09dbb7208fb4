// Package catalog decodes the embedded body tables into typed entries
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/lixenwraith/orrery/asset"
	"github.com/lixenwraith/orrery/kepler"
	"github.com/lixenwraith/orrery/logging"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/toml"
	"github.com/lixenwraith/orrery/vmath"
)

var ErrEmptyCatalog = errors.New("catalog has no planets")

// Sun is the central body
type Sun struct {
	Name          string  `toml:"name"`
	LocalName     string  `toml:"local_name"`
	RadiusEarth   float64 `toml:"radius_earth"`
	AxialTilt     float64 `toml:"axial_tilt"`
	RotationHours float64 `toml:"rotation_hours"`
	Color         uint32  `toml:"color"`
	Texture       string  `toml:"texture"`
	Description   string  `toml:"description"`
}

// Moon orbits a planet on a circle in the planet's frame
type Moon struct {
	Name       string  `toml:"name"`
	RadiusKm   float64 `toml:"radius_km"`
	DistanceKm float64 `toml:"distance_km"`
	PeriodDays float64 `toml:"period_days"`
	Color      uint32  `toml:"color"`
}

// Rings is a planetary ring annulus
type Rings struct {
	InnerKm float64 `toml:"inner_km"`
	OuterKm float64 `toml:"outer_km"`
	Color   uint32  `toml:"color"`
}

// Planet is one orbiting body of the catalog
type Planet struct {
	Name          string  `toml:"name"`
	LocalName     string  `toml:"local_name"`
	RadiusEarth   float64 `toml:"radius_earth"`
	AU            float64 `toml:"au"`
	PeriodDays    float64 `toml:"period_days"`
	Inclination   float64 `toml:"inclination"` // Degrees
	Eccentricity  float64 `toml:"eccentricity"`
	AxialTilt     float64 `toml:"axial_tilt"` // Degrees
	RotationHours float64 `toml:"rotation_hours"`
	Color         uint32  `toml:"color"`
	Texture       string  `toml:"texture"`
	Dwarf         bool    `toml:"dwarf"`
	Description   string  `toml:"description"`
	Moons         []Moon  `toml:"moons"`
	Rings         *Rings  `toml:"rings"`
}

// SolarSystem is the decoded catalog
type SolarSystem struct {
	Sun     Sun      `toml:"sun"`
	Planets []Planet `toml:"planets"`
}

// LoadSolarSystem decodes a catalog table
func LoadSolarSystem(data []byte) (*SolarSystem, error) {
	var s SolarSystem
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode solar system: %w", err)
	}
	if len(s.Planets) == 0 {
		return nil, ErrEmptyCatalog
	}
	return &s, nil
}

// DefaultSolarSystem decodes the embedded catalog
func DefaultSolarSystem() (*SolarSystem, error) {
	return LoadSolarSystem([]byte(asset.SolarSystemConfig))
}

// Sanitize repairs entries that would break the kinematics and logs each repair
// Eccentricity is clamped into [0, MaxEccentricity]; non-positive distances and zero periods fall back to Earth's
// Returns the number of repairs
func (s *SolarSystem) Sanitize(ctx context.Context, logger logging.Logger) int {
	if logger == nil {
		logger = logging.Noop()
	}
	fixed := 0
	for i := range s.Planets {
		p := &s.Planets[i]
		if err := p.Elements().Validate(); err == nil {
			continue
		} else {
			logger.Warn(ctx, "invalid orbital elements in catalog", logging.String("body", p.Name), logging.Err(err))
		}
		if !(p.Eccentricity >= 0) {
			p.Eccentricity = 0
		} else if p.Eccentricity > parameter.MaxEccentricity {
			p.Eccentricity = parameter.MaxEccentricity
		}
		if !(p.AU > 0) || !vmath.IsFinite(p.AU) {
			p.AU = 1
		}
		if p.PeriodDays == 0 || !vmath.IsFinite(p.PeriodDays) {
			p.PeriodDays = 365.25
		}
		if !vmath.IsFinite(p.Inclination) {
			p.Inclination = 0
		}
		fixed++
	}
	for i := range s.Planets {
		p := &s.Planets[i]
		kept := p.Moons[:0]
		for _, m := range p.Moons {
			if m.DistanceKm > 0 && m.PeriodDays != 0 && vmath.IsFinite(m.PeriodDays) {
				kept = append(kept, m)
				continue
			}
			logger.Warn(ctx, "dropping invalid moon", logging.String("body", m.Name), logging.String("parent", p.Name))
			fixed++
		}
		p.Moons = kept
	}
	return fixed
}

// Elements converts catalog units to scene orbital elements
func (p Planet) Elements() kepler.Elements {
	return kepler.Elements{
		SemiMajorAxis: p.AU * parameter.AUScale,
		Eccentricity:  p.Eccentricity,
		Inclination:   vmath.DegToRad(p.Inclination),
		PeriodDays:    p.PeriodDays,
	}
}

// SceneRadius is the display radius in scene units
func (p Planet) SceneRadius() float64 {
	return p.RadiusEarth * parameter.EarthRadiusScale
}

// Classification is the body class shown in the info panel
func (p Planet) Classification() string {
	if p.Dwarf {
		return "Dwarf planet"
	}
	return "Planet"
}

// SceneRadius is the display radius of the sun, deliberately not to scale
func (s Sun) SceneRadius() float64 {
	return parameter.EarthRadiusScale * parameter.SunRadiusMultiplier
}

// SceneRadius is the moon display radius converted from km
func (m Moon) SceneRadius() float64 {
	return m.RadiusKm * parameter.RadiusKmToScene
}

// SceneDistance maps the km orbit onto the moon-specific divisor
// Moon orbits keep their ratios to each other, not to the planet scale
func (m Moon) SceneDistance() float64 {
	return m.DistanceKm / parameter.MoonDistanceDivisor
}

// Scene converts the ring annulus to scene units
func (r Rings) Scene() kepler.Ring {
	return kepler.Ring{
		Inner: r.InnerKm * parameter.RadiusKmToScene,
		Outer: r.OuterKm * parameter.RadiusKmToScene,
	}
}

// Planet finds a planet by name
func (s *SolarSystem) Planet(name string) (Planet, bool) {
	for _, p := range s.Planets {
		if p.Name == name {
			return p, true
		}
	}
	return Planet{}, false
}
