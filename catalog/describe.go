package catalog

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Description is the presentational info-panel content for one body
type Description struct {
	Title string
	Lines []string
	About string
}

// Entry is anything the info panel can describe
type Entry interface {
	describe(p *message.Printer) Description
}

var printer = message.NewPrinter(language.English)

// Describe renders an entry with grouped thousands
func Describe(e Entry) Description {
	return e.describe(printer)
}

func title(name, local string) string {
	if local == "" {
		return name
	}
	return name + " (" + local + ")"
}

func (s Sun) describe(p *message.Printer) Description {
	return Description{
		Title: title(s.Name, s.LocalName),
		Lines: []string{
			"Class: Star",
			p.Sprintf("Diameter (Earth = 1): %v", s.RadiusEarth),
			p.Sprintf("Rotation: %.2f days", math.Abs(s.RotationHours/24)),
			p.Sprintf("Axial tilt: %v°", s.AxialTilt),
		},
		About: s.Description,
	}
}

func (pl Planet) describe(p *message.Printer) Description {
	direction := "prograde"
	if pl.RotationHours < 0 {
		direction = "retrograde"
	}
	return Description{
		Title: title(pl.Name, pl.LocalName),
		Lines: []string{
			"Class: " + pl.Classification(),
			p.Sprintf("Mean distance: %v AU", pl.AU),
			p.Sprintf("Orbital period: %v days", pl.PeriodDays),
			p.Sprintf("Rotation: %.2f days (%s)", math.Abs(pl.RotationHours/24), direction),
			p.Sprintf("Axial tilt: %v°", pl.AxialTilt),
			p.Sprintf("Radius (Earth = 1): %v", pl.RadiusEarth),
			p.Sprintf("Eccentricity: %v", pl.Eccentricity),
			p.Sprintf("Inclination: %v°", pl.Inclination),
			p.Sprintf("Moons: %d", len(pl.Moons)),
		},
		About: pl.Description,
	}
}

func (m Moon) describe(p *message.Printer) Description {
	return Description{
		Title: m.Name,
		Lines: []string{
			"Class: Moon",
			p.Sprintf("Radius: %v km", m.RadiusKm),
			p.Sprintf("Orbit: %v km", m.DistanceKm),
			p.Sprintf("Orbital period: %v days", m.PeriodDays),
		},
	}
}
