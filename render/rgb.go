package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit color
type RGB struct {
	R, G, B uint8
}

// FromHex unpacks a 0xRRGGBB value
func FromHex(v uint32) RGB {
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// clamp converts float to uint8 efficiently
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Scale multiplies all channels by factor (0.0-1.0)
func Scale(c RGB, factor float64) RGB {
	// Clamp to not wrap on factor > 1.0
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// Lerp linearly interpolates between two colors
// t=0 returns a, t=1 returns b
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: uint8(float64(a.R) + t*float64(int(b.R)-int(a.R))),
		G: uint8(float64(a.G) + t*float64(int(b.G)-int(a.G))),
		B: uint8(float64(a.B) + t*float64(int(b.B)-int(a.B))),
	}
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Shade darkens c toward night by light in [0, 1]
// Blending in Lab keeps dim hues from going muddy
func Shade(c, night RGB, light float64) RGB {
	if light >= 1 {
		return c
	}
	if light <= 0 {
		return night
	}
	return fromColorful(night.colorful().BlendLab(c.colorful(), light))
}

// Highlight lifts c toward white while keeping its hue
func Highlight(c RGB, t float64) RGB {
	return fromColorful(c.colorful().BlendHcl(colorful.Color{R: 1, G: 1, B: 1}, t))
}

// Dim fades c toward the background in perceptual space
func Dim(c RGB, t float64) RGB {
	return fromColorful(c.colorful().BlendLab(RgbBackground.colorful(), t))
}

// Tcell converts to a terminal color
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
