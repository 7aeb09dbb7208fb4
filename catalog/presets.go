package catalog

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/orrery/asset"
	"github.com/lixenwraith/orrery/physics"
	"github.com/lixenwraith/orrery/toml"
	"github.com/lixenwraith/orrery/vmath"
)

var (
	ErrNoPresets     = errors.New("preset table is empty")
	ErrUnknownPreset = errors.New("unknown preset")
)

// PresetBody is one body's initial conditions
type PresetBody struct {
	Mass     float64   `toml:"mass"`
	Position []float64 `toml:"position"`
	Velocity []float64 `toml:"velocity"`
	Color    uint32    `toml:"color"`
}

// Preset is a named set of initial conditions
type Preset struct {
	Title  string       `toml:"title"`
	Bodies []PresetBody `toml:"bodies"`
}

// PresetTable holds every preset and their menu order
type PresetTable struct {
	Default string            `toml:"default"`
	Order   []string          `toml:"order"`
	Presets map[string]Preset `toml:"presets"`
}

// LoadPresets decodes and validates a preset table
// Every preset must have at least one body with positive mass and 3-component vectors
func LoadPresets(data []byte) (*PresetTable, error) {
	var t PresetTable
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	if len(t.Presets) == 0 {
		return nil, ErrNoPresets
	}
	for name, p := range t.Presets {
		if len(p.Bodies) == 0 {
			return nil, fmt.Errorf("preset %q has no bodies", name)
		}
		for i, b := range p.Bodies {
			if !(b.Mass > 0) || !vmath.IsFinite(b.Mass) {
				return nil, fmt.Errorf("preset %q body %d: mass must be positive", name, i)
			}
			if len(b.Position) != 3 || len(b.Velocity) != 3 {
				return nil, fmt.Errorf("preset %q body %d: vectors need 3 components", name, i)
			}
		}
	}
	for _, name := range t.Order {
		if _, ok := t.Presets[name]; !ok {
			return nil, fmt.Errorf("order lists %q: %w", name, ErrUnknownPreset)
		}
	}
	if t.Default == "" && len(t.Order) > 0 {
		t.Default = t.Order[0]
	}
	if _, ok := t.Presets[t.Default]; !ok {
		return nil, fmt.Errorf("default %q: %w", t.Default, ErrUnknownPreset)
	}
	return &t, nil
}

// DefaultPresets decodes the embedded preset table
func DefaultPresets() (*PresetTable, error) {
	return LoadPresets([]byte(asset.ThreeBodyPresets))
}

// Get returns a preset by name
func (t *PresetTable) Get(name string) (Preset, error) {
	p, ok := t.Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%q: %w", name, ErrUnknownPreset)
	}
	return p, nil
}

// Names lists presets in menu order
func (t *PresetTable) Names() []string {
	return t.Order
}

// Next returns the preset after name in menu order, wrapping
func (t *PresetTable) Next(name string) string {
	if len(t.Order) == 0 {
		return name
	}
	for i, n := range t.Order {
		if n == name {
			return t.Order[(i+1)%len(t.Order)]
		}
	}
	return t.Order[0]
}

// States converts the preset to integrator input, copying every vector
func (p Preset) States() []physics.State {
	out := make([]physics.State, len(p.Bodies))
	for i, b := range p.Bodies {
		out[i] = physics.State{
			Mass:     b.Mass,
			Position: vec(b.Position),
			Velocity: vec(b.Velocity),
			Color:    b.Color,
		}
	}
	return out
}

func vec(c []float64) vmath.Vec3F {
	var v vmath.Vec3F
	if len(c) > 0 {
		v.X = c[0]
	}
	if len(c) > 1 {
		v.Y = c[1]
	}
	if len(c) > 2 {
		v.Z = c[2]
	}
	return v
}
