package sim

import (
	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/catalog"
	"github.com/lixenwraith/orrery/vmath"
)

// NoFocus is the focus index when nothing is selected
const NoFocus = -1

// BodyKind classifies a rendered body
type BodyKind int

const (
	KindStar BodyKind = iota
	KindPlanet
	KindMoon
	KindMass
)

// BodyView is one body as the renderer sees it
type BodyView struct {
	Name     string
	Label    string
	Kind     BodyKind
	Target   int // Focus target index, NoFocus when not selectable
	Position vmath.Vec3F
	Radius   float64
	Color    uint32
	Texture  string
	Spin     float64 // Radians about the body's own axis
}

// RingView is a ring annulus already placed in world space
type RingView struct {
	Center vmath.Vec3F
	Points []vmath.Vec3F
	Color  uint32
}

// HUD carries the status line data; unused fields stay zero
type HUD struct {
	Title     string
	TimeScale float64
	Slider    float64
	Speed     float64
	Paused    bool
	Tour      string
	TourStop  string
	Controls  bool
	Preset    string
	Momentum  float64
	Energy    float64
	Softened  int
}

// Frame is the per-tick snapshot handed to the renderer
// Slices are owned by the simulation and valid until the next Tick
type Frame struct {
	Tick      uint64
	Camera    camera.Camera
	Bodies    []BodyView
	Orbits    [][]vmath.Vec3F
	Asteroids []vmath.Vec3F
	Rings     []RingView
	Focus     int
	Info      *catalog.Description
	Forms     []BodyForm
	HUD       HUD
}
