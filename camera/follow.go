package camera

import (
	"math"

	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

// Subject is the body a camera frames
type Subject struct {
	Position vmath.Vec3F
	Radius   float64
}

// FocusView is the framing for a subject: eye above and behind by a multiple of its radius
func FocusView(s Subject, multiple, elevation float64) (position, target vmath.Vec3F) {
	d := s.Radius * multiple
	return vmath.V3FAdd(s.Position, vmath.Vec3F{Y: d * elevation, Z: d}), s.Position
}

// FocusFollow pulls the target toward the focused body each tick
// While auto-zooming the eye is pulled toward FocusView as well
type FocusFollow struct {
	TargetSmoothing float64
	ZoomSmoothing   float64
	RadiusMultiple  float64
	Elevation       float64
	StopDistance    float64

	autoZoom bool
}

// NewFocusFollow returns a controller with the default smoothing constants
func NewFocusFollow() *FocusFollow {
	return &FocusFollow{
		TargetSmoothing: parameter.CameraTargetSmoothing,
		ZoomSmoothing:   parameter.CameraZoomSmoothing,
		RadiusMultiple:  parameter.CameraFocusRadiusMultiple,
		Elevation:       parameter.CameraFocusElevation,
		StopDistance:    parameter.CameraZoomStopDistance,
	}
}

// SetAutoZoom enables or cancels the eye pull
func (f *FocusFollow) SetAutoZoom(on bool) {
	f.autoZoom = on
}

// AutoZooming reports whether the eye is still being pulled
func (f *FocusFollow) AutoZooming() bool {
	return f.autoZoom
}

// Update applies one tick; a nil focus pulls the target back to the origin
func (f *FocusFollow) Update(c *Camera, focus *Subject) {
	if focus == nil {
		c.Target = vmath.V3FLerp(c.Target, vmath.Vec3F{}, f.TargetSmoothing)
		return
	}

	c.Target = vmath.V3FLerp(c.Target, focus.Position, f.TargetSmoothing)
	if !f.autoZoom {
		return
	}

	desired, _ := FocusView(*focus, f.RadiusMultiple, f.Elevation)
	c.Position = vmath.V3FLerp(c.Position, desired, f.ZoomSmoothing)
	if vmath.V3FDist(c.Position, desired) < f.StopDistance {
		f.autoZoom = false
	}
}

// ExtentFollow frames a set of moving bodies by their centroid and bounding box
type ExtentFollow struct {
	Smoothing   float64
	Padding     float64
	MinDistance float64
	Elevation   float64 // Radians above the centroid's horizontal plane
}

// NewExtentFollow returns a controller with the default framing constants
func NewExtentFollow() *ExtentFollow {
	return &ExtentFollow{
		Smoothing:   parameter.ExtentSmoothing,
		Padding:     parameter.ExtentPadding,
		MinDistance: parameter.ExtentMinDistance,
		Elevation:   vmath.DegToRad(parameter.ExtentElevationDegrees),
	}
}

// Desired computes the eye and target that fit box in the vertical field of view
// Only the planar (x, y) extent of the box is considered
func (e *ExtentFollow) Desired(fovDegrees float64, centroid vmath.Vec3F, box vmath.Box3) (position, target vmath.Vec3F) {
	size := box.Size()
	maxDim := max(size.X, size.Y)
	fov := vmath.DegToRad(fovDegrees)
	dist := math.Abs((maxDim / 2) / math.Tan(fov/2))
	offset := max(e.MinDistance, dist*e.Padding)

	sin, cos := math.Sincos(e.Elevation)
	position = vmath.Vec3F{
		X: centroid.X,
		Y: centroid.Y + offset*sin,
		Z: centroid.Z + offset*cos,
	}
	return position, centroid
}

// Update smooths both target and eye toward Desired
func (e *ExtentFollow) Update(c *Camera, centroid vmath.Vec3F, box vmath.Box3) {
	pos, target := e.Desired(c.FOV, centroid, box)
	c.Target = vmath.V3FLerp(c.Target, target, e.Smoothing)
	c.Position = vmath.V3FLerp(c.Position, pos, e.Smoothing)
}
