// Package camera holds the view state and the smoothing controllers that frame moving content
package camera

import (
	"math"

	"github.com/lixenwraith/orrery/vmath"
)

// maxPitch keeps manual orbiting off the poles where the up vector degenerates
const maxPitch = math.Pi/2 - 0.01

// WorldUp is the camera up reference
var WorldUp = vmath.Vec3F{Y: 1}

// Camera is a perspective look-at camera
// Distance limits apply to manual Zoom only; zero disables a limit
type Camera struct {
	Position vmath.Vec3F
	Target   vmath.Vec3F
	FOV      float64 // Vertical, degrees

	MinDistance float64
	MaxDistance float64
}

// New creates a camera at position looking at target
func New(position, target vmath.Vec3F, fov float64) *Camera {
	return &Camera{
		Position: position,
		Target:   target,
		FOV:      fov,
	}
}

// Distance is the eye-to-target distance
func (c *Camera) Distance() float64 {
	return vmath.V3FDist(c.Position, c.Target)
}

// Orbit rotates the eye around the target by yaw (about world up) and pitch (toward the pole)
func (c *Camera) Orbit(yaw, pitch float64) {
	off := vmath.V3FSub(c.Position, c.Target)
	r := vmath.V3FMag(off)
	if r == 0 {
		return
	}
	curYaw := math.Atan2(off.X, off.Z)
	curPitch := math.Asin(vmath.Clamp(off.Y/r, -1, 1))

	curYaw += yaw
	curPitch = vmath.Clamp(curPitch+pitch, -maxPitch, maxPitch)

	sinP, cosP := math.Sincos(curPitch)
	sinY, cosY := math.Sincos(curYaw)
	c.Position = vmath.V3FAdd(c.Target, vmath.Vec3F{
		X: r * cosP * sinY,
		Y: r * sinP,
		Z: r * cosP * cosY,
	})
}

// Zoom scales the eye-to-target distance by factor within the distance limits
func (c *Camera) Zoom(factor float64) {
	off := vmath.V3FSub(c.Position, c.Target)
	r := vmath.V3FMag(off)
	if r == 0 || !(factor > 0) {
		return
	}
	nr := r * factor
	if c.MinDistance > 0 {
		nr = max(nr, c.MinDistance)
	}
	if c.MaxDistance > 0 {
		nr = min(nr, c.MaxDistance)
	}
	c.Position = vmath.V3FAdd(c.Target, vmath.V3FScale(off, nr/r))
}

// Basis returns the right, up, and forward unit vectors of the view
func (c *Camera) Basis() (right, up, forward vmath.Vec3F) {
	forward = vmath.V3FNormalize(vmath.V3FSub(c.Target, c.Position))
	if forward == (vmath.Vec3F{}) {
		forward = vmath.Vec3F{Z: -1}
	}
	right = vmath.V3FCross(forward, WorldUp)
	if vmath.V3FMagSq(right) < 1e-12 {
		// Looking straight along the up axis
		right = vmath.V3FCross(forward, vmath.Vec3F{Z: -1})
	}
	right = vmath.V3FNormalize(right)
	up = vmath.V3FCross(right, forward)
	return right, up, forward
}
