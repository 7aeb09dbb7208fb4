package camera

import (
	"math"

	"github.com/lixenwraith/orrery/vmath"
)

// Projection is a point in normalized device coordinates
// X and Y are in [-1, 1] when on screen, Y up; Depth is the view-space distance along forward
type Projection struct {
	X, Y  float64
	Depth float64
}

// Projector caches the view basis of one frame for repeated projections
type Projector struct {
	eye                vmath.Vec3F
	right, up, forward vmath.Vec3F
	focal              float64
	aspect             float64
	near               float64
}

// NewProjector snapshots cam for a viewport of the given width/height aspect ratio
func NewProjector(cam *Camera, aspect, near float64) Projector {
	right, up, forward := cam.Basis()
	if !(aspect > 0) {
		aspect = 1
	}
	return Projector{
		eye:     cam.Position,
		right:   right,
		up:      up,
		forward: forward,
		focal:   1 / math.Tan(vmath.DegToRad(cam.FOV)/2),
		aspect:  aspect,
		near:    near,
	}
}

// Project maps a world point; ok is false behind the near plane
func (p Projector) Project(world vmath.Vec3F) (Projection, bool) {
	rel := vmath.V3FSub(world, p.eye)
	depth := vmath.V3FDot(rel, p.forward)
	if depth <= p.near {
		return Projection{Depth: depth}, false
	}
	return Projection{
		X:     vmath.V3FDot(rel, p.right) * p.focal / (p.aspect * depth),
		Y:     vmath.V3FDot(rel, p.up) * p.focal / depth,
		Depth: depth,
	}, true
}

// ScaleAt converts a world-space length at depth into NDC-y units
func (p Projector) ScaleAt(length, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return length * p.focal / depth
}

// Aspect returns the viewport aspect ratio
func (p Projector) Aspect() float64 {
	return p.aspect
}

// ToView expresses a world direction in view space; Z points toward the eye
func (p Projector) ToView(dir vmath.Vec3F) vmath.Vec3F {
	return vmath.Vec3F{
		X: vmath.V3FDot(dir, p.right),
		Y: vmath.V3FDot(dir, p.up),
		Z: -vmath.V3FDot(dir, p.forward),
	}
}
