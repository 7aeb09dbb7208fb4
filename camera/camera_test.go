package camera

import (
	"math"
	"testing"

	"github.com/lixenwraith/orrery/vmath"
)

func near(a, b vmath.Vec3F, tol float64) bool {
	return vmath.V3FDist(a, b) <= tol
}

func TestFocusFollowTargetLerp(t *testing.T) {
	c := New(vmath.Vec3F{Z: 100}, vmath.Vec3F{}, 75)
	f := NewFocusFollow()
	s := &Subject{Position: vmath.Vec3F{X: 1000}, Radius: 20}

	f.Update(c, s)
	// One tick covers exactly 10% of the remaining distance
	if c.Target != (vmath.Vec3F{X: 100}) {
		t.Errorf("target = %+v, want (100, 0, 0)", c.Target)
	}
	if c.Position != (vmath.Vec3F{Z: 100}) {
		t.Error("eye moved without auto-zoom")
	}

	f.Update(c, nil)
	if c.Target != (vmath.Vec3F{X: 90}) {
		t.Errorf("target with no focus = %+v, want pulled toward origin", c.Target)
	}
}

func TestFocusFollowAutoZoomStops(t *testing.T) {
	c := New(vmath.Vec3F{Y: 2000, Z: 12000}, vmath.Vec3F{}, 75)
	f := NewFocusFollow()
	f.SetAutoZoom(true)
	s := &Subject{Position: vmath.Vec3F{X: 1000}, Radius: 20}
	desired, _ := FocusView(*s, 4, 0.5)

	if desired != (vmath.Vec3F{X: 1000, Y: 40, Z: 80}) {
		t.Fatalf("FocusView = %+v", desired)
	}

	prev := vmath.V3FDist(c.Position, desired)
	ticks := 0
	for f.AutoZooming() && ticks < 10000 {
		f.Update(c, s)
		d := vmath.V3FDist(c.Position, desired)
		if d >= prev {
			t.Fatalf("tick %d: distance %v did not shrink from %v", ticks, d, prev)
		}
		prev = d
		ticks++
	}
	if f.AutoZooming() {
		t.Fatal("auto-zoom never stopped")
	}
	if prev >= 10 {
		t.Errorf("auto-zoom stopped at distance %v", prev)
	}

	// Eye stays put once auto-zoom ends
	pos := c.Position
	f.Update(c, s)
	if c.Position != pos {
		t.Error("eye moved after auto-zoom stopped")
	}
}

func TestExtentFollowDesired(t *testing.T) {
	e := NewExtentFollow()
	box := vmath.BoundsOf(vmath.Vec3F{X: -10, Y: -2}, vmath.Vec3F{X: 10, Y: 2})
	centroid := vmath.Vec3F{X: 1, Y: 2, Z: 3}

	pos, target := e.Desired(90, centroid, box)
	if target != centroid {
		t.Errorf("target = %+v", target)
	}
	// maxDim 20, fov 90° ⇒ dist 10, offset 15
	want := vmath.Vec3F{X: 1, Y: 2 + 15*math.Sin(math.Pi/4), Z: 3 + 15*math.Cos(math.Pi/4)}
	if !near(pos, want, 1e-9) {
		t.Errorf("pos = %+v, want %+v", pos, want)
	}

	// Tiny extents fall back to the minimum distance
	tiny := vmath.BoundsOf(vmath.Vec3F{}, vmath.Vec3F{X: 0.1})
	pos, _ = e.Desired(75, vmath.Vec3F{}, tiny)
	if d := vmath.V3FMag(pos); math.Abs(d-5) > 1e-9 {
		t.Errorf("min distance = %v, want 5", d)
	}

	// Z extent is ignored
	deep := vmath.BoundsOf(vmath.Vec3F{Z: -1000}, vmath.Vec3F{Z: 1000})
	pos, _ = e.Desired(75, vmath.Vec3F{}, deep)
	if d := vmath.V3FMag(pos); math.Abs(d-5) > 1e-9 {
		t.Errorf("z extent affected distance: %v", d)
	}
}

func TestExtentFollowSmoothing(t *testing.T) {
	e := NewExtentFollow()
	c := New(vmath.Vec3F{}, vmath.Vec3F{}, 75)
	box := vmath.BoundsOf(vmath.Vec3F{X: -1}, vmath.Vec3F{X: 1})
	centroid := vmath.Vec3F{X: 20}

	want, _ := e.Desired(c.FOV, centroid, box)
	e.Update(c, centroid, box)
	if !near(c.Target, vmath.Vec3F{X: 1}, 1e-12) {
		t.Errorf("target = %+v, want 5%% of the way", c.Target)
	}
	if !near(c.Position, vmath.V3FScale(want, 0.05), 1e-12) {
		t.Errorf("position = %+v", c.Position)
	}
}

func TestOrbitPreservesDistance(t *testing.T) {
	c := New(vmath.Vec3F{Y: 2000, Z: 12000}, vmath.Vec3F{X: 5}, 75)
	d0 := c.Distance()
	c.Orbit(0.3, 0.2)
	if math.Abs(c.Distance()-d0) > 1e-6 {
		t.Errorf("distance %v changed from %v", c.Distance(), d0)
	}
	c.Orbit(0, 10)
	off := vmath.V3FSub(c.Position, c.Target)
	if pitch := math.Asin(off.Y / c.Distance()); pitch > maxPitch+1e-9 {
		t.Errorf("pitch %v exceeds clamp", pitch)
	}
}

func TestZoomClamp(t *testing.T) {
	c := New(vmath.Vec3F{Z: 1000}, vmath.Vec3F{}, 75)
	c.MinDistance, c.MaxDistance = 100, 40000

	c.Zoom(0.5)
	if math.Abs(c.Distance()-500) > 1e-9 {
		t.Errorf("distance = %v, want 500", c.Distance())
	}
	c.Zoom(0.01)
	if math.Abs(c.Distance()-100) > 1e-9 {
		t.Errorf("distance = %v, want clamp 100", c.Distance())
	}
	c.Zoom(1e6)
	if math.Abs(c.Distance()-40000) > 1e-6 {
		t.Errorf("distance = %v, want clamp 40000", c.Distance())
	}
}

func TestProjector(t *testing.T) {
	c := New(vmath.Vec3F{Z: 10}, vmath.Vec3F{}, 90)
	p := NewProjector(c, 2, 0.1)

	center, ok := p.Project(vmath.Vec3F{})
	if !ok || math.Abs(center.X) > 1e-12 || math.Abs(center.Y) > 1e-12 || center.Depth != 10 {
		t.Errorf("center = %+v, %v", center, ok)
	}

	// At depth 10 with a 90° fov the top edge is y = 10
	top, _ := p.Project(vmath.Vec3F{Y: 10})
	if math.Abs(top.Y-1) > 1e-12 {
		t.Errorf("top.Y = %v, want 1", top.Y)
	}
	// Horizontal extent is divided by the aspect
	right, _ := p.Project(vmath.Vec3F{X: 10})
	if math.Abs(right.X-0.5) > 1e-12 {
		t.Errorf("right.X = %v, want 0.5", right.X)
	}

	if _, ok := p.Project(vmath.Vec3F{Z: 20}); ok {
		t.Error("point behind the eye reported visible")
	}
	if s := p.ScaleAt(10, 10); math.Abs(s-1) > 1e-12 {
		t.Errorf("ScaleAt = %v", s)
	}
}

func TestBasisLookingDown(t *testing.T) {
	c := New(vmath.Vec3F{Y: 100}, vmath.Vec3F{}, 75)
	right, up, forward := c.Basis()
	for _, v := range []vmath.Vec3F{right, up, forward} {
		if !vmath.V3FIsFinite(v) || math.Abs(vmath.V3FMag(v)-1) > 1e-9 {
			t.Fatalf("degenerate basis: %+v %+v %+v", right, up, forward)
		}
	}
}
