package physics

import (
	"math"
	"testing"

	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

func figureEight() []State {
	return []State{
		{Mass: 1, Position: vmath.Vec3F{X: 0.970, Y: -0.243}, Velocity: vmath.Vec3F{X: 0.466, Y: 0.432}},
		{Mass: 1, Position: vmath.Vec3F{X: -0.970, Y: 0.243}, Velocity: vmath.Vec3F{X: 0.466, Y: 0.432}},
		{Mass: 1, Position: vmath.Vec3F{}, Velocity: vmath.Vec3F{X: -0.932, Y: -0.864}},
	}
}

func TestPairForceAntisymmetric(t *testing.T) {
	pairs := [][2]Body{
		{{Mass: 1, Position: vmath.Vec3F{X: 0.97, Y: -0.243}}, {Mass: 1, Position: vmath.Vec3F{X: -0.97, Y: 0.243}}},
		{{Mass: 1000}, {Mass: 10, Position: vmath.Vec3F{X: 8}}},
		{{Mass: 3.7, Position: vmath.Vec3F{X: 1.1, Y: 2.3, Z: -0.4}}, {Mass: 0.013, Position: vmath.Vec3F{X: -7.9, Y: 0.01, Z: 5.5}}},
	}
	for i, p := range pairs {
		fab, okAB := PairForce(&p[0], &p[1], 1, 0.01)
		fba, okBA := PairForce(&p[1], &p[0], 1, 0.01)
		if !okAB || !okBA {
			t.Fatalf("pair %d unexpectedly softened", i)
		}
		if fab != vmath.V3FNeg(fba) {
			t.Errorf("pair %d: F_ab = %+v, F_ba = %+v, not exact opposites", i, fab, fba)
		}
		// Force on a points toward b
		if vmath.V3FDot(fab, vmath.V3FSub(p[1].Position, p[0].Position)) <= 0 {
			t.Errorf("pair %d: force is not attractive", i)
		}
	}
}

func TestPairForceMagnitude(t *testing.T) {
	a := Body{Mass: 2}
	b := Body{Mass: 3, Position: vmath.Vec3F{Y: 2}}
	f, ok := PairForce(&a, &b, 1, 0.01)
	if !ok {
		t.Fatal("softened")
	}
	// G·2·3/4 = 1.5 along +y
	if f != (vmath.Vec3F{Y: 1.5}) {
		t.Errorf("F = %+v, want (0, 1.5, 0)", f)
	}
}

func TestSofteningSkipsClosePairs(t *testing.T) {
	bodies := NewBodies([]State{
		{Mass: 1},
		{Mass: 1, Position: vmath.Vec3F{X: 0.05}},
		{Mass: 1, Position: vmath.Vec3F{X: 10}},
	})
	if _, ok := PairForce(&bodies[0], &bodies[1], 1, 0.01); ok {
		t.Error("pair at distance 0.05 should be softened")
	}

	in := NewIntegrator()
	stats := in.Step(bodies, parameter.BaseTimeStep)
	if stats.Pairs != 6 {
		t.Errorf("Pairs = %d, want 6", stats.Pairs)
	}
	if stats.Softened != 2 {
		t.Errorf("Softened = %d, want 2", stats.Softened)
	}
	for i := range bodies {
		if !vmath.V3FIsFinite(bodies[i].Position) || !vmath.V3FIsFinite(bodies[i].Velocity) {
			t.Fatalf("body %d went non-finite", i)
		}
	}

	// Coincident bodies never divide by zero
	same := NewBodies([]State{{Mass: 1}, {Mass: 1}})
	in.Step(same, parameter.BaseTimeStep)
	if same[0].Position != (vmath.Vec3F{}) || same[0].Velocity != (vmath.Vec3F{}) {
		t.Errorf("coincident body moved: %+v", same[0])
	}
}

func TestFigureEightMomentumAndEnergy(t *testing.T) {
	bodies := NewBodies(figureEight())
	in := NewIntegrator()
	e0 := TotalEnergy(bodies, in.G, in.SofteningSq)

	for step := 0; step < 1000; step++ {
		in.Step(bodies, parameter.BaseTimeStep)
		if p := vmath.V3FMag(TotalMomentum(bodies)); p > 1e-9 {
			t.Fatalf("step %d: |momentum| = %g, want ~0", step, p)
		}
	}

	e1 := TotalEnergy(bodies, in.G, in.SofteningSq)
	if drift := math.Abs((e1 - e0) / e0); drift > 0.01 {
		t.Errorf("energy drift %.4f%% over 1000 steps", drift*100)
	}

	// Center of mass stays put with zero net momentum
	if c := CenterOfMass(bodies); vmath.V3FMag(c) > 1e-9 {
		t.Errorf("center of mass drifted to %+v", c)
	}
}

// stepByHand is a scalar transcription of one semi-implicit Euler step
func stepByHand(s []State, g, dt float64) (pos, vel [][3]float64) {
	n := len(s)
	p := make([][3]float64, n)
	v := make([][3]float64, n)
	for i := range s {
		p[i] = [3]float64{s[i].Position.X, s[i].Position.Y, s[i].Position.Z}
		v[i] = [3]float64{s[i].Velocity.X, s[i].Velocity.Y, s[i].Velocity.Z}
	}
	f := make([][3]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			dx, dy, dz := p[j][0]-p[i][0], p[j][1]-p[i][1], p[j][2]-p[i][2]
			dsq := dx*dx + dy*dy + dz*dz
			mag := g * (s[i].Mass * s[j].Mass) / dsq
			inv := 1 / math.Sqrt(dsq)
			f[i][0] += dx * inv * mag
			f[i][1] += dy * inv * mag
			f[i][2] += dz * inv * mag
		}
	}
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			v[i][k] += f[i][k] / s[i].Mass * dt
			p[i][k] += v[i][k] * dt
		}
	}
	return p, v
}

func TestConcreteOneStepScenario(t *testing.T) {
	states := figureEight()
	dt := parameter.BaseTimeStep * parameter.SpeedDefault

	run := func() []Body {
		b := NewBodies(states)
		NewIntegrator().Step(b, dt)
		return b
	}
	first, second := run(), run()

	wantPos, wantVel := stepByHand(states, parameter.GravitationalConstant, dt)
	for i := range first {
		// Bit-for-bit reproducible
		if first[i].Position != second[i].Position || first[i].Velocity != second[i].Velocity {
			t.Errorf("body %d not reproducible: %+v vs %+v", i, first[i], second[i])
		}

		got := [3]float64{first[i].Position.X, first[i].Position.Y, first[i].Position.Z}
		gotV := [3]float64{first[i].Velocity.X, first[i].Velocity.Y, first[i].Velocity.Z}
		for k := 0; k < 3; k++ {
			if math.Abs(got[k]-wantPos[i][k]) > 1e-12 {
				t.Errorf("body %d pos[%d] = %.17g, want %.17g", i, k, got[k], wantPos[i][k])
			}
			if math.Abs(gotV[k]-wantVel[i][k]) > 1e-12 {
				t.Errorf("body %d vel[%d] = %.17g, want %.17g", i, k, gotV[k], wantVel[i][k])
			}
		}

		// Delta is v·dt plus a second-order force term, far under 0.01 for this configuration
		delta := vmath.V3FDist(first[i].Position, states[i].Position)
		if delta == 0 || delta > 0.01 {
			t.Errorf("body %d moved %g", i, delta)
		}
	}
	if first[2].Position.Z != 0 || first[2].Velocity.Z != 0 {
		t.Error("planar configuration left the plane")
	}
}

func TestSnapshotIndependentOfOrder(t *testing.T) {
	states := figureEight()
	fwd := NewBodies(states)
	rev := NewBodies([]State{states[2], states[1], states[0]})

	NewIntegrator().Step(fwd, parameter.BaseTimeStep)
	NewIntegrator().Step(rev, parameter.BaseTimeStep)

	for i := range fwd {
		j := len(fwd) - 1 - i
		if d := vmath.V3FDist(fwd[i].Position, rev[j].Position); d > 1e-15 {
			t.Errorf("body %d depends on update order: distance %g", i, d)
		}
	}
}

func TestResetIdempotent(t *testing.T) {
	states := figureEight()
	a := NewBodies(states)
	NewIntegrator().Step(a, parameter.BaseTimeStep)

	b := NewBodies(states)
	c := NewBodies(states)
	for i := range b {
		if b[i] != c[i] {
			t.Errorf("body %d differs across identical resets", i)
		}
		if b[i].Position != states[i].Position || b[i].Velocity != states[i].Velocity {
			t.Errorf("body %d carried state from a previous run", i)
		}
	}
}

func TestRadiusForMass(t *testing.T) {
	if r := RadiusForMass(1); r != 0.2 {
		t.Errorf("r(1) = %v, want 0.2", r)
	}
	if r := RadiusForMass(1000); math.Abs(r-2) > 1e-12 {
		t.Errorf("r(1000) = %v, want 2", r)
	}
	if r := RadiusForMass(1e-6); r != parameter.BodyRadiusFloor {
		t.Errorf("r(1e-6) = %v, want floor", r)
	}
}

func TestDiagnostics(t *testing.T) {
	bodies := NewBodies([]State{
		{Mass: 1000},
		{Mass: 10, Position: vmath.Vec3F{X: 8}, Velocity: vmath.Vec3F{Y: 3}},
		{Mass: 1, Position: vmath.Vec3F{X: -12}, Velocity: vmath.Vec3F{Y: -2}},
	})

	if p := TotalMomentum(bodies); p != (vmath.Vec3F{Y: 28}) {
		t.Errorf("momentum = %+v, want (0, 28, 0)", p)
	}
	c := CenterOfMass(bodies)
	if want := (80.0 - 12.0) / 1011.0; math.Abs(c.X-want) > 1e-15 {
		t.Errorf("center of mass x = %v, want %v", c.X, want)
	}
	box := Bounds(bodies)
	if box.Min.X != -12 || box.Max.X != 8 {
		t.Errorf("bounds = %+v", box)
	}
	if ke := KineticEnergy(bodies); ke != 0.5*10*9+0.5*1*4 {
		t.Errorf("kinetic = %v", ke)
	}
	if CenterOfMass(nil) != (vmath.Vec3F{}) {
		t.Error("empty center of mass not origin")
	}
	if len(Positions(bodies)) != 3 {
		t.Error("Positions length")
	}
}
