package sim

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/lixenwraith/orrery/catalog"
	"github.com/lixenwraith/orrery/observability"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/tour"
	"github.com/lixenwraith/orrery/vmath"
)

const frame = 16 * time.Millisecond

func newTestOrrery(t *testing.T, opts OrreryOptions) *Orrery {
	t.Helper()
	cat, err := catalog.DefaultSolarSystem()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	o, err := NewOrrery(cat, opts)
	if err != nil {
		t.Fatalf("NewOrrery: %v", err)
	}
	return o
}

func TestOrreryInitialFrame(t *testing.T) {
	o := newTestOrrery(t, OrreryOptions{Seed: 7})
	f := o.Tick(context.Background(), frame)

	// Sun, nine planets, five moons
	if len(f.Bodies) != 15 {
		t.Fatalf("bodies = %d, want 15", len(f.Bodies))
	}
	if f.Bodies[0].Kind != KindStar || f.Bodies[0].Radius != 60 {
		t.Errorf("sun view = %+v", f.Bodies[0])
	}
	if len(f.Orbits) != 9 || len(f.Orbits[0]) != parameter.OrbitPathSegments+1 {
		t.Errorf("orbit paths = %d", len(f.Orbits))
	}
	if len(f.Asteroids) != parameter.AsteroidCount {
		t.Errorf("asteroids = %d", len(f.Asteroids))
	}
	if len(f.Rings) != 1 || len(f.Rings[0].Points) != parameter.RingBands*parameter.RingSegments {
		t.Errorf("rings = %+v", len(f.Rings))
	}
	if f.Focus != NoFocus || f.Info != nil {
		t.Errorf("unexpected focus %d", f.Focus)
	}
	if f.Camera.Position != (vmath.Vec3F{Y: 2000, Z: 12000}) {
		t.Errorf("camera start = %+v", f.Camera.Position)
	}
	if f.HUD.Tour != tour.StateIdle || !f.HUD.Controls {
		t.Errorf("hud = %+v", f.HUD)
	}
	if o.TargetCount() != 10 || o.TargetName(0) != "Sun" || o.TargetName(3) != "Earth" {
		t.Errorf("targets: %d %q %q", o.TargetCount(), o.TargetName(0), o.TargetName(3))
	}
}

func TestOrrerySeedDeterminism(t *testing.T) {
	a := newTestOrrery(t, OrreryOptions{Seed: 42})
	b := newTestOrrery(t, OrreryOptions{Seed: 42})
	c := newTestOrrery(t, OrreryOptions{Seed: 43})
	for i := 0; i < 10; i++ {
		a.Tick(context.Background(), frame)
		b.Tick(context.Background(), frame)
		c.Tick(context.Background(), frame)
	}
	if a.Planet(2).Phase != b.Planet(2).Phase {
		t.Error("same seed diverged")
	}
	if a.Planet(2).Phase == c.Planet(2).Phase {
		t.Error("different seeds produced the same phase")
	}
}

func TestOrreryTimeScaleDoubling(t *testing.T) {
	o := newTestOrrery(t, OrreryOptions{Seed: 1})
	ctx := context.Background()
	earth := o.Planet(2)

	before := earth.Phase
	o.Tick(ctx, frame)
	step1 := earth.Phase - before

	phase := earth.Phase
	if err := o.Apply(ctx, Command{Type: CmdSetTimeScale, Payload: &TimeScalePayload{Scale: 2}}); err != nil {
		t.Fatal(err)
	}
	if earth.Phase != phase {
		t.Fatal("time scale change moved the phase")
	}
	o.Tick(ctx, frame)
	step2 := earth.Phase - phase

	if earth.AngularRate != 2*kRate(earth.Elements.PeriodDays) {
		t.Errorf("rate = %v, want exactly double", earth.AngularRate)
	}
	if math.Abs(step2-2*step1) > 1e-12 {
		t.Errorf("increment %v, want %v", step2, 2*step1)
	}
	if o.Slider() != TimeScaleToSlider(2) {
		t.Errorf("slider not synced: %v", o.Slider())
	}
}

func kRate(periodDays float64) float64 {
	return vmath.TwoPi / periodDays
}

func TestOrrerySliderAndEarthMinute(t *testing.T) {
	o := newTestOrrery(t, OrreryOptions{})
	ctx := context.Background()

	if err := o.Apply(ctx, Command{Type: CmdStepTimeScale, Payload: &SliderPayload{Delta: 5000}}); err != nil {
		t.Fatal(err)
	}
	if o.Slider() != parameter.TimeSliderMax || math.Abs(o.TimeScale()-10000) > 1e-6 {
		t.Errorf("slider %v scale %v", o.Slider(), o.TimeScale())
	}

	if err := o.Apply(ctx, Command{Type: CmdEarthMinute}); err != nil {
		t.Fatal(err)
	}
	if o.TimeScale() != 365.25/3600 {
		t.Errorf("earth minute scale = %v", o.TimeScale())
	}

	if err := o.Apply(ctx, Command{Type: CmdSetTimeScale, Payload: &TimeScalePayload{Scale: -1}}); err == nil {
		t.Error("negative time scale accepted")
	}
}

func TestOrreryMoonFollowsTiltedParent(t *testing.T) {
	o := newTestOrrery(t, OrreryOptions{Seed: 3})
	o.Tick(context.Background(), frame)

	sys := o.System()
	earthNode, ok := sys.Index("Earth")
	if !ok {
		t.Fatal("no Earth node")
	}
	moonNode, _ := sys.Index("Moon")
	earth := sys.Nodes[earthNode]
	moon := sys.Nodes[moonNode]

	want := vmath.V3FAdd(earth.World, vmath.V3FRotateX(moon.Local, earth.Tilt))
	if vmath.V3FDist(moon.World, want) > 1e-9 {
		t.Errorf("moon world = %+v, want %+v", moon.World, want)
	}
	if d := vmath.V3FDist(moon.World, earth.World); math.Abs(d-38.44) > 1e-9 {
		t.Errorf("moon distance = %v, want 38.44", d)
	}
}

func TestOrreryFocusAutoZoom(t *testing.T) {
	o := newTestOrrery(t, OrreryOptions{TimeScale: 0.01})
	ctx := context.Background()

	if err := o.Apply(ctx, Command{Type: CmdSetFocus, Payload: &FocusPayload{Target: 3, AutoZoom: true}}); err != nil {
		t.Fatal(err)
	}
	if !o.AutoZooming() {
		t.Fatal("auto-zoom not started")
	}
	var f *Frame
	for i := 0; i < 2000 && o.AutoZooming(); i++ {
		f = o.Tick(ctx, frame)
	}
	if o.AutoZooming() {
		t.Fatal("auto-zoom never finished")
	}
	earth := f.Bodies[3]
	if d := vmath.V3FDist(f.Camera.Position, earth.Position); d > 200 {
		t.Errorf("camera %v from Earth after zoom", d)
	}
	if f.Info == nil || f.Info.Title != "Earth (地球)" {
		t.Errorf("info = %+v", f.Info)
	}

	if err := o.Apply(ctx, Command{Type: CmdSetFocus, Payload: &FocusPayload{Target: 99}}); !errors.Is(err, ErrBadTarget) {
		t.Errorf("bad target error = %v", err)
	}
	if err := o.Apply(ctx, Command{Type: CmdSetFocus, Payload: &FocusPayload{Target: NoFocus, AutoZoom: true}}); err != nil {
		t.Fatal(err)
	}
	if o.Focus() != NoFocus || o.AutoZooming() {
		t.Error("clearing focus left state behind")
	}
}

func TestOrreryTourLifecycle(t *testing.T) {
	var arrived []string
	o := newTestOrrery(t, OrreryOptions{TimeScale: 0.01, OnArrive: func(s string) { arrived = append(arrived, s) }})
	ctx := context.Background()

	o.Submit(Command{Type: CmdToggleTour})
	f := o.Tick(ctx, frame)
	if !o.Tour().Active() || o.Focus() != 0 || f.HUD.Controls {
		t.Fatalf("tour not started: state=%s focus=%d controls=%v", o.Tour().State(), o.Focus(), f.HUD.Controls)
	}
	if f.HUD.TourStop != "Sun" {
		t.Errorf("tour stop = %q", f.HUD.TourStop)
	}

	for i := 0; i < 500 && o.Tour().State() != tour.StateWaiting; i++ {
		o.Tick(ctx, frame)
	}
	if o.Tour().State() != tour.StateWaiting {
		t.Fatalf("never arrived, state %s", o.Tour().State())
	}
	if len(arrived) != 1 || arrived[0] != "Sun" {
		t.Errorf("arrivals = %v", arrived)
	}
	if !o.Tour().AdvancePending() {
		t.Fatal("no advance scheduled")
	}

	// Central body holds for TourWaitCentral
	ticks := int(parameter.TourWaitCentral/frame) + 1
	for i := 0; i < ticks; i++ {
		o.Tick(ctx, frame)
	}
	if o.Tour().Index() != 1 || o.Focus() != 1 || o.Tour().State() != tour.StateMoving {
		t.Errorf("after wait: index=%d focus=%d state=%s", o.Tour().Index(), o.Focus(), o.Tour().State())
	}

	// Stop clears focus and re-enables controls
	if err := o.Apply(ctx, Command{Type: CmdStopTour}); err != nil {
		t.Fatal(err)
	}
	if o.Tour().Active() || o.Focus() != NoFocus || !o.Tour().ControlsEnabled() || o.Tour().AdvancePending() {
		t.Error("stop left tour state behind")
	}
}

func TestOrreryUserInputEndsTour(t *testing.T) {
	o := newTestOrrery(t, OrreryOptions{})
	ctx := context.Background()

	_ = o.Apply(ctx, Command{Type: CmdStartTour})
	if err := o.Apply(ctx, Command{Type: CmdSetFocus, Payload: &FocusPayload{Target: 5, AutoZoom: true}}); err != nil {
		t.Fatal(err)
	}
	if o.Tour().Active() || o.Focus() != 5 {
		t.Errorf("explicit focus: active=%v focus=%d", o.Tour().Active(), o.Focus())
	}

	_ = o.Apply(ctx, Command{Type: CmdStartTour})
	dist := o.Camera().Distance()
	if err := o.Apply(ctx, Command{Type: CmdZoomCamera, Payload: &ZoomPayload{Factor: 2}}); err != nil {
		t.Fatal(err)
	}
	if o.Tour().Active() {
		t.Error("manual zoom did not end the tour")
	}
	if o.Camera().Distance() <= dist {
		t.Error("zoom not applied")
	}

	if err := o.Apply(ctx, Command{Type: CmdOrbitCamera, Payload: &OrbitPayload{Yaw: 0.1}}); err != nil {
		t.Fatal(err)
	}
}

func TestOrreryPause(t *testing.T) {
	o := newTestOrrery(t, OrreryOptions{})
	ctx := context.Background()
	o.Submit(Command{Type: CmdTogglePause})
	o.Tick(ctx, frame)
	phase := o.Planet(0).Phase
	o.Tick(ctx, frame)
	if o.Planet(0).Phase != phase || !o.Paused() {
		t.Error("paused simulation advanced")
	}
}

func TestOrreryRejectsCommands(t *testing.T) {
	o := newTestOrrery(t, OrreryOptions{})
	ctx := context.Background()
	if err := o.Apply(ctx, Command{Type: CmdRestart}); !errors.Is(err, ErrUnsupportedCommand) {
		t.Errorf("restart error = %v", err)
	}
	if err := o.Apply(ctx, Command{Type: CmdSetFocus, Payload: FocusPayload{}}); !errors.Is(err, ErrBadPayload) {
		t.Errorf("value payload error = %v", err)
	}
}

func TestOrreryMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewCollector(reg)
	if err != nil {
		t.Fatal(err)
	}
	o := newTestOrrery(t, OrreryOptions{Metrics: metrics})
	ctx := context.Background()

	o.Submit(Command{Type: CmdStartTour})
	o.Submit(Command{Type: CmdStopTour})
	o.Tick(ctx, frame)
	o.Tick(ctx, frame)

	if got := testutil.ToFloat64(metrics.Ticks.WithLabelValues(observability.SimOrrery)); got != 2 {
		t.Errorf("ticks = %v", got)
	}
	if got := testutil.ToFloat64(metrics.Commands.WithLabelValues("StartTour")); got != 1 {
		t.Errorf("StartTour commands = %v", got)
	}
	if got := testutil.ToFloat64(metrics.TourTransitions.WithLabelValues(tour.StateIdle, tour.StateMoving)); got != 1 {
		t.Errorf("Idle>Moving = %v", got)
	}
	if got := testutil.ToFloat64(metrics.Bodies); got != 15 {
		t.Errorf("bodies gauge = %v", got)
	}
}
