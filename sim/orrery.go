package sim

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/catalog"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/kepler"
	"github.com/lixenwraith/orrery/logging"
	"github.com/lixenwraith/orrery/observability"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/tour"
	"github.com/lixenwraith/orrery/vmath"
)

// OrreryOptions configures the solar-system controller; zero values take defaults
type OrreryOptions struct {
	TimeScale float64
	Seed      uint64
	Logger    logging.Logger
	Metrics   *observability.Collector
	Tracer    trace.Tracer
	OnArrive  func(stop string) // Tour reached a stop and is holding
}

type moonState struct {
	sat    *kepler.Satellite
	node   int
	planet int
	radius float64
	color  uint32
}

type ringState struct {
	planet int
	local  []vmath.Vec3F
	color  uint32
}

// Orrery is the solar-system controller
// All methods except Submit run on the tick goroutine
type Orrery struct {
	cat *catalog.SolarSystem

	system      kepler.System
	sunNode     int
	sunSpin     kepler.Spin
	planets     []*kepler.Body
	planetNodes []int
	moons       []moonState
	rings       []ringState
	belt        []vmath.Vec3F
	orbits      [][]vmath.Vec3F

	cam    *camera.Camera
	follow *camera.FocusFollow
	tour   *tour.Tour
	sched  *engine.Scheduler
	queue  *CommandQueue

	timeScale float64
	slider    float64
	focus     int
	paused    bool
	ticks     uint64

	views     []BodyView
	ringViews []RingView

	logger   logging.Logger
	metrics  *observability.Collector
	tracer   trace.Tracer
	onArrive func(string)
}

// NewOrrery builds the scene from a sanitized catalog
// Initial phases and the asteroid belt are drawn from opts.Seed
func NewOrrery(cat *catalog.SolarSystem, opts OrreryOptions) (*Orrery, error) {
	if cat == nil || len(cat.Planets) == 0 {
		return nil, catalog.ErrEmptyCatalog
	}
	if opts.Logger == nil {
		opts.Logger = logging.Noop()
	}
	if opts.Tracer == nil {
		opts.Tracer = observability.Tracer()
	}
	ts := opts.TimeScale
	if !(ts > 0) || !vmath.IsFinite(ts) {
		ts = 1
	}

	o := &Orrery{
		cat:       cat,
		sched:     engine.NewScheduler(),
		queue:     NewCommandQueue(),
		follow:    camera.NewFocusFollow(),
		timeScale: ts,
		slider:    TimeScaleToSlider(ts),
		focus:     NoFocus,
		logger:    opts.Logger.With(logging.String("sim", observability.SimOrrery)),
		metrics:   opts.Metrics,
		tracer:    opts.Tracer,
		onArrive:  opts.OnArrive,
	}

	o.cam = camera.New(
		vmath.Vec3F{X: parameter.CameraStartX, Y: parameter.CameraStartY, Z: parameter.CameraStartZ},
		vmath.Vec3F{},
		parameter.CameraFOVDegrees,
	)
	o.cam.MinDistance = parameter.CameraMinDistance
	o.cam.MaxDistance = parameter.CameraMaxDistance

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9E3779B97F4A7C15))
	if err := o.build(rng); err != nil {
		return nil, err
	}

	stops := make([]tour.Stop, 0, 1+len(o.planets))
	stops = append(stops, tour.Stop{Name: cat.Sun.Name, Central: true})
	for _, p := range o.planets {
		stops = append(stops, tour.Stop{Name: p.Name})
	}
	hooks := tour.Hooks{
		OnFocus: func(i int) {
			o.focus = i
			o.follow.SetAutoZoom(false)
		},
		OnTransition: func(from, to string) {
			o.metrics.IncTourTransition(from, to)
			if to == tour.StateWaiting && o.onArrive != nil {
				if stop, ok := o.tour.CurrentStop(); ok {
					o.onArrive(stop.Name)
				}
			}
		},
	}
	tr, err := tour.New(o.sched, o.cam, stops, o.subject, hooks, o.logger)
	if err != nil {
		return nil, err
	}
	o.tour = tr

	o.compose()
	o.metrics.SetBodies(len(o.views))
	o.metrics.SetTimeScale(ts)
	o.logger.Info(context.Background(), "solar system ready",
		logging.Int("planets", len(o.planets)),
		logging.Int("moons", len(o.moons)),
		logging.Float64("time_scale", ts))
	return o, nil
}

func (o *Orrery) build(rng *rand.Rand) error {
	sun := o.cat.Sun
	o.sunNode, _ = o.system.Add(sun.Name, kepler.NoParent, 0)
	o.sunSpin = kepler.Spin{PeriodHours: sun.RotationHours}
	o.sunSpin.SetTimeScale(o.timeScale)
	o.views = append(o.views, BodyView{
		Name:    sun.Name,
		Label:   sun.LocalName,
		Kind:    KindStar,
		Target:  0,
		Radius:  sun.SceneRadius(),
		Color:   sun.Color,
		Texture: sun.Texture,
	})

	for i, p := range o.cat.Planets {
		tilt := vmath.DegToRad(p.AxialTilt)
		body, err := kepler.NewBody(kepler.BodyConfig{
			Name:                p.Name,
			Elements:            p.Elements(),
			Phase:               rng.Float64() * vmath.TwoPi,
			RotationPeriodHours: p.RotationHours,
			AxialTilt:           tilt,
		}, o.timeScale, parameter.OrbitPathSegments)
		if err != nil {
			return fmt.Errorf("planet %s: %w", p.Name, err)
		}
		node, err := o.system.Add(p.Name, o.sunNode, tilt)
		if err != nil {
			return err
		}
		o.planets = append(o.planets, body)
		o.planetNodes = append(o.planetNodes, node)
		o.orbits = append(o.orbits, body.Path())
		o.views = append(o.views, BodyView{
			Name:    p.Name,
			Label:   p.LocalName,
			Kind:    KindPlanet,
			Target:  1 + i,
			Radius:  p.SceneRadius(),
			Color:   p.Color,
			Texture: p.Texture,
		})

		for _, m := range p.Moons {
			sat, err := kepler.NewSatellite(m.Name, m.SceneDistance(), m.PeriodDays, rng.Float64()*vmath.TwoPi, o.timeScale)
			if err != nil {
				return err
			}
			mnode, err := o.system.Add(m.Name, node, 0)
			if err != nil {
				return err
			}
			o.moons = append(o.moons, moonState{sat: sat, node: mnode, planet: i, radius: m.SceneRadius(), color: m.Color})
		}

		if p.Rings != nil {
			local := p.Rings.Scene().Points(parameter.RingBands, parameter.RingSegments)
			for j := range local {
				local[j] = vmath.V3FRotateX(local[j], tilt)
			}
			o.rings = append(o.rings, ringState{planet: i, local: local, color: p.Rings.Color})
		}
	}

	for _, m := range o.moons {
		o.views = append(o.views, BodyView{
			Name:   m.sat.Name,
			Kind:   KindMoon,
			Target: NoFocus,
			Radius: m.radius,
			Color:  m.color,
		})
	}
	o.ringViews = make([]RingView, len(o.rings))
	for i, r := range o.rings {
		o.ringViews[i] = RingView{Points: make([]vmath.Vec3F, len(r.local)), Color: r.color}
	}

	o.belt = kepler.AsteroidBelt(rng, parameter.AsteroidCount,
		parameter.AsteroidInnerAU*parameter.AUScale,
		parameter.AsteroidOuterAU*parameter.AUScale,
		parameter.AsteroidHeight)
	return nil
}

// Submit queues a command for the next tick; safe from any goroutine
func (o *Orrery) Submit(cmd Command) {
	o.queue.Push(cmd)
}

// Tick runs one frame: commands, scheduler, kinematics, transforms, camera or tour
func (o *Orrery) Tick(ctx context.Context, dt time.Duration) *Frame {
	start := time.Now()

	for _, cmd := range o.queue.Consume() {
		_ = o.Apply(ctx, cmd)
	}

	if !o.paused {
		o.sched.Advance(dt)
		o.sunSpin.Advance()
		for _, p := range o.planets {
			p.Advance()
		}
		for i := range o.moons {
			o.moons[i].sat.Advance()
		}
	}

	o.compose()

	if o.tour.Active() {
		o.tour.Update(dt)
	} else {
		o.follow.Update(o.cam, o.focusSubject())
	}

	o.ticks++
	f := o.snapshot()
	o.metrics.ObserveTick(observability.SimOrrery, time.Since(start))
	return f
}

// Apply executes a command immediately on the tick goroutine
func (o *Orrery) Apply(ctx context.Context, cmd Command) error {
	ctx, span := o.tracer.Start(ctx, "sim.command",
		trace.WithAttributes(attribute.String("command", cmd.Type.String())))
	defer span.End()

	if err := o.apply(ctx, cmd); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.logger.Warn(ctx, "command rejected", logging.String("command", cmd.Type.String()), logging.Err(err))
		return err
	}
	o.metrics.IncCommand(cmd.Type.String())
	return nil
}

func (o *Orrery) apply(ctx context.Context, cmd Command) error {
	switch cmd.Type {
	case CmdSetTimeScale:
		p, err := payload[TimeScalePayload](cmd)
		if err != nil {
			return err
		}
		if !(p.Scale > 0) || !vmath.IsFinite(p.Scale) {
			return fmt.Errorf("time scale %v: must be positive", p.Scale)
		}
		o.setTimeScale(p.Scale)

	case CmdStepTimeScale:
		p, err := payload[SliderPayload](cmd)
		if err != nil {
			return err
		}
		o.slider = vmath.Clamp(o.slider+p.Delta, 0, parameter.TimeSliderMax)
		o.setTimeScale(SliderToTimeScale(o.slider))

	case CmdEarthMinute:
		period := 365.25
		if earth, ok := o.cat.Planet("Earth"); ok {
			period = earth.PeriodDays
		}
		o.setTimeScale(EarthMinuteScale(period))

	case CmdSetFocus:
		p, err := payload[FocusPayload](cmd)
		if err != nil {
			return err
		}
		return o.SetFocus(p.Target, p.AutoZoom)

	case CmdStartTour:
		o.startTour()

	case CmdStopTour:
		o.stopTour()

	case CmdToggleTour:
		if o.tour.Active() {
			o.stopTour()
		} else {
			o.startTour()
		}

	case CmdOrbitCamera:
		p, err := payload[OrbitPayload](cmd)
		if err != nil {
			return err
		}
		o.takeManualControl(ctx)
		o.cam.Orbit(p.Yaw, p.Pitch)

	case CmdZoomCamera:
		p, err := payload[ZoomPayload](cmd)
		if err != nil {
			return err
		}
		o.takeManualControl(ctx)
		o.cam.Zoom(p.Factor)

	case CmdTogglePause:
		o.paused = !o.paused

	default:
		return fmt.Errorf("%s: %w", cmd.Type, ErrUnsupportedCommand)
	}
	return nil
}

// SetFocus selects a target (or NoFocus), ending any tour
// AutoZoom pulls the eye toward the target as well
func (o *Orrery) SetFocus(target int, autoZoom bool) error {
	if target != NoFocus && (target < 0 || target >= o.TargetCount()) {
		return fmt.Errorf("%w: %d", ErrBadTarget, target)
	}
	if o.tour.Active() {
		o.tour.Stop()
	}
	o.focus = target
	o.follow.SetAutoZoom(autoZoom && target != NoFocus)
	return nil
}

func (o *Orrery) setTimeScale(ts float64) {
	o.timeScale = ts
	o.slider = TimeScaleToSlider(ts)
	o.sunSpin.SetTimeScale(ts)
	for _, p := range o.planets {
		p.SetTimeScale(ts)
	}
	for i := range o.moons {
		o.moons[i].sat.SetTimeScale(ts)
	}
	o.metrics.SetTimeScale(ts)
}

func (o *Orrery) startTour() {
	o.follow.SetAutoZoom(false)
	o.tour.Start()
}

// stopTour ends the tour and clears focus
func (o *Orrery) stopTour() {
	o.tour.Stop()
	o.focus = NoFocus
	o.follow.SetAutoZoom(false)
}

// takeManualControl ends the tour and auto-zoom so a manual camera move sticks
func (o *Orrery) takeManualControl(ctx context.Context) {
	if o.tour.Active() {
		o.logger.Debug(ctx, "manual camera input ended tour")
		o.tour.Stop()
	}
	o.follow.SetAutoZoom(false)
}

func (o *Orrery) compose() {
	for i, p := range o.planets {
		o.system.SetLocal(o.planetNodes[i], p.Position())
	}
	for _, m := range o.moons {
		o.system.SetLocal(m.node, m.sat.Local())
	}
	o.system.Compose()
}

// subject resolves target i for the camera and the tour
func (o *Orrery) subject(i int) camera.Subject {
	if i == 0 {
		return camera.Subject{Position: o.system.World(o.sunNode), Radius: o.cat.Sun.SceneRadius()}
	}
	return camera.Subject{
		Position: o.system.World(o.planetNodes[i-1]),
		Radius:   o.cat.Planets[i-1].SceneRadius(),
	}
}

func (o *Orrery) focusSubject() *camera.Subject {
	if o.focus == NoFocus {
		return nil
	}
	s := o.subject(o.focus)
	return &s
}

func (o *Orrery) snapshot() *Frame {
	v := o.views
	v[0].Position = o.system.World(o.sunNode)
	v[0].Spin = o.sunSpin.Angle
	for i, p := range o.planets {
		v[1+i].Position = o.system.World(o.planetNodes[i])
		v[1+i].Spin = p.Spin.Angle
	}
	base := 1 + len(o.planets)
	for i, m := range o.moons {
		v[base+i].Position = o.system.World(m.node)
	}
	for i, r := range o.rings {
		center := o.system.World(o.planetNodes[r.planet])
		rv := &o.ringViews[i]
		rv.Center = center
		for j, p := range r.local {
			rv.Points[j] = vmath.V3FAdd(center, p)
		}
	}

	f := &Frame{
		Tick:      o.ticks,
		Camera:    *o.cam,
		Bodies:    v,
		Orbits:    o.orbits,
		Asteroids: o.belt,
		Rings:     o.ringViews,
		Focus:     o.focus,
		HUD: HUD{
			Title:     "Solar System",
			TimeScale: o.timeScale,
			Slider:    o.slider,
			Paused:    o.paused,
			Tour:      o.tour.State(),
			Controls:  o.tour.ControlsEnabled(),
		},
	}
	if stop, ok := o.tour.CurrentStop(); ok {
		f.HUD.TourStop = stop.Name
	}
	if o.focus != NoFocus {
		d := o.describe(o.focus)
		f.Info = &d
	}
	return f
}

func (o *Orrery) describe(target int) catalog.Description {
	if target == 0 {
		return catalog.Describe(o.cat.Sun)
	}
	return catalog.Describe(o.cat.Planets[target-1])
}

// TargetCount is the number of focusable bodies: the sun then every planet
func (o *Orrery) TargetCount() int {
	return 1 + len(o.planets)
}

// TargetName returns the display name of target i
func (o *Orrery) TargetName(i int) string {
	if i == 0 {
		return o.cat.Sun.Name
	}
	return o.cat.Planets[i-1].Name
}

func (o *Orrery) Focus() int                { return o.focus }
func (o *Orrery) TimeScale() float64        { return o.timeScale }
func (o *Orrery) Slider() float64           { return o.slider }
func (o *Orrery) Paused() bool              { return o.paused }
func (o *Orrery) Camera() *camera.Camera    { return o.cam }
func (o *Orrery) Tour() *tour.Tour          { return o.tour }
func (o *Orrery) System() *kepler.System    { return &o.system }
func (o *Orrery) Planet(i int) *kepler.Body { return o.planets[i] }
func (o *Orrery) AutoZooming() bool         { return o.follow.AutoZooming() }
