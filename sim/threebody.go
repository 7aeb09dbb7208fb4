package sim

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/catalog"
	"github.com/lixenwraith/orrery/logging"
	"github.com/lixenwraith/orrery/observability"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/physics"
	"github.com/lixenwraith/orrery/vmath"
)

// ThreeBodyOptions configures the n-body controller; zero values take defaults
type ThreeBodyOptions struct {
	Preset  string
	Speed   float64
	Logger  logging.Logger
	Metrics *observability.Collector
	Tracer  trace.Tracer
}

// ThreeBody is the n-body controller
// Editor forms are the source of truth for a restart; the live bodies are replaced wholesale
type ThreeBody struct {
	presets *catalog.PresetTable
	preset  string
	forms   []BodyForm
	colors  []uint32

	bodies []physics.Body
	integ  *physics.Integrator
	speed  float64
	paused bool
	ticks  uint64
	stats  physics.StepStats

	cam    *camera.Camera
	follow *camera.ExtentFollow
	queue  *CommandQueue
	views  []BodyView

	logger     logging.Logger
	metrics    *observability.Collector
	tracer     trace.Tracer
	softenWarn *rate.Limiter
}

// NewThreeBody loads the starting preset and frames it
func NewThreeBody(presets *catalog.PresetTable, opts ThreeBodyOptions) (*ThreeBody, error) {
	if presets == nil {
		return nil, catalog.ErrNoPresets
	}
	if opts.Logger == nil {
		opts.Logger = logging.Noop()
	}
	if opts.Tracer == nil {
		opts.Tracer = observability.Tracer()
	}
	speed := parameter.SpeedDefault
	if opts.Speed != 0 {
		speed = clampSpeed(opts.Speed)
	}
	name := opts.Preset
	if name == "" {
		name = presets.Default
	}

	t := &ThreeBody{
		presets:    presets,
		integ:      physics.NewIntegrator(),
		speed:      speed,
		follow:     camera.NewExtentFollow(),
		queue:      NewCommandQueue(),
		logger:     opts.Logger.With(logging.String("sim", observability.SimThreeBody)),
		metrics:    opts.Metrics,
		tracer:     opts.Tracer,
		softenWarn: rate.NewLimiter(rate.Every(time.Second), 1),
	}
	t.cam = camera.New(vmath.Vec3F{}, vmath.Vec3F{}, parameter.CameraFOVDegrees)

	if err := t.applyPreset(context.Background(), name); err != nil {
		return nil, err
	}
	// Start on the framing goal so the first frames do not sweep in from the origin
	t.cam.Position, t.cam.Target = t.follow.Desired(t.cam.FOV, physics.CenterOfMass(t.bodies), physics.Bounds(t.bodies))
	t.metrics.SetTimeScale(t.speed)
	return t, nil
}

// Submit queues a command for the next tick; safe from any goroutine
func (t *ThreeBody) Submit(cmd Command) {
	t.queue.Push(cmd)
}

// Tick runs one frame: commands, one integrator step, camera framing
func (t *ThreeBody) Tick(ctx context.Context, _ time.Duration) *Frame {
	start := time.Now()

	for _, cmd := range t.queue.Consume() {
		_ = t.Apply(ctx, cmd)
	}

	if !t.paused {
		t.stats = t.integ.Step(t.bodies, parameter.BaseTimeStep*t.speed)
		if t.stats.Softened > 0 {
			t.metrics.AddSoftened(t.stats.Softened)
			if t.softenWarn.Allow() {
				t.logger.Debug(ctx, "close approach softened", logging.Int("pairs", t.stats.Softened))
			}
		}
	}

	t.follow.Update(t.cam, physics.CenterOfMass(t.bodies), physics.Bounds(t.bodies))

	t.ticks++
	f := t.snapshot()
	t.metrics.SetMomentum(f.HUD.Momentum)
	t.metrics.ObserveTick(observability.SimThreeBody, time.Since(start))
	return f
}

// Apply executes a command immediately on the tick goroutine
func (t *ThreeBody) Apply(ctx context.Context, cmd Command) error {
	ctx, span := t.tracer.Start(ctx, "sim.command",
		trace.WithAttributes(attribute.String("command", cmd.Type.String())))
	defer span.End()

	if err := t.apply(ctx, cmd); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		t.logger.Warn(ctx, "command rejected", logging.String("command", cmd.Type.String()), logging.Err(err))
		return err
	}
	t.metrics.IncCommand(cmd.Type.String())
	return nil
}

func (t *ThreeBody) apply(ctx context.Context, cmd Command) error {
	switch cmd.Type {
	case CmdApplyPreset:
		p, err := payload[PresetPayload](cmd)
		if err != nil {
			return err
		}
		return t.applyPreset(ctx, p.Name)

	case CmdEditBody:
		p, err := payload[EditBodyPayload](cmd)
		if err != nil {
			return err
		}
		if p.Index < 0 || p.Index >= len(t.forms) {
			return fmt.Errorf("%w: body %d", ErrBadTarget, p.Index)
		}
		t.forms[p.Index] = p.Form

	case CmdRestart:
		t.restart(ctx)

	case CmdSetSpeed:
		p, err := payload[SpeedPayload](cmd)
		if err != nil {
			return err
		}
		t.setSpeed(p.Speed)

	case CmdStepSpeed:
		p, err := payload[SpeedPayload](cmd)
		if err != nil {
			return err
		}
		t.setSpeed(t.speed + p.Speed)

	case CmdTogglePause:
		t.paused = !t.paused

	default:
		return fmt.Errorf("%s: %w", cmd.Type, ErrUnsupportedCommand)
	}
	return nil
}

// applyPreset fills the editor from a preset and restarts
func (t *ThreeBody) applyPreset(ctx context.Context, name string) error {
	p, err := t.presets.Get(name)
	if err != nil {
		return err
	}
	states := p.States()
	t.preset = name
	t.forms = make([]BodyForm, len(states))
	t.colors = make([]uint32, len(states))
	for i, s := range states {
		t.forms[i] = FormFromState(s)
		t.colors[i] = s.Color
	}
	t.restart(ctx)
	return nil
}

// restart rebuilds every body from the editor forms; nothing from the old run survives
func (t *ThreeBody) restart(ctx context.Context) {
	ctx, span := t.tracer.Start(ctx, "sim.reset",
		trace.WithAttributes(attribute.String("preset", t.preset), attribute.Int("bodies", len(t.forms))))
	defer span.End()

	states := make([]physics.State, len(t.forms))
	for i, f := range t.forms {
		s, subst := ParseBodyForm(f)
		if len(subst) > 0 {
			t.logger.Warn(ctx, "invalid body input replaced with defaults",
				logging.Int("body", i), logging.String("fields", strings.Join(subst, ",")))
		}
		s.Color = t.colors[i]
		states[i] = s
	}
	t.bodies = physics.NewBodies(states)
	t.stats = physics.StepStats{}
	t.views = make([]BodyView, len(t.bodies))
	t.metrics.SetBodies(len(t.bodies))
	t.logger.Info(ctx, "simulation restarted", logging.String("preset", t.preset), logging.Int("bodies", len(t.bodies)))
}

func (t *ThreeBody) setSpeed(s float64) {
	t.speed = clampSpeed(s)
	t.metrics.SetTimeScale(t.speed)
}

func (t *ThreeBody) snapshot() *Frame {
	for i := range t.bodies {
		b := &t.bodies[i]
		t.views[i] = BodyView{
			Name:     fmt.Sprintf("Body %d", i+1),
			Kind:     KindMass,
			Target:   NoFocus,
			Position: b.Position,
			Radius:   b.Radius,
			Color:    b.Color,
		}
	}
	title := t.preset
	if p, err := t.presets.Get(t.preset); err == nil && p.Title != "" {
		title = p.Title
	}
	return &Frame{
		Tick:   t.ticks,
		Camera: *t.cam,
		Bodies: t.views,
		Focus:  NoFocus,
		Forms:  t.forms,
		HUD: HUD{
			Title:    "Three-Body",
			Speed:    t.speed,
			Paused:   t.paused,
			Preset:   title,
			Momentum: vmath.V3FMag(physics.TotalMomentum(t.bodies)),
			Energy:   physics.TotalEnergy(t.bodies, t.integ.G, t.integ.SofteningSq),
			Softened: t.stats.Softened,
		},
	}
}

// Bodies exposes the live bodies, read-only
func (t *ThreeBody) Bodies() []physics.Body { return t.bodies }
func (t *ThreeBody) Forms() []BodyForm      { return t.forms }
func (t *ThreeBody) Speed() float64         { return t.speed }
func (t *ThreeBody) Paused() bool           { return t.paused }
func (t *ThreeBody) Preset() string         { return t.preset }
func (t *ThreeBody) Camera() *camera.Camera { return t.cam }
func (t *ThreeBody) Presets() *catalog.PresetTable {
	return t.presets
}
