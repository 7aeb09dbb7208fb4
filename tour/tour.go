// Package tour runs the guided camera tour {Idle, Moving, Waiting} over the engine FSM
package tour

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/orrery/asset"
	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/engine/fsm"
	"github.com/lixenwraith/orrery/logging"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

// Tour events
const (
	EventStart fsm.EventID = iota + 1
	EventStop
	EventAdvance
)

// State names as declared in the graph
const (
	StateIdle    = "Idle"
	StateMoving  = "Moving"
	StateWaiting = "Waiting"
)

var ErrNoStops = errors.New("tour has no stops")

// Stop is one destination
type Stop struct {
	Name    string
	Central bool // Central body holds for the shorter wait
}

// Locator resolves the live subject of stop i after kinematics have run this tick
type Locator func(i int) camera.Subject

// Hooks let the owner observe tour side effects; nil hooks are skipped
type Hooks struct {
	OnFocus      func(stop int)
	OnControls   func(enabled bool)
	OnTransition func(from, to string)
}

// Tour drives a camera through a fixed list of stops
// Not safe for concurrent use; it runs on the tick goroutine with its scheduler
type Tour struct {
	machine *fsm.Machine[*Tour]
	sched   *engine.Scheduler
	cam     *camera.Camera
	stops   []Stop
	locate  Locator
	hooks   Hooks
	logger  logging.Logger

	Smoothing       float64
	ArrivalDistance float64
	RadiusMultiple  float64
	Elevation       float64
	WaitCentral     time.Duration
	WaitPlanet      time.Duration

	index           int
	token           engine.Token
	controlsEnabled bool
}

// New loads the tour graph and enters Idle
func New(sched *engine.Scheduler, cam *camera.Camera, stops []Stop, locate Locator, hooks Hooks, logger logging.Logger) (*Tour, error) {
	if len(stops) == 0 {
		return nil, ErrNoStops
	}
	if logger == nil {
		logger = logging.Noop()
	}

	t := &Tour{
		machine:         fsm.NewMachine[*Tour](),
		sched:           sched,
		cam:             cam,
		stops:           stops,
		locate:          locate,
		hooks:           hooks,
		logger:          logger.With(logging.String("component", "tour")),
		Smoothing:       parameter.TourSmoothing,
		ArrivalDistance: parameter.TourArrivalDistance,
		RadiusMultiple:  parameter.CameraFocusRadiusMultiple,
		Elevation:       parameter.CameraFocusElevation,
		WaitCentral:     parameter.TourWaitCentral,
		WaitPlanet:      parameter.TourWaitPlanet,
		controlsEnabled: true,
	}

	registerComponents(t.machine)
	if err := t.machine.LoadConfig([]byte(asset.TourFSMConfig)); err != nil {
		return nil, fmt.Errorf("load tour graph: %w", err)
	}
	if err := t.machine.Init(t); err != nil {
		return nil, fmt.Errorf("init tour: %w", err)
	}
	return t, nil
}

// Start begins the tour at the first stop; ignored while active
func (t *Tour) Start() bool {
	return t.fire(EventStart)
}

// Stop ends the tour from any active state, cancelling a pending advance
func (t *Tour) Stop() bool {
	return t.fire(EventStop)
}

// Toggle starts an idle tour or stops an active one
func (t *Tour) Toggle() bool {
	if t.Active() {
		return t.Stop()
	}
	return t.Start()
}

// Update runs one tick; call after body positions are final for the frame
func (t *Tour) Update(dt time.Duration) {
	from := t.machine.StateName()
	t.machine.Update(t, dt)
	t.noteTransition(from)
}

// Active reports whether the tour is moving or waiting
func (t *Tour) Active() bool {
	return t.machine.StateName() != StateIdle
}

// State returns the leaf state name
func (t *Tour) State() string {
	return t.machine.StateName()
}

// Index returns the current stop index
func (t *Tour) Index() int {
	return t.index
}

// CurrentStop returns the stop being visited, false when idle
func (t *Tour) CurrentStop() (Stop, bool) {
	if !t.Active() {
		return Stop{}, false
	}
	return t.stops[t.index], true
}

// ControlsEnabled reports whether manual camera input is allowed
func (t *Tour) ControlsEnabled() bool {
	return t.controlsEnabled
}

// AdvancePending reports whether a wait-then-advance task is scheduled
func (t *Tour) AdvancePending() bool {
	return t.token != 0 && t.sched.Pending(t.token)
}

// DesiredView is the framing for the current stop
func (t *Tour) DesiredView() (position, target vmath.Vec3F) {
	return camera.FocusView(t.locate(t.index), t.RadiusMultiple, t.Elevation)
}

func (t *Tour) fire(ev fsm.EventID) bool {
	from := t.machine.StateName()
	ok := t.machine.HandleEvent(t, ev)
	t.noteTransition(from)
	return ok
}

func (t *Tour) noteTransition(from string) {
	to := t.machine.StateName()
	if from == to {
		return
	}
	t.logger.Debug(context.Background(), "tour transition",
		logging.String("from", from), logging.String("to", to), logging.Int("stop", t.index))
	if t.hooks.OnTransition != nil {
		t.hooks.OnTransition(from, to)
	}
}

// advance is the scheduled callback; it moves to the next stop and re-enters Moving
func (t *Tour) advance() {
	t.token = 0
	t.index = (t.index + 1) % len(t.stops)
	if t.hooks.OnFocus != nil {
		t.hooks.OnFocus(t.index)
	}
	t.fire(EventAdvance)
}

func (t *Tour) setControls(enabled bool) {
	t.controlsEnabled = enabled
	if t.hooks.OnControls != nil {
		t.hooks.OnControls(enabled)
	}
}
