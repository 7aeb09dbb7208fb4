// Package sim owns the simulation state of both programs and turns user commands into per-tick frames
package sim

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedCommand = errors.New("command not supported by this simulation")
	ErrBadPayload         = errors.New("command payload has the wrong type")
	ErrBadTarget          = errors.New("focus target out of range")
)

// CommandType identifies a user intent
type CommandType int

const (
	// CmdSetTimeScale sets the solar-system time scale directly
	// Payload: *TimeScalePayload
	CmdSetTimeScale CommandType = iota + 1

	// CmdStepTimeScale moves the logarithmic slider
	// Payload: *SliderPayload
	CmdStepTimeScale

	// CmdEarthMinute sets the time scale so one Earth orbit takes a minute of ticks
	// Payload: nil
	CmdEarthMinute

	// CmdSetFocus focuses a target or clears focus with NoFocus; stops an active tour
	// Payload: *FocusPayload
	CmdSetFocus

	// CmdStartTour, CmdStopTour, CmdToggleTour drive the guided tour
	// Payload: nil
	CmdStartTour
	CmdStopTour
	CmdToggleTour

	// CmdOrbitCamera rotates the eye around the target
	// Payload: *OrbitPayload
	CmdOrbitCamera

	// CmdZoomCamera scales the eye distance
	// Payload: *ZoomPayload
	CmdZoomCamera

	// CmdApplyPreset loads a three-body preset into the editor and restarts
	// Payload: *PresetPayload
	CmdApplyPreset

	// CmdEditBody replaces one body's editor form; takes effect on restart
	// Payload: *EditBodyPayload
	CmdEditBody

	// CmdRestart rebuilds the bodies from the editor forms
	// Payload: nil
	CmdRestart

	// CmdSetSpeed sets the three-body speed multiplier
	// Payload: *SpeedPayload
	CmdSetSpeed

	// CmdStepSpeed nudges the speed multiplier
	// Payload: *SpeedPayload (Speed is the delta)
	CmdStepSpeed

	// CmdTogglePause freezes or resumes simulated motion
	// Payload: nil
	CmdTogglePause
)

var commandNames = map[CommandType]string{
	CmdSetTimeScale:  "SetTimeScale",
	CmdStepTimeScale: "StepTimeScale",
	CmdEarthMinute:   "EarthMinute",
	CmdSetFocus:      "SetFocus",
	CmdStartTour:     "StartTour",
	CmdStopTour:      "StopTour",
	CmdToggleTour:    "ToggleTour",
	CmdOrbitCamera:   "OrbitCamera",
	CmdZoomCamera:    "ZoomCamera",
	CmdApplyPreset:   "ApplyPreset",
	CmdEditBody:      "EditBody",
	CmdRestart:       "Restart",
	CmdSetSpeed:      "SetSpeed",
	CmdStepSpeed:     "StepSpeed",
	CmdTogglePause:   "TogglePause",
}

func (t CommandType) String() string {
	if name, ok := commandNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CommandType(%d)", int(t))
}

// Command is a queued user intent
type Command struct {
	Type    CommandType
	Payload any
}

type TimeScalePayload struct {
	Scale float64
}

type SliderPayload struct {
	Delta float64 // Slider units in [0, TimeSliderMax]
}

type FocusPayload struct {
	Target   int // Index into Targets, or NoFocus
	AutoZoom bool
}

type OrbitPayload struct {
	Yaw, Pitch float64 // Radians
}

type ZoomPayload struct {
	Factor float64 // >1 moves away
}

type PresetPayload struct {
	Name string
}

type EditBodyPayload struct {
	Index int
	Form  BodyForm
}

type SpeedPayload struct {
	Speed float64
}

// payload asserts the payload type, reporting ErrBadPayload with the command name
func payload[T any](cmd Command) (*T, error) {
	p, ok := cmd.Payload.(*T)
	if !ok || p == nil {
		return nil, fmt.Errorf("%s: %w: %T", cmd.Type, ErrBadPayload, cmd.Payload)
	}
	return p, nil
}
