package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/sim"
)

// submitter receives commands; the simulation applies them on its next tick
type submitter interface {
	Submit(cmd sim.Command)
	Focus() int
	TargetCount() int
}

// picker resolves a screen cell to a focus target
type picker interface {
	Pick(x, y int) int
}

// controller maps terminal input to simulation commands
type controller struct {
	sim     submitter
	picker  picker
	buttons tcell.ButtonMask
}

func newController(s submitter, p picker) *controller {
	return &controller{sim: s, picker: p}
}

// handle returns false when the user asks to quit
func (c *controller) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuit(ev) {
			return false
		}
		if cmd, ok := keyCommand(ev, c.sim.Focus(), c.sim.TargetCount()); ok {
			c.sim.Submit(cmd)
		}
	case *tcell.EventMouse:
		c.mouse(ev)
	}
	return true
}

func (c *controller) mouse(ev *tcell.EventMouse) {
	btn := ev.Buttons()
	pressed := btn &^ c.buttons
	c.buttons = btn

	switch {
	case pressed&tcell.Button1 != 0:
		// Clicking empty space clears the focus
		x, y := ev.Position()
		target := c.picker.Pick(x, y)
		c.sim.Submit(sim.Command{Type: sim.CmdSetFocus, Payload: &sim.FocusPayload{Target: target, AutoZoom: true}})
	case btn&tcell.WheelUp != 0:
		c.sim.Submit(zoom(1 / parameter.CameraZoomStep))
	case btn&tcell.WheelDown != 0:
		c.sim.Submit(zoom(parameter.CameraZoomStep))
	}
}

func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q')
}

func zoom(factor float64) sim.Command {
	return sim.Command{Type: sim.CmdZoomCamera, Payload: &sim.ZoomPayload{Factor: factor}}
}

func orbit(yaw, pitch float64) sim.Command {
	return sim.Command{Type: sim.CmdOrbitCamera, Payload: &sim.OrbitPayload{Yaw: yaw, Pitch: pitch}}
}

func focus(target int) sim.Command {
	return sim.Command{Type: sim.CmdSetFocus, Payload: &sim.FocusPayload{Target: target, AutoZoom: true}}
}

// keyCommand translates one key press
func keyCommand(ev *tcell.EventKey, current, targets int) (sim.Command, bool) {
	step := parameter.CameraOrbitStep
	switch ev.Key() {
	case tcell.KeyLeft:
		return orbit(-step, 0), true
	case tcell.KeyRight:
		return orbit(step, 0), true
	case tcell.KeyUp:
		return orbit(0, step), true
	case tcell.KeyDown:
		return orbit(0, -step), true
	case tcell.KeyEscape:
		return focus(sim.NoFocus), true
	case tcell.KeyTab:
		if targets == 0 {
			return sim.Command{}, false
		}
		return focus((current + 1) % targets), true
	case tcell.KeyBacktab:
		if targets == 0 {
			return sim.Command{}, false
		}
		if current <= 0 {
			return focus(targets - 1), true
		}
		return focus(current - 1), true
	case tcell.KeyRune:
	default:
		return sim.Command{}, false
	}

	switch ev.Rune() {
	case 't':
		return sim.Command{Type: sim.CmdToggleTour}, true
	case ']':
		return sim.Command{Type: sim.CmdStepTimeScale, Payload: &sim.SliderPayload{Delta: parameter.TimeSliderStep}}, true
	case '[':
		return sim.Command{Type: sim.CmdStepTimeScale, Payload: &sim.SliderPayload{Delta: -parameter.TimeSliderStep}}, true
	case '1':
		return sim.Command{Type: sim.CmdSetTimeScale, Payload: &sim.TimeScalePayload{Scale: 1}}, true
	case 'e':
		return sim.Command{Type: sim.CmdEarthMinute}, true
	case '+', '=':
		return zoom(1 / parameter.CameraZoomStep), true
	case '-', '_':
		return zoom(parameter.CameraZoomStep), true
	case ' ':
		return sim.Command{Type: sim.CmdTogglePause}, true
	}
	return sim.Command{}, false
}
