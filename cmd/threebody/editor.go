package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/catalog"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/sim"
)

// maxInput bounds the text typed into one field
const maxInput = 24

// controls is the part of the three-body controller the editor drives
type controls interface {
	Submit(cmd sim.Command)
	Forms() []sim.BodyForm
	Preset() string
	Presets() *catalog.PresetTable
}

// editor owns field selection and in-progress text for the body forms
type editor struct {
	sim     controls
	body    int
	field   int
	editing bool
	input   string
	status  string
}

func newEditor(c controls) *editor {
	return &editor{sim: c}
}

func (e *editor) overlay() render.Overlay {
	return render.Overlay{
		Editing: e.editing,
		Body:    e.body,
		Field:   e.field,
		Input:   e.input,
		Status:  e.status,
	}
}

// handle returns false when the user asks to quit
func (e *editor) handle(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return true
	}
	if key.Key() == tcell.KeyCtrlC {
		return false
	}
	if e.editing {
		e.edit(key)
		return true
	}

	switch key.Key() {
	case tcell.KeyTab:
		e.move(1)
	case tcell.KeyBacktab:
		e.move(-1)
	case tcell.KeyEnter:
		if forms := e.sim.Forms(); e.body < len(forms) {
			e.editing = true
			e.input = forms[e.body].Field(e.field)
			e.status = ""
		}
	case tcell.KeyRune:
		return e.rune(key.Rune())
	}
	return true
}

func (e *editor) rune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'p':
		next := e.sim.Presets().Next(e.sim.Preset())
		e.sim.Submit(sim.Command{Type: sim.CmdApplyPreset, Payload: &sim.PresetPayload{Name: next}})
		e.status = ""
	case 'r':
		e.sim.Submit(sim.Command{Type: sim.CmdRestart})
		e.status = ""
	case '>', '.':
		e.sim.Submit(sim.Command{Type: sim.CmdStepSpeed, Payload: &sim.SpeedPayload{Speed: parameter.SpeedStep}})
	case '<', ',':
		e.sim.Submit(sim.Command{Type: sim.CmdStepSpeed, Payload: &sim.SpeedPayload{Speed: -parameter.SpeedStep}})
	case ' ':
		e.sim.Submit(sim.Command{Type: sim.CmdTogglePause})
	}
	return true
}

// move steps the selection through every field of every body
func (e *editor) move(delta int) {
	n := len(e.sim.Forms()) * sim.FieldCount
	if n == 0 {
		return
	}
	pos := (e.body*sim.FieldCount + e.field + delta + n) % n
	e.body, e.field = pos/sim.FieldCount, pos%sim.FieldCount
}

func (e *editor) edit(key *tcell.EventKey) {
	switch key.Key() {
	case tcell.KeyEscape:
		e.editing, e.input = false, ""
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(e.input); n > 0 {
			e.input = e.input[:n-1]
		}
	case tcell.KeyEnter:
		e.commit()
	case tcell.KeyRune:
		// Anything goes; unparsable text falls back to defaults on restart
		if len(e.input) < maxInput {
			e.input += string(key.Rune())
		}
	}
}

func (e *editor) commit() {
	forms := e.sim.Forms()
	e.editing = false
	if e.body >= len(forms) {
		e.input = ""
		return
	}
	form := forms[e.body].WithField(e.field, strings.TrimSpace(e.input))
	e.sim.Submit(sim.Command{Type: sim.CmdEditBody, Payload: &sim.EditBodyPayload{Index: e.body, Form: form}})
	e.status = fmt.Sprintf("body %d %s set, r to restart", e.body+1, sim.FieldNames[e.field])
	e.input = ""
}
