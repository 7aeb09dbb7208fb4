package tour

import (
	"context"

	"github.com/lixenwraith/orrery/engine/fsm"
	"github.com/lixenwraith/orrery/logging"
	"github.com/lixenwraith/orrery/vmath"
)

// registerComponents binds the names used in the tour graph
func registerComponents(m *fsm.Machine[*Tour]) {
	// Event IDs are distinct constants, registration cannot collide
	_ = m.RegisterEvent("Start", EventStart)
	_ = m.RegisterEvent("Stop", EventStop)
	_ = m.RegisterEvent("Advance", EventAdvance)

	m.RegisterAction("DisableControls", func(t *Tour, _ map[string]any) {
		t.setControls(false)
	})
	m.RegisterAction("EnableControls", func(t *Tour, _ map[string]any) {
		t.setControls(true)
	})
	m.RegisterAction("Begin", func(t *Tour, _ map[string]any) {
		t.index = 0
		if t.hooks.OnFocus != nil {
			t.hooks.OnFocus(0)
		}
	})
	m.RegisterAction("Approach", func(t *Tour, _ map[string]any) {
		pos, target := t.DesiredView()
		t.cam.Position = vmath.V3FLerp(t.cam.Position, pos, t.Smoothing)
		t.cam.Target = vmath.V3FLerp(t.cam.Target, target, t.Smoothing)
	})
	m.RegisterAction("Hold", func(t *Tour, _ map[string]any) {
		t.cam.Position, t.cam.Target = t.DesiredView()
	})
	m.RegisterAction("ScheduleAdvance", func(t *Tour, _ map[string]any) {
		if t.token != 0 {
			t.sched.Cancel(t.token)
		}
		wait := t.WaitPlanet
		if t.stops[t.index].Central {
			wait = t.WaitCentral
		}
		t.token = t.sched.After(wait, t.advance)
		t.logger.Debug(context.Background(), "tour advance scheduled",
			logging.String("stop", t.stops[t.index].Name), logging.Duration("wait", wait))
	})
	m.RegisterAction("CancelAdvance", func(t *Tour, _ map[string]any) {
		if t.token != 0 {
			t.sched.Cancel(t.token)
			t.token = 0
		}
	})

	m.RegisterGuard("Arrived", func(t *Tour) bool {
		pos, _ := t.DesiredView()
		return vmath.V3FDist(t.cam.Position, pos) < t.ArrivalDistance
	})
}
