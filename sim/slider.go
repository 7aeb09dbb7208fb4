package sim

import (
	"math"

	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

// SliderToTimeScale maps a slider position in [0, TimeSliderMax] to 10^[TimeScaleLogMin, TimeScaleLogMax]
func SliderToTimeScale(p float64) float64 {
	p = vmath.Clamp(p, 0, parameter.TimeSliderMax)
	span := parameter.TimeScaleLogMax - parameter.TimeScaleLogMin
	return math.Pow(10, parameter.TimeScaleLogMin+span*p/parameter.TimeSliderMax)
}

// TimeScaleToSlider is the inverse of SliderToTimeScale, clamped to the slider range
func TimeScaleToSlider(ts float64) float64 {
	if !(ts > 0) {
		return 0
	}
	span := parameter.TimeScaleLogMax - parameter.TimeScaleLogMin
	p := (math.Log10(ts) - parameter.TimeScaleLogMin) * parameter.TimeSliderMax / span
	return vmath.Clamp(p, 0, parameter.TimeSliderMax)
}

// EarthMinuteScale is the time scale under which one orbit of periodDays takes EarthMinuteTicks ticks
func EarthMinuteScale(periodDays float64) float64 {
	return math.Abs(periodDays) / parameter.EarthMinuteTicks
}

// clampSpeed bounds the three-body multiplier and snaps it to the step grid
func clampSpeed(s float64) float64 {
	if !vmath.IsFinite(s) {
		return parameter.SpeedDefault
	}
	s = math.Round(s/parameter.SpeedStep) * parameter.SpeedStep
	s = math.Round(s*1e6) / 1e6
	return vmath.Clamp(s, parameter.SpeedMin, parameter.SpeedMax)
}
