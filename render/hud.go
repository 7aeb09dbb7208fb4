package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/orrery/catalog"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/sim"
)

const (
	sliderWidth    = 20
	formValueWidth = 9
)

var (
	orreryKeys    = "t tour  [ ] time  1 real  e earth-min  arrows orbit  + - zoom  tab/click focus  esc clear  space pause  q quit"
	threeBodyKeys = "p preset  tab select  enter edit  r restart  < > speed  space pause  q quit"
)

// hudLine assembles segments separated by a divider
type hudLine struct {
	parts []string
}

func (h *hudLine) add(format string, args ...any) {
	h.parts = append(h.parts, fmt.Sprintf(format, args...))
}

func (h *hudLine) String() string {
	return strings.Join(h.parts, " │ ")
}

// sliderBar draws a log slider position in [0, TimeSliderMax]
func sliderBar(pos float64) string {
	filled := int(pos / parameter.TimeSliderMax * sliderWidth)
	filled = min(max(filled, 0), sliderWidth)
	return strings.Repeat("━", filled) + strings.Repeat("─", sliderWidth-filled)
}

func (r *Renderer) drawHUD(f *sim.Frame, ov Overlay) {
	y := r.viewH
	r.buf.Fill(0, y, r.width, parameter.HUDRows, RgbHUDBar)

	var status hudLine
	status.add("%s", f.HUD.Title)
	keys := orreryKeys
	if len(f.Forms) > 0 {
		keys = threeBodyKeys
		status.add("%s", f.HUD.Preset)
		status.add("speed %.1f", f.HUD.Speed)
		status.add("|p| %.3g", f.HUD.Momentum)
		status.add("E %.4g", f.HUD.Energy)
		if f.HUD.Softened > 0 {
			status.add("softened %d", f.HUD.Softened)
		}
	} else {
		status.add("time ×%.3g %s", f.HUD.TimeScale, sliderBar(f.HUD.Slider))
		tour := "tour " + f.HUD.Tour
		if f.HUD.TourStop != "" {
			tour += " → " + f.HUD.TourStop
		}
		status.add("%s", tour)
		if !f.HUD.Controls {
			keys = "t stop tour  [ ] time  space pause  q quit"
		}
	}
	if f.HUD.Paused {
		status.add("PAUSED")
	}

	used := r.buf.Text(1, y, status.String(), RgbHUDText, r.width-1)
	if ov.Status != "" {
		r.buf.Text(used+3, y, ov.Status, RgbWarn, r.width-used-3)
	}
	if parameter.HUDRows > 1 {
		r.buf.Text(1, y+1, keys, RgbHUDDim, r.width-1)
	}
}

// panelX returns the left column of the right-hand panel
func (r *Renderer) panelX() int {
	return max(r.width-parameter.InfoPanelWidth, 0)
}

func (r *Renderer) drawInfo(d *catalog.Description) {
	x := r.panelX()
	inner := parameter.InfoPanelWidth - 2

	lines := append([]string(nil), d.Lines...)
	if d.About != "" {
		lines = append(lines, "")
		lines = append(lines, wrap(d.About, inner)...)
	}
	h := min(len(lines)+2, r.viewH)
	r.buf.Fill(x, 0, parameter.InfoPanelWidth, h, RgbPanel)

	r.buf.Text(x+1, 0, d.Title, RgbPanelTitle, inner)
	for i, line := range lines {
		if 1+i >= h {
			break
		}
		r.buf.Text(x+1, 1+i, line, RgbHUDText, inner)
	}
}

func (r *Renderer) drawForms(f *sim.Frame, ov Overlay) {
	x := r.panelX()
	inner := parameter.InfoPanelWidth - 2
	h := min(len(f.Forms)*4+1, r.viewH)
	r.buf.Fill(x, 0, parameter.InfoPanelWidth, h, RgbPanel)

	row := 0
	for i, form := range f.Forms {
		if row+3 >= h {
			break
		}
		swatch := RgbHUDText
		name := fmt.Sprintf("Body %d", i+1)
		if i < len(f.Bodies) {
			swatch = FromHex(f.Bodies[i].Color)
			name = f.Bodies[i].Name
		}
		r.buf.Text(x+1, row, string(parameter.BodyGlyph), swatch, 1)
		r.buf.Text(x+3, row, name, RgbPanelTitle, inner-2)

		r.buf.Text(x+1, row+1, "mass", RgbHUDDim, 4)
		r.buf.Text(x+1, row+2, "pos", RgbHUDDim, 4)
		r.buf.Text(x+1, row+3, "vel", RgbHUDDim, 4)
		for field := 0; field < sim.FieldCount; field++ {
			fr, fc := row+1, 0
			if field > 0 {
				fr, fc = row+2+(field-1)/3, (field-1)%3
			}
			fx := x + 6 + fc*(formValueWidth+1)

			text, fg := form.Field(field), RgbHUDText
			if ov.Body == i && ov.Field == field {
				fg = RgbCursor
				if ov.Editing {
					text = ov.Input + "_"
				}
			}
			r.buf.Text(fx, fr, runewidth.Truncate(text, formValueWidth, "…"), fg, formValueWidth)
		}
		row += 4
	}
}

// wrap splits s into lines no wider than width display columns
func wrap(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	curW := 0
	for _, word := range strings.Fields(s) {
		w := runewidth.StringWidth(word)
		if curW > 0 && curW+1+w > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curW = 0
		}
		if curW > 0 {
			cur.WriteByte(' ')
			curW++
		}
		cur.WriteString(word)
		curW += w
	}
	if curW > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
