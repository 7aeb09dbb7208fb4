// Package render draws simulation frames onto a tcell screen
package render

import (
	"context"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/sim"
	"github.com/lixenwraith/orrery/vmath"
)

// ambient is the minimum light on the night side of a lit body
const ambient = 0.12

// Overlay is interface state owned by the program rather than the simulation
type Overlay struct {
	Editing bool   // Body editor has keyboard focus
	Body    int    // Selected body in the editor
	Field   int    // Selected field, sim.FieldNames order
	Input   string // Pending text for the selected field
	Status  string // Transient message shown in the HUD
}

// pickArea is a projected ellipse that a click can select
type pickArea struct {
	cx, cy float64
	rx, ry float64
	depth  float64
	target int
}

type label struct {
	x, y int
	text string
	fg   RGB
}

// Renderer composes frames into a depth-tested buffer and flushes them to the screen
// Not safe for concurrent use; the main loop owns it
type Renderer struct {
	screen   tcell.Screen
	buf      *RenderBuffer
	textures *TextureLoader

	width, height int
	viewH         int

	picks  []pickArea
	labels []label
}

// NewRenderer binds a renderer to an initialized screen; textures may be nil
func NewRenderer(screen tcell.Screen, textures *TextureLoader) *Renderer {
	w, h := screen.Size()
	r := &Renderer{
		screen:   screen,
		buf:      NewRenderBuffer(w, h),
		textures: textures,
	}
	r.resize(w, h)
	return r
}

func (r *Renderer) resize(w, h int) {
	if w != r.width || h != r.height {
		r.buf.Resize(w, h)
	}
	r.width, r.height = w, h
	r.viewH = max(h-parameter.HUDRows, 1)
}

// Buffer exposes the composed cells of the last frame
func (r *Renderer) Buffer() *RenderBuffer {
	return r.buf
}

// Projector builds the projection used for the current viewport
func (r *Renderer) Projector(cam *camera.Camera) camera.Projector {
	aspect := float64(r.width) / (float64(r.viewH) * parameter.CellAspect)
	return camera.NewProjector(cam, aspect, parameter.CameraNear)
}

// toScreen maps normalized device coordinates to fractional cell coordinates
func (r *Renderer) toScreen(p camera.Projection) (float64, float64) {
	return (p.X + 1) * 0.5 * float64(r.width), (1 - p.Y) * 0.5 * float64(r.viewH)
}

// plot writes a world glyph inside the viewport only
func (r *Renderer) plot(x, y int, ch rune, fg RGB, depth float64) {
	if y >= r.viewH {
		return
	}
	r.buf.Plot(x, y, ch, fg, depth)
}

// Draw renders f and ov and shows the result
func (r *Renderer) Draw(ctx context.Context, f *sim.Frame, ov Overlay) {
	r.resize(r.screen.Size())
	r.buf.Clear()
	r.picks = r.picks[:0]
	r.labels = r.labels[:0]

	proj := r.Projector(&f.Camera)

	for _, path := range f.Orbits {
		r.drawPath(proj, path, RgbOrbit, parameter.OrbitGlyph)
	}
	for _, p := range f.Asteroids {
		r.drawPoint(proj, p, RgbAsteroid, parameter.AsteroidGlyph)
	}
	for _, ring := range f.Rings {
		c := Dim(FromHex(ring.Color), 0.2)
		for _, p := range ring.Points {
			r.drawPoint(proj, p, c, parameter.RingGlyph)
		}
	}

	sun, lit := vmath.Vec3F{}, false
	for _, b := range f.Bodies {
		if b.Kind == sim.KindStar {
			sun, lit = b.Position, true
			break
		}
	}
	for i := range f.Bodies {
		r.drawBody(ctx, proj, &f.Bodies[i], f.Focus, sun, lit)
	}
	for _, l := range r.labels {
		if l.y < r.viewH && l.x < r.width {
			r.buf.Text(l.x, l.y, l.text, l.fg, r.width-l.x)
		}
	}

	if f.Info != nil {
		r.drawInfo(f.Info)
	}
	if len(f.Forms) > 0 {
		r.drawForms(f, ov)
	}
	r.drawHUD(f, ov)

	r.buf.Flush(r.screen)
}

// Pick returns the focus target under cell x, y or sim.NoFocus
// The nearest body wins when projected bodies overlap
func (r *Renderer) Pick(x, y int) int {
	if y >= r.viewH {
		return sim.NoFocus
	}
	best, bestDepth := sim.NoFocus, math.Inf(1)
	px, py := float64(x)+0.5, float64(y)+0.5
	for _, a := range r.picks {
		rx := max(a.rx, parameter.PickRadiusCells*parameter.CellAspect)
		ry := max(a.ry, parameter.PickRadiusCells)
		dx, dy := (px-a.cx)/rx, (py-a.cy)/ry
		if dx*dx+dy*dy <= 1 && a.depth < bestDepth {
			best, bestDepth = a.target, a.depth
		}
	}
	return best
}

func (r *Renderer) drawPoint(proj camera.Projector, p vmath.Vec3F, fg RGB, ch rune) {
	pr, ok := proj.Project(p)
	if !ok {
		return
	}
	x, y := r.toScreen(pr)
	r.plot(int(math.Floor(x)), int(math.Floor(y)), ch, fg, pr.Depth)
}

// drawPath connects consecutive samples of a closed path
func (r *Renderer) drawPath(proj camera.Projector, path []vmath.Vec3F, fg RGB, ch rune) {
	if len(path) < 2 {
		return
	}
	maxSteps := 4 * (r.width + r.viewH)
	prev, prevOK := proj.Project(path[len(path)-1])
	for _, p := range path {
		cur, ok := proj.Project(p)
		if ok && prevOK {
			x0, y0 := r.toScreen(prev)
			x1, y1 := r.toScreen(cur)
			steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
			if steps <= maxSteps {
				for s := 0; s <= steps; s++ {
					t := float64(s) / float64(steps)
					x := x0 + (x1-x0)*t
					y := y0 + (y1-y0)*t
					d := prev.Depth + (cur.Depth-prev.Depth)*t
					r.plot(int(math.Floor(x)), int(math.Floor(y)), ch, fg, d)
				}
			}
		}
		prev, prevOK = cur, ok
	}
}

func (r *Renderer) drawBody(ctx context.Context, proj camera.Projector, b *sim.BodyView, focus int, sun vmath.Vec3F, lit bool) {
	pr, ok := proj.Project(b.Position)
	if !ok {
		return
	}
	cx, cy := r.toScreen(pr)
	ry := proj.ScaleAt(b.Radius, pr.Depth) * 0.5 * float64(r.viewH)
	rx := ry * parameter.CellAspect
	base := FromHex(b.Color)

	var tex *Texture
	if b.Texture != "" && r.textures.Enabled() {
		// Failures are logged once by the loader; the flat color stands in
		tex, _ = r.textures.Load(ctx, b.Texture)
	}

	shaded := lit && (b.Kind == sim.KindPlanet || b.Kind == sim.KindMoon)
	var light vmath.Vec3F
	if shaded {
		light = proj.ToView(vmath.V3FNormalize(vmath.V3FSub(sun, b.Position)))
	}

	if ry < 0.5 {
		c := base
		if shaded {
			c = Shade(base, RgbNight, 0.5+0.5*math.Max(light.Z, 0))
		}
		r.plot(int(math.Floor(cx)), int(math.Floor(cy)), parameter.BodyGlyph, c, pr.Depth)
	} else {
		y0, y1 := int(math.Floor(cy-ry)), int(math.Ceil(cy+ry))
		x0, x1 := int(math.Floor(cx-rx)), int(math.Ceil(cx+rx))
		y0, y1 = max(y0, 0), min(y1, r.viewH-1)
		x0, x1 = max(x0, 0), min(x1, r.width-1)
		for y := y0; y <= y1; y++ {
			ny := (cy - (float64(y) + 0.5)) / ry
			for x := x0; x <= x1; x++ {
				nx := (float64(x) + 0.5 - cx) / rx
				d2 := nx*nx + ny*ny
				if d2 > 1 {
					continue
				}
				nz := math.Sqrt(1 - d2)

				c := base
				if tex != nil {
					u := math.Atan2(nx, nz)/(2*math.Pi) + 0.5 + b.Spin/(2*math.Pi)
					v := 0.5 - math.Asin(ny)/math.Pi
					c = tex.Sample(u, v)
				}
				switch {
				case shaded:
					k := math.Max(nx*light.X+ny*light.Y+nz*light.Z, 0)
					c = Shade(c, RgbNight, ambient+(1-ambient)*k)
				case b.Kind == sim.KindStar:
					c = Scale(c, 0.75+0.25*nz)
				default:
					c = Shade(c, RgbNight, 0.35+0.65*nz)
				}
				r.plot(x, y, '█', c, pr.Depth-b.Radius*nz)
			}
		}
	}

	if b.Target != sim.NoFocus {
		r.picks = append(r.picks, pickArea{cx: cx, cy: cy, rx: rx, ry: ry, depth: pr.Depth, target: b.Target})
	}
	if b.Kind == sim.KindMoon {
		return
	}
	text, fg := b.Name, RgbHUDDim
	if b.Target != sim.NoFocus && b.Target == focus {
		fg = Highlight(base, 0.5)
		if b.Label != "" {
			text += " " + b.Label
		}
	}
	r.labels = append(r.labels, label{
		x:    int(math.Floor(cx+math.Max(rx, 0.5))) + 1,
		y:    int(math.Floor(cy)),
		text: text,
		fg:   fg,
	})
}
