package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/catalog"
	"github.com/lixenwraith/orrery/logging"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/sim"
	"github.com/lixenwraith/orrery/vmath"
)

const (
	screenW = 80
	screenH = 26
)

func newTestRenderer(t *testing.T) (*Renderer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(screenW, screenH)
	t.Cleanup(screen.Fini)
	return NewRenderer(screen, nil), screen
}

// scene is a star at the origin and a planet to its right, seen from +Z
func scene() *sim.Frame {
	return &sim.Frame{
		Camera: *camera.New(vmath.Vec3F{Z: 100}, vmath.Vec3F{}, parameter.CameraFOVDegrees),
		Bodies: []sim.BodyView{
			{Name: "Sun", Label: "太陽", Kind: sim.KindStar, Target: 0, Radius: 10, Color: 0xFFCC33},
			{Name: "Earth", Label: "地球", Kind: sim.KindPlanet, Target: 1, Position: vmath.Vec3F{X: 40}, Radius: 5, Color: 0x2A6FDB},
		},
		Focus: sim.NoFocus,
		HUD:   sim.HUD{Title: "Solar System", TimeScale: 1, Slider: 333, Tour: "Idle", Controls: true},
	}
}

// rowText reads one screen row back from the simulation screen
func rowText(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		sb.WriteString(string(cells[y*w+x].Runes))
	}
	return sb.String()
}

func bufferText(b *RenderBuffer, y int) string {
	w, _ := b.Bounds()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		if r := b.Get(x, y).Rune; r != 0 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func luma(c RGB) int {
	return int(c.R)*299 + int(c.G)*587 + int(c.B)*114
}

func TestRenderBufferDepthTest(t *testing.T) {
	b := NewRenderBuffer(4, 2)
	if !b.Plot(1, 1, 'a', RgbHUDText, 10) {
		t.Fatal("first plot rejected")
	}
	if b.Plot(1, 1, 'b', RgbHUDText, 20) {
		t.Error("farther glyph overwrote nearer one")
	}
	if !b.Plot(1, 1, 'c', RgbHUDText, 5) || b.Get(1, 1).Rune != 'c' {
		t.Errorf("nearer glyph not written, got %q", b.Get(1, 1).Rune)
	}
	if b.Plot(9, 9, 'x', RgbHUDText, 0) {
		t.Error("out of bounds plot accepted")
	}

	b.Clear()
	if b.Get(1, 1).Rune != 0 {
		t.Error("Clear left glyph behind")
	}
}

func TestRenderBufferWideText(t *testing.T) {
	b := NewRenderBuffer(10, 1)
	used := b.Text(0, 0, "地球ab", RgbHUDText, 10)
	if used != 6 {
		t.Errorf("used = %d, want 6", used)
	}
	if b.Get(0, 0).Rune != '地' || b.Get(2, 0).Rune != '球' || b.Get(4, 0).Rune != 'a' {
		t.Errorf("unexpected layout %q", bufferText(b, 0))
	}
	if !b.Get(1, 0).wide {
		t.Error("trailing half of wide rune not marked")
	}
	if b.Plot(1, 0, 'x', RgbHUDText, 0) {
		t.Error("world glyph drew over overlay text")
	}

	if used := b.Text(0, 0, "地球", RgbHUDText, 3); used != 2 {
		t.Errorf("clipped used = %d, want 2", used)
	}
}

func TestColorHelpers(t *testing.T) {
	c := FromHex(0x2A6FDB)
	if c != (RGB{0x2A, 0x6F, 0xDB}) {
		t.Errorf("FromHex = %+v", c)
	}
	if Shade(c, RgbNight, 1) != c || Shade(c, RgbNight, 0) != RgbNight {
		t.Error("Shade endpoints wrong")
	}
	if mid := Shade(c, RgbNight, 0.5); luma(mid) <= luma(RgbNight) || luma(mid) >= luma(c) {
		t.Errorf("Shade midpoint %+v not between endpoints", mid)
	}
	if luma(Highlight(c, 0.5)) <= luma(c) {
		t.Error("Highlight did not brighten")
	}
	if Lerp(c, RgbNight, 0) != c || Lerp(c, RgbNight, 1) != RgbNight {
		t.Error("Lerp endpoints wrong")
	}
	if Scale(RGB{200, 100, 0}, 2) != (RGB{255, 200, 0}) {
		t.Error("Scale did not clamp")
	}
}

func TestDrawBodiesAndLabels(t *testing.T) {
	r, screen := newTestRenderer(t)
	f := scene()
	r.Draw(context.Background(), f, Overlay{})

	viewH := screenH - parameter.HUDRows
	if got := r.Buffer().Get(screenW/2, viewH/2).Rune; got != '█' {
		t.Errorf("star center cell = %q, want disc", got)
	}
	if !strings.Contains(bufferText(r.Buffer(), viewH/2), "Sun") {
		t.Errorf("star label missing in %q", bufferText(r.Buffer(), viewH/2))
	}
	if strings.Contains(bufferText(r.Buffer(), viewH/2), "地球") {
		t.Error("local name shown for unfocused body")
	}
	if !strings.Contains(rowText(screen, viewH), "Solar System") {
		t.Errorf("HUD row = %q", rowText(screen, viewH))
	}

	f.Focus = 1
	r.Draw(context.Background(), f, Overlay{})
	if !strings.Contains(bufferText(r.Buffer(), viewH/2), "Earth 地球") {
		t.Errorf("focused label missing local name: %q", bufferText(r.Buffer(), viewH/2))
	}
}

func TestDrawShadesAwayFromStar(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.Draw(context.Background(), scene(), Overlay{})

	viewH := screenH - parameter.HUDRows
	proj := r.Projector(&scene().Camera)
	p, _ := proj.Project(vmath.Vec3F{X: 40})
	cx := int((p.X + 1) * 0.5 * screenW)

	var near, far int
	for y := viewH/2 - 2; y <= viewH/2+2; y++ {
		for x := cx - 4; x <= cx+4; x++ {
			c := r.Buffer().Get(x, y)
			if c.Rune != '█' {
				continue
			}
			if x < cx {
				near += luma(c.Fg)
			} else if x > cx {
				far += luma(c.Fg)
			}
		}
	}
	if near <= far {
		t.Errorf("star-facing side luma %d not brighter than far side %d", near, far)
	}
}

func TestPick(t *testing.T) {
	r, _ := newTestRenderer(t)
	f := scene()
	r.Draw(context.Background(), f, Overlay{})

	proj := r.Projector(&f.Camera)
	p, _ := proj.Project(f.Bodies[1].Position)
	px, py := r.toScreen(p)
	viewH := screenH - parameter.HUDRows

	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"star", screenW / 2, viewH / 2, 0},
		{"planet", int(px), int(py), 1},
		{"empty space", 2, 2, sim.NoFocus},
		{"hud row", screenW / 2, viewH, sim.NoFocus},
	}
	for _, tt := range tests {
		if got := r.Pick(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: Pick(%d, %d) = %d, want %d", tt.name, tt.x, tt.y, got, tt.want)
		}
	}

	// A body in front of the star wins the overlap
	f.Bodies[1].Position = vmath.Vec3F{Z: 50}
	r.Draw(context.Background(), f, Overlay{})
	if got := r.Pick(screenW/2, viewH/2); got != 1 {
		t.Errorf("overlap Pick = %d, want nearer body 1", got)
	}
}

func TestDrawInfoPanel(t *testing.T) {
	r, _ := newTestRenderer(t)
	f := scene()
	f.Focus = 1
	f.Info = &catalog.Description{
		Title: "Earth (地球)",
		Lines: []string{"Class: Planet"},
		About: "Third planet from the Sun and the only known world with life.",
	}
	r.Draw(context.Background(), f, Overlay{})

	if got := bufferText(r.Buffer(), 0); !strings.Contains(got, "Earth (地球)") {
		t.Errorf("panel title row = %q", got)
	}
	if got := bufferText(r.Buffer(), 1); !strings.Contains(got, "Class: Planet") {
		t.Errorf("panel line = %q", got)
	}
	if x := screenW - parameter.InfoPanelWidth; r.Buffer().Get(x, 0).Bg != RgbPanel {
		t.Error("panel background not painted")
	}
}

func TestDrawThreeBodyForms(t *testing.T) {
	r, screen := newTestRenderer(t)
	presets, err := catalog.DefaultPresets()
	if err != nil {
		t.Fatalf("DefaultPresets: %v", err)
	}
	tb, err := sim.NewThreeBody(presets, sim.ThreeBodyOptions{})
	if err != nil {
		t.Fatalf("NewThreeBody: %v", err)
	}
	f := tb.Tick(context.Background(), 16*time.Millisecond)

	r.Draw(context.Background(), f, Overlay{Editing: true, Body: 0, Field: 0, Input: "2.5"})
	if got := bufferText(r.Buffer(), 0); !strings.Contains(got, "Body 1") {
		t.Errorf("form header = %q", got)
	}
	if got := bufferText(r.Buffer(), 1); !strings.Contains(got, "2.5_") {
		t.Errorf("editing field = %q", got)
	}
	hud := rowText(screen, screenH-parameter.HUDRows)
	if !strings.Contains(hud, "Three-Body") || !strings.Contains(hud, "speed 1.0") {
		t.Errorf("HUD row = %q", hud)
	}
}

func TestSliderBar(t *testing.T) {
	if got := sliderBar(0); got != strings.Repeat("─", sliderWidth) {
		t.Errorf("empty bar = %q", got)
	}
	if got := sliderBar(parameter.TimeSliderMax); got != strings.Repeat("━", sliderWidth) {
		t.Errorf("full bar = %q", got)
	}
}

func TestWrap(t *testing.T) {
	lines := wrap("the quick brown fox jumps", 10)
	want := []string{"the quick", "brown fox", "jumps"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("wrap = %q, want %q", lines, want)
	}
	if got := wrap("太陽は 恒星です", 8); len(got) != 2 {
		t.Errorf("double-width wrap = %q, want 2 lines", got)
	}
}

func TestTextureSample(t *testing.T) {
	tex := NewTexture(2, 1, []RGB{{255, 0, 0}, {0, 0, 255}})
	if tex.Sample(0.1, 0.5) != (RGB{255, 0, 0}) || tex.Sample(0.9, 0.5) != (RGB{0, 0, 255}) {
		t.Error("sample picked wrong texel")
	}
	if tex.Sample(1.1, 0.5) != tex.Sample(0.1, 0.5) || tex.Sample(-0.1, 0.5) != tex.Sample(0.9, 0.5) {
		t.Error("longitude does not wrap")
	}
	if tex.Sample(0.1, -3) != tex.Sample(0.1, 2) {
		t.Error("latitude not clamped")
	}
}

func TestTextureLoaderMissingLogsOnce(t *testing.T) {
	var logBuf bytes.Buffer
	l := NewTextureLoader(t.TempDir(), logging.New(logging.Config{Level: "debug", Writer: &logBuf}))

	for i := 0; i < 3; i++ {
		_, err := l.Load(context.Background(), "2k_earth.jpg")
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("Load err = %v, want not-exist", err)
		}
	}
	if n := strings.Count(logBuf.String(), "texture unavailable"); n != 1 {
		t.Errorf("warning logged %d times, want 1", n)
	}

	if _, err := NewTextureLoader("", nil).Load(context.Background(), "x.png"); !errors.Is(err, ErrNoTextureDir) {
		t.Errorf("disabled loader err = %v", err)
	}
}

func TestTextureLoaderDecodesPNG(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			c := color.RGBA{R: 255, A: 255}
			if x >= 2 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(filepath.Join(dir, "mars.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	l := NewTextureLoader(dir, nil)
	tex, err := l.Load(context.Background(), "mars.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tex.Sample(0.1, 0.5) != (RGB{255, 0, 0}) || tex.Sample(0.9, 0.5) != (RGB{0, 0, 255}) {
		t.Errorf("decoded texels wrong: %+v %+v", tex.Sample(0.1, 0.5), tex.Sample(0.9, 0.5))
	}
	again, _ := l.Load(context.Background(), "mars.png")
	if again != tex {
		t.Error("texture not cached")
	}
}
