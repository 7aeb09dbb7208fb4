package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one terminal cell with a depth for occlusion
// Rune 0 is empty; wide marks the trailing half of a double-width rune
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Depth float64
	wide  bool
}

var emptyCell = Cell{Fg: RgbHUDText, Bg: RgbBackground, Depth: math.Inf(1)}

// RenderBuffer is a compositor with a per-cell depth test
type RenderBuffer struct {
	cells  []Cell
	width  int
	height int
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = emptyCell
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Bounds returns the buffer dimensions
func (b *RenderBuffer) Bounds() (int, int) {
	return b.width, b.height
}

// inBounds returns true if in screen bounds
func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x, y; out of bounds yields an empty cell
func (b *RenderBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return emptyCell
	}
	return b.cells[y*b.width+x]
}

// Plot writes a glyph if it is not behind what the cell already holds
func (b *RenderBuffer) Plot(x, y int, r rune, fg RGB, depth float64) bool {
	if !b.inBounds(x, y) {
		return false
	}
	dst := &b.cells[y*b.width+x]
	if depth > dst.Depth {
		return false
	}
	dst.Rune = r
	dst.Fg = fg
	dst.Depth = depth
	dst.wide = false
	return true
}

// SetBg paints the background of a cell regardless of depth
func (b *RenderBuffer) SetBg(x, y int, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x].Bg = bg
}

// Fill paints a rectangle background and clears its glyphs
func (b *RenderBuffer) Fill(x, y, w, h int, bg RGB) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			if !b.inBounds(col, row) {
				continue
			}
			b.cells[row*b.width+col] = Cell{Bg: bg, Fg: RgbHUDText, Depth: math.Inf(-1)}
		}
	}
}

// Text writes s from x, y clipped to limit columns and returns the columns used
// Overlay text ignores and overrides depth; double-width runes take two cells
func (b *RenderBuffer) Text(x, y int, s string, fg RGB, limit int) int {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if used+w > limit {
			break
		}
		col := x + used
		if b.inBounds(col, y) {
			dst := &b.cells[y*b.width+col]
			dst.Rune, dst.Fg, dst.Depth, dst.wide = r, fg, math.Inf(-1), false
		}
		if w == 2 && b.inBounds(col+1, y) {
			next := &b.cells[y*b.width+col+1]
			next.Rune, next.Depth, next.wide = 0, math.Inf(-1), true
		}
		used += w
	}
	return used
}

// Flush writes the buffer to the screen
func (b *RenderBuffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			if c.wide {
				continue
			}
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.Foreground(c.Fg.Tcell()).Background(c.Bg.Tcell())
			screen.SetContent(x, y, r, nil, style)
		}
	}
	screen.Show()
}
