package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/lixenwraith/orrery/logging"
)

// ErrNoTextureDir is returned when textures are requested but no directory is set
var ErrNoTextureDir = errors.New("texture directory not configured")

// Texture sizes; terminal discs never need more resolution than this
const (
	TextureWidth  = 128
	TextureHeight = 64
)

// Texture is an equirectangular color map downsampled for cell rendering
type Texture struct {
	width, height int
	pixels        []RGB
}

// NewTexture builds a texture from raw pixels in row-major order
func NewTexture(width, height int, pixels []RGB) *Texture {
	return &Texture{width: width, height: height, pixels: pixels}
}

// Sample returns the color at longitude u and latitude v, both in [0, 1)
// u wraps; v clamps at the poles
func (t *Texture) Sample(u, v float64) RGB {
	u -= math.Floor(u)
	v = min(max(v, 0), 1)
	x := min(int(u*float64(t.width)), t.width-1)
	y := min(int(v*float64(t.height)), t.height-1)
	return t.pixels[y*t.width+x]
}

// TextureLoader decodes body textures from a directory on first use
// A failure is cached and logged once so the body keeps its flat color
type TextureLoader struct {
	mu     sync.Mutex
	dir    string
	logger logging.Logger
	cache  map[string]*Texture
	failed map[string]error
}

// NewTextureLoader creates a loader rooted at dir; empty dir disables textures
func NewTextureLoader(dir string, logger logging.Logger) *TextureLoader {
	if logger == nil {
		logger = logging.Noop()
	}
	return &TextureLoader{
		dir:    dir,
		logger: logger,
		cache:  make(map[string]*Texture),
		failed: make(map[string]error),
	}
}

// Enabled reports whether a texture directory was configured
func (l *TextureLoader) Enabled() bool {
	return l != nil && l.dir != ""
}

// Load returns the texture for name, decoding it on first request
func (l *TextureLoader) Load(ctx context.Context, name string) (*Texture, error) {
	if !l.Enabled() {
		return nil, ErrNoTextureDir
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.cache[name]; ok {
		return t, nil
	}
	if err, ok := l.failed[name]; ok {
		return nil, err
	}

	t, err := decodeTexture(filepath.Join(l.dir, name))
	if err != nil {
		err = fmt.Errorf("load texture %s: %w", name, err)
		l.failed[name] = err
		l.logger.Warn(ctx, "texture unavailable, using flat color",
			logging.String("texture", name), logging.Err(err))
		return nil, err
	}
	l.cache[name] = t
	l.logger.Debug(ctx, "texture loaded", logging.String("texture", name))
	return t, nil
}

func decodeTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return downsample(img, TextureWidth, TextureHeight), nil
}

// downsample point-samples img into a w by h grid
func downsample(img image.Image, w, h int) *Texture {
	bounds := img.Bounds()
	pixels := make([]RGB, w*h)
	for y := 0; y < h; y++ {
		sy := bounds.Min.Y + (2*y+1)*bounds.Dy()/(2*h)
		for x := 0; x < w; x++ {
			sx := bounds.Min.X + (2*x+1)*bounds.Dx()/(2*w)
			r, g, b, _ := img.At(sx, sy).RGBA()
			pixels[y*w+x] = RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
		}
	}
	return NewTexture(w, h, pixels)
}
