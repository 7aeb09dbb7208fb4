package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// FrameClock turns wall-clock readings into per-frame deltas
// Deltas are clamped to maxDelta so a stalled terminal does not produce a huge jump
// While paused every Tick reports zero elapsed time
type FrameClock struct {
	mu       sync.Mutex
	provider TimeProvider
	last     time.Time
	maxDelta time.Duration

	isPaused atomic.Bool
	frames   atomic.Uint64
	elapsed  time.Duration // Sum of reported deltas
}

// NewFrameClock creates a clock reading from provider
func NewFrameClock(provider TimeProvider, maxDelta time.Duration) *FrameClock {
	return &FrameClock{
		provider: provider,
		last:     provider.Now(),
		maxDelta: maxDelta,
	}
}

// Tick returns the time elapsed since the previous Tick
func (fc *FrameClock) Tick() time.Duration {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	now := fc.provider.Now()
	dt := now.Sub(fc.last)
	fc.last = now
	fc.frames.Add(1)

	if fc.isPaused.Load() || dt < 0 {
		return 0
	}
	if fc.maxDelta > 0 && dt > fc.maxDelta {
		dt = fc.maxDelta
	}
	fc.elapsed += dt
	return dt
}

// Pause freezes reported time
func (fc *FrameClock) Pause() {
	fc.isPaused.Store(true)
}

// Resume continues reporting time from the next Tick, the paused interval is discarded
func (fc *FrameClock) Resume() {
	if fc.isPaused.CompareAndSwap(true, false) {
		fc.mu.Lock()
		fc.last = fc.provider.Now()
		fc.mu.Unlock()
	}
}

// TogglePause flips the pause state and returns the new state
func (fc *FrameClock) TogglePause() bool {
	if fc.isPaused.Load() {
		fc.Resume()
		return false
	}
	fc.Pause()
	return true
}

// IsPaused returns current pause state
func (fc *FrameClock) IsPaused() bool {
	return fc.isPaused.Load()
}

// Frames returns the number of Tick calls
func (fc *FrameClock) Frames() uint64 {
	return fc.frames.Load()
}

// Elapsed returns the accumulated unpaused time
func (fc *FrameClock) Elapsed() time.Duration {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.elapsed
}
