// Package engine provides the frame loop, frame clock and the one-shot task scheduler
package engine

import (
	"context"
	"sync/atomic"
	"time"
)

// Loop drives a simulation at a fixed frame interval on the calling goroutine
// Input events arriving between frames are delivered inline, so all state stays single-owner
type Loop[E any] struct {
	clock    *FrameClock
	interval time.Duration

	// OnEvent handles one input event, returning false to stop the loop
	OnEvent func(ev E) bool
	// OnFrame advances and draws one frame, returning false to stop the loop
	OnFrame func(dt time.Duration) bool

	frames  atomic.Uint64
	running atomic.Bool
}

// NewLoop creates a loop ticking every interval
func NewLoop[E any](clock *FrameClock, interval time.Duration) *Loop[E] {
	return &Loop[E]{
		clock:    clock,
		interval: interval,
	}
}

// Run blocks until a handler stops the loop, events is closed, or ctx is done
// Returns ctx.Err() on cancellation, nil otherwise
func (l *Loop[E]) Run(ctx context.Context, events <-chan E) error {
	if !l.running.CompareAndSwap(false, true) {
		return nil
	}
	defer l.running.Store(false)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if l.OnEvent != nil && !l.OnEvent(ev) {
				return nil
			}

		case <-ticker.C:
			dt := l.clock.Tick()
			l.frames.Add(1)
			if l.OnFrame != nil && !l.OnFrame(dt) {
				return nil
			}
		}
	}
}

// Frames returns the number of frames processed
func (l *Loop[E]) Frames() uint64 {
	return l.frames.Load()
}

// Running reports whether Run is active
func (l *Loop[E]) Running() bool {
	return l.running.Load()
}
