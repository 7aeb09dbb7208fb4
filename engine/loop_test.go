package engine

import (
	"context"
	"testing"
	"time"
)

func TestLoopStopsFromFrame(t *testing.T) {
	fc := NewFrameClock(NewMonotonicTimeProvider(), time.Second)
	l := NewLoop[int](fc, time.Millisecond)
	l.OnFrame = func(dt time.Duration) bool {
		return l.Frames() < 3
	}

	if err := l.Run(context.Background(), make(chan int)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if l.Frames() != 3 {
		t.Errorf("Frames = %d, want 3", l.Frames())
	}
	if l.Running() {
		t.Error("loop still marked running")
	}
}

func TestLoopDeliversEvents(t *testing.T) {
	fc := NewFrameClock(NewMonotonicTimeProvider(), time.Second)
	l := NewLoop[int](fc, time.Hour)

	var got []int
	l.OnEvent = func(ev int) bool {
		got = append(got, ev)
		return ev != 0
	}

	events := make(chan int, 3)
	events <- 4
	events <- 7
	events <- 0

	if err := l.Run(context.Background(), events); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(got) != 3 || got[0] != 4 || got[1] != 7 {
		t.Errorf("events = %v", got)
	}
}

func TestLoopContextCancel(t *testing.T) {
	fc := NewFrameClock(NewMonotonicTimeProvider(), time.Second)
	l := NewLoop[int](fc, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Run(ctx, nil); err != context.Canceled {
		t.Errorf("Run err = %v, want context.Canceled", err)
	}
}
