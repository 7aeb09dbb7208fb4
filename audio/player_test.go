package audio

import "testing"

// TestPlayerUninitialized verifies requests are dropped without a speaker
func TestPlayerUninitialized(t *testing.T) {
	p := NewPlayer(false)
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("player panicked without initialization: %v", r)
		}
	}()

	if err := p.Chime(true); err != nil {
		t.Errorf("Chime: %v", err)
	}
	if p.Played() != 0 {
		t.Errorf("Played = %d, want 0", p.Played())
	}
	p.SetMuted(true)
	p.Close()
}

// TestPlayerMuted verifies a muted player never opens the device
func TestPlayerMuted(t *testing.T) {
	p := NewPlayer(true)
	if err := p.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := p.Chime(false); err != nil {
		t.Fatalf("Chime: %v", err)
	}
	if p.Played() != 0 || !p.Muted() {
		t.Errorf("Played = %d, Muted = %v", p.Played(), p.Muted())
	}
	p.Close()
}

// TestChimeFor verifies the central stop sounds a fifth lower
func TestChimeFor(t *testing.T) {
	planet, sun := ChimeFor(false), ChimeFor(true)
	if sun.Frequency >= planet.Frequency {
		t.Errorf("central %f not below planet %f", sun.Frequency, planet.Frequency)
	}
	if sun.Duration != planet.Duration || planet.Duration <= 0 {
		t.Errorf("durations %v %v", sun.Duration, planet.Duration)
	}
}
