// Package audio plays the guided tour's arrival chime
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/orrery/parameter"
)

// Player owns the speaker and a mixer that one-shot tones are added to
// Safe for concurrent use; a muted or uninitialized player drops every request
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	played      int
}

// NewPlayer creates a player; call Init before expecting sound
func NewPlayer(muted bool) *Player {
	return &Player{
		rate:  beep.SampleRate(parameter.SampleRate),
		mixer: &beep.Mixer{},
		muted: muted,
	}
}

// Init opens the speaker; a muted player never touches the device
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || p.muted {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(parameter.SpeakerBuffer)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// ChimeFor is the tone for a stop; the central body sounds lower
func ChimeFor(central bool) ChimeConfig {
	freq := parameter.ChimeFrequency
	if central {
		freq *= parameter.CentralChimeRatio
	}
	return ChimeConfig{
		Frequency: freq,
		Duration:  parameter.ChimeMillis * time.Millisecond,
		Attack:    parameter.ChimeAttack,
		Release:   parameter.ChimeRelease,
		Volume:    parameter.ChimeVolume,
	}
}

// Chime plays the arrival tone
func (p *Player) Chime(central bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.muted || !p.initialized {
		return nil
	}
	s, err := NewChime(ChimeFor(central), p.rate)
	if err != nil {
		return err
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.played++
	return nil
}

// SetMuted toggles output; muting clears tones still playing
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = muted
	if muted && p.initialized {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
}

// Muted reports whether output is suppressed
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Played counts chimes handed to the mixer
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// Close silences the mixer and closes the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
