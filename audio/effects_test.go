package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to completion and returns every sample
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

// TestOscillatorSine verifies sine wave generation
func TestOscillatorSine(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, rate)

	samples := make([][2]float64, 100)
	n, ok := osc.Stream(samples)
	if !ok || n != 100 {
		t.Fatalf("Stream = %d, %v; want 100, true", n, ok)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -1 || samples[i][0] > 1 {
			t.Errorf("Sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Errorf("Sample %d channels differ", i)
		}
	}
	if osc.Err() != nil {
		t.Errorf("Expected no error, got: %v", osc.Err())
	}
}

// TestOscillatorLength verifies the oscillator stops after its duration
func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveTriangle, WaveSquare} {
		got := len(drain(NewOscillator(220, 50*time.Millisecond, wave, rate)))
		if want := rate.N(50 * time.Millisecond); got != want {
			t.Errorf("wave %d streamed %d samples, want %d", wave, got, want)
		}
	}
}

// TestOscillatorSquareLevels verifies square output is strictly two-level
func TestOscillatorSquareLevels(t *testing.T) {
	rate := beep.SampleRate(44100)
	for i, s := range drain(NewOscillator(220, 20*time.Millisecond, WaveSquare, rate)) {
		if s[0] != 1 && s[0] != -1 {
			t.Fatalf("sample %d = %f, want ±1", i, s[0])
		}
	}
}

// TestEnvelopeShape verifies silence at onset and a bounded peak
func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(44100)
	dur := 100 * time.Millisecond
	env := NewEnvelope(NewOscillator(440, dur, WaveSquare, rate), dur, 10*time.Millisecond, 20*time.Millisecond, rate)

	out := drain(env)
	if len(out) != rate.N(dur) {
		t.Fatalf("envelope length = %d, want %d", len(out), rate.N(dur))
	}
	if out[0][0] != 0 {
		t.Errorf("first sample = %f, want 0 at attack start", out[0][0])
	}
	mid := out[len(out)/2][0]
	if math.Abs(mid) != 1 {
		t.Errorf("sustain sample = %f, want full level", mid)
	}
	last := out[len(out)-1][0]
	if math.Abs(last) >= 0.01 {
		t.Errorf("last sample = %f, want near silence", last)
	}
}

// TestEnvelopeTruncates verifies the envelope ends a longer source
func TestEnvelopeTruncates(t *testing.T) {
	rate := beep.SampleRate(44100)
	env := NewEnvelope(NewOscillator(440, time.Second, WaveSine, rate), 30*time.Millisecond, 0, 0, rate)
	if got, want := len(drain(env)), rate.N(30*time.Millisecond); got != want {
		t.Errorf("length = %d, want %d", got, want)
	}
}

// TestNewVolumeSilent verifies zero gain produces silence
func TestNewVolumeSilent(t *testing.T) {
	rate := beep.SampleRate(44100)
	for i, s := range drain(newVolume(NewOscillator(440, 10*time.Millisecond, WaveSquare, rate), 0)) {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("sample %d = %v, want silence", i, s)
		}
	}
}

// TestNewChime verifies the mixed tone is finite, bounded and not silent
func TestNewChime(t *testing.T) {
	rate := beep.SampleRate(44100)
	cfg := ChimeFor(false)

	s, err := NewChime(cfg, rate)
	if err != nil {
		t.Fatalf("NewChime: %v", err)
	}
	out := drain(s)
	if len(out) != rate.N(cfg.Duration) {
		t.Errorf("chime length = %d, want %d", len(out), rate.N(cfg.Duration))
	}

	peak := 0.0
	for _, v := range out {
		peak = math.Max(peak, math.Abs(v[0]))
	}
	if peak == 0 || peak > cfg.Volume+1e-9 {
		t.Errorf("peak = %f, want in (0, %f]", peak, cfg.Volume)
	}
}

// TestNewChimeRejectsHighFrequency verifies generator errors surface
func TestNewChimeRejectsHighFrequency(t *testing.T) {
	cfg := ChimeFor(false)
	cfg.Frequency = 30000
	if _, err := NewChime(cfg, beep.SampleRate(44100)); err == nil {
		t.Error("expected error for overtone above Nyquist")
	}
}
