package parameter

import "time"

// Layout
const (
	// HUDRows are reserved at the bottom of the viewport
	HUDRows = 2

	// InfoPanelWidth is the width of the focused-body panel
	InfoPanelWidth = 38

	// CellAspect is terminal cell height divided by width
	CellAspect = 2.0

	// PickRadiusCells is the click tolerance around a projected body
	PickRadiusCells = 2.0
)

// Glyphs
const (
	OrbitGlyph    = '·'
	AsteroidGlyph = '.'
	RingGlyph     = '-'
	BodyGlyph     = '●'
)

// Audio
const (
	// ChimeFrequency is the tour arrival tone in Hz
	ChimeFrequency = 660.0

	// ChimeMillis is the tour arrival tone length
	ChimeMillis = 120

	// ChimeAttack and ChimeRelease shape the tone envelope
	ChimeAttack  = 5 * time.Millisecond
	ChimeRelease = 90 * time.Millisecond

	// ChimeVolume is linear gain in (0, 1]
	ChimeVolume = 0.4

	// CentralChimeRatio lowers the chime at the central body by a fifth
	CentralChimeRatio = 2.0 / 3.0

	// SampleRate for the audio speaker
	SampleRate = 44100

	// SpeakerBuffer is the speaker latency
	SpeakerBuffer = 100 * time.Millisecond
)
