package parameter

import "time"

// Frame loop
const (
	// FrameUpdateInterval is the tick and render interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps the delta fed to the scheduler after a stall
	MaxFrameDelta = 250 * time.Millisecond

	// Frame rate bounds for the -fps flag
	DefaultFPS = 60
	MaxFPS     = 240

	// ShutdownTimeout bounds trace flushing at exit
	ShutdownTimeout = 2 * time.Second

	// EventChannelSize buffers terminal events between poller and loop
	EventChannelSize = 256

	// DefaultSeed drives initial orbital phases and the asteroid belt
	DefaultSeed = 1
)

// Command queue
const (
	// CommandQueueSize must be a power of two
	CommandQueueSize  = 256
	CommandBufferMask = CommandQueueSize - 1
)
