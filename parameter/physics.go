package parameter

// N-body integrator constants
const (
	// GravitationalConstant is G in scene units; the presets are authored for G = 1
	GravitationalConstant = 1.0

	// BaseTimeStep is the integrator step per tick at speed 1.0
	BaseTimeStep = 0.004

	// SofteningDistanceSq is the squared separation under which a pair contributes no force
	SofteningDistanceSq = 0.01

	// BodyRadiusScale maps cube-root mass to rendering radius
	BodyRadiusScale = 0.2

	// BodyRadiusFloor keeps tiny masses visible
	BodyRadiusFloor = 0.05

	// DefaultMass replaces missing, non-numeric or non-positive mass input
	DefaultMass = 1.0

	// DefaultComponent replaces missing or non-numeric position/velocity input
	DefaultComponent = 0.0
)

// Simulation speed control (multiplies BaseTimeStep)
const (
	SpeedDefault = 1.0
	SpeedMin     = 0.1
	SpeedMax     = 5.0
	SpeedStep    = 0.1
)
