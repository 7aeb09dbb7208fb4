package parameter

// Scene scale for the solar system
const (
	// AUScale is scene units per astronomical unit
	AUScale = 1000.0

	// EarthRadiusScale is the scene radius of a body with radiusEarth = 1
	EarthRadiusScale = 20.0

	// EarthRadiusKm converts km radii (moons, rings) into Earth radii
	EarthRadiusKm = 6371.0

	// RadiusKmToScene converts a km radius to scene units
	RadiusKmToScene = EarthRadiusScale / EarthRadiusKm

	// SunRadiusMultiplier sizes the sun relative to EarthRadiusScale
	// The real ratio (109) would swallow the inner planets
	SunRadiusMultiplier = 3.0

	// MoonDistanceDivisor maps moon orbital distance in km to scene units
	// Deliberately unrelated to AUScale so moons clear their planet's sphere
	MoonDistanceDivisor = 10000.0

	// MaxEccentricity is the clamp applied to invalid catalog eccentricities
	MaxEccentricity = 0.99
)

// Orbit visualization
const (
	// OrbitPathSegments is the number of segments in a precomputed orbit polyline
	OrbitPathSegments = 256

	// AsteroidCount is the number of static asteroid belt points
	AsteroidCount = 1500

	// Asteroid belt extent in AU and scene height
	AsteroidInnerAU = 2.2
	AsteroidOuterAU = 3.2
	AsteroidHeight  = 50.0

	// Ring sampling: concentric bands of RingSegments points
	RingBands    = 4
	RingSegments = 96
)

// Logarithmic time-scale slider: position in [0, TimeSliderMax] maps to 10^[min, max]
const (
	TimeScaleLogMin = -2.0
	TimeScaleLogMax = 4.0
	TimeSliderMax   = 1000.0

	// TimeSliderStep is the slider movement per keypress
	TimeSliderStep = 25.0

	// TimeSliderDefault maps to a time scale of 1.0
	TimeSliderDefault = 1000.0 * (0 - TimeScaleLogMin) / (TimeScaleLogMax - TimeScaleLogMin)

	// EarthMinuteTicks is the tick count for one Earth orbit under the Earth-minute shortcut
	EarthMinuteTicks = 3600.0
)
