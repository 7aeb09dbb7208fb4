package parameter

// Camera projection
const (
	// CameraFOVDegrees is the vertical field of view
	CameraFOVDegrees = 75.0

	// CameraNear discards points closer than this along the view axis
	CameraNear = 0.1
)

// Solar system camera
const (
	// CameraStartX/Y/Z is the overview position looking at the sun
	CameraStartX = 0.0
	CameraStartY = 2000.0
	CameraStartZ = 12000.0

	// CameraTargetSmoothing pulls the look-at target toward the focus each tick
	CameraTargetSmoothing = 0.1

	// CameraZoomSmoothing pulls the camera toward the focus viewpoint while auto-zooming
	CameraZoomSmoothing = 0.08

	// CameraZoomStopDistance ends auto-zoom once the camera is this close to its goal
	CameraZoomStopDistance = 10.0

	// CameraFocusRadiusMultiple places the camera this many visual radii from the focus
	CameraFocusRadiusMultiple = 4.0

	// CameraFocusElevation is the vertical share of the focus offset
	CameraFocusElevation = 0.5

	// Manual orbit distance limits
	CameraMinDistance = 100.0
	CameraMaxDistance = 40000.0

	// CameraOrbitStep is the yaw/pitch applied per manual orbit keypress (radians)
	CameraOrbitStep = 0.08

	// CameraZoomStep is the distance factor applied per manual zoom keypress
	CameraZoomStep = 1.15
)

// Three-body (extent-follow) camera
const (
	// ExtentSmoothing pulls target and position toward the framing goal each tick
	ExtentSmoothing = 0.05

	// ExtentPadding enlarges the fitted distance so bodies do not touch the frame edge
	ExtentPadding = 1.5

	// ExtentMinDistance keeps the camera off a collapsed cluster
	ExtentMinDistance = 5.0

	// ExtentElevationDegrees is the viewing angle above the orbital plane
	ExtentElevationDegrees = 45.0
)
