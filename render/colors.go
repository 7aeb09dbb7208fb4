package render

// Palette
var (
	RgbBackground = RGB{10, 12, 22}    // Deep space
	RgbNight      = RGB{14, 16, 28}    // Unlit hemisphere
	RgbOrbit      = RGB{70, 80, 110}   // Orbit paths
	RgbAsteroid   = RGB{120, 110, 100} // Belt rubble
	RgbHUDText    = RGB{220, 220, 230}
	RgbHUDDim     = RGB{130, 130, 150}
	RgbHUDAccent  = RGB{255, 200, 80}
	RgbHUDBar     = RGB{22, 26, 44}
	RgbPanel      = RGB{18, 20, 34}
	RgbPanelTitle = RGB{140, 200, 255}
	RgbWarn       = RGB{255, 120, 120}
	RgbCursor     = RGB{255, 165, 0} // Editor selection
)
