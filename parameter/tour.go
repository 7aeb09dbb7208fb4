package parameter

import "time"

// Guided tour
const (
	// TourSmoothing pulls camera and target toward the current stop each tick
	TourSmoothing = 0.05

	// TourArrivalDistance switches the tour from moving to waiting
	TourArrivalDistance = 100.0

	// TourWaitCentral is the hold time at the central body
	TourWaitCentral = 2 * time.Second

	// TourWaitPlanet is the hold time at every other stop
	TourWaitPlanet = 5 * time.Second
)
