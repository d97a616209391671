package domain

import "fmt"

// Two sampled intermediate stops for a single candidate round trip.
// Both points lie inside the reachability polygon they were drawn from.
type WaypointPair struct {
	First  Coordinates
	Second Coordinates
}

// One turn-by-turn instruction along a route.
type RouteStep struct {
	Instruction     string
	DistanceMeters  int
	DurationSeconds int
}

// RouteCandidate is the result of routing origin -> First -> Second -> origin.
// It is immutable planning data: created per waypoint pair, filtered by duration,
// and discarded wholesale on the next generation request.
// ElevationMeters is the provider-reported ascent when available; otherwise an
// estimate flagged by ElevationEstimated.
type RouteCandidate struct {
	Waypoints          WaypointPair
	DistanceMeters     int
	DurationSeconds    int
	Path               []Coordinates
	Steps              []RouteStep
	ElevationMeters    float64
	ElevationEstimated bool
}

// Outcome of a generation request after duration filtering.
type GenerationStatus string

const (
	// Three routes within budget were found.
	StatusOk GenerationStatus = "ok"
	// Fewer than three routes survived the duration filter.
	StatusPartialResults GenerationStatus = "partial_results"
	// No generated route fit the duration budget.
	StatusNoResultsFound GenerationStatus = "no_results_found"
)

// The ordered set of routes currently presented for one generation request.
// Size is always within [0, 3].
type RouteSet struct {
	Routes []RouteCandidate
	Status GenerationStatus
}

// Travel mode for provider routing and reachability queries.
type TravelMode string

const (
	ModeWalking TravelMode = "walking"
	ModeCycling TravelMode = "cycling"
	ModeDriving TravelMode = "driving"
)

// ParseTravelMode maps the API-facing mode strings; empty input defaults to walking.
func ParseTravelMode(s string) (TravelMode, error) {
	switch s {
	case "":
		return ModeWalking, nil
	case string(ModeWalking):
		return ModeWalking, nil
	case string(ModeCycling):
		return ModeCycling, nil
	case string(ModeDriving):
		return ModeDriving, nil
	}
	return "", fmt.Errorf("unknown travel mode %q", s)
}

// Profile returns the OpenRouteService profile name for the mode.
func (m TravelMode) Profile() string {
	switch m {
	case ModeCycling:
		return "cycling-regular"
	case ModeDriving:
		return "driving-car"
	default:
		return "foot-walking"
	}
}
