package ports

import (
	"context"
	"walk-route-service/internal/domain"
)

// One turn-by-turn instruction as reported by the routing provider.
type StepInfo struct {
	Instruction     string
	DistanceMeters  int
	DurationSeconds int
}

// Route metrics and geometry for one provider routing response.
// AscentMeters is nil when the provider did not report elevation.
type RouteResult struct {
	DistanceMeters  int
	DurationSeconds int
	Coordinates     []domain.Coordinates
	Steps           []StepInfo
	AscentMeters    *float64
}

// Contract for computing a route through an ordered list of waypoints.
type RouteProvider interface {
	// Return a route visiting the waypoints in order.
	// Fails when the provider returns zero routes or a non-success response.
	FetchRoute(ctx context.Context, waypoints []domain.Coordinates, mode domain.TravelMode) (RouteResult, error)
}
