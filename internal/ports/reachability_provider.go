package ports

import (
	"context"
	"walk-route-service/internal/domain"
)

// Contract for retrieving the area reachable from an origin within a time budget.
type ReachabilityProvider interface {
	// Return the polygon reachable within the given number of minutes.
	FetchReachability(ctx context.Context, origin domain.Coordinates, minutes int, mode domain.TravelMode) (domain.Polygon, error)
}
