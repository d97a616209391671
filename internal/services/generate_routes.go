package services

import (
	"context"
	"fmt"
	"math/rand"
	"walk-route-service/internal/domain"
	"walk-route-service/internal/platform/obs"
	"walk-route-service/internal/ports"
)

// GenerationError is the fatal outcome of a generate request: no routes could
// be produced at all. Per-candidate routing failures never surface here; they
// only shrink the candidate list.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("route generation failed: %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

type GenerateRoutesRequest struct {
	Origin               domain.Coordinates
	TotalDurationMinutes int
	Mode                 domain.TravelMode
}

// GenerateRoutes runs the full pipeline for one generate action: reachability
// lookup, waypoint sampling, candidate routing, then duration filtering.
// The returned status describes how many of the desired routes survived the
// filter; it is part of the result, not an error.
func GenerateRoutes(
	ctx context.Context,
	req GenerateRoutesRequest,
	reachability ports.ReachabilityProvider,
	routes ports.RouteProvider,
	rnd *rand.Rand,
) (_ domain.RouteSet, err error) {
	defer obs.Time(ctx, "services.GenerateRoutes")(&err)

	candidates, err := GenerateCandidates(ctx, req, reachability, routes, rnd)
	if err != nil {
		return domain.RouteSet{}, err
	}

	selected, status := SelectRoutes(candidates, req.TotalDurationMinutes)
	return domain.RouteSet{Routes: selected, Status: status}, nil
}
