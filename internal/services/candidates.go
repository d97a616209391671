package services

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"walk-route-service/internal/domain"
	"walk-route-service/internal/ports"
)

const (
	// Points sampled per generation; twice the waypoints actually needed, so
	// individual routing failures still leave enough candidates.
	waypointSampleCount = 12
	// Reachability queries never drop below this many minutes, keeping the
	// sampled region from degenerating on very short requests.
	minReachabilityMinutes = 5
	// Upper bound on concurrent routing calls per generation.
	maxConcurrentRouteCalls = 5
)

// GenerateCandidates turns an origin and a desired total walk duration into
// routed round-trip candidates.
//
// Best effort: a failed routing call is logged and drops only its own
// candidate. A reachability or sampling failure is fatal and surfaces as a
// *GenerationError, since no candidates can exist without a region to sample.
// Candidates come back in waypoint-pair order.
func GenerateCandidates(
	ctx context.Context,
	req GenerateRoutesRequest,
	reachability ports.ReachabilityProvider,
	routes ports.RouteProvider,
	rnd *rand.Rand,
) ([]domain.RouteCandidate, error) {
	// A round trip covers roughly twice the one-way reachable distance, so the
	// reachability query uses half the requested duration.
	halfDuration := req.TotalDurationMinutes / 2
	if halfDuration < minReachabilityMinutes {
		halfDuration = minReachabilityMinutes
	}

	poly, err := reachability.FetchReachability(ctx, req.Origin, halfDuration, req.Mode)
	if err != nil {
		return nil, &GenerationError{Stage: "fetch reachability", Err: err}
	}

	points, err := SamplePoints(rnd, poly, waypointSampleCount)
	if err != nil {
		return nil, &GenerationError{Stage: "sample waypoints", Err: err}
	}

	pairs := make([]domain.WaypointPair, 0, len(points)/2)
	for i := 0; i+1 < len(points); i += 2 {
		pairs = append(pairs, domain.WaypointPair{First: points[i], Second: points[i+1]})
	}

	// Issue the per-pair routing calls concurrently. Each goroutine owns one
	// result slot, which keeps candidate order stable and isolates failures.
	results := make([]*domain.RouteCandidate, len(pairs))
	sem := make(chan struct{}, maxConcurrentRouteCalls)
	var wg sync.WaitGroup

	for i, pair := range pairs {
		wg.Add(1)
		go func(idx int, pair domain.WaypointPair) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			waypoints := []domain.Coordinates{req.Origin, pair.First, pair.Second, req.Origin}
			res, err := routes.FetchRoute(ctx, waypoints, req.Mode)
			if err != nil {
				log.Printf("route candidate %d skipped: %v", idx, err)
				return
			}

			results[idx] = buildCandidate(pair, res)
		}(i, pair)
	}

	wg.Wait()

	candidates := make([]domain.RouteCandidate, 0, len(pairs))
	for _, c := range results {
		if c != nil {
			candidates = append(candidates, *c)
		}
	}

	return candidates, nil
}

// buildCandidate maps a provider response onto a RouteCandidate, estimating
// elevation at 10 m per km when the provider reported none.
func buildCandidate(pair domain.WaypointPair, res ports.RouteResult) *domain.RouteCandidate {
	c := &domain.RouteCandidate{
		Waypoints:       pair,
		DistanceMeters:  res.DistanceMeters,
		DurationSeconds: res.DurationSeconds,
		Path:            res.Coordinates,
	}

	if len(res.Steps) > 0 {
		c.Steps = make([]domain.RouteStep, 0, len(res.Steps))
		for _, s := range res.Steps {
			c.Steps = append(c.Steps, domain.RouteStep{
				Instruction:     s.Instruction,
				DistanceMeters:  s.DistanceMeters,
				DurationSeconds: s.DurationSeconds,
			})
		}
	}

	if res.AscentMeters != nil {
		c.ElevationMeters = *res.AscentMeters
	} else {
		c.ElevationMeters = float64(res.DistanceMeters) / 1000 * 10
		c.ElevationEstimated = true
	}

	return c
}
