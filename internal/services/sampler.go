package services

import (
	"errors"
	"fmt"
	"math/rand"
	"walk-route-service/internal/domain"
)

// Rejection sampling gives up after this many draws per requested point.
const sampleAttemptsPerPoint = 1000

// ErrSamplingExhausted reports that rejection sampling ran out of attempts,
// which happens when the polygon covers a negligible share of its bounding box.
var ErrSamplingExhausted = errors.New("point sampling exhausted its attempt budget")

// SamplePoints draws count uniformly distributed points strictly inside the polygon.
//
// Draws uniform points in the bounding box and keeps those the polygon contains.
// The attempt budget bounds the loop so a degenerate polygon fails instead of
// stalling. The rand source is used from a single goroutine; inject a seeded
// source for deterministic tests. No ordering guarantee among returned points.
func SamplePoints(rnd *rand.Rand, poly domain.Polygon, count int) ([]domain.Coordinates, error) {
	if count < 0 {
		return nil, fmt.Errorf("sample points: count must be non-negative, got %d", count)
	}
	if count == 0 {
		return []domain.Coordinates{}, nil
	}
	if poly.Empty() {
		return nil, fmt.Errorf("sample points: %w: polygon has no usable ring", ErrSamplingExhausted)
	}

	min, max := poly.BoundingBox()
	lonSpan := max.Lon - min.Lon
	latSpan := max.Lat - min.Lat

	budget := count * sampleAttemptsPerPoint
	points := make([]domain.Coordinates, 0, count)

	for attempt := 0; attempt < budget && len(points) < count; attempt++ {
		pt := domain.Coordinates{
			Lon: min.Lon + rnd.Float64()*lonSpan,
			Lat: min.Lat + rnd.Float64()*latSpan,
		}
		if poly.Contains(pt) {
			points = append(points, pt)
		}
	}

	if len(points) < count {
		return nil, fmt.Errorf(
			"sample points: %w: found %d of %d points in %d attempts",
			ErrSamplingExhausted, len(points), count, budget,
		)
	}

	return points, nil
}
