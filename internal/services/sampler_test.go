package services

import (
	"errors"
	"math/rand"
	"testing"
	"walk-route-service/internal/domain"
)

func squarePolygon(center domain.Coordinates, half float64) domain.Polygon {
	return domain.Polygon{Rings: [][]domain.Coordinates{{
		{Lon: center.Lon - half, Lat: center.Lat - half},
		{Lon: center.Lon + half, Lat: center.Lat - half},
		{Lon: center.Lon + half, Lat: center.Lat + half},
		{Lon: center.Lon - half, Lat: center.Lat + half},
	}}}
}

func TestSamplePointsInsidePolygon(t *testing.T) {
	poly := squarePolygon(domain.Coordinates{Lon: -74.006, Lat: 40.7128}, 0.02)
	rnd := rand.New(rand.NewSource(1))

	points, err := SamplePoints(rnd, poly, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 12 {
		t.Fatalf("expected 12 points, got %d", len(points))
	}
	for i, pt := range points {
		if !poly.Contains(pt) {
			t.Fatalf("point %d (%v) is outside the polygon", i, pt)
		}
	}
}

func TestSamplePointsZeroCount(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	points, err := SamplePoints(rnd, squarePolygon(domain.Coordinates{}, 1), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 0 {
		t.Fatalf("expected no points, got %d", len(points))
	}
}

func TestSamplePointsNegativeCount(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	if _, err := SamplePoints(rnd, squarePolygon(domain.Coordinates{}, 1), -1); err == nil {
		t.Fatal("expected error for negative count")
	}
}

func TestSamplePointsEmptyPolygon(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	_, err := SamplePoints(rnd, domain.Polygon{}, 3)
	if !errors.Is(err, ErrSamplingExhausted) {
		t.Fatalf("expected ErrSamplingExhausted, got %v", err)
	}
}

func TestSamplePointsExhaustsOnDegeneratePolygon(t *testing.T) {
	// A zero-area sliver: bounding box draws never land inside.
	poly := domain.Polygon{Rings: [][]domain.Coordinates{{
		{Lon: 0, Lat: 0},
		{Lon: 1, Lat: 1},
		{Lon: 2, Lat: 2},
	}}}
	rnd := rand.New(rand.NewSource(1))

	_, err := SamplePoints(rnd, poly, 2)
	if !errors.Is(err, ErrSamplingExhausted) {
		t.Fatalf("expected ErrSamplingExhausted, got %v", err)
	}
}
