package cache

import (
	"context"
	"testing"
	"time"
	"walk-route-service/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisCache(t *testing.T) (*RedisIsochroneCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisIsochroneCache(client, time.Minute), mr
}

func TestRedisIsochroneCacheRoundTrip(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "key"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	poly := domain.Polygon{Rings: [][]domain.Coordinates{{
		{Lon: -74.03, Lat: 40.70}, {Lon: -73.98, Lat: 40.70}, {Lon: -73.98, Lat: 40.73},
	}}}
	if err := c.Put(ctx, "key", poly); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || len(got.Rings) != 1 || len(got.Rings[0]) != 3 {
		t.Fatalf("expected the stored polygon back, got ok=%v %+v", ok, got)
	}
	if got.Rings[0][0] != (domain.Coordinates{Lon: -74.03, Lat: 40.70}) {
		t.Fatalf("polygon corrupted: %+v", got.Rings[0])
	}
}

func TestRedisIsochroneCacheExpiry(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	poly := domain.Polygon{Rings: [][]domain.Coordinates{{
		{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1},
	}}}
	if err := c.Put(ctx, "key", poly); err != nil {
		t.Fatalf("put: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, ok, err := c.Get(ctx, "key"); err != nil || ok {
		t.Fatalf("expected an expired miss, got ok=%v err=%v", ok, err)
	}
}
