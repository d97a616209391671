package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"walk-route-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisIsochroneCache keeps reachability polygons in Redis. Freshness rides
// on the native key TTL, so no prune pass is needed.
type RedisIsochroneCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisIsochroneCache(client *redis.Client, ttl time.Duration) *RedisIsochroneCache {
	return &RedisIsochroneCache{client: client, ttl: ttl}
}

func redisIsochroneKey(key string) string {
	return "isochrone:" + key
}

func (r *RedisIsochroneCache) Get(ctx context.Context, key string) (domain.Polygon, bool, error) {
	if r.client == nil {
		return domain.Polygon{}, false, errors.New("isochrone cache: redis client is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return domain.Polygon{}, false, errors.New("isochrone cache: empty key")
	}

	encoded, err := r.client.Get(ctx, redisIsochroneKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Polygon{}, false, nil
		}
		return domain.Polygon{}, false, fmt.Errorf("isochrone cache get: %w", err)
	}

	poly, err := unmarshalPolygon(encoded)
	if err != nil {
		return domain.Polygon{}, false, fmt.Errorf("isochrone cache get: %w", err)
	}

	return poly, true, nil
}

func (r *RedisIsochroneCache) Put(ctx context.Context, key string, poly domain.Polygon) error {
	if r.client == nil {
		return errors.New("isochrone cache: redis client is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("isochrone cache: empty key")
	}

	encoded, err := marshalPolygon(poly)
	if err != nil {
		return fmt.Errorf("isochrone cache put: %w", err)
	}

	if err := r.client.Set(ctx, redisIsochroneKey(key), encoded, r.ttl).Err(); err != nil {
		return fmt.Errorf("isochrone cache put: %w", err)
	}

	return nil
}
