package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"walk-route-service/internal/domain"
	"walk-route-service/internal/platform/obs"
)

// SQLIsochroneCache is the Postgres flavor of the isochrone cache. Reads treat
// rows older than the TTL as misses; the dbtool prune pass removes them.
type SQLIsochroneCache struct {
	DB  *sql.DB
	ttl time.Duration
}

func NewSQLIsochroneCache(db *sql.DB, ttl time.Duration) *SQLIsochroneCache {
	return &SQLIsochroneCache{DB: db, ttl: ttl}
}

func (s *SQLIsochroneCache) Get(ctx context.Context, key string) (_ domain.Polygon, _ bool, err error) {
	defer obs.Time(ctx, "isochrone.cache.Get")(&err)

	if s.DB == nil {
		return domain.Polygon{}, false, errors.New("isochrone cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return domain.Polygon{}, false, errors.New("isochrone cache: empty key")
	}

	var (
		encoded   string
		fetchedAt int64
	)
	row := s.DB.QueryRowContext(ctx, `SELECT polygon, fetched_at FROM isochrone_cache WHERE cache_key = $1;`, key)
	if err := row.Scan(&encoded, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Polygon{}, false, nil
		}
		return domain.Polygon{}, false, fmt.Errorf("isochrone cache get: %w", err)
	}

	if s.ttl > 0 && time.Since(time.Unix(fetchedAt, 0)) > s.ttl {
		return domain.Polygon{}, false, nil
	}

	poly, err := unmarshalPolygon(encoded)
	if err != nil {
		return domain.Polygon{}, false, fmt.Errorf("isochrone cache get: %w", err)
	}

	return poly, true, nil
}

func (s *SQLIsochroneCache) Put(ctx context.Context, key string, poly domain.Polygon) error {
	if s.DB == nil {
		return errors.New("isochrone cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("isochrone cache: empty key")
	}

	encoded, err := marshalPolygon(poly)
	if err != nil {
		return fmt.Errorf("isochrone cache put: %w", err)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO isochrone_cache (cache_key, polygon, fetched_at)
         VALUES ($1, $2, $3)
         ON CONFLICT (cache_key) DO UPDATE SET
            polygon = EXCLUDED.polygon,
            fetched_at = EXCLUDED.fetched_at;`,
		key, encoded, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("isochrone cache put: %w", err)
	}

	return nil
}
