package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"walk-route-service/internal/domain"
)

// SqliteIsochroneCache is a SQLite backed cache for reachability polygons.
// Entries older than the TTL read as misses; stale rows stay on disk until
// the next Put overwrites them.
type SqliteIsochroneCache struct {
	DB  *sql.DB
	ttl time.Duration
}

func NewSqliteIsochroneCache(db *sql.DB, ttl time.Duration) *SqliteIsochroneCache {
	return &SqliteIsochroneCache{DB: db, ttl: ttl}
}

func (s *SqliteIsochroneCache) Get(ctx context.Context, key string) (domain.Polygon, bool, error) {
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
	row := s.DB.QueryRowContext(ctx, `SELECT polygon, fetched_at FROM isochrone_cache WHERE cache_key = ?;`, key)
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

func (s *SqliteIsochroneCache) Put(ctx context.Context, key string, poly domain.Polygon) error {
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
		`INSERT OR REPLACE INTO isochrone_cache (cache_key, polygon, fetched_at) VALUES (?, ?, ?);`,
		key, encoded, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("isochrone cache put: %w", err)
	}

	return nil
}
