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

// SQLGeocodeCache is the Postgres flavor of the geocode cache, for deployments
// that point the service at a shared database.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

func (s *SQLGeocodeCache) Get(ctx context.Context, query string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Coordinates{}, false, errors.New("geocode cache: empty query")
	}

	var c domain.Coordinates
	row := s.DB.QueryRowContext(ctx, `SELECT lon, lat FROM geocode_cache WHERE query = $1;`, query)
	if err := row.Scan(&c.Lon, &c.Lat); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Coordinates{}, false, nil
		}
		return domain.Coordinates{}, false, fmt.Errorf("geocode cache get: %w", err)
	}

	return c, true, nil
}

func (s *SQLGeocodeCache) Put(ctx context.Context, query string, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return errors.New("geocode cache: empty query")
	}

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO geocode_cache (query, lon, lat, fetched_at)
         VALUES ($1, $2, $3, $4)
         ON CONFLICT (query) DO UPDATE SET
            lon = EXCLUDED.lon,
            lat = EXCLUDED.lat,
            fetched_at = EXCLUDED.fetched_at;`,
		query, c.Lon, c.Lat, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("geocode cache put: %w", err)
	}

	return nil
}
