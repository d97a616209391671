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

// SqliteGeocodeCache is a SQLite backed cache mapping place queries to
// geographic coordinates.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Get fetches cached coordinates for the query, if present.
func (s *SqliteGeocodeCache) Get(ctx context.Context, query string) (domain.Coordinates, bool, error) {
	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Coordinates{}, false, errors.New("geocode cache: empty query")
	}

	var c domain.Coordinates
	row := s.DB.QueryRowContext(ctx, `SELECT lon, lat FROM geocode_cache WHERE query = ?;`, query)
	if err := row.Scan(&c.Lon, &c.Lat); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Coordinates{}, false, nil
		}
		return domain.Coordinates{}, false, fmt.Errorf("geocode cache get: %w", err)
	}

	return c, true, nil
}

// Put stores a query to coordinate mapping in the cache.
func (s *SqliteGeocodeCache) Put(ctx context.Context, query string, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return errors.New("geocode cache: empty query")
	}

	_, err := s.DB.ExecContext(ctx,
		`INSERT OR REPLACE INTO geocode_cache (query, lon, lat, fetched_at) VALUES (?, ?, ?, ?);`,
		query, c.Lon, c.Lat, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("geocode cache put: %w", err)
	}

	return nil
}
