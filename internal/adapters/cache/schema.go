package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Initialize the cache schema. The DDL is portable between SQLite and
// Postgres, so the local file store and a deployed database share it.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        query TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL,
        fetched_at BIGINT NOT NULL
    );
	`

	createIsochroneCacheQuery := `
	CREATE TABLE IF NOT EXISTS isochrone_cache (
        cache_key TEXT PRIMARY KEY,
        polygon TEXT NOT NULL,
        fetched_at BIGINT NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_isochrone_cache_fetched_at
    ON isochrone_cache(fetched_at);
	`

	statements := []string{
		createGeocodeCacheQuery,
		createIsochroneCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// PruneExpiredIsochrones deletes isochrone rows fetched before the cutoff.
// Postgres placeholder flavor; the dbtool maintenance pass runs this. The
// SQLite store skips pruning since stale rows already read as misses.
func PruneExpiredIsochrones(ctx context.Context, db *sql.DB, cutoff time.Time) (int64, error) {
	if db == nil {
		return 0, errors.New("prune isochrones: DB is nil")
	}

	res, err := db.ExecContext(ctx, `DELETE FROM isochrone_cache WHERE fetched_at < $1;`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune isochrones: delete: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune isochrones: rows affected: %w", err)
	}

	return n, nil
}
