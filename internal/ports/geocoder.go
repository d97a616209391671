package ports

import (
	"context"
	"errors"
	"walk-route-service/internal/domain"
)

// ErrNoMatch reports that the geocoder found nothing for the query.
var ErrNoMatch = errors.New("no geocode results")

// Contract for resolving a free-text place query to coordinates.
type Geocoder interface {
	// Return the best-matching coordinates for the query text, or an error
	// wrapping ErrNoMatch when nothing matches.
	Search(ctx context.Context, text string) (domain.Coordinates, error)
}
