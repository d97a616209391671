package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"walk-route-service/internal/domain"
	"walk-route-service/internal/platform/obs"
	"walk-route-service/internal/ports"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Search resolves a free-text place query using ORS geocoding (/geocode/search),
// taking the best match. Results are cached by normalized query text.
func (o *ORSProvider) Search(ctx context.Context, text string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Search")(&err)

	norm := o.normalize(text)
	if norm == "" {
		return domain.Coordinates{}, errors.New("search: query text must be non-empty")
	}

	if o.geocodeCache != nil {
		c, ok, err := o.geocodeCache.Get(ctx, norm)
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("search: geocode cache read: %w", err)
		}
		if ok {
			return c, nil
		}
	}

	endpoint := o.baseURL + "/geocode/search"

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("%w for %q", ports.ErrNoMatch, text)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", text)
	}

	c := domain.Coordinates{Lon: coords[0], Lat: coords[1]}

	if o.geocodeCache != nil {
		if err := o.geocodeCache.Put(ctx, norm, c); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return c, nil
}
