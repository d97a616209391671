package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"walk-route-service/internal/domain"
	"walk-route-service/internal/platform/obs"
)

type isochroneRequest struct {
	Locations [][]float64 `json:"locations"`
	Range     []int       `json:"range"`
	RangeType string      `json:"range_type"`
}

type isochroneResponse struct {
	Features []struct {
		Geometry struct {
			Type        string        `json:"type"`
			Coordinates [][][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// FetchReachability returns the polygon reachable within the given minutes of
// the origin using the ORS isochrones endpoint (range is in seconds there).
// Responses are cached; a cache read failure aborts, a write failure only logs.
func (o *ORSProvider) FetchReachability(
	ctx context.Context,
	origin domain.Coordinates,
	minutes int,
	mode domain.TravelMode,
) (_ domain.Polygon, err error) {
	defer obs.Time(ctx, "ors.FetchReachability")(&err)

	if minutes <= 0 {
		return domain.Polygon{}, fmt.Errorf("fetch reachability: minutes must be positive, got %d", minutes)
	}

	key := isochroneCacheKey(origin, minutes, mode.Profile())

	if o.isochroneCache != nil {
		poly, ok, err := o.isochroneCache.Get(ctx, key)
		if err != nil {
			return domain.Polygon{}, fmt.Errorf("fetch reachability: isochrone cache read: %w", err)
		}
		if ok {
			return poly, nil
		}
	}

	endpoint := fmt.Sprintf("%s/v2/isochrones/%s", o.baseURL, mode.Profile())

	payload, err := json.Marshal(isochroneRequest{
		Locations: [][]float64{origin.CoordsToList()},
		Range:     []int{minutes * 60},
		RangeType: "time",
	})
	if err != nil {
		return domain.Polygon{}, fmt.Errorf("marshal isochrone request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return domain.Polygon{}, fmt.Errorf("isochrone request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded isochroneResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Polygon{}, fmt.Errorf("decode isochrone response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Polygon{}, errors.New("isochrone response contained no features")
	}

	geom := decoded.Features[0].Geometry
	if geom.Type != "Polygon" {
		return domain.Polygon{}, fmt.Errorf("unexpected isochrone geometry type %q", geom.Type)
	}

	poly := polygonFromRings(geom.Coordinates)
	if poly.Empty() {
		return domain.Polygon{}, errors.New("isochrone response contained a degenerate polygon")
	}

	if o.isochroneCache != nil {
		if err := o.isochroneCache.Put(ctx, key, poly); err != nil {
			log.Printf("isochrone cache write failed: %v", err)
		}
	}

	return poly, nil
}

// Rounding origins to 5 decimals (about a meter) lets nearby map clicks share
// one cache entry.
func isochroneCacheKey(origin domain.Coordinates, minutes int, profile string) string {
	return fmt.Sprintf("%.5f,%.5f|%d|%s", origin.Lon, origin.Lat, minutes, profile)
}

func polygonFromRings(rings [][][]float64) domain.Polygon {
	out := domain.Polygon{Rings: make([][]domain.Coordinates, 0, len(rings))}
	for _, ring := range rings {
		coords := make([]domain.Coordinates, 0, len(ring))
		for _, pos := range ring {
			if len(pos) < 2 {
				continue
			}
			coords = append(coords, domain.Coordinates{Lon: pos[0], Lat: pos[1]})
		}
		out.Rings = append(out.Rings, coords)
	}
	return out
}
