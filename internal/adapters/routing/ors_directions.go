package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"walk-route-service/internal/domain"
	"walk-route-service/internal/platform/obs"
	"walk-route-service/internal/ports"
)

type directionsRequest struct {
	Coordinates  [][]float64 `json:"coordinates"`
	Elevation    bool        `json:"elevation"`
	Instructions bool        `json:"instructions"`
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Ascent  *float64 `json:"ascent"`
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
			Segments []struct {
				Steps []struct {
					Instruction string  `json:"instruction"`
					Distance    float64 `json:"distance"`
					Duration    float64 `json:"duration"`
				} `json:"steps"`
			} `json:"segments"`
		} `json:"properties"`
	} `json:"features"`
}

// FetchRoute requests a route visiting the waypoints in order via the ORS
// directions endpoint (GeoJSON flavor). Elevation and turn-by-turn
// instructions are requested; ascent stays nil when the provider omits it.
// Routes are not cached: randomized waypoints make repeat hits unlikely.
func (o *ORSProvider) FetchRoute(
	ctx context.Context,
	waypoints []domain.Coordinates,
	mode domain.TravelMode,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "ors.FetchRoute")(&err)

	if len(waypoints) < 2 {
		return ports.RouteResult{}, fmt.Errorf("fetch route: need at least 2 waypoints, got %d", len(waypoints))
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, mode.Profile())

	coords := make([][]float64, 0, len(waypoints))
	for _, w := range waypoints {
		coords = append(coords, w.CoordsToList())
	}

	payload, err := json.Marshal(directionsRequest{
		Coordinates:  coords,
		Elevation:    true,
		Instructions: true,
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return ports.RouteResult{}, errors.New("directions response contained no routes")
	}

	feat := decoded.Features[0]

	path := make([]domain.Coordinates, 0, len(feat.Geometry.Coordinates))
	for _, pos := range feat.Geometry.Coordinates {
		// Positions are [lon, lat] or [lon, lat, ele] when elevation was requested.
		if len(pos) < 2 {
			continue
		}
		path = append(path, domain.Coordinates{Lon: pos[0], Lat: pos[1]})
	}

	var steps []ports.StepInfo
	for _, seg := range feat.Properties.Segments {
		for _, s := range seg.Steps {
			steps = append(steps, ports.StepInfo{
				Instruction:     s.Instruction,
				DistanceMeters:  int(math.Round(s.Distance)),
				DurationSeconds: int(math.Round(s.Duration)),
			})
		}
	}

	// ORS returns float metrics; round to nearest integer for domain consistency.
	return ports.RouteResult{
		DistanceMeters:  int(math.Round(feat.Properties.Summary.Distance)),
		DurationSeconds: int(math.Round(feat.Properties.Summary.Duration)),
		Coordinates:     path,
		Steps:           steps,
		AscentMeters:    feat.Properties.Ascent,
	}, nil
}
