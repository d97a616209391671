package cache

import (
	"encoding/json"
	"fmt"
	"walk-route-service/internal/domain"
)

// Polygons are stored as GeoJSON-style ring arrays, outer ring first.

func marshalPolygon(p domain.Polygon) (string, error) {
	rings := make([][][]float64, 0, len(p.Rings))
	for _, ring := range p.Rings {
		positions := make([][]float64, 0, len(ring))
		for _, c := range ring {
			positions = append(positions, c.CoordsToList())
		}
		rings = append(rings, positions)
	}

	encoded, err := json.Marshal(rings)
	if err != nil {
		return "", fmt.Errorf("marshal polygon: %w", err)
	}

	return string(encoded), nil
}

func unmarshalPolygon(s string) (domain.Polygon, error) {
	var rings [][][]float64
	if err := json.Unmarshal([]byte(s), &rings); err != nil {
		return domain.Polygon{}, fmt.Errorf("unmarshal polygon: %w", err)
	}

	poly := domain.Polygon{Rings: make([][]domain.Coordinates, 0, len(rings))}
	for _, ring := range rings {
		coords := make([]domain.Coordinates, 0, len(ring))
		for _, pos := range ring {
			if len(pos) < 2 {
				return domain.Polygon{}, fmt.Errorf("unmarshal polygon: position with %d values", len(pos))
			}
			coords = append(coords, domain.Coordinates{Lon: pos[0], Lat: pos[1]})
		}
		poly.Rings = append(poly.Rings, coords)
	}

	return poly, nil
}
