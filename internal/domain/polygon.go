package domain

// Closed area on the map described by one or more coordinate rings.
// Ring 0 is the outer boundary; any further rings are holes cut out of it.
// Rings are treated as implicitly closed (last vertex connects back to the first).
type Polygon struct {
	Rings [][]Coordinates
}

// Empty reports whether the polygon has no usable outer ring.
func (p Polygon) Empty() bool {
	return len(p.Rings) == 0 || len(p.Rings[0]) < 3
}

// BoundingBox returns the axis-aligned extent of the outer ring.
func (p Polygon) BoundingBox() (min Coordinates, max Coordinates) {
	if p.Empty() {
		return Coordinates{}, Coordinates{}
	}

	outer := p.Rings[0]
	min = outer[0]
	max = outer[0]
	for _, c := range outer[1:] {
		if c.Lon < min.Lon {
			min.Lon = c.Lon
		}
		if c.Lon > max.Lon {
			max.Lon = c.Lon
		}
		if c.Lat < min.Lat {
			min.Lat = c.Lat
		}
		if c.Lat > max.Lat {
			max.Lat = c.Lat
		}
	}

	return min, max
}

// Contains reports whether the point lies inside the polygon.
//
// Ray casting with the even-odd rule: a crossing count over every ring means
// points inside a hole ring are counted twice and land outside. Points exactly
// on an edge may land on either side; callers that need strict interior points
// should treat boundary hits as outside-adjacent noise, not a guarantee.
func (p Polygon) Contains(pt Coordinates) bool {
	inside := false
	for _, ring := range p.Rings {
		n := len(ring)
		if n < 3 {
			continue
		}

		j := n - 1
		for i := 0; i < n; i++ {
			vi := ring[i]
			vj := ring[j]

			if (vi.Lat > pt.Lat) != (vj.Lat > pt.Lat) &&
				pt.Lon < (vj.Lon-vi.Lon)*(pt.Lat-vi.Lat)/(vj.Lat-vi.Lat)+vi.Lon {
				inside = !inside
			}
			j = i
		}
	}

	return inside
}
