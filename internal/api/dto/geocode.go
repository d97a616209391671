package dto

// GeocodeResponse is the best match for a free-text place query.
type GeocodeResponse struct {
	Query string  `json:"query"`
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
}
