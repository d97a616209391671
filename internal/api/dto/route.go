package dto

import "walk-route-service/internal/domain"

// GenerateRequest is the POST /routes payload.
type GenerateRequest struct {
	Origin          *CoordinateRequest `json:"origin"`
	DurationMinutes int                `json:"duration_minutes"`
	Mode            string             `json:"mode"`
	SessionID       string             `json:"session_id"`
}

type CoordinateRequest struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type CoordinateResponse struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type RouteSetResponse struct {
	Status string          `json:"status"`
	Routes []RouteResponse `json:"routes"`
}

// RouteResponse reports each metric in both metric and imperial units so the
// UI can switch display without recomputing.
type RouteResponse struct {
	DistanceMeters     int                  `json:"distance_meters"`
	DistanceKm         float64              `json:"distance_km"`
	DistanceMiles      float64              `json:"distance_miles"`
	DurationSeconds    int                  `json:"duration_seconds"`
	ElevationMeters    float64              `json:"elevation_meters"`
	ElevationFeet      float64              `json:"elevation_feet"`
	ElevationEstimated bool                 `json:"elevation_estimated"`
	Waypoints          []CoordinateResponse `json:"waypoints"`
	Path               []CoordinateResponse `json:"path"`
	Steps              []StepResponse       `json:"steps,omitempty"`
}

type StepResponse struct {
	Instruction     string `json:"instruction"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
}

func NewRouteSetResponse(set domain.RouteSet) RouteSetResponse {
	res := RouteSetResponse{
		Status: string(set.Status),
		Routes: make([]RouteResponse, 0, len(set.Routes)),
	}
	for _, rt := range set.Routes {
		res.Routes = append(res.Routes, newRouteResponse(rt))
	}
	return res
}

func newRouteResponse(rt domain.RouteCandidate) RouteResponse {
	km := float64(rt.DistanceMeters) / 1000

	path := make([]CoordinateResponse, 0, len(rt.Path))
	for _, c := range rt.Path {
		path = append(path, CoordinateResponse{Lon: c.Lon, Lat: c.Lat})
	}

	steps := make([]StepResponse, 0, len(rt.Steps))
	for _, s := range rt.Steps {
		steps = append(steps, StepResponse{
			Instruction:     s.Instruction,
			DistanceMeters:  s.DistanceMeters,
			DurationSeconds: s.DurationSeconds,
		})
	}

	return RouteResponse{
		DistanceMeters: rt.DistanceMeters,
		DistanceKm:     km,
		DistanceMiles:  domain.KmToMiles(km),

		DurationSeconds: rt.DurationSeconds,

		ElevationMeters:    rt.ElevationMeters,
		ElevationFeet:      domain.MetersToFeet(rt.ElevationMeters),
		ElevationEstimated: rt.ElevationEstimated,

		Waypoints: []CoordinateResponse{
			{Lon: rt.Waypoints.First.Lon, Lat: rt.Waypoints.First.Lat},
			{Lon: rt.Waypoints.Second.Lon, Lat: rt.Waypoints.Second.Lat},
		},
		Path:  path,
		Steps: steps,
	}
}
