package api

import (
	"net/http"
	"walk-route-service/internal/api/handlers"
	"walk-route-service/internal/ports"
	"walk-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(reachability ports.ReachabilityProvider, routes ports.RouteProvider, geocoder ports.Geocoder, sessions *services.SessionStore) http.Handler {
	mux := http.NewServeMux()

	routesHandler := &handlers.RoutesHandler{
		Reachability: reachability,
		Routes:       routes,
		Sessions:     sessions,
	}
	geocodeHandler := &handlers.GeocodeHandler{Geocoder: geocoder}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/routes", routesHandler.Handle)
	mux.HandleFunc("/geocode", geocodeHandler.Search)

	return loggingMiddleware(mux)
}
