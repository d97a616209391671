package handlers

import (
	"errors"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"
	"walk-route-service/internal/api/dto"
	"walk-route-service/internal/domain"
	"walk-route-service/internal/ports"
	"walk-route-service/internal/services"
)

// RoutesHandler exposes round-trip route generation and the per-session
// result set it produces.
type RoutesHandler struct {
	Reachability ports.ReachabilityProvider
	Routes       ports.RouteProvider
	Sessions     *services.SessionStore
}

func (h *RoutesHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.generate(w, r)
	case http.MethodGet:
		h.current(w, r)
	case http.MethodDelete:
		h.clear(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// generate runs the full pipeline: reachability polygon, waypoint sampling,
// routing calls, then duration filtering. When the request carries a session
// ID the result replaces that session's route set, unless a newer generation
// started for the same session in the meantime.
func (h *RoutesHandler) generate(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Origin == nil {
		writeError(w, r, http.StatusBadRequest, "origin is required")
		return
	}
	origin := domain.Coordinates{Lon: req.Origin.Lon, Lat: req.Origin.Lat}
	if err := origin.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.DurationMinutes < 1 || req.DurationMinutes > 720 {
		writeError(w, r, http.StatusBadRequest, "duration_minutes must be between 1 and 720")
		return
	}

	mode, err := domain.ParseTravelMode(req.Mode)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	var generation uint64
	if sessionID != "" {
		generation = h.Sessions.Begin(sessionID)
	}

	svcReq := services.GenerateRoutesRequest{
		Origin:               origin,
		TotalDurationMinutes: req.DurationMinutes,
		Mode:                 mode,
	}

	// Fresh source per request; rand.Rand is not safe for concurrent use.
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	set, err := services.GenerateRoutes(r.Context(), svcReq, h.Reachability, h.Routes, rnd)
	if err != nil {
		log.Printf("generate routes failed: %v", err)
		var genErr *services.GenerationError
		if errors.As(err, &genErr) {
			writeError(w, r, http.StatusBadGateway, "route generation failed")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if sessionID != "" && !h.Sessions.Commit(sessionID, generation, set) {
		log.Printf("session %s: result superseded by a newer generation", sessionID)
	}

	writeJSON(w, r, http.StatusOK, dto.NewRouteSetResponse(set))
}

func (h *RoutesHandler) current(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		writeError(w, r, http.StatusBadRequest, "session_id is required")
		return
	}

	set, ok := h.Sessions.Current(sessionID)
	if !ok {
		writeError(w, r, http.StatusNotFound, "no routes for session")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRouteSetResponse(set))
}

func (h *RoutesHandler) clear(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		writeError(w, r, http.StatusBadRequest, "session_id is required")
		return
	}

	h.Sessions.Clear(sessionID)
	w.WriteHeader(http.StatusNoContent)
}
