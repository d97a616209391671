package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"walk-route-service/internal/api/dto"
	"walk-route-service/internal/ports"
)

// GeocodeHandler resolves free-text place queries to coordinates so the UI
// can center the map before generating routes.
type GeocodeHandler struct {
	Geocoder ports.Geocoder
}

func (h *GeocodeHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	text := strings.TrimSpace(r.URL.Query().Get("text"))
	if text == "" {
		writeError(w, r, http.StatusBadRequest, "text is required")
		return
	}

	c, err := h.Geocoder.Search(r.Context(), text)
	if err != nil {
		if errors.Is(err, ports.ErrNoMatch) {
			writeError(w, r, http.StatusNotFound, "no results for query")
			return
		}
		log.Printf("geocode failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "geocoding failed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.GeocodeResponse{Query: text, Lon: c.Lon, Lat: c.Lat})
}
