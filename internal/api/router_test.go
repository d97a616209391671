package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"walk-route-service/internal/adapters/routing"
	"walk-route-service/internal/api/dto"
	"walk-route-service/internal/domain"
	"walk-route-service/internal/ports"
	"walk-route-service/internal/services"
)

var testOrigin = domain.Coordinates{Lon: -74.006, Lat: 40.7128}

func testPolygon() domain.Polygon {
	return domain.Polygon{Rings: [][]domain.Coordinates{{
		{Lon: testOrigin.Lon - 0.02, Lat: testOrigin.Lat - 0.02},
		{Lon: testOrigin.Lon + 0.02, Lat: testOrigin.Lat - 0.02},
		{Lon: testOrigin.Lon + 0.02, Lat: testOrigin.Lat + 0.02},
		{Lon: testOrigin.Lon - 0.02, Lat: testOrigin.Lat + 0.02},
	}}}
}

func defaultRouter() http.Handler {
	reach := &routing.MockReachabilityProvider{Poly: testPolygon()}
	routeProv := &routing.MockRouteProvider{
		Fetch: func(waypoints []domain.Coordinates, _ domain.TravelMode) (ports.RouteResult, error) {
			return ports.RouteResult{DistanceMeters: 5000, DurationSeconds: 1500, Coordinates: waypoints}, nil
		},
	}
	geocoder := &routing.MockGeocoder{Result: testOrigin}
	return NewRouter(reach, routeProv, geocoder, services.NewSessionStore())
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRoutesEndpointGeneratesRoutes(t *testing.T) {
	router := defaultRouter()

	rec := doRequest(t, router, http.MethodPost, "/routes",
		`{"origin": {"lon": -74.006, "lat": 40.7128}, "duration_minutes": 30}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res dto.RouteSetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.Status != "ok" {
		t.Fatalf("expected status ok, got %q", res.Status)
	}
	if len(res.Routes) != 3 {
		t.Fatalf("expected 3 routes, got %d", len(res.Routes))
	}

	rt := res.Routes[0]
	if rt.DistanceMeters != 5000 || rt.DistanceKm != 5 {
		t.Fatalf("unexpected distance: %+v", rt)
	}
	if math.Abs(rt.DistanceMiles-3.106855) > 1e-6 {
		t.Fatalf("expected 3.106855 miles, got %v", rt.DistanceMiles)
	}
	if rt.DurationSeconds != 1500 {
		t.Fatalf("expected duration 1500, got %d", rt.DurationSeconds)
	}
	if !rt.ElevationEstimated || rt.ElevationMeters != 50 {
		t.Fatalf("expected estimated 50m elevation, got %+v", rt)
	}
	if math.Abs(rt.ElevationFeet-164.042) > 1e-6 {
		t.Fatalf("expected 164.042 feet, got %v", rt.ElevationFeet)
	}
	if len(rt.Waypoints) != 2 {
		t.Fatalf("expected 2 waypoints, got %d", len(rt.Waypoints))
	}
	if len(rt.Path) != 4 {
		t.Fatalf("expected the 4-point round trip path, got %d", len(rt.Path))
	}
}

func TestRoutesEndpointValidation(t *testing.T) {
	router := defaultRouter()

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"unknown field", `{"bogus": 1}`},
		{"trailing object", `{"origin": {"lon": 0, "lat": 0}, "duration_minutes": 30}{}`},
		{"missing origin", `{"duration_minutes": 30}`},
		{"zero duration", `{"origin": {"lon": -74.006, "lat": 40.7128}, "duration_minutes": 0}`},
		{"excessive duration", `{"origin": {"lon": -74.006, "lat": 40.7128}, "duration_minutes": 1000}`},
		{"longitude out of range", `{"origin": {"lon": 200, "lat": 0}, "duration_minutes": 30}`},
		{"unknown mode", `{"origin": {"lon": -74.006, "lat": 40.7128}, "duration_minutes": 30, "mode": "rocket"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/routes", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRoutesEndpointSessionFlow(t *testing.T) {
	router := defaultRouter()

	rec := doRequest(t, router, http.MethodPost, "/routes",
		`{"origin": {"lon": -74.006, "lat": 40.7128}, "duration_minutes": 30, "session_id": "s1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/routes?session_id=s1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for the stored set, got %d", rec.Code)
	}

	var res dto.RouteSetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Status != "ok" || len(res.Routes) != 3 {
		t.Fatalf("stored set does not match the generated one: %+v", res)
	}

	rec = doRequest(t, router, http.MethodDelete, "/routes?session_id=s1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/routes?session_id=s1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after clearing, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/routes", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without session_id, got %d", rec.Code)
	}
}

func TestRoutesEndpointMethodNotAllowed(t *testing.T) {
	router := defaultRouter()

	rec := doRequest(t, router, http.MethodPut, "/routes", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, POST, DELETE" {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}

func TestRoutesEndpointUpstreamFailure(t *testing.T) {
	reach := &routing.MockReachabilityProvider{Err: errors.New("isochrone service down")}
	routeProv := &routing.MockRouteProvider{
		Fetch: func(waypoints []domain.Coordinates, _ domain.TravelMode) (ports.RouteResult, error) {
			return ports.RouteResult{}, nil
		},
	}
	router := NewRouter(reach, routeProv, &routing.MockGeocoder{}, services.NewSessionStore())

	rec := doRequest(t, router, http.MethodPost, "/routes",
		`{"origin": {"lon": -74.006, "lat": 40.7128}, "duration_minutes": 30}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 when no polygon is available, got %d", rec.Code)
	}
}

func TestGeocodeEndpoint(t *testing.T) {
	router := defaultRouter()

	rec := doRequest(t, router, http.MethodGet, "/geocode?text=berlin", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var res dto.GeocodeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Query != "berlin" || res.Lon != testOrigin.Lon || res.Lat != testOrigin.Lat {
		t.Fatalf("unexpected geocode response: %+v", res)
	}

	rec = doRequest(t, router, http.MethodGet, "/geocode", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without text, got %d", rec.Code)
	}
}

func TestGeocodeEndpointNoMatch(t *testing.T) {
	router := NewRouter(
		&routing.MockReachabilityProvider{},
		&routing.MockRouteProvider{Fetch: func([]domain.Coordinates, domain.TravelMode) (ports.RouteResult, error) {
			return ports.RouteResult{}, nil
		}},
		&routing.MockGeocoder{Err: ports.ErrNoMatch},
		services.NewSessionStore(),
	)

	rec := doRequest(t, router, http.MethodGet, "/geocode?text=nowhere", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for no match, got %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := defaultRouter()

	rec := doRequest(t, router, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
