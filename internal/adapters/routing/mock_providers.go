package routing

import (
	"context"
	"sync"
	"walk-route-service/internal/domain"
	"walk-route-service/internal/ports"
)

// MockReachabilityProvider returns a fixed polygon and records the minutes of
// every request.
type MockReachabilityProvider struct {
	Poly domain.Polygon
	Err  error

	mu      sync.Mutex
	Minutes []int
}

func (m *MockReachabilityProvider) FetchReachability(ctx context.Context, origin domain.Coordinates, minutes int, mode domain.TravelMode) (domain.Polygon, error) {
	m.mu.Lock()
	m.Minutes = append(m.Minutes, minutes)
	m.mu.Unlock()

	if m.Err != nil {
		return domain.Polygon{}, m.Err
	}
	return m.Poly, nil
}

// MockRouteProvider answers routing calls through the Fetch hook and records
// the waypoints of every call.
type MockRouteProvider struct {
	Fetch func(waypoints []domain.Coordinates, mode domain.TravelMode) (ports.RouteResult, error)

	mu    sync.Mutex
	Calls [][]domain.Coordinates
}

func (m *MockRouteProvider) FetchRoute(ctx context.Context, waypoints []domain.Coordinates, mode domain.TravelMode) (ports.RouteResult, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, waypoints)
	m.mu.Unlock()

	return m.Fetch(waypoints, mode)
}

func (m *MockRouteProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockGeocoder returns a fixed coordinate for any query.
type MockGeocoder struct {
	Result domain.Coordinates
	Err    error
}

func (m *MockGeocoder) Search(ctx context.Context, text string) (domain.Coordinates, error) {
	if m.Err != nil {
		return domain.Coordinates{}, m.Err
	}
	return m.Result, nil
}
