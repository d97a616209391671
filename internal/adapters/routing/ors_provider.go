package routing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"walk-route-service/internal/domain"
)

// IsochroneCache stores reachability polygons keyed by origin, minutes and profile.
type IsochroneCache interface {
	Get(ctx context.Context, key string) (domain.Polygon, bool, error)
	Put(ctx context.Context, key string, poly domain.Polygon) error
}

// GeocodeCache stores resolved coordinates keyed by normalized query text.
type GeocodeCache interface {
	Get(ctx context.Context, query string) (domain.Coordinates, bool, error)
	Put(ctx context.Context, query string, c domain.Coordinates) error
}

// ORSProvider implements the reachability, routing and geocoding ports against
// OpenRouteService.
//
// It coordinates:
//   - Persistent isochrone caching
//   - Query normalization and persistent geocode caching
//   - External API calls with retry/backoff
//
// Either cache may be nil, which disables caching for that call. The provider
// is safe for concurrent use.
type ORSProvider struct {
	session        *http.Client
	apiKey         string
	baseURL        string
	isochroneCache IsochroneCache
	geocodeCache   GeocodeCache
}

func NewORSProvider(apiKey string, isochroneCache IsochroneCache, geocodeCache GeocodeCache) (*ORSProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSProvider{
		// Directions with elevation are slow on long routes; allow more than
		// the usual request timeout.
		session:        &http.Client{Timeout: 30 * time.Second},
		apiKey:         apiKey,
		baseURL:        "https://api.openrouteservice.org",
		isochroneCache: isochroneCache,
		geocodeCache:   geocodeCache,
	}

	return provider, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (o *ORSProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (o *ORSProvider) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (o *ORSProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := o.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retires transient failures (network errors, 5xx responses)
// using exponential backoff while respecting context cancellation.
func (o *ORSProvider) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttepts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttepts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := o.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttepts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
