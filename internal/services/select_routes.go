package services

import "walk-route-service/internal/domain"

// At most this many routes are presented per generation.
const maxSelectedRoutes = 3

// SelectRoutes keeps candidates whose duration fits the budget, preserving
// their relative order, and truncates to the first three survivors.
//
// The status is a soft outcome, never an error: no_results_found when nothing
// fits, partial_results when fewer than three do, ok otherwise.
func SelectRoutes(candidates []domain.RouteCandidate, maxDurationMinutes int) ([]domain.RouteCandidate, domain.GenerationStatus) {
	maxSeconds := maxDurationMinutes * 60

	kept := make([]domain.RouteCandidate, 0, maxSelectedRoutes)
	survivors := 0
	for _, c := range candidates {
		if c.DurationSeconds > maxSeconds {
			continue
		}
		survivors++
		if len(kept) < maxSelectedRoutes {
			kept = append(kept, c)
		}
	}

	switch {
	case survivors == 0:
		return kept, domain.StatusNoResultsFound
	case survivors < maxSelectedRoutes:
		return kept, domain.StatusPartialResults
	default:
		return kept, domain.StatusOk
	}
}
