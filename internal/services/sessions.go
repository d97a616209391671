package services

import (
	"sync"
	"walk-route-service/internal/domain"
)

// SessionStore holds the route set each UI session currently displays.
//
// The displayed set is a single-writer value. Begin hands out a generation
// token for a new request and clears the display; Commit stores results only
// while that token is still the latest, so a slow superseded request cannot
// overwrite a newer one. State is in-memory and lives only as long as the
// process, matching the session-scoped lifetime of the data.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionState
}

type sessionState struct {
	generation uint64
	set        *domain.RouteSet
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*sessionState)}
}

// Begin registers a new generation request for the session and clears the
// currently displayed set. It returns the token Commit must present.
func (s *SessionStore) Begin(sessionID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		st = &sessionState{}
		s.sessions[sessionID] = st
	}
	st.generation++
	st.set = nil
	return st.generation
}

// Commit stores the set if generation is still the session's latest token.
// It reports whether the set was accepted; stale commits are discarded.
func (s *SessionStore) Commit(sessionID string, generation uint64, set domain.RouteSet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok || st.generation != generation {
		return false
	}
	st.set = &set
	return true
}

// Current returns the session's displayed set, if any.
func (s *SessionStore) Current(sessionID string) (domain.RouteSet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok || st.set == nil {
		return domain.RouteSet{}, false
	}
	return *st.set, true
}

// Clear drops the session entirely (the map-click reset).
func (s *SessionStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
