package memory

import (
	"context"
	"sync"
	"time"

	"geotrivia-service/internal/domain"
)

// DefaultRetention is how long a saved session stays loadable; older
// records are treated as absent.
const DefaultRetention = 24 * time.Hour

type storedState struct {
	state       domain.GameState
	lastUpdated time.Time
}

// SessionStore is an in-memory implementation of app.SessionRepository.
// It keeps per-email indexes: an active-session pointer and the list of
// all known session IDs.
type SessionStore struct {
	mu        sync.RWMutex
	retention time.Duration
	clock     func() time.Time
	sessions  map[string]storedState
	active    map[string]string
	byEmail   map[string][]string
}

func NewSessionStore() *SessionStore {
	return NewSessionStoreWithClock(time.Now)
}

// NewSessionStoreWithClock is test-only for deterministic aging.
func NewSessionStoreWithClock(clock func() time.Time) *SessionStore {
	return &SessionStore{
		retention: DefaultRetention,
		clock:     clock,
		sessions:  make(map[string]storedState),
		active:    make(map[string]string),
		byEmail:   make(map[string][]string),
	}
}

func (s *SessionStore) SaveState(_ context.Context, state *domain.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[state.SessionID] = storedState{state: cloneState(state), lastUpdated: s.clock()}
	if state.Email != "" {
		s.trackLocked(state.Email, state.SessionID)
	}
	return nil
}

func (s *SessionStore) LoadState(_ context.Context, sessionID string) (*domain.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.sessions[sessionID]
	if !ok || s.stale(entry) {
		return nil, domain.ErrSessionNotFound
	}
	state := cloneState(&entry.state)
	return &state, nil
}

func (s *SessionStore) ClearState(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// ActiveSession returns the email's active session ID. A pointer at a
// missing or already-finished session is cleared on read and reported as
// absent; the session record itself is untouched.
func (s *SessionStore) ActiveSession(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessionID, ok := s.active[email]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	entry, ok := s.sessions[sessionID]
	if !ok || s.stale(entry) || entry.state.Status.Terminal() {
		delete(s.active, email)
		return "", domain.ErrSessionNotFound
	}
	return sessionID, nil
}

// UserSessions lists the email's session IDs, dropping (and forgetting)
// any whose backing record is gone.
func (s *SessionStore) UserSessions(_ context.Context, email string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := s.byEmail[email]
	alive := known[:0]
	for _, id := range known {
		if entry, ok := s.sessions[id]; ok && !s.stale(entry) {
			alive = append(alive, id)
		}
	}
	if len(alive) == 0 {
		delete(s.byEmail, email)
		return nil, nil
	}
	s.byEmail[email] = alive
	return append([]string(nil), alive...), nil
}

func (s *SessionStore) MarkActive(_ context.Context, email, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[email] = sessionID
	s.trackLocked(email, sessionID)
	return nil
}

func (s *SessionStore) ClearActive(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, email)
	return nil
}

func (s *SessionStore) trackLocked(email, sessionID string) {
	for _, id := range s.byEmail[email] {
		if id == sessionID {
			return
		}
	}
	s.byEmail[email] = append(s.byEmail[email], sessionID)
}

func (s *SessionStore) stale(entry storedState) bool {
	return s.clock().Sub(entry.lastUpdated) > s.retention
}

// cloneState deep-copies a GameState so stored records cannot alias live
// ones held by callers.
func cloneState(state *domain.GameState) domain.GameState {
	out := *state
	out.Answers = append([]string(nil), state.Answers...)
	out.CompletedGroups = append([]string(nil), state.CompletedGroups...)
	if state.DynamicData != nil {
		dd := *state.DynamicData
		dd.Candidates = append([]string(nil), state.DynamicData.Candidates...)
		out.DynamicData = &dd
	}
	return out
}
