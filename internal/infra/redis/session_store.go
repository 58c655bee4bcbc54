package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"geotrivia-service/internal/domain"
)

// sessionRecord is the persisted envelope: the state plus the timestamp the
// staleness policy is applied against.
type sessionRecord struct {
	State       domain.GameState `json:"state"`
	LastUpdated time.Time        `json:"lastUpdated"`
}

// SessionStore is a Redis-backed implementation of app.SessionRepository.
// Records carry both a Redis TTL and an embedded last-updated stamp; either
// aging out makes the session read as absent.
type SessionStore struct {
	client    *redis.Client
	retention time.Duration
	clock     func() time.Time
}

func NewSessionStore(client *redis.Client, retention time.Duration) *SessionStore {
	return &SessionStore{client: client, retention: retention, clock: time.Now}
}

func (s *SessionStore) SaveState(ctx context.Context, state *domain.GameState) error {
	record := sessionRecord{State: *state, LastUpdated: s.clock()}
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", state.SessionID, err)
	}
	if err := s.client.Set(ctx, sessionKey(state.SessionID), raw, s.retention).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", state.SessionID, err)
	}
	if state.Email != "" {
		if err := s.track(ctx, state.Email, state.SessionID); err != nil {
			return err
		}
	}
	return nil
}

func (s *SessionStore) LoadState(ctx context.Context, sessionID string) (*domain.GameState, error) {
	raw, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	var record sessionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", sessionID, err)
	}
	if s.clock().Sub(record.LastUpdated) > s.retention {
		return nil, domain.ErrSessionNotFound
	}
	state := record.State
	return &state, nil
}

func (s *SessionStore) ClearState(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}

// ActiveSession resolves the email's active pointer, clearing it (without
// touching the session record) when the pointed-to session is gone or
// already finished.
func (s *SessionStore) ActiveSession(ctx context.Context, email string) (string, error) {
	sessionID, err := s.client.Get(ctx, activeKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load active session for %s: %w", email, err)
	}

	state, err := s.LoadState(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) || (err == nil && state.Status.Terminal()) {
		_ = s.client.Del(ctx, activeKey(email)).Err()
		return "", domain.ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// UserSessions lists the email's session IDs, dropping any whose backing
// record is gone and rewriting the stored list without them.
func (s *SessionStore) UserSessions(ctx context.Context, email string) ([]string, error) {
	known, err := s.sessionList(ctx, email)
	if err != nil {
		return nil, err
	}

	alive := make([]string, 0, len(known))
	for _, id := range known {
		exists, err := s.client.Exists(ctx, sessionKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("check session %s: %w", id, err)
		}
		if exists > 0 {
			alive = append(alive, id)
		}
	}

	if len(alive) != len(known) {
		if err := s.writeSessionList(ctx, email, alive); err != nil {
			return nil, err
		}
	}
	if len(alive) == 0 {
		return nil, nil
	}
	return alive, nil
}

func (s *SessionStore) MarkActive(ctx context.Context, email, sessionID string) error {
	if err := s.client.Set(ctx, activeKey(email), sessionID, s.retention).Err(); err != nil {
		return fmt.Errorf("mark session %s active for %s: %w", sessionID, email, err)
	}
	return s.track(ctx, email, sessionID)
}

func (s *SessionStore) ClearActive(ctx context.Context, email string) error {
	return s.client.Del(ctx, activeKey(email)).Err()
}

func (s *SessionStore) track(ctx context.Context, email, sessionID string) error {
	known, err := s.sessionList(ctx, email)
	if err != nil {
		return err
	}
	for _, id := range known {
		if id == sessionID {
			return nil
		}
	}
	return s.writeSessionList(ctx, email, append(known, sessionID))
}

func (s *SessionStore) sessionList(ctx context.Context, email string) ([]string, error) {
	raw, err := s.client.Get(ctx, listKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session list for %s: %w", email, err)
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("unmarshal session list for %s: %w", email, err)
	}
	return ids, nil
}

func (s *SessionStore) writeSessionList(ctx context.Context, email string, ids []string) error {
	if len(ids) == 0 {
		return s.client.Del(ctx, listKey(email)).Err()
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal session list for %s: %w", email, err)
	}
	if err := s.client.Set(ctx, listKey(email), raw, s.retention).Err(); err != nil {
		return fmt.Errorf("save session list for %s: %w", email, err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return "game:session:" + sessionID
}

func activeKey(email string) string {
	return "game:active:" + email
}

func listKey(email string) string {
	return "game:sessions:" + email
}
