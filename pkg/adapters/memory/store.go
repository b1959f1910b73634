// Package memory provides in-process store implementations, used as
// the default backend and in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bonsono/sonolog/pkg/domain"
)

// SessionStore implements ports.SessionStore with a mutex-guarded map.
// States are cloned on both Save and Load so callers never share
// mutable memory with the store.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.SessionState
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*domain.SessionState)}
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, state *domain.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = state.Clone()
	return nil
}

func (s *SessionStore) Load(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return state.Clone(), nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *SessionStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// ProfileStore implements ports.ProfileStore in memory.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.CompletedProfile
}

// NewProfileStore creates an empty in-memory profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[string]domain.CompletedProfile)}
}

func (s *ProfileStore) Save(ctx context.Context, profile domain.CompletedProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.SessionID] = profile
	return nil
}

func (s *ProfileStore) Load(ctx context.Context, sessionID string) (domain.CompletedProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[sessionID]
	if !ok {
		return domain.CompletedProfile{}, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (s *ProfileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
