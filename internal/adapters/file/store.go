// Package file persists sessions and completed profiles as JSON files
// on the local filesystem.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bonsono/sonolog/pkg/domain"
)

// Store implements ports.SessionStore and ports.ProfileStore using one
// base directory with a subdirectory per record kind.
type Store struct {
	BasePath string
}

const (
	sessionsDir = "sessions"
	profilesDir = "profiles"
)

// New creates a Store rooted at basePath. An empty basePath defaults
// to ".sonolog".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = ".sonolog"
	}
	return &Store{BasePath: basePath}
}

// Save persists the session state atomically: write to a temp file,
// fsync, then rename into place.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.SessionState) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID cannot be empty")
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}
	return s.writeAtomic(sessionsDir, sessionID, data)
}

// Load retrieves the session state from disk.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID cannot be empty")
	}

	data, err := os.ReadFile(s.path(sessionsDir, sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var state domain.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
	}
	return &state, nil
}

// Delete removes the session file. Deleting a missing session is not
// an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID cannot be empty")
	}
	err := os.Remove(s.path(sessionsDir, sessionID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// List returns all persisted session IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	return s.listIDs(sessionsDir)
}

// SaveProfile archives a completed profile.
func (s *Store) SaveProfile(ctx context.Context, profile domain.CompletedProfile) error {
	if profile.SessionID == "" {
		return fmt.Errorf("profile session ID cannot be empty")
	}
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return s.writeAtomic(profilesDir, profile.SessionID, data)
}

// LoadProfile retrieves an archived profile.
func (s *Store) LoadProfile(ctx context.Context, sessionID string) (domain.CompletedProfile, error) {
	data, err := os.ReadFile(s.path(profilesDir, sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.CompletedProfile{}, domain.ErrProfileNotFound
		}
		return domain.CompletedProfile{}, fmt.Errorf("failed to read profile file: %w", err)
	}

	var profile domain.CompletedProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return domain.CompletedProfile{}, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return profile, nil
}

// ListProfiles returns the session IDs of all archived profiles.
func (s *Store) ListProfiles(ctx context.Context) ([]string, error) {
	return s.listIDs(profilesDir)
}

// Profiles adapts the store to the ports.ProfileStore method set.
func (s *Store) Profiles() *ProfileView { return &ProfileView{store: s} }

// ProfileView exposes the profile half of the store under the
// ports.ProfileStore interface.
type ProfileView struct {
	store *Store
}

func (v *ProfileView) Save(ctx context.Context, profile domain.CompletedProfile) error {
	return v.store.SaveProfile(ctx, profile)
}

func (v *ProfileView) Load(ctx context.Context, sessionID string) (domain.CompletedProfile, error) {
	return v.store.LoadProfile(ctx, sessionID)
}

func (v *ProfileView) List(ctx context.Context) ([]string, error) {
	return v.store.ListProfiles(ctx)
}

func (s *Store) path(kind, id string) string {
	return filepath.Join(s.BasePath, kind, id+".json")
}

func (s *Store) writeAtomic(kind, id string, data []byte) error {
	dir := filepath.Join(s.BasePath, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to ensure store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "tmp-"+id+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := filepath.Join(dir, id+".json")
	// os.Rename on the same filesystem gives us the atomic replace.
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file into place: %w", err)
	}
	return nil
}

func (s *Store) listIDs(kind string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.BasePath, kind))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list store directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			name := entry.Name()
			ids = append(ids, name[:len(name)-len(".json")])
		}
	}
	return ids, nil
}
