package ports

import (
	"context"

	"github.com/bonsono/sonolog/pkg/domain"
)

// SessionStore persists in-flight questionnaire attempts. This is what
// lets a respondent stop mid-assessment (or be interrupted by an
// external step) and resume later.
type SessionStore interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.SessionState) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.SessionState, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all persisted sessions.
	List(ctx context.Context) ([]string, error)
}

// ProfileStore archives completed assessments. Profiles are written
// once at session termination and are immutable afterwards.
type ProfileStore interface {
	// Save archives a completed profile, keyed by its session ID.
	Save(ctx context.Context, profile domain.CompletedProfile) error

	// Load retrieves a completed profile.
	// Returns domain.ErrProfileNotFound if none exists.
	Load(ctx context.Context, sessionID string) (domain.CompletedProfile, error)

	// List returns the session IDs of all archived profiles.
	List(ctx context.Context) ([]string, error)
}
