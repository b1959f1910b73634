// Package sqlite archives completed assessment profiles in an embedded
// SQLite database, giving operators a queryable record without an
// external service.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bonsono/sonolog/pkg/domain"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS profiles (
	session_id        TEXT PRIMARY KEY,
	completed_at      TEXT NOT NULL,
	completion_reason TEXT NOT NULL,
	severity          TEXT NOT NULL,
	personal_json     TEXT NOT NULL,
	answers_json      TEXT NOT NULL,
	report_json       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_profiles_severity ON profiles(severity);
CREATE INDEX IF NOT EXISTS idx_profiles_completed_at ON profiles(completed_at);
`

// Store implements ports.ProfileStore on SQLite.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (or creates) the database at dbPath and initializes
// the schema. Use ":memory:" for an ephemeral store.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so the remaining pragmas wait on locks held
	// by a concurrently initializing process.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("configure database: %w", err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Save archives a completed profile. Saving the same session twice
// replaces the record.
func (s *Store) Save(ctx context.Context, profile domain.CompletedProfile) error {
	if profile.SessionID == "" {
		return fmt.Errorf("profile session ID cannot be empty")
	}

	personalJSON, err := json.Marshal(profile.Personal)
	if err != nil {
		return fmt.Errorf("marshal personal data: %w", err)
	}
	answersJSON, err := json.Marshal(profile.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	reportJSON, err := json.Marshal(profile.Report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO profiles
			(session_id, completed_at, completion_reason, severity, personal_json, answers_json, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		profile.SessionID,
		profile.CompletedAt.UTC().Format(time.RFC3339),
		string(profile.CompletionReason),
		string(profile.Report.Severity),
		string(personalJSON),
		string(answersJSON),
		string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// Load retrieves an archived profile.
func (s *Store) Load(ctx context.Context, sessionID string) (domain.CompletedProfile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT session_id, completed_at, completion_reason, personal_json, answers_json, report_json
		FROM profiles WHERE session_id = ?`, sessionID)

	var (
		profile      domain.CompletedProfile
		completedAt  string
		reason       string
		personalJSON string
		answersJSON  string
		reportJSON   string
	)
	err := row.Scan(&profile.SessionID, &completedAt, &reason, &personalJSON, &answersJSON, &reportJSON)
	if err == sql.ErrNoRows {
		return domain.CompletedProfile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.CompletedProfile{}, fmt.Errorf("query profile: %w", err)
	}

	profile.CompletionReason = domain.CompletionReason(reason)
	if profile.CompletedAt, err = time.Parse(time.RFC3339, completedAt); err != nil {
		return domain.CompletedProfile{}, fmt.Errorf("parse completed_at: %w", err)
	}
	if err := json.Unmarshal([]byte(personalJSON), &profile.Personal); err != nil {
		return domain.CompletedProfile{}, fmt.Errorf("unmarshal personal data: %w", err)
	}
	if err := json.Unmarshal([]byte(answersJSON), &profile.Answers); err != nil {
		return domain.CompletedProfile{}, fmt.Errorf("unmarshal answers: %w", err)
	}
	if err := json.Unmarshal([]byte(reportJSON), &profile.Report); err != nil {
		return domain.CompletedProfile{}, fmt.Errorf("unmarshal report: %w", err)
	}
	return profile, nil
}

// List returns the archived session IDs, most recent first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT session_id FROM profiles ORDER BY completed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan profile id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountBySeverity aggregates archived profiles per severity bucket.
func (s *Store) CountBySeverity(ctx context.Context) (map[domain.Severity]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT severity, COUNT(*) FROM profiles GROUP BY severity`)
	if err != nil {
		return nil, fmt.Errorf("count profiles: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.Severity]int)
	for rows.Next() {
		var severity string
		var count int
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, fmt.Errorf("scan severity count: %w", err)
		}
		out[domain.Severity(severity)] = count
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
