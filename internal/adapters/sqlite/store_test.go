package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonsono/sonolog/internal/adapters/sqlite"
	"github.com/bonsono/sonolog/pkg/domain"
	"github.com/bonsono/sonolog/pkg/ports"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.NewStore(filepath.Join(t.TempDir(), "data", "profiles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func profileWith(id string, severity domain.Severity, completedAt time.Time) domain.CompletedProfile {
	return domain.CompletedProfile{
		SessionID:        id,
		Personal:         domain.PersonalData{Name: "Teste"},
		CompletedAt:      completedAt,
		CompletionReason: domain.ReasonCompleted,
		Report: domain.Report{
			Title:    "Anamnese",
			Severity: severity,
		},
	}
}

func TestProfileStoreContract(t *testing.T) {
	ports.RunProfileStoreContract(t, newTestStore(t))
}

func TestInMemoryDatabase(t *testing.T) {
	store, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ports.RunProfileStoreContract(t, store)
}

func TestSaveReplacesExistingProfile(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, store.Save(ctx, profileWith("dup", domain.SeverityMild, now)))
	require.NoError(t, store.Save(ctx, profileWith("dup", domain.SeveritySevere, now)))

	loaded, err := store.Load(ctx, "dup")
	require.NoError(t, err)
	assert.Equal(t, domain.SeveritySevere, loaded.Report.Severity)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestSaveRejectsEmptySessionID(t *testing.T) {
	store := newTestStore(t)
	err := store.Save(context.Background(), domain.CompletedProfile{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session ID")
}

func TestListOrdersByCompletionDescending(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, profileWith("older", domain.SeverityMild, base)))
	require.NoError(t, store.Save(ctx, profileWith("newer", domain.SeverityMild, base.Add(time.Hour))))
	require.NoError(t, store.Save(ctx, profileWith("newest", domain.SeverityMild, base.Add(2*time.Hour))))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"newest", "newer", "older"}, ids)
}

func TestCountBySeverity(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	now := time.Now().UTC()

	require.NoError(t, store.Save(ctx, profileWith("a", domain.SeveritySevere, now)))
	require.NoError(t, store.Save(ctx, profileWith("b", domain.SeveritySevere, now)))
	require.NoError(t, store.Save(ctx, profileWith("c", domain.SeverityMild, now)))

	counts, err := store.CountBySeverity(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.Severity]int{
		domain.SeveritySevere: 2,
		domain.SeverityMild:   1,
	}, counts)
}
