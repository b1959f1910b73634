package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonsono/sonolog/pkg/domain"
)

// RunSessionStoreContract verifies that a SessionStore implementation
// adheres to the interface contract. Adapter test suites call it with
// a ready-to-use store.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewSession(sessionID, domain.StartNodeID, domain.PersonalData{Name: "Contrato"})
		state.Answers = append(state.Answers, domain.AnsweredQuestion{
			QuestionID: domain.StartNodeID,
			Prompt:     "pergunta",
			Value:      domain.AnswerYes,
			Sequence:   1,
		})
		state.VisitedNodeIDs = append(state.VisitedNodeIDs, 1)
		state.CurrentNodeID = 1

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state.CurrentNodeID, loaded.CurrentNodeID)
		assert.Equal(t, state.VisitedNodeIDs, loaded.VisitedNodeIDs)
		assert.Equal(t, state.Answers, loaded.Answers)
		assert.Equal(t, "Contrato", loaded.Personal.Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewSession(sessionID, domain.StartNodeID, domain.PersonalData{}))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewSession(id1, domain.StartNodeID, domain.PersonalData{}))
		_ = store.Save(ctx, id2, domain.NewSession(id2, domain.StartNodeID, domain.PersonalData{}))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

// RunProfileStoreContract verifies a ProfileStore implementation.
func RunProfileStoreContract(t *testing.T, store ProfileStore) {
	ctx := context.Background()
	sessionID := "contract-profile-" + time.Now().Format("20060102150405")

	profile := domain.CompletedProfile{
		SessionID: sessionID,
		Personal:  domain.PersonalData{Name: "Contrato", City: "Recife", State: "PE"},
		Answers: []domain.AnsweredQuestion{
			{QuestionID: 0, Prompt: "pergunta", Value: domain.AnswerNo, Sequence: 1},
		},
		CompletedAt:      time.Now().UTC().Truncate(time.Second),
		CompletionReason: domain.ReasonNoInsomnia,
		Report: domain.Report{
			Title:           "Relatório",
			Summary:         "resumo",
			Recommendations: []string{"a", "b"},
			Severity:        domain.SeverityNormal,
		},
	}

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, profile))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, profile.SessionID, loaded.SessionID)
		assert.Equal(t, profile.CompletionReason, loaded.CompletionReason)
		assert.Equal(t, profile.Report, loaded.Report)
		assert.Equal(t, profile.Answers, loaded.Answers)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})

	t.Run("List", func(t *testing.T) {
		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, sessionID)
	})
}
