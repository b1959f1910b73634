package middleware_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonsono/sonolog/pkg/adapters/memory"
	"github.com/bonsono/sonolog/pkg/domain"
	"github.com/bonsono/sonolog/pkg/persistence/middleware"
	"github.com/bonsono/sonolog/pkg/ports"
)

func testKey(fill byte) []byte {
	return bytes.Repeat([]byte{fill}, 32)
}

func encryptedStore(t *testing.T, config middleware.EncryptionConfig) (ports.SessionStore, *memory.SessionStore) {
	t.Helper()
	inner := memory.NewSessionStore()
	return middleware.NewEncryptionMiddleware(config)(inner), inner
}

func sampleState(id string) *domain.SessionState {
	state := domain.NewSession(id, domain.StartNodeID, domain.PersonalData{Name: "Sigilo"})
	state.Answers = append(state.Answers, domain.AnsweredQuestion{
		QuestionID: domain.StartNodeID,
		Prompt:     "A sua insatisfação com o sono acontece 3 ou mais vezes por semana?",
		Value:      domain.AnswerYes,
		Sequence:   1,
	})
	return state
}

func TestEncryptionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := encryptedStore(t, middleware.EncryptionConfig{ActiveKey: testKey(1)})

	state := sampleState("round-trip")
	require.NoError(t, store.Save(ctx, "round-trip", state))

	loaded, err := store.Load(ctx, "round-trip")
	require.NoError(t, err)
	assert.Equal(t, state.Answers, loaded.Answers)
	assert.Equal(t, "Sigilo", loaded.Personal.Name)
	assert.Empty(t, loaded.Envelope)
}

func TestEnvelopeHidesContent(t *testing.T) {
	ctx := context.Background()
	store, inner := encryptedStore(t, middleware.EncryptionConfig{ActiveKey: testKey(1)})

	require.NoError(t, store.Save(ctx, "sealed", sampleState("sealed")))

	// The backing store must only see the sealed envelope.
	raw, err := inner.Load(ctx, "sealed")
	require.NoError(t, err)
	assert.NotEmpty(t, raw.Envelope)
	assert.Empty(t, raw.Answers)
	assert.Empty(t, raw.Personal.Name)
	assert.Equal(t, "sealed", raw.SessionID)
	assert.False(t, raw.CreatedAt.IsZero())
}

func TestKeyRotation(t *testing.T) {
	ctx := context.Background()
	oldKey, newKey := testKey(1), testKey(2)

	oldStore, inner := encryptedStore(t, middleware.EncryptionConfig{ActiveKey: oldKey})
	require.NoError(t, oldStore.Save(ctx, "rotated", sampleState("rotated")))

	// After rotation the new key is active and the old one is a fallback.
	rotated := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(inner)

	loaded, err := rotated.Load(ctx, "rotated")
	require.NoError(t, err)
	assert.Equal(t, "Sigilo", loaded.Personal.Name)
}

func TestWrongKeyFails(t *testing.T) {
	ctx := context.Background()
	store, inner := encryptedStore(t, middleware.EncryptionConfig{ActiveKey: testKey(1)})
	require.NoError(t, store.Save(ctx, "locked", sampleState("locked")))

	other := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: testKey(9)})(inner)
	_, err := other.Load(ctx, "locked")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decrypt")
}

func TestLoadRejectsPlainSession(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewSessionStore()

	// Written before encryption was configured.
	require.NoError(t, inner.Save(ctx, "plain", sampleState("plain")))

	store := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: testKey(1)})(inner)
	_, err := store.Load(ctx, "plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "envelope")
}

func TestShortKeyPanics(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	})
}

func TestDeleteAndListPassThrough(t *testing.T) {
	ctx := context.Background()
	store, _ := encryptedStore(t, middleware.EncryptionConfig{ActiveKey: testKey(1)})

	require.NoError(t, store.Save(ctx, "a", sampleState("a")))
	require.NoError(t, store.Save(ctx, "b", sampleState("b")))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)

	require.NoError(t, store.Delete(ctx, "a"))
	_, err = store.Load(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
