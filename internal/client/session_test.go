package client

import (
	"os"
	"path/filepath"
	"testing"

	"dsa_sheet/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundtrip(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "nested", "session.json"))

	// Nothing persisted yet.
	session, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, session)

	saved := &Session{
		User:  model.User{ID: "u1", Email: "a@b.c"},
		Token: "tok-123",
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "u1", loaded.User.ID)
	assert.Equal(t, "a@b.c", loaded.User.Email)
	assert.Equal(t, "tok-123", loaded.Token)
}

func TestSessionClear(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Save(&Session{User: model.User{ID: "u1"}, Token: "tok"}))

	require.NoError(t, store.Clear())
	session, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, session)

	// Clearing an already-cleared store is fine.
	require.NoError(t, store.Clear())
}

func TestSessionLoadRejectsTokenlessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"user":{"id":"u1"},"token":""}`), 0o600))

	session, err := NewSessionStore(path).Load()
	require.NoError(t, err)
	assert.Nil(t, session)
}
