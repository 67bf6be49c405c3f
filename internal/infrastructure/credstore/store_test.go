package credstore

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/am24/brickshop/internal/domain/session"
)

func TestStore_SaveAndLoadRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/home/user/.brickshop")

	sess := session.New()
	sess.SetToken("tok-123")
	sess.SetUser(session.User{ID: 7, Username: "alice", Email: "alice@example.com"})
	require.NoError(t, store.Save(sess))

	restored := session.New()
	require.NoError(t, store.Load(restored))

	assert.Equal(t, "tok-123", restored.Token())
	assert.Equal(t, 7, restored.UserID())
	assert.Equal(t, "alice", restored.Username())
	assert.Equal(t, "alice@example.com", restored.Email())
	assert.True(t, restored.Loaded())
	assert.True(t, restored.LoggedIn())
}

func TestStore_LoadMissingFileMarksLoaded(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), "/home/user/.brickshop")

	sess := session.New()
	require.NoError(t, store.Load(sess))

	assert.True(t, sess.Loaded())
	assert.False(t, sess.LoggedIn())
	assert.Empty(t, sess.Token())
}

func TestStore_LoadMalformedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/home/user/.brickshop/credentials.yaml"
	require.NoError(t, afero.WriteFile(fs, path, []byte("{not yaml"), 0o600))

	store := NewStore(fs, "/home/user/.brickshop")
	sess := session.New()
	err := store.Load(sess)

	assert.Error(t, err)
	assert.True(t, sess.Loaded())
}

func TestStore_Delete(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/home/user/.brickshop")

	sess := session.New()
	sess.SetToken("tok")
	require.NoError(t, store.Save(sess))
	require.NoError(t, store.Delete())

	exists, err := afero.Exists(fs, "/home/user/.brickshop/credentials.yaml")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, store.Delete())
}
