package sessions

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndReload(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	credential := []*http.Cookie{
		{Name: "session", Value: "opaque-value", Path: "/"},
	}
	require.NoError(t, store.Save("localhost:17654", credential))

	// A fresh store reading the same directory sees the session.
	reloaded, err := NewStore(dir)
	require.NoError(t, err)

	stored, ok := reloaded.Get("localhost:17654")
	require.True(t, ok)

	cookies := stored.Credential()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, "opaque-value", cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
}

func TestStore_GetUnknownHost(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("unknown:1234")
	assert.False(t, ok)
}

func TestStore_Remove(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save("localhost:17654", []*http.Cookie{{Name: "session", Value: "v"}}))
	require.NoError(t, store.Remove("localhost:17654"))

	_, ok := store.Get("localhost:17654")
	assert.False(t, ok)

	reloaded, err := NewStore(dir)
	require.NoError(t, err)
	_, ok = reloaded.Get("localhost:17654")
	assert.False(t, ok, "removal should survive a reload")
}

func TestStore_RemoveMissingHostIsNoop(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove("never-saved:80"))
}

func TestStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save("localhost:17654", []*http.Cookie{{Name: "session", Value: "secret"}}))

	info, err := os.Stat(filepath.Join(dir, storeFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "credential file must not be world-readable")
}
