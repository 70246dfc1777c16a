package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "financeflow")
	s := NewFileStore(dir)

	_, ok, err := s.Get(KeyToken)
	require.NoError(t, err)
	assert.False(t, ok, "missing directory reads as empty")

	require.NoError(t, s.Set(KeyToken, "abc"))
	v, ok, err := s.Get(KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	info, err := os.Stat(filepath.Join(dir, KeyToken))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	dirInfo, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), dirInfo.Mode().Perm())

	require.NoError(t, s.Delete(KeyToken))
	require.NoError(t, s.Delete(KeyToken), "deleting twice is fine")
	_, ok, err = s.Get(KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	s := NewFileStore(t.TempDir())
	for _, key := range []string{"", "..", "../escape", `a\b`} {
		assert.Error(t, s.Set(key, "x"), "key %q", key)
	}
}

func TestFileStoreGatewayRestore(t *testing.T) {
	dir := t.TempDir()
	first := New(Config{BaseURL: "http://unused.invalid", Store: NewFileStore(dir)})
	require.NoError(t, first.persist(Session{Token: "tok", User: testUser}))

	second := New(Config{BaseURL: "http://unused.invalid", Store: NewFileStore(dir)})
	require.NoError(t, second.Restore())
	assert.Equal(t, "tok", second.Current().Token)
	assert.Equal(t, testUser, second.Current().User)

	require.NoError(t, second.Logout())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set("k", "v"))
	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Delete("k"))
	assert.Equal(t, 0, s.Len())
}
