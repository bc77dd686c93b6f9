package token_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junseo/marketctl/internal/token"
)

func TestMemory_PairLifecycle(t *testing.T) {
	t.Parallel()

	s := token.NewMemory()
	assert.Empty(t, s.Access())
	assert.Empty(t, s.Refresh())

	require.NoError(t, s.SetPair("acc", "ref"))
	assert.Equal(t, "acc", s.Access())
	assert.Equal(t, "ref", s.Refresh())

	require.NoError(t, s.ClearAccess())
	assert.Empty(t, s.Access())
	assert.Equal(t, "ref", s.Refresh(), "clearing access keeps the refresh token")

	require.NoError(t, s.ClearPair())
	assert.Empty(t, s.Refresh())
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := token.NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.SetPair("a", "r")
		}()
		go func() {
			defer wg.Done()
			_ = s.Access()
		}()
	}
	wg.Wait()

	assert.Equal(t, "a", s.Access())
}

func TestFile_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	s := token.NewFile(path)

	assert.Empty(t, s.Access(), "missing file reads as no credentials")
	assert.Empty(t, s.Refresh())

	require.NoError(t, s.SetPair("acc", "ref"))
	assert.Equal(t, "acc", s.Access())
	assert.Equal(t, "ref", s.Refresh())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// A second store on the same path sees the persisted pair.
	again := token.NewFile(path)
	assert.Equal(t, "acc", again.Access())
	assert.Equal(t, "ref", again.Refresh())
}

func TestFile_ClearAccessKeepsRefresh(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tokens.json")
	s := token.NewFile(path)
	require.NoError(t, s.SetPair("acc", "ref"))

	require.NoError(t, s.ClearAccess())
	assert.Empty(t, s.Access())
	assert.Equal(t, "ref", s.Refresh())
}

func TestFile_ClearPairRemovesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tokens.json")
	s := token.NewFile(path)
	require.NoError(t, s.SetPair("acc", "ref"))

	require.NoError(t, s.ClearPair())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-missing file is not an error.
	require.NoError(t, s.ClearPair())
}

func TestFile_CorruptFileReadsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := token.NewFile(path)
	assert.Empty(t, s.Access())
	assert.Empty(t, s.Refresh())

	// The next write repairs the file.
	require.NoError(t, s.SetPair("acc", "ref"))
	assert.Equal(t, "acc", s.Access())
}
