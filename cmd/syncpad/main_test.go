package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/syncpad/internal/config"
	"github.com/idilsaglam/syncpad/internal/store/sqlitestore"
)

// runWithArgs drives the real command tree in process and returns the
// exit code main would hand to os.Exit.
func runWithArgs(t *testing.T, args ...string) int {
	t.Helper()
	rootCmd.SetArgs(args)
	return run()
}

func TestExitCodeContract(t *testing.T) {
	t.Setenv("SYNCPAD_DATA_DIR", t.TempDir())

	assert.Equal(t, 0, runWithArgs(t, "--offline", "add", "Buy milk"))
	assert.Equal(t, 0, runWithArgs(t, "--offline", "list"))
	assert.Equal(t, 0, runWithArgs(t, "--offline", "list", "--group"))
	assert.Equal(t, 0, runWithArgs(t, "--offline", "status"))
	assert.Equal(t, 0, runWithArgs(t, "version"))

	// Usage errors exit 2.
	assert.Equal(t, 2, runWithArgs(t, "--offline", "add", "   "))
	assert.Equal(t, 2, runWithArgs(t, "--offline", "done"))
	assert.Equal(t, 2, runWithArgs(t, "--offline", "done", "9"))
	assert.Equal(t, 2, runWithArgs(t, "--offline", "done", "x"))
	assert.Equal(t, 2, runWithArgs(t, "--offline", "bogus"))
	assert.Equal(t, 2, runWithArgs(t, "--no-such-flag"))

	// Operational errors exit 1.
	assert.Equal(t, 1, runWithArgs(t, "--offline", "sync"))
}

func TestOfflineMutationsPersistPending(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SYNCPAD_DATA_DIR", dir)
	ctx := context.Background()

	require.Equal(t, 0, runWithArgs(t, "--offline", "add", "Buy milk"))

	s, err := sqlitestore.Open(filepath.Join(dir, config.DBFileName))
	require.NoError(t, err)
	items, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	require.Len(t, items, 1)
	assert.Equal(t, "Buy milk", items[0].Text)
	assert.False(t, items[0].Synced, "offline adds stay pending")

	require.Equal(t, 0, runWithArgs(t, "--offline", "remove", "1"))

	s, err = sqlitestore.Open(filepath.Join(dir, config.DBFileName))
	require.NoError(t, err)
	items, err = s.ListAll(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.Empty(t, items)
}
