package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceInitWritesDefaultConfig(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	ws, err := Open(root)
	require.NoError(t, err)
	require.NoError(t, ws.Init())

	assert.FileExists(t, filepath.Join(root, "config.json"))
	cfg := ws.Config()
	assert.Equal(t, 1, cfg.Schema)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, DefaultBirthdayDays, cfg.BirthdayDays)
}

func TestWorkspaceSaveConfigPersists(t *testing.T) {
	root := t.TempDir()
	ws, err := Open(root)
	require.NoError(t, err)
	require.NoError(t, ws.Init())
	require.NoError(t, ws.SaveConfig(Config{Backend: " SQLite ", BirthdayDays: 14}))

	reopened, err := Open(root)
	require.NoError(t, err)
	assert.Equal(t, Config{Schema: 1, Backend: BackendSQLite, BirthdayDays: 14}, reopened.Config())
}

func TestWorkspaceOpenRejectsBadConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.json"), []byte("{"), 0o644))
	_, err := Open(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))

	_, err = Open("  ")
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestWorkspaceOpenBackend(t *testing.T) {
	root := t.TempDir()
	ws, err := Open(root)
	require.NoError(t, err)

	b, err := ws.OpenBackend("")
	require.NoError(t, err)
	assert.IsType(t, &FileBackend{}, b)
	assert.Equal(t, root, b.Location())

	b, err = ws.OpenBackend("sqlite")
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	assert.IsType(t, &SQLiteBackend{}, b)
	assert.Equal(t, filepath.Join(root, "assistant.db"), b.Location())

	_, err = ws.OpenBackend("postgres")
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestDedupeStrings(t *testing.T) {
	got := dedupeStrings([]string{" b", "a", "B", "", "a "})
	assert.Equal(t, []string{"a", "b"}, got)
}
