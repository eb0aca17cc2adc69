package games

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dnderr "github.com/KirkDiggler/roleplay-toolkit/internal/errors"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(&ManagerConfig{SavesDir: t.TempDir()})
	require.NoError(t, err)
	return m
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "simple", input: "my_campaign"},
		{name: "hyphenated", input: "lost-mines-2"},
		{name: "empty", input: "", wantErr: "Game name cannot be empty"},
		{name: "whitespace only", input: "   ", wantErr: "Game name cannot be empty"},
		{name: "spaces", input: "my campaign", wantErr: "Game name can only contain letters, numbers, underscores, and hyphens"},
		{name: "path traversal", input: "../etc", wantErr: "Game name can only contain letters, numbers, underscores, and hyphens"},
		{name: "too long", input: strings.Repeat("a", 51), wantErr: "Game name must be 50 characters or less"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
			}
		})
	}
}

func TestManager_Create(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Create("test_game"))

	dir, err := m.Path("test_game")
	require.NoError(t, err)
	for _, f := range []string{"game.yaml", "journal.yaml", "state.yaml"} {
		_, statErr := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, statErr, f)
	}

	assert.Equal(t, "test_game", m.Current())
}

func TestManager_Create_Duplicate(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Create("test_game"))

	err := m.Create("test_game")
	require.Error(t, err)
	assert.True(t, dnderr.IsAlreadyExists(err))
	assert.Equal(t, "Game 'test_game' already exists", err.Error())
}

func TestManager_List(t *testing.T) {
	m := newTestManager(t)

	assert.Empty(t, m.List())

	require.NoError(t, m.Create("zeta"))
	require.NoError(t, m.Create("alpha"))

	assert.Equal(t, []string{"alpha", "zeta"}, m.List())
}

func TestManager_Delete(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Create("first"))
	require.NoError(t, m.Create("second"))
	assert.Equal(t, "second", m.Current())

	require.NoError(t, m.Delete("second"))

	// Deleting the current game falls back to another existing game
	assert.Equal(t, "first", m.Current())
	assert.Equal(t, []string{"first"}, m.List())

	require.NoError(t, m.Delete("first"))
	assert.Empty(t, m.Current())
}

func TestManager_Delete_NotFound(t *testing.T) {
	m := newTestManager(t)

	err := m.Delete("missing")
	require.Error(t, err)
	assert.True(t, dnderr.IsNotFound(err))
}

func TestManager_Info(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Create("test_game"))

	meta, err := m.Info("test_game")
	require.NoError(t, err)
	assert.Equal(t, "test_game", meta.Name)
	assert.False(t, meta.CreatedAt.IsZero())
	assert.Equal(t, 0, meta.TotalSessions)
}

func TestManager_Load(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Create("one"))
	require.NoError(t, m.Create("two"))

	require.NoError(t, m.Load("one"))
	assert.Equal(t, "one", m.Current())

	err := m.Load("missing")
	require.Error(t, err)
	assert.True(t, dnderr.IsNotFound(err))
}

func TestManager_Load_Corrupted(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Create("broken"))
	dir, err := m.Path("broken")
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, "journal.yaml")))

	err = m.Load("broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing journal.yaml")
}

func TestManager_CurrentPointerPersists(t *testing.T) {
	dir := t.TempDir()

	m, err := NewManager(&ManagerConfig{SavesDir: dir})
	require.NoError(t, err)
	require.NoError(t, m.Create("alpha"))
	require.NoError(t, m.Create("beta"))
	require.NoError(t, m.Load("alpha"))

	// A fresh manager over the same directory restores the pointer
	reopened, err := NewManager(&ManagerConfig{SavesDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "alpha", reopened.Current())
}

func TestManager_UpdateMetadata(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Create("test_game"))

	require.NoError(t, m.UpdateMetadata("test_game", func(meta *Metadata) {
		meta.TotalSessions++
		meta.Name = "hijacked"
	}))

	meta, err := m.Info("test_game")
	require.NoError(t, err)
	assert.Equal(t, 1, meta.TotalSessions)
	assert.Equal(t, "test_game", meta.Name, "name is protected")
}

func TestManager_Path_NoCurrent(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Path("")
	require.Error(t, err)
	assert.True(t, dnderr.IsInvalidArgument(err))
}
