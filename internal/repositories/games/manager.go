// Package games manages campaign save slots: one directory per game under
// the saves root, plus a pointer file remembering the last played game.
package games

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	dnderr "github.com/KirkDiggler/roleplay-toolkit/internal/errors"
)

const (
	gamePrefix      = "game_"
	currentGameFile = "current_game.yaml"
	metadataFile    = "game.yaml"
	journalFile     = "journal.yaml"
	stateFile       = "state.yaml"

	maxNameLength = 50
)

var gameNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)

// Metadata is the per-game header stored in game.yaml
type Metadata struct {
	Name                  string    `yaml:"name"`
	CreatedAt             time.Time `yaml:"created_at"`
	LastModified          time.Time `yaml:"last_modified"`
	TotalSessions         int       `yaml:"total_sessions"`
	CurrentSessionUnsaved bool      `yaml:"current_session_unsaved"`
}

type currentPointer struct {
	GameName     string    `yaml:"game_name"`
	LastAccessed time.Time `yaml:"last_accessed"`
}

// Manager owns the saves root and the current-game pointer
type Manager struct {
	savesDir string
	current  string
}

// ManagerConfig holds Manager dependencies
type ManagerConfig struct {
	SavesDir string
}

// NewManager creates the saves root if needed and restores the
// last-played pointer when it still points at an existing game
func NewManager(cfg *ManagerConfig) (*Manager, error) {
	if err := os.MkdirAll(cfg.SavesDir, 0o755); err != nil {
		return nil, dnderr.Wrap(err, "failed to create saves directory")
	}

	m := &Manager{savesDir: cfg.SavesDir}
	m.loadCurrent()
	return m, nil
}

func (m *Manager) loadCurrent() {
	games := m.List()
	if len(games) == 0 {
		return
	}

	data, err := os.ReadFile(filepath.Join(m.savesDir, currentGameFile))
	if err != nil {
		return
	}

	var pointer currentPointer
	if err := yaml.Unmarshal(data, &pointer); err != nil {
		return
	}

	// A pointer at a deleted game is the same as no pointer
	for _, name := range games {
		if name == pointer.GameName {
			m.current = pointer.GameName
			return
		}
	}
}

func (m *Manager) saveCurrent() {
	pointer := currentPointer{
		GameName:     m.current,
		LastAccessed: time.Now(),
	}

	data, err := yaml.Marshal(pointer)
	if err != nil {
		return
	}

	// Best effort; losing the pointer only means re-prompting next start
	_ = os.WriteFile(filepath.Join(m.savesDir, currentGameFile), data, 0o644)
}

// ValidateName checks a game name for filesystem safety
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return dnderr.InvalidArgument("Game name cannot be empty")
	}
	if !gameNamePattern.MatchString(name) {
		return dnderr.InvalidArgument("Game name can only contain letters, numbers, underscores, and hyphens")
	}
	if len(name) > maxNameLength {
		return dnderr.InvalidArgumentf("Game name must be %d characters or less", maxNameLength)
	}

	return nil
}

func (m *Manager) gameDir(name string) string {
	return filepath.Join(m.savesDir, gamePrefix+name)
}

// Create initializes a new game slot with its metadata, journal, and state files
func (m *Manager) Create(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	dir := m.gameDir(name)
	if _, err := os.Stat(dir); err == nil {
		return dnderr.AlreadyExistsf("Game '%s' already exists", name)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return dnderr.Wrapf(err, "failed to create game '%s'", name)
	}

	now := time.Now()
	meta := Metadata{
		Name:         name,
		CreatedAt:    now,
		LastModified: now,
	}

	if err := writeYAML(filepath.Join(dir, metadataFile), meta); err != nil {
		return err
	}
	if err := writeYAML(filepath.Join(dir, journalFile), map[string]any{"entries": []any{}}); err != nil {
		return err
	}
	if err := writeYAML(filepath.Join(dir, stateFile), map[string]any{}); err != nil {
		return err
	}

	m.current = name
	m.saveCurrent()
	return nil
}

// Delete removes a game and all of its files
func (m *Manager) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	dir := m.gameDir(name)
	if _, err := os.Stat(dir); err != nil {
		return dnderr.NotFoundf("Game '%s' not found", name)
	}

	if err := os.RemoveAll(dir); err != nil {
		return dnderr.Wrapf(err, "failed to delete game '%s'", name)
	}

	if m.current == name {
		if games := m.List(); len(games) > 0 {
			m.current = games[0]
		} else {
			m.current = ""
		}
		m.saveCurrent()
	}

	return nil
}

// List returns all game names, sorted
func (m *Manager) List() []string {
	entries, err := os.ReadDir(m.savesDir)
	if err != nil {
		return nil
	}

	var games []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), gamePrefix) {
			games = append(games, strings.TrimPrefix(entry.Name(), gamePrefix))
		}
	}

	sort.Strings(games)
	return games
}

// Info returns a game's metadata
func (m *Manager) Info(name string) (*Metadata, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(m.gameDir(name), metadataFile))
	if err != nil {
		return nil, dnderr.NotFoundf("Game '%s' not found", name)
	}

	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, dnderr.Wrapf(err, "game '%s' metadata is corrupted", name)
	}

	return &meta, nil
}

// Load verifies a game's files and sets it as current
func (m *Manager) Load(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	dir := m.gameDir(name)
	if _, err := os.Stat(dir); err != nil {
		return dnderr.NotFoundf("Game '%s' not found", name)
	}

	for _, required := range []string{metadataFile, journalFile, stateFile} {
		if _, err := os.Stat(filepath.Join(dir, required)); err != nil {
			return dnderr.Internalf("Game '%s' is corrupted (missing %s)", name, required)
		}
	}

	m.current = name
	m.saveCurrent()
	return nil
}

// Current returns the current game name, or "" when none is loaded
func (m *Manager) Current() string {
	return m.current
}

// SetCurrent points at a game without verifying its files
func (m *Manager) SetCurrent(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	if _, err := os.Stat(m.gameDir(name)); err != nil {
		return dnderr.NotFoundf("Game '%s' not found", name)
	}

	m.current = name
	m.saveCurrent()
	return nil
}

// Path returns the directory for a game, defaulting to the current one
func (m *Manager) Path(name string) (string, error) {
	if name == "" {
		name = m.current
	}
	if name == "" {
		return "", dnderr.InvalidArgument("no game specified and no current game loaded")
	}

	return m.gameDir(name), nil
}

// UpdateMetadata applies a mutation to a game's metadata and bumps last_modified.
// Name and creation time are protected from modification.
func (m *Manager) UpdateMetadata(name string, mutate func(*Metadata)) error {
	meta, err := m.Info(name)
	if err != nil {
		return err
	}

	protectedName, createdAt := meta.Name, meta.CreatedAt
	mutate(meta)
	meta.Name = protectedName
	meta.CreatedAt = createdAt
	meta.LastModified = time.Now()

	return writeYAML(filepath.Join(m.gameDir(name), metadataFile), meta)
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return dnderr.Wrapf(err, "failed to marshal %s", filepath.Base(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return dnderr.Wrapf(err, "failed to write %s", filepath.Base(path))
	}
	return nil
}
