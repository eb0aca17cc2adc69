// Package state saves and restores journey-stack snapshots as named YAML
// files inside a game directory.
package state

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/roleplay-toolkit/internal/domain/journey"
	dnderr "github.com/KirkDiggler/roleplay-toolkit/internal/errors"
)

const snapshotVersion = 1

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9 _\-]`)

type snapshotFile struct {
	Version  int                `yaml:"version"`
	SavedAt  time.Time          `yaml:"saved_at"`
	Journeys []*journey.Journey `yaml:"journeys"`
}

// Store reads and writes named snapshots under one game directory
type Store struct {
	dir string
}

// StoreConfig holds Store dependencies
type StoreConfig struct {
	// Dir is the game directory snapshots live in
	Dir string
}

// NewStore creates a snapshot store over a game directory
func NewStore(cfg *StoreConfig) *Store {
	return &Store{dir: cfg.Dir}
}

// sanitize strips characters that are unsafe in filenames and collapses
// whitespace to underscores
func sanitize(name string) string {
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	name = strings.Join(strings.Fields(name), "_")
	return name
}

func (s *Store) path(name string) (string, error) {
	clean := sanitize(name)
	if clean == "" {
		return "", dnderr.InvalidArgumentf("invalid snapshot name: %q", name)
	}
	return filepath.Join(s.dir, "state_"+strings.ToLower(clean)+".yaml"), nil
}

// Save writes a named snapshot and returns the file path
func (s *Store) Save(name string, snap journey.Snapshot) (string, error) {
	path, err := s.path(name)
	if err != nil {
		return "", err
	}

	file := snapshotFile{
		Version:  snapshotVersion,
		SavedAt:  time.Now(),
		Journeys: snap.Journeys,
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return "", dnderr.Wrap(err, "failed to marshal snapshot")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", dnderr.Wrapf(err, "failed to write snapshot '%s'", name)
	}

	return path, nil
}

// Load reads a named snapshot
func (s *Store) Load(name string) (journey.Snapshot, error) {
	path, err := s.path(name)
	if err != nil {
		return journey.Snapshot{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return journey.Snapshot{}, dnderr.NotFoundf("Snapshot '%s' not found", name)
		}
		return journey.Snapshot{}, dnderr.Wrapf(err, "failed to read snapshot '%s'", name)
	}

	var file snapshotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return journey.Snapshot{}, dnderr.Wrapf(err, "snapshot '%s' is corrupted", name)
	}

	return journey.Snapshot{Journeys: file.Journeys}, nil
}

// List returns the names of all snapshots in the game directory, sorted
func (s *Store) List() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "state_*.yaml"))
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list snapshots")
	}

	names := make([]string, 0, len(paths))
	for _, p := range paths {
		base := strings.TrimSuffix(filepath.Base(p), ".yaml")
		names = append(names, strings.TrimPrefix(base, "state_"))
	}

	sort.Strings(names)
	return names, nil
}

// Delete removes a named snapshot
func (s *Store) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return dnderr.NotFoundf("Snapshot '%s' not found", name)
		}
		return dnderr.Wrapf(err, "failed to delete snapshot '%s'", name)
	}

	return nil
}
