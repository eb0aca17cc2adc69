// Package journal persists the per-game event log as a YAML file.
package journal

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/roleplay-toolkit/internal/domain/journal"
	dnderr "github.com/KirkDiggler/roleplay-toolkit/internal/errors"
	"github.com/KirkDiggler/roleplay-toolkit/internal/uuid"
)

type journalFile struct {
	Entries []journal.Entry `yaml:"entries"`
}

// Store appends and reads journal entries for one game
type Store struct {
	path    string
	gen     uuid.Generator
	entries []journal.Entry
}

// StoreConfig holds Store dependencies
type StoreConfig struct {
	// Path is the journal file, typically <game dir>/journal.yaml
	Path string

	// UUIDGenerator defaults to random UUIDs when nil
	UUIDGenerator uuid.Generator
}

// NewStore loads the journal at the configured path. A missing file is an
// empty journal; it gets created on the first append.
func NewStore(cfg *StoreConfig) (*Store, error) {
	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = &uuid.GoogleUUIDGenerator{}
	}

	s := &Store{path: cfg.Path, gen: gen}

	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, dnderr.Wrap(err, "failed to read journal")
	}

	var file journalFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, dnderr.Wrap(err, "journal file is corrupted")
	}

	s.entries = file.Entries
	return s, nil
}

// Append records an event and writes the journal to disk
func (s *Store) Append(eventType, description string, metadata map[string]any) (*journal.Entry, error) {
	if eventType == "" {
		return nil, dnderr.InvalidArgument("event type cannot be empty")
	}

	entry := journal.Entry{
		ID:          s.gen.New(),
		Timestamp:   time.Now(),
		EventType:   eventType,
		Description: description,
		Metadata:    metadata,
	}

	s.entries = append(s.entries, entry)
	if err := s.flush(); err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		return nil, err
	}

	return &entry, nil
}

// Last returns up to n most recent entries, oldest first
func (s *Store) Last(n int) []journal.Entry {
	if n <= 0 || len(s.entries) == 0 {
		return nil
	}
	if n > len(s.entries) {
		n = len(s.entries)
	}

	out := make([]journal.Entry, n)
	copy(out, s.entries[len(s.entries)-n:])
	return out
}

// All returns every entry, oldest first
func (s *Store) All() []journal.Entry {
	out := make([]journal.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Count returns the number of entries
func (s *Store) Count() int {
	return len(s.entries)
}

// Clear removes all entries and persists the empty journal
func (s *Store) Clear() error {
	kept := s.entries
	s.entries = nil
	if err := s.flush(); err != nil {
		s.entries = kept
		return err
	}
	return nil
}

func (s *Store) flush() error {
	file := journalFile{Entries: s.entries}
	if file.Entries == nil {
		file.Entries = []journal.Entry{}
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal journal")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return dnderr.Wrap(err, "failed to write journal")
	}
	return nil
}
