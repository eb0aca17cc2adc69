package characters

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/roleplay-toolkit/internal/domain/character"
	dnderr "github.com/KirkDiggler/roleplay-toolkit/internal/errors"
)

type fileRepo struct {
	dir string
}

// FileConfig holds file repository dependencies
type FileConfig struct {
	// Dir is the players directory, typically <game dir>/players
	Dir string
}

// NewFile creates a YAML-file-backed repository, one file per character
func NewFile(cfg *FileConfig) (Repository, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, dnderr.Wrap(err, "failed to create players directory")
	}
	return &fileRepo{dir: cfg.Dir}, nil
}

func (r *fileRepo) path(name string) string {
	return filepath.Join(r.dir, strings.ToLower(name)+".yaml")
}

func (r *fileRepo) Save(ctx context.Context, char *character.Character) error {
	if char == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if strings.TrimSpace(char.Name) == "" {
		return dnderr.InvalidArgument("character must have a name")
	}

	data, err := yaml.Marshal(char)
	if err != nil {
		return dnderr.Wrapf(err, "failed to marshal character '%s'", char.Name)
	}

	if err := os.WriteFile(r.path(char.Name), data, 0o644); err != nil {
		return dnderr.Wrapf(err, "failed to write character '%s'", char.Name)
	}

	return nil
}

func (r *fileRepo) Get(ctx context.Context, name string) (*character.Character, error) {
	data, err := os.ReadFile(r.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, dnderr.NotFoundf("Character '%s' not found", name)
		}
		return nil, dnderr.Wrapf(err, "failed to read character '%s'", name)
	}

	var char character.Character
	if err := yaml.Unmarshal(data, &char); err != nil {
		return nil, dnderr.Wrapf(err, "character '%s' file is corrupted", name)
	}

	return &char, nil
}

func (r *fileRepo) List(ctx context.Context) ([]*character.Character, error) {
	paths, err := filepath.Glob(filepath.Join(r.dir, "*.yaml"))
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list players directory")
	}

	chars := make([]*character.Character, 0, len(paths))
	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		char, err := r.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		chars = append(chars, char)
	}

	sort.Slice(chars, func(i, j int) bool {
		return strings.ToLower(chars[i].Name) < strings.ToLower(chars[j].Name)
	})

	return chars, nil
}

func (r *fileRepo) Exists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(r.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, dnderr.Wrapf(err, "failed to stat character '%s'", name)
	}
	return true, nil
}

func (r *fileRepo) Count(ctx context.Context) (int, error) {
	paths, err := filepath.Glob(filepath.Join(r.dir, "*.yaml"))
	if err != nil {
		return 0, dnderr.Wrap(err, "failed to list players directory")
	}
	return len(paths), nil
}

func (r *fileRepo) Delete(ctx context.Context, name string) error {
	err := os.Remove(r.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return dnderr.NotFoundf("Character '%s' not found", name)
		}
		return dnderr.Wrapf(err, "failed to delete character '%s'", name)
	}
	return nil
}
