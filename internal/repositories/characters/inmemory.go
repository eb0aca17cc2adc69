package characters

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/KirkDiggler/roleplay-toolkit/internal/domain/character"
	dnderr "github.com/KirkDiggler/roleplay-toolkit/internal/errors"
)

type inMemoryRepo struct {
	mu    sync.RWMutex
	chars map[string]*character.Character
}

// NewInMemory creates an in-memory repository, useful for tests and
// throwaway sessions that never touch disk
func NewInMemory() Repository {
	return &inMemoryRepo{
		chars: make(map[string]*character.Character),
	}
}

func (r *inMemoryRepo) Save(ctx context.Context, char *character.Character) error {
	if char == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if strings.TrimSpace(char.Name) == "" {
		return dnderr.InvalidArgument("character must have a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *char
	r.chars[strings.ToLower(char.Name)] = &copied
	return nil
}

func (r *inMemoryRepo) Get(ctx context.Context, name string) (*character.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	char, ok := r.chars[strings.ToLower(name)]
	if !ok {
		return nil, dnderr.NotFoundf("Character '%s' not found", name)
	}

	copied := *char
	return &copied, nil
}

func (r *inMemoryRepo) List(ctx context.Context) ([]*character.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chars := make([]*character.Character, 0, len(r.chars))
	for _, char := range r.chars {
		copied := *char
		chars = append(chars, &copied)
	}

	sort.Slice(chars, func(i, j int) bool {
		return strings.ToLower(chars[i].Name) < strings.ToLower(chars[j].Name)
	})

	return chars, nil
}

func (r *inMemoryRepo) Exists(ctx context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.chars[strings.ToLower(name)]
	return ok, nil
}

func (r *inMemoryRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.chars), nil
}

func (r *inMemoryRepo) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(name)
	if _, ok := r.chars[key]; !ok {
		return dnderr.NotFoundf("Character '%s' not found", name)
	}

	delete(r.chars, key)
	return nil
}
