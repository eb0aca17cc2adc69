// Package characters persists player characters for a game. Implementations
// cover local YAML files, Redis, and an in-memory store for tests.
package characters

import (
	"context"

	"github.com/KirkDiggler/roleplay-toolkit/internal/domain/character"
)

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters github.com/KirkDiggler/roleplay-toolkit/internal/repositories/characters Repository

// Repository stores characters keyed by name (case-insensitive)
type Repository interface {
	// Save writes a character, overwriting any existing one with the same name
	Save(ctx context.Context, char *character.Character) error

	// Get retrieves a character by name
	Get(ctx context.Context, name string) (*character.Character, error)

	// List returns all characters, sorted by name
	List(ctx context.Context) ([]*character.Character, error)

	// Exists reports whether a character with the name is stored
	Exists(ctx context.Context, name string) (bool, error)

	// Count returns the number of stored characters
	Count(ctx context.Context) (int, error)

	// Delete removes a character by name
	Delete(ctx context.Context, name string) error
}
