package characters

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/roleplay-toolkit/internal/domain/character"
	dnderr "github.com/KirkDiggler/roleplay-toolkit/internal/errors"
)

// The file and in-memory repositories share behavior, so they share a test.
func repoImplementations(t *testing.T) map[string]Repository {
	t.Helper()

	fileRepo, err := NewFile(&FileConfig{Dir: filepath.Join(t.TempDir(), "players")})
	require.NoError(t, err)

	return map[string]Repository{
		"file":     fileRepo,
		"inmemory": NewInMemory(),
	}
}

func TestRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()

	for name, repo := range repoImplementations(t) {
		t.Run(name, func(t *testing.T) {
			char := character.New("Aragorn")
			char.Race = "human"
			require.NoError(t, char.SetAbility("str", 16))

			require.NoError(t, repo.Save(ctx, char))

			got, err := repo.Get(ctx, "aragorn")
			require.NoError(t, err)
			assert.Equal(t, "Aragorn", got.Name)
			assert.Equal(t, "human", got.Race)
			assert.Equal(t, 16, got.Stats[character.AbilityStrength])
			assert.Equal(t, 10, got.Stats[character.AbilityWisdom])
		})
	}
}

func TestRepository_Save_Overwrites(t *testing.T) {
	ctx := context.Background()

	for name, repo := range repoImplementations(t) {
		t.Run(name, func(t *testing.T) {
			char := character.New("Aragorn")
			require.NoError(t, repo.Save(ctx, char))

			char.Class = "ranger"
			require.NoError(t, repo.Save(ctx, char))

			got, err := repo.Get(ctx, "Aragorn")
			require.NoError(t, err)
			assert.Equal(t, "ranger", got.Class)
		})
	}
}

func TestRepository_Save_Invalid(t *testing.T) {
	ctx := context.Background()

	for name, repo := range repoImplementations(t) {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, repo.Save(ctx, nil))
			assert.Error(t, repo.Save(ctx, &character.Character{Name: "   "}))
		})
	}
}

func TestRepository_Get_NotFound(t *testing.T) {
	ctx := context.Background()

	for name, repo := range repoImplementations(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Get(ctx, "missing")
			require.Error(t, err)
			assert.True(t, dnderr.IsNotFound(err))
			assert.Equal(t, "Character 'missing' not found", err.Error())
		})
	}
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()

	for name, repo := range repoImplementations(t) {
		t.Run(name, func(t *testing.T) {
			chars, err := repo.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, chars)

			require.NoError(t, repo.Save(ctx, character.New("Zelda")))
			require.NoError(t, repo.Save(ctx, character.New("aragorn")))

			chars, err = repo.List(ctx)
			require.NoError(t, err)
			require.Len(t, chars, 2)
			assert.Equal(t, "aragorn", chars[0].Name)
			assert.Equal(t, "Zelda", chars[1].Name)
		})
	}
}

func TestRepository_Count(t *testing.T) {
	ctx := context.Background()

	for name, repo := range repoImplementations(t) {
		t.Run(name, func(t *testing.T) {
			count, err := repo.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, count)

			require.NoError(t, repo.Save(ctx, character.New("Zelda")))
			require.NoError(t, repo.Save(ctx, character.New("aragorn")))

			count, err = repo.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, count)
		})
	}
}

func TestRepository_ExistsAndDelete(t *testing.T) {
	ctx := context.Background()

	for name, repo := range repoImplementations(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repo.Save(ctx, character.New("Aragorn")))

			exists, err := repo.Exists(ctx, "ARAGORN")
			require.NoError(t, err)
			assert.True(t, exists)

			require.NoError(t, repo.Delete(ctx, "Aragorn"))

			exists, err = repo.Exists(ctx, "Aragorn")
			require.NoError(t, err)
			assert.False(t, exists)

			err = repo.Delete(ctx, "Aragorn")
			require.Error(t, err)
			assert.True(t, dnderr.IsNotFound(err))
		})
	}
}

func TestFileRepo_WritesOneFilePerCharacter(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "players")

	repo, err := NewFile(&FileConfig{Dir: dir})
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, character.New("Aragorn")))
	require.NoError(t, repo.Save(ctx, character.New("Gimli")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "aragorn.yaml", entries[0].Name())
	assert.Equal(t, "gimli.yaml", entries[1].Name())
}

func TestFileRepo_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "players")

	repo, err := NewFile(&FileConfig{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, character.New("Aragorn")))

	reopened, err := NewFile(&FileConfig{Dir: dir})
	require.NoError(t, err)

	got, err := reopened.Get(ctx, "Aragorn")
	require.NoError(t, err)
	assert.Equal(t, "Aragorn", got.Name)
}
