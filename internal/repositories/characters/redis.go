package characters

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/roleplay-toolkit/internal/domain/character"
	dnderr "github.com/KirkDiggler/roleplay-toolkit/internal/errors"
)

type redisRepo struct {
	client *redis.Client
	game   string
}

// RedisConfig holds redis repository dependencies
type RedisConfig struct {
	Client *redis.Client
	// Game scopes keys so multiple games can share one Redis instance
	Game string
}

// NewRedis creates a Redis-backed repository. Characters are stored as JSON
// values with a set indexing the names per game.
func NewRedis(cfg *RedisConfig) Repository {
	return &redisRepo{
		client: cfg.Client,
		game:   cfg.Game,
	}
}

func (r *redisRepo) key(name string) string {
	return fmt.Sprintf("game:%s:player:%s", r.game, strings.ToLower(name))
}

func (r *redisRepo) indexKey() string {
	return fmt.Sprintf("game:%s:players", r.game)
}

func (r *redisRepo) Save(ctx context.Context, char *character.Character) error {
	if char == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if strings.TrimSpace(char.Name) == "" {
		return dnderr.InvalidArgument("character must have a name")
	}

	jsonData, err := json.Marshal(char)
	if err != nil {
		return dnderr.Wrapf(err, "failed to marshal character '%s'", char.Name)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(char.Name), string(jsonData), 0)
	pipe.SAdd(ctx, r.indexKey(), strings.ToLower(char.Name))
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrapf(err, "failed to save character '%s' to Redis", char.Name)
	}

	return nil
}

func (r *redisRepo) Get(ctx context.Context, name string) (*character.Character, error) {
	jsonData, err := r.client.Get(ctx, r.key(name)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, dnderr.NotFoundf("Character '%s' not found", name)
		}
		return nil, dnderr.Wrapf(err, "failed to get character '%s' from Redis", name)
	}

	var char character.Character
	if err := json.Unmarshal(jsonData, &char); err != nil {
		return nil, dnderr.Wrapf(err, "failed to unmarshal character '%s'", name)
	}

	return &char, nil
}

func (r *redisRepo) List(ctx context.Context) ([]*character.Character, error) {
	names, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list characters from Redis")
	}

	chars := make([]*character.Character, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			char, err := r.Get(ctx, name)
			if err != nil {
				return err
			}
			chars[i] = char
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(chars, func(i, j int) bool {
		return strings.ToLower(chars[i].Name) < strings.ToLower(chars[j].Name)
	})

	return chars, nil
}

func (r *redisRepo) Exists(ctx context.Context, name string) (bool, error) {
	count, err := r.client.Exists(ctx, r.key(name)).Result()
	if err != nil {
		return false, dnderr.Wrapf(err, "failed to check character '%s' in Redis", name)
	}
	return count > 0, nil
}

func (r *redisRepo) Count(ctx context.Context) (int, error) {
	count, err := r.client.SCard(ctx, r.indexKey()).Result()
	if err != nil {
		return 0, dnderr.Wrap(err, "failed to count characters in Redis")
	}
	return int(count), nil
}

func (r *redisRepo) Delete(ctx context.Context, name string) error {
	exists, err := r.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return dnderr.NotFoundf("Character '%s' not found", name)
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(name))
	pipe.SRem(ctx, r.indexKey(), strings.ToLower(name))
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrapf(err, "failed to delete character '%s' from Redis", name)
	}

	return nil
}
