package rollset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/KirkDiggler/dicegraph/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	rollSetKeyPrefix   = "rollset:"
	rollSetIndexPrefix = "rollsets:"
)

// RedisConfig holds configuration for the Redis roll set repository
type RedisConfig struct {
	// Redis client
	RedisClient *redis.Client

	// Namespace separates collections, e.g. "rolls" and "simulations"
	Namespace string
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client    *redis.Client
	namespace string
}

// NewRedis creates a new Redis-backed roll set repository
func NewRedis(cfg *RedisConfig) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if cfg.Namespace == "" {
		return nil, errors.New("namespace cannot be empty")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client:    cfg.RedisClient,
		namespace: cfg.Namespace,
	}, nil
}

// SaveRollSet persists a roll set and adds it to the namespace index
func (r *redisRepository) SaveRollSet(ctx context.Context, input *SaveRollSetInput) error {
	if input == nil || input.Set == nil {
		return errors.New("input and roll set cannot be nil")
	}

	key := Key(input.Name)
	if key == "" {
		return fmt.Errorf("%w: %q", ErrEmptyName, input.Name)
	}

	setJSON, err := json.Marshal(input.Set)
	if err != nil {
		return fmt.Errorf("failed to marshal roll set: %w", err)
	}

	// Value and index are written in one MULTI/EXEC
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.setKey(key), setJSON, 0)
	pipe.SAdd(ctx, r.indexKey(), key)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save roll set: %w", err)
	}

	slog.DebugContext(ctx, "saved roll set",
		"namespace", r.namespace,
		"name", key,
		"total", input.Set.Total)

	return nil
}

// GetRollSet retrieves a roll set by name from Redis
func (r *redisRepository) GetRollSet(ctx context.Context, input *GetRollSetInput) (*models.RollSet, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	key := Key(input.Name)
	if key == "" {
		return nil, fmt.Errorf("%w: %q", ErrEmptyName, input.Name)
	}

	setJSON, err := r.client.Get(ctx, r.setKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", models.ErrNotFound, input.Name)
		}
		return nil, fmt.Errorf("failed to get roll set: %w", err)
	}

	var set models.RollSet
	if err := json.Unmarshal([]byte(setJSON), &set); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrCorruptData, input.Name, err)
	}

	if _, err := models.RestoreRollStore(&set); err != nil {
		return nil, fmt.Errorf("%s: %w", input.Name, err)
	}

	return &set, nil
}

// ListRollSets returns the names in the namespace index
func (r *redisRepository) ListRollSets(ctx context.Context) (*ListRollSetsOutput, error) {
	names, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list roll sets: %w", err)
	}

	sort.Strings(names)

	return &ListRollSetsOutput{
		Names: names,
	}, nil
}

// DeleteRollSet removes a roll set and its index entry
func (r *redisRepository) DeleteRollSet(ctx context.Context, input *DeleteRollSetInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	key := Key(input.Name)
	if key == "" {
		return fmt.Errorf("%w: %q", ErrEmptyName, input.Name)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, r.setKey(key))
	pipe.SRem(ctx, r.indexKey(), key)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete roll set: %w", err)
	}

	if del.Val() == 0 {
		return fmt.Errorf("%w: %s", models.ErrNotFound, input.Name)
	}

	return nil
}

// DeleteAll removes every roll set in the namespace
func (r *redisRepository) DeleteAll(ctx context.Context) (*DeleteAllOutput, error) {
	names, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list roll sets: %w", err)
	}

	if len(names) == 0 {
		return &DeleteAllOutput{}, nil
	}

	keys := make([]string, 0, len(names)+1)
	for _, name := range names {
		keys = append(keys, r.setKey(name))
	}
	keys = append(keys, r.indexKey())

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return nil, fmt.Errorf("failed to delete roll sets: %w", err)
	}

	slog.InfoContext(ctx, "deleted roll sets", "namespace", r.namespace, "count", len(names))

	return &DeleteAllOutput{
		Deleted: len(names),
	}, nil
}

func (r *redisRepository) setKey(key string) string {
	return fmt.Sprintf("%s%s:%s", rollSetKeyPrefix, r.namespace, key)
}

func (r *redisRepository) indexKey() string {
	return fmt.Sprintf("%s%s", rollSetIndexPrefix, r.namespace)
}
