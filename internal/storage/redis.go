package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ahrav/levelforge/internal/domain"
)

// DefaultKeyPrefix namespaces level keys.
const DefaultKeyPrefix = "levelforge:"

const (
	defaultPoolSize   = 4
	connectionTimeout = 5 * time.Second
)

// Hash fields of a stored level.
const (
	fieldContent    = "content"
	fieldPromptHash = "prompt_hash"
	fieldSavedAt    = "saved_at"
)

// RedisOptions configures the connection used by DialRedis.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// DialRedis connects to Redis and verifies the connection with a ping.
func DialRedis(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: defaultPoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return client, nil
}

// RedisStore keeps each level in a hash at <prefix>level<N> and tracks stored
// level numbers in the set <prefix>levels.
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisStore wraps an existing client. An empty prefix uses DefaultKeyPrefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

// Key returns the hash key for levelNumber.
func (s *RedisStore) Key(levelNumber int) string {
	return s.prefix + domain.LevelID(levelNumber)
}

func (s *RedisStore) indexKey() string { return s.prefix + "levels" }

// Save writes the artifact hash and index entry in one transaction.
// Fields from a previous save of the same level are replaced.
func (s *RedisStore) Save(ctx context.Context, a domain.Artifact) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}

	key := s.Key(a.LevelNumber)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			fieldContent, a.Content,
			fieldPromptHash, a.PromptHash,
			fieldSavedAt, s.now().UTC().Format(time.RFC3339),
		)
		pipe.SAdd(ctx, s.indexKey(), a.LevelNumber)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("redis save %s: %w", key, err)
	}
	return key, nil
}

// Load reads the artifact hash.
func (s *RedisStore) Load(ctx context.Context, levelNumber int) (domain.Artifact, error) {
	key := s.Key(levelNumber)
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("redis load %s: %w", key, err)
	}
	content, ok := fields[fieldContent]
	if !ok {
		return domain.Artifact{}, fmt.Errorf("%w: %s", ErrLevelNotFound, domain.LevelID(levelNumber))
	}
	return domain.Artifact{
		LevelNumber: levelNumber,
		Content:     content,
		PromptHash:  fields[fieldPromptHash],
	}, nil
}

// Exists reports whether the level hash is present.
func (s *RedisStore) Exists(ctx context.Context, levelNumber int) (bool, error) {
	n, err := s.client.Exists(ctx, s.Key(levelNumber)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// List returns the indexed level numbers in ascending order.
func (s *RedisStore) List(ctx context.Context) ([]int, error) {
	members, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis list: %w", err)
	}

	levels := make([]int, 0, len(members))
	for _, m := range members {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		levels = append(levels, n)
	}
	slices.Sort(levels)
	return levels, nil
}
