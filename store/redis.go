package store

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements FixStore using a single Redis hash.
// Each field is a millisecond timestamp and each value the JSON encoded fix,
// so writing an existing timestamp naturally replaces it.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a new Redis fix store from a Redis client and the hash key to use.
func NewRedisStore(client *redis.Client, key string) (*RedisStore, error) {
	if key == "" {
		key = defaultRedisKey
	}

	return &RedisStore{
		client: client,
		key:    key,
	}, nil
}

const defaultRedisKey = "yore:fixes"

// RedisConfig contains configuration options for Redis.
type RedisConfig struct {
	// Addr is the Redis server address (e.g., "localhost:6379")
	Addr string

	// Password is the Redis password (empty for no auth)
	Password string

	// DB is the Redis database number (0-15)
	DB int

	// Key is the hash holding the fixes (default: "yore:fixes")
	Key string
}

// NewRedisFromConfig connects to Redis and creates a new fix store.
func NewRedisFromConfig(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: failed to connect: %w", err)
	}

	return NewRedisStore(client, cfg.Key)
}

// redisFix is the stored representation. Accuracy is decoded wide so that
// out of range values are reported instead of silently wrapped.
type redisFix struct {
	LatitudeE7  int64 `json:"lat"`
	LongitudeE7 int64 `json:"lng"`
	Accuracy    int64 `json:"acc"`
}

// Save persists fixes with a single HSET.
func (s *RedisStore) Save(fixes []*Fix) error {
	if len(fixes) == 0 {
		return nil
	}

	values, err := encodeFixes(fixes)
	if err != nil {
		return err
	}

	if err := s.client.HSet(context.Background(), s.key, values...).Err(); err != nil {
		return fmt.Errorf("redis: failed to save fixes: %w", err)
	}
	return nil
}

// Replace deletes the hash and writes fixes in one MULTI/EXEC transaction.
func (s *RedisStore) Replace(fixes []*Fix) error {
	values, err := encodeFixes(fixes)
	if err != nil {
		return err
	}

	ctx := context.Background()
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(values) > 0 {
			pipe.HSet(ctx, s.key, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: failed to replace fixes: %w", err)
	}
	return nil
}

// encodeFixes flattens fixes into HSET field/value pairs.
func encodeFixes(fixes []*Fix) ([]interface{}, error) {
	values := make([]interface{}, 0, len(fixes)*2)
	for _, fix := range fixes {
		data, err := json.Marshal(redisFix{
			LatitudeE7:  fix.LatitudeE7,
			LongitudeE7: fix.LongitudeE7,
			Accuracy:    int64(fix.Accuracy),
		})
		if err != nil {
			return nil, fmt.Errorf("redis: failed to encode fix: %w", err)
		}
		values = append(values, strconv.FormatInt(fix.TimestampMS, 10), data)
	}
	return values, nil
}

// Clear removes every stored fix.
func (s *RedisStore) Clear() error {
	if err := s.client.Del(context.Background(), s.key).Err(); err != nil {
		return fmt.Errorf("redis: failed to clear fixes: %w", err)
	}
	return nil
}

// All returns every stored fix, oldest first.
func (s *RedisStore) All() ([]*Fix, error) {
	entries, err := s.client.HGetAll(context.Background(), s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: failed to load fixes: %w", err)
	}

	fixes := make([]*Fix, 0, len(entries))
	for field, value := range entries {
		timestampMS, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("redis: invalid timestamp %q: %w", field, err)
		}

		var stored redisFix
		if err := json.Unmarshal([]byte(value), &stored); err != nil {
			return nil, fmt.Errorf("redis: failed to decode fix at %d: %w", timestampMS, err)
		}

		accuracy, err := accuracyFromInt(stored.Accuracy)
		if err != nil {
			return nil, fmt.Errorf("redis: fix at %d: %w", timestampMS, err)
		}

		fixes = append(fixes, &Fix{
			TimestampMS: timestampMS,
			LatitudeE7:  stored.LatitudeE7,
			LongitudeE7: stored.LongitudeE7,
			Accuracy:    accuracy,
		})
	}

	slices.SortFunc(fixes, func(a, b *Fix) int {
		return cmp.Compare(a.TimestampMS, b.TimestampMS)
	})

	return fixes, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
