package ratecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares cache entries between instances through Redis
type RedisStore struct {
	client *redis.Client
	prefix string
}

type redisEntry struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Value     json.RawMessage `json:"value"`
}

// NewRedisStore initializes a new RedisStore
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// NewRedisClient connects to addr and checks the connection
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	var e redisEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, time.Time{}, false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return e.Value, e.FetchedAt, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte, fetchedAt time.Time, retention time.Duration) error {
	raw, err := json.Marshal(redisEntry{FetchedAt: fetchedAt, Value: value})
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.client.Set(ctx, r.prefix+key, raw, retention).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
