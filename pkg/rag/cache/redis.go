package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"corp-learning-be/pkg/rag"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ragcache:"

// RedisStore is a rag.CacheStore shared across instances, backed by Redis
// with native TTL expiry.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]rag.RankedResult, bool, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var results []rag.RankedResult
	if err := json.Unmarshal(raw, &results); err != nil {
		// Corrupted entry degrades to a miss.
		return nil, false, fmt.Errorf("decode cached results: %w", err)
	}
	return results, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, results []rag.RankedResult, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = rag.DefaultCacheTTL
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
