package cache

import (
	"context"
	"time"

	"corp-learning-be/pkg/rag"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process rag.CacheStore backed by go-cache. Suitable
// for a single instance; expired entries are purged every 10 minutes.
type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(rag.DefaultCacheTTL, 10*time.Minute),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]rag.RankedResult, bool, error) {
	if x, found := s.cache.Get(key); found {
		return x.([]rag.RankedResult), true, nil
	}
	return nil, false, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, results []rag.RankedResult, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = rag.DefaultCacheTTL
	}
	s.cache.Set(key, results, ttl)
	return nil
}
