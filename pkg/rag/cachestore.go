package rag

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultCacheTTL is how long a cached result list stays valid.
const DefaultCacheTTL = 1 * time.Hour

// CacheStore memoizes search results by key. The cache is advisory: callers
// must treat any failure (or a miss) as "search again", never as a pipeline
// error. Backends live in pkg/rag/cache and in the repository layer.
type CacheStore interface {
	// Get returns the cached results for key, or found=false on miss/expiry.
	Get(ctx context.Context, key string) (results []RankedResult, found bool, err error)

	// Put stores results under key for the given TTL, replacing any previous entry.
	Put(ctx context.Context, key string, results []RankedResult, ttl time.Duration) error
}

// CacheKey derives the cache key for a search: a content hash over the
// serialized query vector and the search options. Options are part of the key
// because they change the result set for the same vector.
func CacheKey(queryVector []float32, opts SearchOptions) string {
	payload, _ := json.Marshal(struct {
		QueryVector []float32     `json:"query_vector"`
		Options     SearchOptions `json:"options"`
	}{queryVector, opts})

	return fmt.Sprintf("%x", sha256.Sum256(payload))
}
