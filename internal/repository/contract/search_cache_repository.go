package contract

import (
	"context"

	"corp-learning-be/pkg/rag"
)

// SearchCacheRepository is the database-backed rag.CacheStore. PurgeExpired
// exists for housekeeping; expiry itself is enforced on read.
type SearchCacheRepository interface {
	rag.CacheStore
	PurgeExpired(ctx context.Context) (int64, error)
}
