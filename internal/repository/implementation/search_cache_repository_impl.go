package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"corp-learning-be/internal/model"
	"corp-learning-be/internal/repository/contract"
	"corp-learning-be/pkg/rag"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SearchCacheRepositoryImpl is the database-backed rag.CacheStore. Entries are
// upserted by query hash and only returned while now < expires_at.
type SearchCacheRepositoryImpl struct {
	db *gorm.DB
}

func NewSearchCacheRepository(db *gorm.DB) contract.SearchCacheRepository {
	return &SearchCacheRepositoryImpl{db: db}
}

func (r *SearchCacheRepositoryImpl) Get(ctx context.Context, key string) ([]rag.RankedResult, bool, error) {
	var m model.SearchCacheEntry
	err := r.db.WithContext(ctx).
		Where("query_hash = ? AND expires_at > ?", key, time.Now()).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache lookup: %w", err)
	}

	var results []rag.RankedResult
	if err := json.Unmarshal(m.SearchResults, &results); err != nil {
		// A corrupted entry degrades to a miss.
		return nil, false, fmt.Errorf("decode cached results: %w", err)
	}
	return results, true, nil
}

func (r *SearchCacheRepositoryImpl) Put(ctx context.Context, key string, results []rag.RankedResult, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = rag.DefaultCacheTTL
	}

	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	entry := model.SearchCacheEntry{
		QueryHash:     key,
		ResultCount:   len(results),
		SearchResults: datatypes.JSON(raw),
		ExpiresAt:     time.Now().Add(ttl),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "query_hash"}},
			DoUpdates: clause.AssignmentColumns([]string{"result_count", "search_results", "expires_at", "created_at"}),
		}).
		Create(&entry).Error
}

func (r *SearchCacheRepositoryImpl) PurgeExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&model.SearchCacheEntry{})
	return res.RowsAffected, res.Error
}
