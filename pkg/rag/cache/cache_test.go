package cache

import (
	"context"
	"testing"
	"time"

	"corp-learning-be/pkg/rag"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []rag.RankedResult {
	return []rag.RankedResult{
		{
			Id:          uuid.New(),
			ContentType: rag.ContentTypeLearningContent,
			ContentText: "Introduction to JavaScript",
			Similarity:  0.91,
		},
		{
			Id:          uuid.New(),
			ContentType: rag.ContentTypeSkill,
			ContentText: "Frontend development",
			Similarity:  0.84,
		},
	}
}

func TestCacheKeyDependsOnVectorAndOptions(t *testing.T) {
	vec := []float32{0.1, 0.2, 0.3}
	opts := rag.SearchOptions{MatchThreshold: 0.7, MatchCount: 5}

	assert.Equal(t, rag.CacheKey(vec, opts), rag.CacheKey(vec, opts))
	assert.NotEqual(t, rag.CacheKey(vec, opts), rag.CacheKey([]float32{0.1, 0.2, 0.4}, opts))
	assert.NotEqual(t, rag.CacheKey(vec, opts), rag.CacheKey(vec, rag.SearchOptions{MatchThreshold: 0.7, MatchCount: 10}))
	assert.NotEqual(t, rag.CacheKey(vec, opts), rag.CacheKey(vec, rag.SearchOptions{MatchThreshold: 0.7, MatchCount: 5, ContentType: "skill"}))
}

func TestMemoryStoreGetAfterPut(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	results := sampleResults()

	key := rag.CacheKey([]float32{0.5, 0.5}, rag.SearchOptions{MatchThreshold: 0.7, MatchCount: 5})
	require.NoError(t, store.Put(ctx, key, results, time.Minute))

	got, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, results, got)
}

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemoryStore()

	_, found, err := store.Get(context.Background(), "no-such-key")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	key := "expiring"
	require.NoError(t, store.Put(ctx, key, sampleResults(), 10*time.Millisecond))

	_, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)

	time.Sleep(30 * time.Millisecond)

	_, found, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found, "entry must not be returned after expiry")
}
