package memory

import (
	"context"
	"testing"

	"corp-learning-be/pkg/rag"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addRecord(ix *VectorIndex, contentType, text string, vector []float32) {
	ix.Add(rag.RankedResult{
		Id:          uuid.New(),
		ContentType: contentType,
		ContentText: text,
	}, vector)
}

func TestSearchOrderingAndThreshold(t *testing.T) {
	ix := NewVectorIndex()
	// Query along the x axis: similarity is the cosine against (1, 0).
	addRecord(ix, rag.ContentTypeLearningContent, "orthogonal", []float32{0, 1})
	addRecord(ix, rag.ContentTypeLearningContent, "exact", []float32{1, 0})
	addRecord(ix, rag.ContentTypeLearningContent, "close", []float32{0.9, 0.1})
	addRecord(ix, rag.ContentTypeLearningContent, "far", []float32{0.2, 0.8})

	results, err := ix.Search(context.Background(), []float32{1, 0}, rag.SearchOptions{
		MatchThreshold: 0.7,
		MatchCount:     10,
	})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "exact", results[0].ContentText)
	assert.Equal(t, "close", results[1].ContentText)

	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Similarity, results[i-1].Similarity,
			"similarity must be non-increasing")
	}
	for _, r := range results {
		assert.Greater(t, r.Similarity, 0.7, "every result must exceed the threshold")
	}
}

func TestSearchTopKTruncation(t *testing.T) {
	ix := NewVectorIndex()
	for i := 0; i < 8; i++ {
		addRecord(ix, rag.ContentTypeSkill, "skill", []float32{1, 0})
	}

	results, err := ix.Search(context.Background(), []float32{1, 0}, rag.SearchOptions{
		MatchThreshold: 0.5,
		MatchCount:     3,
	})
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSearchTieBreakKeepsInsertionOrder(t *testing.T) {
	ix := NewVectorIndex()
	addRecord(ix, rag.ContentTypeSkill, "first", []float32{1, 0})
	addRecord(ix, rag.ContentTypeSkill, "second", []float32{1, 0})
	addRecord(ix, rag.ContentTypeSkill, "third", []float32{2, 0}) // same direction, same cosine

	results, err := ix.Search(context.Background(), []float32{1, 0}, rag.SearchOptions{
		MatchThreshold: 0.5,
		MatchCount:     10,
	})
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].ContentText)
	assert.Equal(t, "second", results[1].ContentText)
	assert.Equal(t, "third", results[2].ContentText)
}

func TestSearchContentTypeFilter(t *testing.T) {
	ix := NewVectorIndex()
	addRecord(ix, rag.ContentTypeSkill, "skill", []float32{1, 0})
	addRecord(ix, rag.ContentTypeLearningContent, "content", []float32{1, 0})

	results, err := ix.Search(context.Background(), []float32{1, 0}, rag.SearchOptions{
		MatchThreshold: 0.5,
		MatchCount:     10,
		ContentType:    rag.ContentTypeSkill,
	})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "skill", results[0].ContentText)
}

func TestSearchEmptyIndexReturnsEmpty(t *testing.T) {
	ix := NewVectorIndex()

	results, err := ix.Search(context.Background(), []float32{1, 0}, rag.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results, "no results is success, not failure")
}
