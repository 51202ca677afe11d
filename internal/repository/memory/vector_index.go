package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"corp-learning-be/pkg/rag"
)

// VectorIndex is an in-memory similarity index with the same search contract
// as the pgvector-backed repository: descending similarity, threshold filter,
// topK truncation, insertion order on exact ties. Used in mock mode and tests.
type VectorIndex struct {
	mu      sync.RWMutex
	records []rag.RankedResult
	vectors [][]float32
}

func NewVectorIndex() *VectorIndex {
	return &VectorIndex{}
}

// Add stores a record and its vector. The Similarity field of the stored
// record is ignored; it is computed per query.
func (ix *VectorIndex) Add(record rag.RankedResult, vector []float32) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.records = append(ix.records, record)
	ix.vectors = append(ix.vectors, vector)
}

func (ix *VectorIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.records)
}

func (ix *VectorIndex) Reset() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.records = nil
	ix.vectors = nil
}

func (ix *VectorIndex) Search(_ context.Context, queryVector []float32, opts rag.SearchOptions) ([]rag.RankedResult, error) {
	opts = opts.Normalize()

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	type scored struct {
		result rag.RankedResult
		order  int
	}
	var qualified []scored

	for i, rec := range ix.records {
		if opts.ContentType != "" && rec.ContentType != opts.ContentType {
			continue
		}
		similarity := cosineSimilarity(queryVector, ix.vectors[i])
		if similarity <= opts.MatchThreshold {
			continue
		}
		rec.Similarity = similarity
		qualified = append(qualified, scored{result: rec, order: i})
	}

	// Stable on descending similarity; exact ties keep insertion order.
	sort.SliceStable(qualified, func(a, b int) bool {
		if qualified[a].result.Similarity != qualified[b].result.Similarity {
			return qualified[a].result.Similarity > qualified[b].result.Similarity
		}
		return qualified[a].order < qualified[b].order
	})

	if len(qualified) > opts.MatchCount {
		qualified = qualified[:opts.MatchCount]
	}

	results := make([]rag.RankedResult, len(qualified))
	for i, s := range qualified {
		results[i] = s.result
	}
	return results, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
