package embedding

import (
	"context"
	"math"
)

// Provider defines the interface for generating text embeddings.
// Implementations return a fixed-length vector for the given text.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// normalizeVector normalizes a vector to unit length (magnitude = 1).
// Cosine distance in pgvector expects normalized vectors for accurate results.
func normalizeVector(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
