package embedding

import (
	"context"
	"hash/fnv"
	"math"
)

// MockProvider generates deterministic embeddings without any external call.
// The vector is seeded from a hash of the input text, so the same text always
// produces the same vector and different texts diverge with high probability.
// Used in tests and when the service runs without provider credentials.
type MockProvider struct {
	Dimension int
}

func NewMockProvider(dimension int) Provider {
	if dimension <= 0 {
		dimension = 1536
	}
	return &MockProvider{Dimension: dimension}
}

func (p *MockProvider) Embed(_ context.Context, text string) ([]float32, error) {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := float64(h.Sum64() % 100000)

	vec := make([]float32, p.Dimension)
	for i := range vec {
		vec[i] = float32(math.Sin(seed+float64(i))*0.5 + 0.5)
	}
	return normalizeVector(vec), nil
}
