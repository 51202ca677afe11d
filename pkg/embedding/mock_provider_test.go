package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProviderDeterministic(t *testing.T) {
	p := NewMockProvider(64)

	first, err := p.Embed(context.Background(), "hello")
	require.NoError(t, err)
	second, err := p.Embed(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, first, second, "same text must produce identical vectors")
	assert.Len(t, first, 64)
}

func TestMockProviderDiffersPerText(t *testing.T) {
	p := NewMockProvider(64)

	hello, err := p.Embed(context.Background(), "hello")
	require.NoError(t, err)
	world, err := p.Embed(context.Background(), "world")
	require.NoError(t, err)

	assert.NotEqual(t, hello, world, "different texts must produce different vectors")
}

func TestMockProviderDefaultDimension(t *testing.T) {
	p := NewMockProvider(0)

	vec, err := p.Embed(context.Background(), "anything")
	require.NoError(t, err)
	assert.Len(t, vec, 1536)
}

func TestMockProviderNormalized(t *testing.T) {
	p := NewMockProvider(128)

	vec, err := p.Embed(context.Background(), "normalize me")
	require.NoError(t, err)

	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(magnitude), 1e-4)
}
