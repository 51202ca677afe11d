package bootstrap

import (
	"testing"

	"corp-learning-be/internal/config"
	"corp-learning-be/pkg/embedding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Without provider credentials the service runs in mock mode and must come
// up without constructing any external provider.
func TestProvidersSkippedInMockMode(t *testing.T) {
	cfg := &config.Config{}
	cfg.Ai.MockMode = true
	cfg.Ai.LLMProvider = "openai"

	provider, err := newLLMProvider(cfg)
	require.NoError(t, err)
	assert.Nil(t, provider, "mock mode must not build an LLM provider")

	embedder := newEmbeddingProvider(cfg)
	assert.IsType(t, &embedding.MockProvider{}, embedder)
}

func TestLLMProviderRequiresCredentials(t *testing.T) {
	cfg := &config.Config{}
	cfg.Ai.LLMProvider = "openai"
	cfg.Ai.LLMModel = "gpt-4"

	_, err := newLLMProvider(cfg)
	assert.Error(t, err)
}
