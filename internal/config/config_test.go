package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadForcesMockModeWithoutCredentials(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("RAG_MOCK_MODE", "false")
	t.Setenv("EMBEDDING_PROVIDER", "openai")
	t.Setenv("LLM_PROVIDER", "openai")

	cfg := Load()

	assert.True(t, cfg.Ai.MockMode, "no credentials must force mock mode")
}

func TestLoadKeepsConfiguredModeWithCredentials(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("RAG_MOCK_MODE", "false")
	t.Setenv("EMBEDDING_PROVIDER", "openai")
	t.Setenv("LLM_PROVIDER", "openai")

	cfg := Load()

	assert.False(t, cfg.Ai.MockMode)
}
