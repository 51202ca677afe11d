package factory

import (
	"fmt"

	"corp-learning-be/pkg/llm"
	"corp-learning-be/pkg/llm/ollama"
	"corp-learning-be/pkg/llm/openai"
)

// NewProvider builds an LLM provider from configuration values.
func NewProvider(providerType, modelName, apiKey, baseURL string) (llm.Provider, error) {
	switch providerType {
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewProvider(apiKey, modelName), nil
	case "ollama":
		return ollama.NewProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
