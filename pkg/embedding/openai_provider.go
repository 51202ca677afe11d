package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OpenAIProvider implements Provider against the OpenAI embeddings API
// (text-embedding-ada-002, 1536 dimensions).
type OpenAIProvider struct {
	ApiKey string
	Model  string
	Client *http.Client
}

func NewOpenAIProvider(apiKey string, model string) Provider {
	if model == "" {
		model = "text-embedding-ada-002"
	}
	return &OpenAIProvider{
		ApiKey: apiKey,
		Model:  model,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type openaiEmbeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type openaiEmbeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	reqBody := openaiEmbeddingRequest{
		Model: p.Model,
		Input: text,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		"https://api.openai.com/v1/embeddings",
		bytes.NewBuffer(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai embedding request failed: %w", err)
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai embedding error: status %d, body %s", res.StatusCode, string(resByte))
	}

	var embeddingRes openaiEmbeddingResponse
	if err := json.Unmarshal(resByte, &embeddingRes); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if len(embeddingRes.Data) == 0 {
		return nil, fmt.Errorf("openai embedding response contains no data")
	}

	return embeddingRes.Data[0].Embedding, nil
}
