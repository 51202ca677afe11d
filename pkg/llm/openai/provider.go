package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"corp-learning-be/pkg/llm"
)

// Provider implements llm.Provider against the OpenAI chat-completions API.
type Provider struct {
	ApiKey    string
	ModelName string
	Client    *http.Client
}

var _ llm.Provider = &Provider{}

func NewProvider(apiKey, modelName string) *Provider {
	if modelName == "" {
		modelName = "gpt-4"
	}
	return &Provider{
		ApiKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []chatCompletionMessage `json:"messages"`
	Temperature float64                 `json:"temperature,omitempty"`
	MaxTokens   int                     `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
	} `json:"choices"`
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.7, // Default
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]chatCompletionMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = llm.RoleAssistant
		}
		messages[i] = chatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := chatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: options.Temperature,
	}
	if options.MaxTokens > 0 {
		reqPayload.MaxTokens = options.MaxTokens
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		"https://api.openai.com/v1/chat/completions",
		bytes.NewBuffer(payloadBytes),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var completionResp chatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &completionResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(completionResp.Choices) == 0 {
		return "", fmt.Errorf("openai response contains no choices")
	}

	return completionResp.Choices[0].Message.Content, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
