package dto

import (
	"github.com/google/uuid"
)

type GenerateEmbeddingsRequest struct {
	ContentType string     `json:"content_type" validate:"required,oneof=user skill learning_content user_progress all"`
	ContentId   *uuid.UUID `json:"content_id,omitempty"`
}

type GenerateEmbeddingsResponse struct {
	ContentType string `json:"content_type"`
	Documents   int    `json:"documents"`
}

// IndexContentMessage is the payload published on the in-process indexing
// topic. Action is "upsert" or "delete".
type IndexContentMessage struct {
	ContentId uuid.UUID `json:"content_id"`
	Action    string    `json:"action"`
}

type EmbeddingStatusResponse struct {
	TotalDocuments int64            `json:"total_documents"`
	ByContentType  map[string]int64 `json:"by_content_type"`
	MockMode       bool             `json:"mock_mode"`
}
