package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentEmbedding struct {
	Id          uuid.UUID
	ContentId   *uuid.UUID
	ContentType string
	ContentText string
	Embedding   []float32
	Metadata    map[string]interface{}
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
