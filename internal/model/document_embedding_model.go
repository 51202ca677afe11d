package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocumentEmbedding struct {
	Id          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContentId   *uuid.UUID      `gorm:"type:uuid;index"` // nullable: some records are not tied to a content entity
	ContentType string          `gorm:"type:varchar(50);not null;index"`
	ContentText string          `gorm:"type:text"`
	Embedding   pgvector.Vector `gorm:"type:vector(1536)"` // text-embedding-ada-002 uses 1536 dimensions
	Metadata    datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

func (DocumentEmbedding) TableName() string {
	return "document_embeddings"
}
