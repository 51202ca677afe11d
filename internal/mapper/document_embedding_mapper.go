package mapper

import (
	"encoding/json"
	"time"

	"corp-learning-be/internal/entity"
	"corp-learning-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocumentEmbeddingMapper struct{}

func NewDocumentEmbeddingMapper() *DocumentEmbeddingMapper {
	return &DocumentEmbeddingMapper{}
}

func (m *DocumentEmbeddingMapper) ToEntity(e *model.DocumentEmbedding) *entity.DocumentEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.DocumentEmbedding{
		Id:          e.Id,
		ContentId:   e.ContentId,
		ContentType: e.ContentType,
		ContentText: e.ContentText,
		Embedding:   e.Embedding.Slice(),
		Metadata:    decodeMetadata(e.Metadata),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *DocumentEmbeddingMapper) ToModel(e *entity.DocumentEmbedding) *model.DocumentEmbedding {
	if e == nil {
		return nil
	}

	return &model.DocumentEmbedding{
		Id:          e.Id,
		ContentId:   e.ContentId,
		ContentType: e.ContentType,
		ContentText: e.ContentText,
		Embedding:   pgvector.NewVector(e.Embedding),
		Metadata:    encodeMetadata(e.Metadata),
	}
}

func decodeMetadata(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func encodeMetadata(metadata map[string]interface{}) datatypes.JSON {
	if metadata == nil {
		return nil
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// MetadataToJSON exposes metadata encoding to the repository layer for
// in-place metadata updates.
func MetadataToJSON(metadata map[string]interface{}) datatypes.JSON {
	return encodeMetadata(metadata)
}
