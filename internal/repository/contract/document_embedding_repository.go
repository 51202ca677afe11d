package contract

import (
	"context"

	"corp-learning-be/internal/entity"
	"corp-learning-be/pkg/rag"

	"github.com/google/uuid"
)

type DocumentEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.DocumentEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error
	DeleteByContentId(ctx context.Context, contentId uuid.UUID) error
	// DeleteByContentType hard-deletes one category before a rebuild pass.
	DeleteByContentType(ctx context.Context, contentType string) error
	Count(ctx context.Context) (int64, error)
	CountByContentType(ctx context.Context) (map[string]int64, error)

	// Search answers a nearest-neighbor query ordered by descending
	// similarity (1 - cosine distance), truncated to opts.MatchCount and
	// excluding results at or below opts.MatchThreshold. An empty index or
	// no qualifying record returns an empty list, never an error.
	Search(ctx context.Context, queryVector []float32, opts rag.SearchOptions) ([]rag.RankedResult, error)
}
