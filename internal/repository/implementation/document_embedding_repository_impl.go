package implementation

import (
	"context"
	"encoding/json"

	"corp-learning-be/internal/entity"
	"corp-learning-be/internal/mapper"
	"corp-learning-be/internal/model"
	"corp-learning-be/internal/repository/contract"
	"corp-learning-be/pkg/rag"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentEmbeddingMapper
}

func NewDocumentEmbeddingRepository(db *gorm.DB) contract.DocumentEmbeddingRepository {
	return &DocumentEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentEmbeddingMapper(),
	}
}

func (r *DocumentEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.DocumentEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := make([]*model.DocumentEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.ToModel(e)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	// Update IDs back to entities
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocumentEmbeddingRepositoryImpl) DeleteByContentId(ctx context.Context, contentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("content_id = ?", contentId).Delete(&model.DocumentEmbedding{}).Error
}

func (r *DocumentEmbeddingRepositoryImpl) DeleteByContentType(ctx context.Context, contentType string) error {
	return r.db.WithContext(ctx).Where("content_type = ?", contentType).Delete(&model.DocumentEmbedding{}).Error
}

func (r *DocumentEmbeddingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DocumentEmbedding{}).Count(&count).Error
	return count, err
}

func (r *DocumentEmbeddingRepositoryImpl) CountByContentType(ctx context.Context) (map[string]int64, error) {
	type row struct {
		ContentType string
		Count       int64
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Model(&model.DocumentEmbedding{}).
		Select("content_type, count(*) as count").
		Group("content_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.ContentType] = rw.Count
	}
	return counts, nil
}

// Search runs the pgvector nearest-neighbor query. Similarity is computed as
// 1 - (embedding <=> query_vector); rows at or below the threshold are
// excluded in SQL and ties resolve to the older row.
func (r *DocumentEmbeddingRepositoryImpl) Search(ctx context.Context, queryVector []float32, opts rag.SearchOptions) ([]rag.RankedResult, error) {
	opts = opts.Normalize()

	type row struct {
		model.DocumentEmbedding
		Similarity float64
	}
	var rows []row

	vec := pgvector.NewVector(queryVector)

	query := r.db.WithContext(ctx).
		Table("document_embeddings").
		Select("document_embeddings.*, 1 - (embedding <=> ?) as similarity", vec).
		Where("1 - (embedding <=> ?) > ?", vec, opts.MatchThreshold)

	if opts.ContentType != "" {
		query = query.Where("content_type = ?", opts.ContentType)
	}

	err := query.
		Order("similarity DESC, created_at ASC").
		Limit(opts.MatchCount).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]rag.RankedResult, len(rows))
	for i, rw := range rows {
		var metadata map[string]interface{}
		if len(rw.Metadata) > 0 {
			_ = json.Unmarshal(rw.Metadata, &metadata)
		}
		results[i] = rag.RankedResult{
			Id:          rw.Id,
			ContentId:   rw.ContentId,
			ContentType: rw.ContentType,
			ContentText: rw.ContentText,
			Similarity:  rw.Similarity,
			Metadata:    metadata,
		}
	}
	return results, nil
}
