package contract

import (
	"context"

	"corp-learning-be/internal/entity"

	"github.com/google/uuid"
)

// CatalogRepository reads the tables owned by the learning platform's CRUD
// service. Used only to build embedding records.
type CatalogRepository interface {
	// FindContent returns nil, nil when the content does not exist.
	FindContent(ctx context.Context, id uuid.UUID) (*entity.LearningContent, error)
	ListContent(ctx context.Context) ([]*entity.LearningContent, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
	ListSkills(ctx context.Context) ([]*entity.Skill, error)
	ListProgress(ctx context.Context) ([]*entity.UserProgress, error)
}
