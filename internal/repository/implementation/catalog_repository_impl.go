package implementation

import (
	"context"
	"errors"

	"corp-learning-be/internal/entity"
	"corp-learning-be/internal/mapper"
	"corp-learning-be/internal/model"
	"corp-learning-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewCatalogRepository(db *gorm.DB) contract.CatalogRepository {
	return &CatalogRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogMapper(),
	}
}

func (r *CatalogRepositoryImpl) FindContent(ctx context.Context, id uuid.UUID) (*entity.LearningContent, error) {
	var m model.LearningContent
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ContentToEntity(&m), nil
}

func (r *CatalogRepositoryImpl) ListContent(ctx context.Context) ([]*entity.LearningContent, error) {
	var models []*model.LearningContent
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	contents := make([]*entity.LearningContent, len(models))
	for i, m := range models {
		contents[i] = r.mapper.ContentToEntity(m)
	}
	return contents, nil
}

func (r *CatalogRepositoryImpl) ListUsers(ctx context.Context) ([]*entity.User, error) {
	var models []*model.User
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	users := make([]*entity.User, len(models))
	for i, m := range models {
		users[i] = r.mapper.UserToEntity(m)
	}
	return users, nil
}

func (r *CatalogRepositoryImpl) ListSkills(ctx context.Context) ([]*entity.Skill, error) {
	var models []*model.Skill
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	skills := make([]*entity.Skill, len(models))
	for i, m := range models {
		skills[i] = r.mapper.SkillToEntity(m)
	}
	return skills, nil
}

func (r *CatalogRepositoryImpl) ListProgress(ctx context.Context) ([]*entity.UserProgress, error) {
	var models []*model.UserProgress
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	progress := make([]*entity.UserProgress, len(models))
	for i, m := range models {
		progress[i] = r.mapper.ProgressToEntity(m)
	}
	return progress, nil
}
