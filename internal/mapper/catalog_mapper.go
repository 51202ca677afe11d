package mapper

import (
	"encoding/json"

	"corp-learning-be/internal/entity"
	"corp-learning-be/internal/model"

	"gorm.io/datatypes"
)

type CatalogMapper struct{}

func NewCatalogMapper() *CatalogMapper {
	return &CatalogMapper{}
}

func (m *CatalogMapper) ContentToEntity(e *model.LearningContent) *entity.LearningContent {
	if e == nil {
		return nil
	}

	return &entity.LearningContent{
		Id:                 e.Id,
		Title:              e.Title,
		Description:        e.Description,
		ContentType:        e.ContentType,
		ContentData:        decodeMetadata(e.ContentData),
		LearningObjectives: decodeStringList(e.LearningObjectives),
		SkillsCovered:      decodeStringList(e.SkillsCovered),
		DifficultyLevel:    e.DifficultyLevel,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func (m *CatalogMapper) UserToEntity(e *model.User) *entity.User {
	if e == nil {
		return nil
	}

	return &entity.User{
		Id:              e.Id,
		Email:           e.Email,
		Name:            e.Name,
		Department:      e.Department,
		Role:            e.Role,
		LearningProfile: decodeMetadata(e.LearningProfile),
		Preferences:     decodeMetadata(e.Preferences),
	}
}

func (m *CatalogMapper) SkillToEntity(e *model.Skill) *entity.Skill {
	if e == nil {
		return nil
	}

	return &entity.Skill{
		Id:          e.Id,
		Name:        e.Name,
		Category:    e.Category,
		Description: e.Description,
	}
}

func (m *CatalogMapper) ProgressToEntity(e *model.UserProgress) *entity.UserProgress {
	if e == nil {
		return nil
	}

	return &entity.UserProgress{
		Id:                 e.Id,
		UserId:             e.UserId,
		ContentId:          e.ContentId,
		SkillId:            e.SkillId,
		Status:             e.Status,
		ProgressPercentage: e.ProgressPercentage,
		LastAccessedAt:     e.LastAccessedAt,
	}
}

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
