package entity

import (
	"time"

	"github.com/google/uuid"
)

// Read-side entities owned by the learning platform's CRUD service.

type LearningContent struct {
	Id                 uuid.UUID
	Title              string
	Description        string
	ContentType        string
	ContentData        map[string]interface{}
	LearningObjectives []string
	SkillsCovered      []string
	DifficultyLevel    string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type User struct {
	Id              uuid.UUID
	Email           string
	Name            string
	Department      string
	Role            string
	LearningProfile map[string]interface{}
	Preferences     map[string]interface{}
}

type Skill struct {
	Id          uuid.UUID
	Name        string
	Category    string
	Description string
}

type UserProgress struct {
	Id                 uuid.UUID
	UserId             uuid.UUID
	ContentId          *uuid.UUID
	SkillId            *uuid.UUID
	Status             string
	ProgressPercentage float64
	LastAccessedAt     *time.Time
}
