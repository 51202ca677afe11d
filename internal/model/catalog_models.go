package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Read-side models. These tables are owned by the learning platform's CRUD
// service; this service only reads them to build embedding records.

type LearningContent struct {
	Id                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title              string         `gorm:"type:varchar(255);not null"`
	Description        string         `gorm:"type:text"`
	ContentType        string         `gorm:"type:varchar(50);not null"`
	ContentData        datatypes.JSON `gorm:"type:jsonb"`
	LearningObjectives datatypes.JSON `gorm:"type:jsonb"`
	SkillsCovered      datatypes.JSON `gorm:"type:jsonb"`
	DifficultyLevel    string         `gorm:"type:varchar(50)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (LearningContent) TableName() string {
	return "learning_content"
}

type User struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Email           string         `gorm:"type:varchar(255)"`
	Name            string         `gorm:"type:varchar(255)"`
	Department      string         `gorm:"type:varchar(100)"`
	Role            string         `gorm:"type:varchar(100)"`
	LearningProfile datatypes.JSON `gorm:"type:jsonb"`
	Preferences     datatypes.JSON `gorm:"type:jsonb"`
}

func (User) TableName() string {
	return "users"
}

type Skill struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255)"`
	Category    string    `gorm:"type:varchar(100)"`
	Description string    `gorm:"type:text"`
}

func (Skill) TableName() string {
	return "skills"
}

type UserProgress struct {
	Id                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserId             uuid.UUID  `gorm:"type:uuid;index"`
	ContentId          *uuid.UUID `gorm:"type:uuid"`
	SkillId            *uuid.UUID `gorm:"type:uuid"`
	Status             string     `gorm:"type:varchar(50)"`
	ProgressPercentage float64
	LastAccessedAt     *time.Time
}

func (UserProgress) TableName() string {
	return "user_progress"
}
