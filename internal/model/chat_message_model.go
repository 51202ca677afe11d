package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID      `gorm:"type:uuid;not null;index"`
	SessionId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Role            string         `gorm:"type:varchar(20);not null"` // "user" or "assistant"
	Content         string         `gorm:"type:text;not null"`
	ConfidenceScore *float64       `gorm:"type:double precision"`
	ResponseTimeMs  *int64         `gorm:"type:bigint"`
	Metadata        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
