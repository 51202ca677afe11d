package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QueryLog records every chat query once, immutably. It feeds trend
// analytics and is never read back by the pipeline itself.
type QueryLog struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	SessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	QueryText string         `gorm:"type:text;not null"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (QueryLog) TableName() string {
	return "query_logs"
}
