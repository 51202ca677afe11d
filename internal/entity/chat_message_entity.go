package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	SessionId       uuid.UUID
	Role            string
	Content         string
	ConfidenceScore *float64
	ResponseTimeMs  *int64
	Metadata        map[string]interface{}
	CreatedAt       time.Time
}

type QueryLog struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	SessionId uuid.UUID
	QueryText string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}
