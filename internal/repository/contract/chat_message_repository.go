package contract

import (
	"context"
	"time"

	"corp-learning-be/internal/entity"

	"github.com/google/uuid"
)

// SessionSummary is one chat session grouped from its messages.
type SessionSummary struct {
	SessionId     uuid.UUID
	LastMessage   string
	LastRole      string
	LastMessageAt time.Time
	MessageCount  int64
}

// ChatAnalytics aggregates a user's chat activity over a period.
type ChatAnalytics struct {
	TotalMessages     int64
	UserMessages      int64
	AssistantMessages int64
	AvgConfidence     float64
	AvgResponseTimeMs float64
}

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	// FindAssistantMessage returns nil, nil when no matching assistant
	// message belongs to the user.
	FindAssistantMessage(ctx context.Context, messageId, userId uuid.UUID) (*entity.ChatMessage, error)
	// AttachFeedback merges the feedback block into the message metadata.
	// A message is updated at most once this way.
	AttachFeedback(ctx context.Context, messageId uuid.UUID, metadata map[string]interface{}) error
	FindBySession(ctx context.Context, userId, sessionId uuid.UUID) ([]*entity.ChatMessage, error)
	ListSessions(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*SessionSummary, error)
	DeleteBySession(ctx context.Context, userId, sessionId uuid.UUID) (int64, error)
	Analytics(ctx context.Context, userId uuid.UUID, since time.Time) (*ChatAnalytics, error)
}

type QueryLogRepository interface {
	Create(ctx context.Context, log *entity.QueryLog) error
}
