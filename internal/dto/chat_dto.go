package dto

import (
	"time"

	"corp-learning-be/pkg/rag"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Message   string         `json:"message" validate:"required,min=1,max=4000"`
	SessionId *uuid.UUID     `json:"session_id,omitempty"`
	Options   *SearchOptions `json:"options,omitempty"`
}

// SearchOptions mirrors rag.SearchOptions on the API surface.
type SearchOptions struct {
	MatchThreshold float64 `json:"match_threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
	MatchCount     int     `json:"match_count,omitempty" validate:"omitempty,gt=0,lte=20"`
	ContentType    string  `json:"content_type,omitempty" validate:"omitempty,oneof=user skill learning_content user_progress"`
}

func (o *SearchOptions) ToRag() rag.SearchOptions {
	if o == nil {
		return rag.SearchOptions{}
	}
	return rag.SearchOptions{
		MatchThreshold: o.MatchThreshold,
		MatchCount:     o.MatchCount,
		ContentType:    o.ContentType,
	}
}

type SendMessageResponse struct {
	SessionId      uuid.UUID    `json:"session_id"`
	Response       string       `json:"response"`
	Confidence     float64      `json:"confidence"`
	Sources        []rag.Source `json:"sources"`
	ResponseTimeMs int64        `json:"response_time_ms"`
}

type ChatHistoryResponse struct {
	Id             uuid.UUID              `json:"id"`
	Role           string                 `json:"role"`
	Content        string                 `json:"content"`
	Confidence     *float64               `json:"confidence,omitempty"`
	ResponseTimeMs *int64                 `json:"response_time_ms,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

type SessionSummaryResponse struct {
	SessionId     uuid.UUID `json:"session_id"`
	LastMessage   string    `json:"last_message"`
	LastRole      string    `json:"last_role"`
	LastMessageAt time.Time `json:"last_message_at"`
	MessageCount  int64     `json:"message_count"`
}

type SubmitFeedbackRequest struct {
	MessageId uuid.UUID `json:"message_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment,omitempty" validate:"max=1000"`
}

type ChatAnalyticsResponse struct {
	PeriodDays        int     `json:"period_days"`
	TotalMessages     int64   `json:"total_messages"`
	UserMessages      int64   `json:"user_messages"`
	AssistantMessages int64   `json:"assistant_messages"`
	AvgConfidence     float64 `json:"avg_confidence"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
}
