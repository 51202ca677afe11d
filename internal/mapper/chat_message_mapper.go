package mapper

import (
	"corp-learning-be/internal/entity"
	"corp-learning-be/internal/model"
)

type ChatMessageMapper struct{}

func NewChatMessageMapper() *ChatMessageMapper {
	return &ChatMessageMapper{}
}

func (m *ChatMessageMapper) ToEntity(e *model.ChatMessage) *entity.ChatMessage {
	if e == nil {
		return nil
	}

	return &entity.ChatMessage{
		Id:              e.Id,
		UserId:          e.UserId,
		SessionId:       e.SessionId,
		Role:            e.Role,
		Content:         e.Content,
		ConfidenceScore: e.ConfidenceScore,
		ResponseTimeMs:  e.ResponseTimeMs,
		Metadata:        decodeMetadata(e.Metadata),
		CreatedAt:       e.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToModel(e *entity.ChatMessage) *model.ChatMessage {
	if e == nil {
		return nil
	}

	return &model.ChatMessage{
		Id:              e.Id,
		UserId:          e.UserId,
		SessionId:       e.SessionId,
		Role:            e.Role,
		Content:         e.Content,
		ConfidenceScore: e.ConfidenceScore,
		ResponseTimeMs:  e.ResponseTimeMs,
		Metadata:        encodeMetadata(e.Metadata),
	}
}

func (m *ChatMessageMapper) QueryLogToModel(e *entity.QueryLog) *model.QueryLog {
	if e == nil {
		return nil
	}

	return &model.QueryLog{
		Id:        e.Id,
		UserId:    e.UserId,
		SessionId: e.SessionId,
		QueryText: e.QueryText,
		Metadata:  encodeMetadata(e.Metadata),
	}
}
