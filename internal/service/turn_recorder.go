package service

import (
	"context"

	"corp-learning-be/internal/entity"
	"corp-learning-be/internal/repository/contract"
	"corp-learning-be/pkg/rag"

	"github.com/google/uuid"
)

// turnRecorder persists the query log and assistant messages on behalf of the
// RAG pipeline. Split from the chat service so the pipeline can be built
// before it.
type turnRecorder struct {
	messageRepo  contract.ChatMessageRepository
	queryLogRepo contract.QueryLogRepository
}

func NewTurnRecorder(
	messageRepo contract.ChatMessageRepository,
	queryLogRepo contract.QueryLogRepository,
) rag.TurnRecorder {
	return &turnRecorder{
		messageRepo:  messageRepo,
		queryLogRepo: queryLogRepo,
	}
}

func (r *turnRecorder) RecordQuery(ctx context.Context, userId, sessionId uuid.UUID, query string) error {
	return r.queryLogRepo.Create(ctx, &entity.QueryLog{
		Id:        uuid.New(),
		UserId:    userId,
		SessionId: sessionId,
		QueryText: query,
	})
}

func (r *turnRecorder) RecordAssistantTurn(ctx context.Context, turn rag.AssistantTurn) error {
	confidence := turn.Confidence
	responseTime := turn.ResponseTimeMs

	return r.messageRepo.Create(ctx, &entity.ChatMessage{
		Id:              uuid.New(),
		UserId:          turn.UserId,
		SessionId:       turn.SessionId,
		Role:            "assistant",
		Content:         turn.Content,
		ConfidenceScore: &confidence,
		ResponseTimeMs:  &responseTime,
		Metadata:        turn.Metadata,
	})
}
