package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"corp-learning-be/internal/dto"
	"corp-learning-be/internal/entity"
	"corp-learning-be/internal/pkg/logger"
	"corp-learning-be/internal/repository/contract"
	"corp-learning-be/pkg/rag"

	"github.com/google/uuid"
)

var (
	ErrMessageNotFound          = errors.New("message not found")
	ErrFeedbackAlreadySubmitted = errors.New("feedback already submitted for this message")
)

const defaultAnalyticsPeriodDays = 30

// IChatService defines the chat service interface
type IChatService interface {
	SendMessage(ctx context.Context, userId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetHistory(ctx context.Context, userId, sessionId uuid.UUID) ([]*dto.ChatHistoryResponse, error)
	GetSessions(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.SessionSummaryResponse, error)
	DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error
	SubmitFeedback(ctx context.Context, userId uuid.UUID, request *dto.SubmitFeedbackRequest) error
	Analytics(ctx context.Context, userId uuid.UUID, periodDays int) (*dto.ChatAnalyticsResponse, error)
}

type chatService struct {
	pipeline    *rag.Service
	messageRepo contract.ChatMessageRepository
	sysLogger   logger.ILogger
}

func NewChatService(
	pipeline *rag.Service,
	messageRepo contract.ChatMessageRepository,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		pipeline:    pipeline,
		messageRepo: messageRepo,
		sysLogger:   sysLogger,
	}
}

// SendMessage runs one chat turn: the user message is persisted, the pipeline
// produces the answer (persisting its own side), and the result is returned
// with the session id so clients can continue the conversation.
func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	sessionId := uuid.New()
	if request.SessionId != nil {
		sessionId = *request.SessionId
	}

	userMessage := &entity.ChatMessage{
		Id:        uuid.New(),
		UserId:    userId,
		SessionId: sessionId,
		Role:      "user",
		Content:   request.Message,
	}
	if err := s.messageRepo.Create(ctx, userMessage); err != nil {
		// Losing history is preferable to failing the turn.
		s.sysLogger.Warn("chat", "could not store user message", map[string]interface{}{"error": err.Error()})
	}

	result := s.pipeline.GenerateResponse(ctx, request.Message, userId, sessionId, request.Options.ToRag())

	return &dto.SendMessageResponse{
		SessionId:      sessionId,
		Response:       result.Response,
		Confidence:     result.Confidence,
		Sources:        result.Sources,
		ResponseTimeMs: result.ResponseTimeMs,
	}, nil
}

func (s *chatService) GetHistory(ctx context.Context, userId, sessionId uuid.UUID) ([]*dto.ChatHistoryResponse, error) {
	messages, err := s.messageRepo.FindBySession(ctx, userId, sessionId)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}

	history := make([]*dto.ChatHistoryResponse, len(messages))
	for i, m := range messages {
		history[i] = &dto.ChatHistoryResponse{
			Id:             m.Id,
			Role:           m.Role,
			Content:        m.Content,
			Confidence:     m.ConfidenceScore,
			ResponseTimeMs: m.ResponseTimeMs,
			Metadata:       m.Metadata,
			CreatedAt:      m.CreatedAt,
		}
	}
	return history, nil
}

func (s *chatService) GetSessions(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.SessionSummaryResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	summaries, err := s.messageRepo.ListSessions(ctx, userId, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	sessions := make([]*dto.SessionSummaryResponse, len(summaries))
	for i, summary := range summaries {
		sessions[i] = &dto.SessionSummaryResponse{
			SessionId:     summary.SessionId,
			LastMessage:   summary.LastMessage,
			LastRole:      summary.LastRole,
			LastMessageAt: summary.LastMessageAt,
			MessageCount:  summary.MessageCount,
		}
	}
	return sessions, nil
}

func (s *chatService) DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error {
	deleted, err := s.messageRepo.DeleteBySession(ctx, userId, sessionId)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.sysLogger.Info("chat", "session deleted", map[string]interface{}{
		"session_id": sessionId.String(),
		"messages":   deleted,
	})
	return nil
}

// SubmitFeedback attaches a rating to one of the user's assistant messages.
// A message accepts feedback once.
func (s *chatService) SubmitFeedback(ctx context.Context, userId uuid.UUID, request *dto.SubmitFeedbackRequest) error {
	message, err := s.messageRepo.FindAssistantMessage(ctx, request.MessageId, userId)
	if err != nil {
		return fmt.Errorf("find message: %w", err)
	}
	if message == nil {
		return ErrMessageNotFound
	}

	if message.Metadata != nil {
		if _, exists := message.Metadata["feedback"]; exists {
			return ErrFeedbackAlreadySubmitted
		}
	}

	feedback := map[string]interface{}{
		"feedback": map[string]interface{}{
			"rating":       request.Rating,
			"comment":      request.Comment,
			"submitted_at": time.Now().UTC().Format(time.RFC3339),
		},
	}
	if err := s.messageRepo.AttachFeedback(ctx, request.MessageId, feedback); err != nil {
		return fmt.Errorf("attach feedback: %w", err)
	}
	return nil
}

func (s *chatService) Analytics(ctx context.Context, userId uuid.UUID, periodDays int) (*dto.ChatAnalyticsResponse, error) {
	if periodDays <= 0 || periodDays > 365 {
		periodDays = defaultAnalyticsPeriodDays
	}
	since := time.Now().AddDate(0, 0, -periodDays)

	stats, err := s.messageRepo.Analytics(ctx, userId, since)
	if err != nil {
		return nil, fmt.Errorf("chat analytics: %w", err)
	}

	return &dto.ChatAnalyticsResponse{
		PeriodDays:        periodDays,
		TotalMessages:     stats.TotalMessages,
		UserMessages:      stats.UserMessages,
		AssistantMessages: stats.AssistantMessages,
		AvgConfidence:     stats.AvgConfidence,
		AvgResponseTimeMs: stats.AvgResponseTimeMs,
	}, nil
}
