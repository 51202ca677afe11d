package implementation

import (
	"context"
	"errors"
	"time"

	"corp-learning-be/internal/entity"
	"corp-learning-be/internal/mapper"
	"corp-learning-be/internal/model"
	"corp-learning-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMessageMapper
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMessageMapper(),
	}
}

func (r *ChatMessageRepositoryImpl) Create(ctx context.Context, message *entity.ChatMessage) error {
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatMessageRepositoryImpl) FindAssistantMessage(ctx context.Context, messageId, userId uuid.UUID) (*entity.ChatMessage, error) {
	var m model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND role = ?", messageId, userId, "assistant").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChatMessageRepositoryImpl) AttachFeedback(ctx context.Context, messageId uuid.UUID, metadata map[string]interface{}) error {
	raw := mapper.MetadataToJSON(metadata)
	return r.db.WithContext(ctx).
		Model(&model.ChatMessage{}).
		Where("id = ?", messageId).
		Update("metadata", raw).Error
}

func (r *ChatMessageRepositoryImpl) FindBySession(ctx context.Context, userId, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	var models []*model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userId, sessionId).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*entity.ChatMessage, len(models))
	for i, m := range models {
		messages[i] = r.mapper.ToEntity(m)
	}
	return messages, nil
}

func (r *ChatMessageRepositoryImpl) ListSessions(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*contract.SessionSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	type row struct {
		SessionId     uuid.UUID
		LastMessage   string
		LastRole      string
		LastMessageAt time.Time
		MessageCount  int64
	}
	var rows []row

	// One row per session: latest message plus a count. DISTINCT ON forces
	// its own ordering, so recency ordering and pagination live in an outer
	// query over the per-session rows.
	err := r.db.WithContext(ctx).Raw(`
		SELECT * FROM (
			SELECT DISTINCT ON (session_id)
				session_id,
				content AS last_message,
				role AS last_role,
				created_at AS last_message_at,
				(SELECT count(*) FROM chat_messages cm2
					WHERE cm2.session_id = chat_messages.session_id AND cm2.user_id = ?) AS message_count
			FROM chat_messages
			WHERE user_id = ?
			ORDER BY session_id, created_at DESC
		) sessions
		ORDER BY last_message_at DESC
		LIMIT ? OFFSET ?`,
		userId, userId, limit, offset,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]*contract.SessionSummary, len(rows))
	for i, rw := range rows {
		sessions[i] = &contract.SessionSummary{
			SessionId:     rw.SessionId,
			LastMessage:   rw.LastMessage,
			LastRole:      rw.LastRole,
			LastMessageAt: rw.LastMessageAt,
			MessageCount:  rw.MessageCount,
		}
	}
	return sessions, nil
}

func (r *ChatMessageRepositoryImpl) DeleteBySession(ctx context.Context, userId, sessionId uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userId, sessionId).
		Delete(&model.ChatMessage{})
	return res.RowsAffected, res.Error
}

func (r *ChatMessageRepositoryImpl) Analytics(ctx context.Context, userId uuid.UUID, since time.Time) (*contract.ChatAnalytics, error) {
	type row struct {
		Role              string
		Count             int64
		AvgConfidence     *float64
		AvgResponseTimeMs *float64
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Model(&model.ChatMessage{}).
		Select("role, count(*) as count, avg(confidence_score) as avg_confidence, avg(response_time_ms) as avg_response_time_ms").
		Where("user_id = ? AND created_at >= ?", userId, since).
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	analytics := &contract.ChatAnalytics{}
	for _, rw := range rows {
		analytics.TotalMessages += rw.Count
		switch rw.Role {
		case "user":
			analytics.UserMessages = rw.Count
		case "assistant":
			analytics.AssistantMessages = rw.Count
			if rw.AvgConfidence != nil {
				analytics.AvgConfidence = *rw.AvgConfidence
			}
			if rw.AvgResponseTimeMs != nil {
				analytics.AvgResponseTimeMs = *rw.AvgResponseTimeMs
			}
		}
	}
	return analytics, nil
}

type QueryLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMessageMapper
}

func NewQueryLogRepository(db *gorm.DB) contract.QueryLogRepository {
	return &QueryLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMessageMapper(),
	}
}

func (r *QueryLogRepositoryImpl) Create(ctx context.Context, log *entity.QueryLog) error {
	m := r.mapper.QueryLogToModel(log)
	return r.db.WithContext(ctx).Create(m).Error
}
