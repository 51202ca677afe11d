package service

import (
	"context"
	"testing"
	"time"

	"corp-learning-be/internal/dto"
	"corp-learning-be/internal/entity"
	"corp-learning-be/internal/repository/contract"
	"corp-learning-be/pkg/rag"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageRepo struct {
	created          []*entity.ChatMessage
	assistantMessage *entity.ChatMessage
	attached         map[string]interface{}
	analytics        *contract.ChatAnalytics
	analyticsSince   time.Time
}

func (f *fakeMessageRepo) Create(_ context.Context, message *entity.ChatMessage) error {
	f.created = append(f.created, message)
	return nil
}

func (f *fakeMessageRepo) FindAssistantMessage(_ context.Context, _, _ uuid.UUID) (*entity.ChatMessage, error) {
	return f.assistantMessage, nil
}

func (f *fakeMessageRepo) AttachFeedback(_ context.Context, _ uuid.UUID, metadata map[string]interface{}) error {
	f.attached = metadata
	return nil
}

func (f *fakeMessageRepo) FindBySession(_ context.Context, _, _ uuid.UUID) ([]*entity.ChatMessage, error) {
	return f.created, nil
}

func (f *fakeMessageRepo) ListSessions(_ context.Context, _ uuid.UUID, _, _ int) ([]*contract.SessionSummary, error) {
	return nil, nil
}

func (f *fakeMessageRepo) DeleteBySession(_ context.Context, _, _ uuid.UUID) (int64, error) {
	return int64(len(f.created)), nil
}

func (f *fakeMessageRepo) Analytics(_ context.Context, _ uuid.UUID, since time.Time) (*contract.ChatAnalytics, error) {
	f.analyticsSince = since
	return f.analytics, nil
}

type fakeQueryLogRepo struct {
	logs []*entity.QueryLog
}

func (f *fakeQueryLogRepo) Create(_ context.Context, log *entity.QueryLog) error {
	f.logs = append(f.logs, log)
	return nil
}

type testLogger struct{}

func (testLogger) Debug(string, string, map[string]interface{}) {}
func (testLogger) Info(string, string, map[string]interface{})  {}
func (testLogger) Warn(string, string, map[string]interface{})  {}
func (testLogger) Error(string, string, map[string]interface{}) {}
func (testLogger) Sync() error                                  { return nil }

// mockPipeline builds a pipeline that answers without any external provider.
func mockPipeline(repo *fakeMessageRepo, logRepo *fakeQueryLogRepo) *rag.Service {
	recorder := NewTurnRecorder(repo, logRepo)
	return rag.NewService(nil, nil, nil, nil, recorder, testLogger{}, rag.Config{MockMode: true})
}

func TestSendMessageCreatesSessionAndPersistsUserTurn(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := NewChatService(mockPipeline(repo, &fakeQueryLogRepo{}), repo, testLogger{})
	userId := uuid.New()

	res, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{
		Message: "Tell me about JavaScript",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.SessionId)
	assert.NotEmpty(t, res.Response)
	assert.Equal(t, 0.90, res.Confidence)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "user", repo.created[0].Role)
	assert.Equal(t, "Tell me about JavaScript", repo.created[0].Content)
	assert.Equal(t, res.SessionId, repo.created[0].SessionId)
}

func TestSendMessageReusesSession(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := NewChatService(mockPipeline(repo, &fakeQueryLogRepo{}), repo, testLogger{})
	sessionId := uuid.New()

	res, err := svc.SendMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{
		Message:   "follow-up question",
		SessionId: &sessionId,
	})

	require.NoError(t, err)
	assert.Equal(t, sessionId, res.SessionId)
}

func TestSubmitFeedbackMessageNotFound(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := NewChatService(mockPipeline(repo, &fakeQueryLogRepo{}), repo, testLogger{})

	err := svc.SubmitFeedback(context.Background(), uuid.New(), &dto.SubmitFeedbackRequest{
		MessageId: uuid.New(),
		Rating:    4,
	})

	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestSubmitFeedbackRejectsSecondSubmission(t *testing.T) {
	repo := &fakeMessageRepo{
		assistantMessage: &entity.ChatMessage{
			Id:       uuid.New(),
			Role:     "assistant",
			Metadata: map[string]interface{}{"feedback": map[string]interface{}{"rating": 5}},
		},
	}
	svc := NewChatService(mockPipeline(repo, &fakeQueryLogRepo{}), repo, testLogger{})

	err := svc.SubmitFeedback(context.Background(), uuid.New(), &dto.SubmitFeedbackRequest{
		MessageId: uuid.New(),
		Rating:    2,
	})

	assert.ErrorIs(t, err, ErrFeedbackAlreadySubmitted)
}

func TestSubmitFeedbackAttachesRating(t *testing.T) {
	repo := &fakeMessageRepo{
		assistantMessage: &entity.ChatMessage{Id: uuid.New(), Role: "assistant"},
	}
	svc := NewChatService(mockPipeline(repo, &fakeQueryLogRepo{}), repo, testLogger{})

	err := svc.SubmitFeedback(context.Background(), uuid.New(), &dto.SubmitFeedbackRequest{
		MessageId: uuid.New(),
		Rating:    4,
		Comment:   "helpful",
	})

	require.NoError(t, err)
	feedback, ok := repo.attached["feedback"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 4, feedback["rating"])
	assert.Equal(t, "helpful", feedback["comment"])
}

func TestAnalyticsDefaultsPeriod(t *testing.T) {
	repo := &fakeMessageRepo{analytics: &contract.ChatAnalytics{TotalMessages: 10}}
	svc := NewChatService(mockPipeline(repo, &fakeQueryLogRepo{}), repo, testLogger{})

	res, err := svc.Analytics(context.Background(), uuid.New(), 0)

	require.NoError(t, err)
	assert.Equal(t, 30, res.PeriodDays)
	assert.Equal(t, int64(10), res.TotalMessages)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -30), repo.analyticsSince, time.Minute)
}
