package implementation

import (
	"context"
	"os"
	"testing"
	"time"

	"corp-learning-be/internal/entity"
	"corp-learning-be/internal/model"
	"corp-learning-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("TEST_DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("TEST_DB_CONNECTION_STRING not set")
	}
	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ChatMessage{}))
	return db
}

func seedMessage(t *testing.T, db *gorm.DB, userId, sessionId uuid.UUID, content string, age time.Duration) {
	repo := NewChatMessageRepository(db)
	msg := &entity.ChatMessage{
		Id:        uuid.New(),
		UserId:    userId,
		SessionId: sessionId,
		Role:      "user",
		Content:   content,
	}
	require.NoError(t, repo.Create(context.Background(), msg))
	require.NoError(t, db.Model(&model.ChatMessage{}).
		Where("id = ?", msg.Id).
		Update("created_at", time.Now().Add(-age)).Error)
}

func TestListSessionsOrdersByRecency(t *testing.T) {
	db := testDB(t)
	repo := NewChatMessageRepository(db)
	ctx := context.Background()

	userId := uuid.New()
	t.Cleanup(func() {
		db.Where("user_id = ?", userId).Delete(&model.ChatMessage{})
	})

	// The stale session sorts first by uuid, the active one by recency.
	staleSession := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	activeSession := uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

	seedMessage(t, db, userId, staleSession, "first question", 3*time.Hour)
	seedMessage(t, db, userId, staleSession, "first follow-up", 2*time.Hour)
	seedMessage(t, db, userId, activeSession, "second question", time.Hour)

	sessions, err := repo.ListSessions(ctx, userId, 10, 0)

	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, activeSession, sessions[0].SessionId)
	assert.Equal(t, staleSession, sessions[1].SessionId)
	assert.Equal(t, "first follow-up", sessions[1].LastMessage, "latest message represents the session")
	assert.Equal(t, int64(2), sessions[1].MessageCount)

	// Pagination pages over the recency order.
	page, err := repo.ListSessions(ctx, userId, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, staleSession, page[0].SessionId)
}
