package service

import (
	"context"
	"strings"
	"testing"

	"corp-learning-be/internal/entity"
	"corp-learning-be/pkg/embedding"
	"corp-learning-be/pkg/rag"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbeddingRepo struct {
	stored         []*entity.DocumentEmbedding
	deletedContent []uuid.UUID
	deletedTypes   []string
	countByType    map[string]int64
}

func (f *fakeEmbeddingRepo) Create(_ context.Context, e *entity.DocumentEmbedding) error {
	f.stored = append(f.stored, e)
	return nil
}

func (f *fakeEmbeddingRepo) CreateBulk(_ context.Context, es []*entity.DocumentEmbedding) error {
	f.stored = append(f.stored, es...)
	return nil
}

func (f *fakeEmbeddingRepo) DeleteByContentId(_ context.Context, contentId uuid.UUID) error {
	f.deletedContent = append(f.deletedContent, contentId)
	return nil
}

func (f *fakeEmbeddingRepo) DeleteByContentType(_ context.Context, contentType string) error {
	f.deletedTypes = append(f.deletedTypes, contentType)
	return nil
}

func (f *fakeEmbeddingRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.stored)), nil
}

func (f *fakeEmbeddingRepo) CountByContentType(_ context.Context) (map[string]int64, error) {
	return f.countByType, nil
}

func (f *fakeEmbeddingRepo) Search(_ context.Context, _ []float32, _ rag.SearchOptions) ([]rag.RankedResult, error) {
	return nil, nil
}

type fakeCatalogRepo struct {
	content  map[uuid.UUID]*entity.LearningContent
	users    []*entity.User
	skills   []*entity.Skill
	progress []*entity.UserProgress
}

func (f *fakeCatalogRepo) FindContent(_ context.Context, id uuid.UUID) (*entity.LearningContent, error) {
	return f.content[id], nil
}

func (f *fakeCatalogRepo) ListContent(_ context.Context) ([]*entity.LearningContent, error) {
	var all []*entity.LearningContent
	for _, c := range f.content {
		all = append(all, c)
	}
	return all, nil
}

func (f *fakeCatalogRepo) ListUsers(_ context.Context) ([]*entity.User, error) {
	return f.users, nil
}

func (f *fakeCatalogRepo) ListSkills(_ context.Context) ([]*entity.Skill, error) {
	return f.skills, nil
}

func (f *fakeCatalogRepo) ListProgress(_ context.Context) ([]*entity.UserProgress, error) {
	return f.progress, nil
}

func newTestIndexer(embeddingRepo *fakeEmbeddingRepo, catalogRepo *fakeCatalogRepo) IIndexerService {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	return NewIndexerService(
		embeddingRepo,
		catalogRepo,
		embedding.NewMockProvider(8),
		pubSub,
		"INDEX_LEARNING_CONTENT",
		nil,
		testLogger{},
		true,
	)
}

func TestProcessLearningContentReplacesChunks(t *testing.T) {
	contentId := uuid.New()
	catalog := &fakeCatalogRepo{content: map[uuid.UUID]*entity.LearningContent{
		contentId: {
			Id:                 contentId,
			Title:              "Advanced Go Patterns",
			Description:        strings.Repeat("Channels and goroutines. ", 100),
			LearningObjectives: []string{"understand select", "use worker pools"},
			SkillsCovered:      []string{"Go", "concurrency"},
			DifficultyLevel:    "advanced",
		},
	}}
	repo := &fakeEmbeddingRepo{}

	count, err := newTestIndexer(repo, catalog).ProcessLearningContent(context.Background(), contentId)

	require.NoError(t, err)
	assert.Greater(t, count, 1, "long content must be chunked")
	assert.Equal(t, []uuid.UUID{contentId}, repo.deletedContent, "stale chunks purged first")
	require.Len(t, repo.stored, count)

	first := repo.stored[0]
	assert.Equal(t, rag.ContentTypeLearningContent, first.ContentType)
	require.NotNil(t, first.ContentId)
	assert.Equal(t, contentId, *first.ContentId)
	assert.Equal(t, "Advanced Go Patterns", first.Metadata["title"])
	assert.Equal(t, 0, first.Metadata["chunk_index"])
	assert.Len(t, first.Embedding, 8)
}

func TestProcessLearningContentMissingContentPurges(t *testing.T) {
	repo := &fakeEmbeddingRepo{}
	contentId := uuid.New()

	count, err := newTestIndexer(repo, &fakeCatalogRepo{}).ProcessLearningContent(context.Background(), contentId)

	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, []uuid.UUID{contentId}, repo.deletedContent)
	assert.Empty(t, repo.stored)
}

func TestRebuildAllCoversEveryCategory(t *testing.T) {
	contentId := uuid.New()
	catalog := &fakeCatalogRepo{
		content: map[uuid.UUID]*entity.LearningContent{
			contentId: {Id: contentId, Title: "Intro to SQL"},
		},
		users:    []*entity.User{{Id: uuid.New(), Name: "Dana", Department: "Engineering", Role: "developer"}},
		skills:   []*entity.Skill{{Id: uuid.New(), Name: "SQL", Category: "data"}},
		progress: []*entity.UserProgress{{Id: uuid.New(), UserId: uuid.New(), Status: "in_progress", ProgressPercentage: 40}},
	}
	repo := &fakeEmbeddingRepo{}

	total, err := newTestIndexer(repo, catalog).Rebuild(context.Background(), "all")

	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.ElementsMatch(t, []string{
		rag.ContentTypeUser, rag.ContentTypeSkill, rag.ContentTypeLearningContent, rag.ContentTypeUserProgress,
	}, repo.deletedTypes)
}

func TestRebuildUnknownType(t *testing.T) {
	_, err := newTestIndexer(&fakeEmbeddingRepo{}, &fakeCatalogRepo{}).Rebuild(context.Background(), "bogus")

	assert.Error(t, err)
}

func TestExtractContentText(t *testing.T) {
	text := extractContentText(&entity.LearningContent{
		Title:              "Leadership 101",
		Description:        "Foundations of people leadership.",
		LearningObjectives: []string{"give feedback", "run 1:1s"},
		SkillsCovered:      []string{"leadership"},
		DifficultyLevel:    "beginner",
	})

	assert.Contains(t, text, "Leadership 101")
	assert.Contains(t, text, "Foundations of people leadership.")
	assert.Contains(t, text, "Learning objectives: give feedback; run 1:1s")
	assert.Contains(t, text, "Skills covered: leadership")
	assert.Contains(t, text, "Difficulty: beginner")
}

func TestExtractUserTextIncludesInterests(t *testing.T) {
	text := extractUserText(&entity.User{
		Name:       "Dana",
		Department: "Engineering",
		Role:       "developer",
		LearningProfile: map[string]interface{}{
			"interests": []interface{}{"go", "distributed systems"},
		},
	})

	assert.Equal(t, "Dana works in Engineering as developer. Learning interests: go, distributed systems.", text)
}

func TestExtractSkillText(t *testing.T) {
	assert.Equal(t, "SQL (data): querying relational data",
		extractSkillText(&entity.Skill{Name: "SQL", Category: "data", Description: "querying relational data"}))
	assert.Equal(t, "SQL", extractSkillText(&entity.Skill{Name: "SQL"}))
}
