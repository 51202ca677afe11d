package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"corp-learning-be/internal/dto"
	"corp-learning-be/internal/entity"
	"corp-learning-be/internal/pkg/logger"
	"corp-learning-be/internal/repository/contract"
	"corp-learning-be/pkg/embedding"
	"corp-learning-be/pkg/events"
	pktNats "corp-learning-be/pkg/nats"
	"corp-learning-be/pkg/rag"
	"corp-learning-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	IndexActionUpsert = "upsert"
	IndexActionDelete = "delete"
)

// IIndexerService maintains the document embedding index: it reacts to
// content lifecycle events, serves on-demand (re)indexing, and reports index
// health.
type IIndexerService interface {
	ProcessLearningContent(ctx context.Context, contentId uuid.UUID) (int, error)
	DeleteContentEmbeddings(ctx context.Context, contentId uuid.UUID) error
	Rebuild(ctx context.Context, contentType string) (int, error)
	Status(ctx context.Context) (*dto.EmbeddingStatusResponse, error)

	// RequestIndex enqueues an indexing request on the in-process topic.
	RequestIndex(ctx context.Context, contentId uuid.UUID, action string) error
	// Consume starts the worker draining the in-process topic.
	Consume(ctx context.Context) error
	// HandleContentEvent adapts bus events into indexing requests.
	HandleContentEvent(ctx context.Context, event events.Event) error
}

type indexerService struct {
	embeddingRepo  contract.DocumentEmbeddingRepository
	catalogRepo    contract.CatalogRepository
	embedder       embedding.Provider
	pubSub         *gochannel.GoChannel
	topicName      string
	eventPublisher *pktNats.Publisher
	sysLogger      logger.ILogger
	mockMode       bool
}

func NewIndexerService(
	embeddingRepo contract.DocumentEmbeddingRepository,
	catalogRepo contract.CatalogRepository,
	embedder embedding.Provider,
	pubSub *gochannel.GoChannel,
	topicName string,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
	mockMode bool,
) IIndexerService {
	return &indexerService{
		embeddingRepo:  embeddingRepo,
		catalogRepo:    catalogRepo,
		embedder:       embedder,
		pubSub:         pubSub,
		topicName:      topicName,
		eventPublisher: eventPublisher,
		sysLogger:      sysLogger,
		mockMode:       mockMode,
	}
}

// ProcessLearningContent re-embeds one content item: stale chunks are removed
// first so an update never leaves both versions retrievable. A missing item is
// treated as deleted.
func (s *indexerService) ProcessLearningContent(ctx context.Context, contentId uuid.UUID) (int, error) {
	content, err := s.catalogRepo.FindContent(ctx, contentId)
	if err != nil {
		return 0, fmt.Errorf("load content %s: %w", contentId, err)
	}
	if content == nil {
		if err := s.embeddingRepo.DeleteByContentId(ctx, contentId); err != nil {
			return 0, fmt.Errorf("purge embeddings for missing content %s: %w", contentId, err)
		}
		return 0, nil
	}

	if err := s.embeddingRepo.DeleteByContentId(ctx, contentId); err != nil {
		return 0, fmt.Errorf("purge stale embeddings for %s: %w", contentId, err)
	}

	docs, err := s.buildContentEmbeddings(ctx, content)
	if err != nil {
		return 0, err
	}
	if err := s.embeddingRepo.CreateBulk(ctx, docs); err != nil {
		return 0, fmt.Errorf("store embeddings for %s: %w", contentId, err)
	}

	s.sysLogger.Info("indexer", "content indexed", map[string]interface{}{
		"content_id": contentId.String(),
		"chunks":     len(docs),
	})
	return len(docs), nil
}

func (s *indexerService) DeleteContentEmbeddings(ctx context.Context, contentId uuid.UUID) error {
	if err := s.embeddingRepo.DeleteByContentId(ctx, contentId); err != nil {
		return fmt.Errorf("delete embeddings for %s: %w", contentId, err)
	}
	return nil
}

// Rebuild re-embeds a whole category, or every category for "all". Each
// category is purged before its new records land so the index never mixes
// generations.
func (s *indexerService) Rebuild(ctx context.Context, contentType string) (int, error) {
	types := []string{contentType}
	if contentType == "all" {
		types = []string{rag.ContentTypeUser, rag.ContentTypeSkill, rag.ContentTypeLearningContent, rag.ContentTypeUserProgress}
	}

	total := 0
	for _, ct := range types {
		count, err := s.rebuildCategory(ctx, ct)
		if err != nil {
			return total, err
		}
		total += count
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewIndexRebuilt(total)); err != nil {
			s.sysLogger.Warn("indexer", "could not publish rebuild event", map[string]interface{}{"error": err.Error()})
		}
	}

	s.sysLogger.Info("indexer", "index rebuilt", map[string]interface{}{
		"content_type": contentType,
		"documents":    total,
	})
	return total, nil
}

func (s *indexerService) rebuildCategory(ctx context.Context, contentType string) (int, error) {
	var (
		docs []*entity.DocumentEmbedding
		err  error
	)

	switch contentType {
	case rag.ContentTypeUser:
		docs, err = s.buildUserEmbeddings(ctx)
	case rag.ContentTypeSkill:
		docs, err = s.buildSkillEmbeddings(ctx)
	case rag.ContentTypeLearningContent:
		docs, err = s.buildAllContentEmbeddings(ctx)
	case rag.ContentTypeUserProgress:
		docs, err = s.buildProgressEmbeddings(ctx)
	default:
		return 0, fmt.Errorf("unknown content type %q", contentType)
	}
	if err != nil {
		return 0, err
	}

	if err := s.embeddingRepo.DeleteByContentType(ctx, contentType); err != nil {
		return 0, fmt.Errorf("purge %s embeddings: %w", contentType, err)
	}
	if len(docs) == 0 {
		return 0, nil
	}
	if err := s.embeddingRepo.CreateBulk(ctx, docs); err != nil {
		return 0, fmt.Errorf("store %s embeddings: %w", contentType, err)
	}
	return len(docs), nil
}

func (s *indexerService) Status(ctx context.Context) (*dto.EmbeddingStatusResponse, error) {
	total, err := s.embeddingRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count embeddings: %w", err)
	}
	byType, err := s.embeddingRepo.CountByContentType(ctx)
	if err != nil {
		return nil, fmt.Errorf("count embeddings by type: %w", err)
	}

	return &dto.EmbeddingStatusResponse{
		TotalDocuments: total,
		ByContentType:  byType,
		MockMode:       s.mockMode,
	}, nil
}

func (s *indexerService) RequestIndex(ctx context.Context, contentId uuid.UUID, action string) error {
	payload, err := json.Marshal(dto.IndexContentMessage{ContentId: contentId, Action: action})
	if err != nil {
		return fmt.Errorf("marshal index request: %w", err)
	}
	return s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), payload))
}

func (s *indexerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *indexerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IndexContentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.sysLogger.Error("indexer", "invalid index request payload", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	var err error
	switch payload.Action {
	case IndexActionDelete:
		err = s.DeleteContentEmbeddings(ctx, payload.ContentId)
	default:
		_, err = s.ProcessLearningContent(ctx, payload.ContentId)
	}

	if err != nil {
		s.sysLogger.Error("indexer", "index request failed", map[string]interface{}{
			"content_id": payload.ContentId.String(),
			"action":     payload.Action,
			"error":      err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}

// HandleContentEvent bridges the NATS bus to the in-process topic: the bus
// consumer stays fast and indexing retries locally.
func (s *indexerService) HandleContentEvent(ctx context.Context, event events.Event) error {
	switch event.EventType() {
	case events.TypeContentPublished, events.TypeContentUpdated, events.TypeContentDeleted:
	default:
		// Other bus traffic is not ours to handle.
		return nil
	}

	rawId, ok := event.Payload()["content_id"].(string)
	if !ok {
		s.sysLogger.Warn("indexer", "content event without content_id", map[string]interface{}{"type": event.EventType()})
		return nil
	}
	contentId, err := uuid.Parse(rawId)
	if err != nil {
		s.sysLogger.Warn("indexer", "content event with invalid content_id", map[string]interface{}{"content_id": rawId})
		return nil
	}

	action := IndexActionUpsert
	if event.EventType() == events.TypeContentDeleted {
		action = IndexActionDelete
	}
	return s.RequestIndex(ctx, contentId, action)
}

// buildContentEmbeddings chunks one content item and embeds each chunk.
func (s *indexerService) buildContentEmbeddings(ctx context.Context, content *entity.LearningContent) ([]*entity.DocumentEmbedding, error) {
	text := extractContentText(content)
	chunks := utils.SplitText(text, utils.DefaultChunkSize, utils.DefaultChunkOverlap)

	docs := make([]*entity.DocumentEmbedding, 0, len(chunks))
	for i, chunk := range chunks {
		vector, err := s.embedder.Embed(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("embed content %s chunk %d: %w", content.Id, i, err)
		}
		contentId := content.Id
		docs = append(docs, &entity.DocumentEmbedding{
			Id:          uuid.New(),
			ContentId:   &contentId,
			ContentType: rag.ContentTypeLearningContent,
			ContentText: chunk,
			Embedding:   vector,
			Metadata: map[string]interface{}{
				"title":            content.Title,
				"difficulty_level": content.DifficultyLevel,
				"chunk_index":      i,
				"chunk_total":      len(chunks),
			},
		})
	}
	return docs, nil
}

func (s *indexerService) buildAllContentEmbeddings(ctx context.Context) ([]*entity.DocumentEmbedding, error) {
	contents, err := s.catalogRepo.ListContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}

	var docs []*entity.DocumentEmbedding
	for _, content := range contents {
		contentDocs, err := s.buildContentEmbeddings(ctx, content)
		if err != nil {
			return nil, err
		}
		docs = append(docs, contentDocs...)
	}
	return docs, nil
}

func (s *indexerService) buildUserEmbeddings(ctx context.Context) ([]*entity.DocumentEmbedding, error) {
	users, err := s.catalogRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	docs := make([]*entity.DocumentEmbedding, 0, len(users))
	for _, user := range users {
		text := extractUserText(user)
		vector, err := s.embedder.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed user %s: %w", user.Id, err)
		}
		userId := user.Id
		docs = append(docs, &entity.DocumentEmbedding{
			Id:          uuid.New(),
			ContentId:   &userId,
			ContentType: rag.ContentTypeUser,
			ContentText: text,
			Embedding:   vector,
			Metadata: map[string]interface{}{
				"department": user.Department,
				"role":       user.Role,
			},
		})
	}
	return docs, nil
}

func (s *indexerService) buildSkillEmbeddings(ctx context.Context) ([]*entity.DocumentEmbedding, error) {
	skills, err := s.catalogRepo.ListSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}

	docs := make([]*entity.DocumentEmbedding, 0, len(skills))
	for _, skill := range skills {
		text := extractSkillText(skill)
		vector, err := s.embedder.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed skill %s: %w", skill.Id, err)
		}
		skillId := skill.Id
		docs = append(docs, &entity.DocumentEmbedding{
			Id:          uuid.New(),
			ContentId:   &skillId,
			ContentType: rag.ContentTypeSkill,
			ContentText: text,
			Embedding:   vector,
			Metadata: map[string]interface{}{
				"category": skill.Category,
			},
		})
	}
	return docs, nil
}

func (s *indexerService) buildProgressEmbeddings(ctx context.Context) ([]*entity.DocumentEmbedding, error) {
	records, err := s.catalogRepo.ListProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	docs := make([]*entity.DocumentEmbedding, 0, len(records))
	for _, progress := range records {
		text := extractProgressText(progress)
		vector, err := s.embedder.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed progress %s: %w", progress.Id, err)
		}
		progressId := progress.Id
		metadata := map[string]interface{}{
			"user_id": progress.UserId.String(),
			"status":  progress.Status,
		}
		if progress.ContentId != nil {
			metadata["content_id"] = progress.ContentId.String()
		}
		docs = append(docs, &entity.DocumentEmbedding{
			Id:          uuid.New(),
			ContentId:   &progressId,
			ContentType: rag.ContentTypeUserProgress,
			ContentText: text,
			Embedding:   vector,
			Metadata:    metadata,
		})
	}
	return docs, nil
}

// extractContentText flattens the searchable fields of a content item into
// one embeddable document.
func extractContentText(content *entity.LearningContent) string {
	var b strings.Builder

	b.WriteString(content.Title)
	if content.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(content.Description)
	}
	if len(content.LearningObjectives) > 0 {
		b.WriteString("\n\nLearning objectives: ")
		b.WriteString(strings.Join(content.LearningObjectives, "; "))
	}
	if len(content.SkillsCovered) > 0 {
		b.WriteString("\nSkills covered: ")
		b.WriteString(strings.Join(content.SkillsCovered, ", "))
	}
	if content.DifficultyLevel != "" {
		b.WriteString("\nDifficulty: ")
		b.WriteString(content.DifficultyLevel)
	}

	return b.String()
}

func extractUserText(user *entity.User) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s works in %s as %s.", user.Name, user.Department, user.Role)
	if interests, ok := user.LearningProfile["interests"].([]interface{}); ok && len(interests) > 0 {
		parts := make([]string, 0, len(interests))
		for _, interest := range interests {
			if s, ok := interest.(string); ok {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			b.WriteString(" Learning interests: ")
			b.WriteString(strings.Join(parts, ", "))
			b.WriteString(".")
		}
	}

	return b.String()
}

func extractSkillText(skill *entity.Skill) string {
	text := skill.Name
	if skill.Category != "" {
		text = fmt.Sprintf("%s (%s)", skill.Name, skill.Category)
	}
	if skill.Description != "" {
		text += ": " + skill.Description
	}
	return text
}

func extractProgressText(progress *entity.UserProgress) string {
	return fmt.Sprintf("Learning progress: status %s, %.0f%% complete.", progress.Status, progress.ProgressPercentage)
}
