package rag

import (
	"context"
	"fmt"
	"time"

	"corp-learning-be/pkg/embedding"
	"corp-learning-be/pkg/llm"
	"corp-learning-be/pkg/rag/prompt"

	"github.com/google/uuid"
)

// apologyText is the substituted answer for turns that failed fatally.
const apologyText = "I apologize, but I encountered an error while processing your request. Please try again."

// Retriever answers nearest-neighbor queries against the document embeddings.
// The pgvector-backed repository implements it in production; the in-memory
// index implements it for tests.
type Retriever interface {
	Search(ctx context.Context, queryVector []float32, opts SearchOptions) ([]RankedResult, error)
}

// AssistantTurn is the persisted record of one generated answer.
type AssistantTurn struct {
	UserId         uuid.UUID
	SessionId      uuid.UUID
	Content        string
	Confidence     float64
	ResponseTimeMs int64
	Metadata       map[string]interface{}
}

// TurnRecorder persists the query log and the assistant side of a turn.
// All calls are best-effort: the pipeline logs failures and moves on.
type TurnRecorder interface {
	RecordQuery(ctx context.Context, userId, sessionId uuid.UUID, query string) error
	RecordAssistantTurn(ctx context.Context, turn AssistantTurn) error
}

// Logger is the slice of the application logger the pipeline needs.
type Logger interface {
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
}

// Config tunes the pipeline. Zero values fall back to the defaults used by
// the learning platform.
type Config struct {
	ContextModel    string // model for grounded answers
	FallbackModel   string // cheaper tier for no-context answers
	MaxTokens       int    // token budget for grounded answers
	NoContextTokens int    // token budget for no-context answers
	Temperature     float64

	// Search defaults applied when a request leaves its options unset.
	MatchThreshold float64
	MatchCount     int

	CacheTTL time.Duration
	Weights  ConfidenceWeights

	// NoContextConfidence is returned instead of a computed score when a
	// turn was answered without retrieval signal.
	NoContextConfidence float64
	// ErrorConfidence is attached to the apology response.
	ErrorConfidence float64

	// MockMode bypasses every external call. Forced on when the service
	// has no provider credentials.
	MockMode bool
}

func (c Config) withDefaults() Config {
	if c.ContextModel == "" {
		c.ContextModel = "gpt-4"
	}
	if c.FallbackModel == "" {
		c.FallbackModel = "gpt-3.5-turbo"
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 2000
	}
	if c.NoContextTokens <= 0 {
		c.NoContextTokens = 500
	}
	if c.Temperature <= 0 {
		c.Temperature = 0.7
	}
	if c.MatchThreshold <= 0 {
		c.MatchThreshold = DefaultMatchThreshold
	}
	if c.MatchCount <= 0 {
		c.MatchCount = DefaultMatchCount
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.Weights == (ConfidenceWeights{}) {
		c.Weights = DefaultConfidenceWeights()
	}
	if c.NoContextConfidence <= 0 {
		c.NoContextConfidence = 0.5
	}
	if c.ErrorConfidence <= 0 {
		c.ErrorConfidence = 0.1
	}
	return c
}

const logModule = "rag"

// Service is the RAG orchestrator: it sequences embedding, cached retrieval,
// context assembly, generation, scoring and persistence for one chat turn.
type Service struct {
	embedder  embedding.Provider
	generator llm.Provider
	retriever Retriever
	cache     CacheStore
	recorder  TurnRecorder
	logger    Logger
	mock      *MockResponder
	cfg       Config
}

func NewService(
	embedder embedding.Provider,
	generator llm.Provider,
	retriever Retriever,
	cacheStore CacheStore,
	recorder TurnRecorder,
	logger Logger,
	cfg Config,
) *Service {
	return &Service{
		embedder:  embedder,
		generator: generator,
		retriever: retriever,
		cache:     cacheStore,
		recorder:  recorder,
		logger:    logger,
		mock:      NewMockResponder(),
		cfg:       cfg.withDefaults(),
	}
}

// GenerateResponse runs one chat turn. It never returns an error: every
// failure inside the pipeline is mapped to a well-formed Response.
func (s *Service) GenerateResponse(ctx context.Context, query string, userId, sessionId uuid.UUID, opts SearchOptions) Response {
	start := time.Now()

	if s.cfg.MockMode {
		resp := s.mock.Respond(query)
		resp.ResponseTimeMs = time.Since(start).Milliseconds()
		return resp
	}

	if opts.MatchThreshold <= 0 {
		opts.MatchThreshold = s.cfg.MatchThreshold
	}
	if opts.MatchCount <= 0 {
		opts.MatchCount = s.cfg.MatchCount
	}
	opts = opts.Normalize()

	queryVector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return s.errorResponse(ctx, userId, sessionId, start,
			fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err))
	}

	s.recordQuery(ctx, userId, sessionId, query)

	results := s.search(ctx, queryVector, opts)

	if len(results) == 0 {
		return s.answerWithoutContext(ctx, query, userId, sessionId, start)
	}
	return s.answerWithContext(ctx, query, userId, sessionId, results, start)
}

// search runs the cached retrieval step. A retrieval failure is non-fatal:
// it degrades the turn to the no-context path instead of failing it.
func (s *Service) search(ctx context.Context, queryVector []float32, opts SearchOptions) []RankedResult {
	key := CacheKey(queryVector, opts)

	if results, found, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn(logModule, "cache read failed", map[string]interface{}{"error": err.Error()})
	} else if found {
		return results
	}

	results, err := s.retriever.Search(ctx, queryVector, opts)
	if err != nil {
		s.logger.Error(logModule, "vector search failed, continuing without context", map[string]interface{}{
			"error": fmt.Errorf("%w: %v", ErrSearchUnavailable, err).Error(),
		})
		return nil
	}

	if err := s.cache.Put(ctx, key, results, s.cfg.CacheTTL); err != nil {
		s.logger.Warn(logModule, "cache write failed", map[string]interface{}{"error": err.Error()})
	}

	return results
}

func (s *Service) answerWithContext(ctx context.Context, query string, userId, sessionId uuid.UUID, results []RankedResult, start time.Time) Response {
	contextBlock, sources := AssembleContext(results)
	systemPrompt := prompt.NewBuilder(contextBlock).BuildGrounded()

	answer, err := s.generator.Chat(ctx,
		[]llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: query},
		},
		llm.WithModel(s.cfg.ContextModel),
		llm.WithMaxTokens(s.cfg.MaxTokens),
		llm.WithTemperature(s.cfg.Temperature),
	)
	if err != nil {
		return s.errorResponse(ctx, userId, sessionId, start,
			fmt.Errorf("%w: %v", ErrGenerationUnavailable, err))
	}

	confidence := s.cfg.Weights.Score(results, answer)
	elapsed := time.Since(start).Milliseconds()

	var sum float64
	for _, r := range results {
		sum += r.Similarity
	}

	s.recordAssistantTurn(ctx, AssistantTurn{
		UserId:         userId,
		SessionId:      sessionId,
		Content:        answer,
		Confidence:     confidence,
		ResponseTimeMs: elapsed,
		Metadata: map[string]interface{}{
			"relevant_docs":  len(results),
			"avg_similarity": sum / float64(len(results)),
			"model":          s.cfg.ContextModel,
		},
	})

	return Response{
		Success:        true,
		Response:       answer,
		Confidence:     confidence,
		Sources:        sources,
		ResponseTimeMs: elapsed,
	}
}

// answerWithoutContext handles the turn when retrieval produced nothing.
// A cheaper model tier answers from general knowledge and the confidence is
// a fixed moderate value: there is no retrieval signal to score.
func (s *Service) answerWithoutContext(ctx context.Context, query string, userId, sessionId uuid.UUID, start time.Time) Response {
	answer, err := s.generator.Chat(ctx,
		[]llm.Message{
			{Role: llm.RoleSystem, Content: prompt.BuildPlain()},
			{Role: llm.RoleUser, Content: query},
		},
		llm.WithModel(s.cfg.FallbackModel),
		llm.WithMaxTokens(s.cfg.NoContextTokens),
		llm.WithTemperature(s.cfg.Temperature),
	)
	if err != nil {
		return s.errorResponse(ctx, userId, sessionId, start,
			fmt.Errorf("%w: %v", ErrGenerationUnavailable, err))
	}

	elapsed := time.Since(start).Milliseconds()

	s.recordAssistantTurn(ctx, AssistantTurn{
		UserId:         userId,
		SessionId:      sessionId,
		Content:        answer,
		Confidence:     s.cfg.NoContextConfidence,
		ResponseTimeMs: elapsed,
		Metadata: map[string]interface{}{
			"no_context": true,
			"model":      s.cfg.FallbackModel,
		},
	})

	return Response{
		Success:        true,
		Response:       answer,
		Confidence:     s.cfg.NoContextConfidence,
		Sources:        []Source{},
		ResponseTimeMs: elapsed,
	}
}

// errorResponse is the terminal path for fatal turn failures. The caller
// still receives a well-formed Response and the failed turn is persisted
// best-effort with the error annotated in its metadata.
func (s *Service) errorResponse(ctx context.Context, userId, sessionId uuid.UUID, start time.Time, cause error) Response {
	s.logger.Error(logModule, "chat turn failed", map[string]interface{}{"error": cause.Error()})

	elapsed := time.Since(start).Milliseconds()

	s.recordAssistantTurn(ctx, AssistantTurn{
		UserId:         userId,
		SessionId:      sessionId,
		Content:        apologyText,
		Confidence:     s.cfg.ErrorConfidence,
		ResponseTimeMs: elapsed,
		Metadata: map[string]interface{}{
			"error": cause.Error(),
		},
	})

	return Response{
		Success:        false,
		Response:       apologyText,
		Confidence:     s.cfg.ErrorConfidence,
		Sources:        []Source{},
		ResponseTimeMs: elapsed,
	}
}

func (s *Service) recordQuery(ctx context.Context, userId, sessionId uuid.UUID, query string) {
	if err := s.recorder.RecordQuery(ctx, userId, sessionId, query); err != nil {
		s.logger.Warn(logModule, "could not store query log entry", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) recordAssistantTurn(ctx context.Context, turn AssistantTurn) {
	if err := s.recorder.RecordAssistantTurn(ctx, turn); err != nil {
		s.logger.Warn(logModule, "could not store chat message", map[string]interface{}{"error": err.Error()})
	}
}
