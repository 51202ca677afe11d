package bootstrap

import (
	"context"
	"log"

	"corp-learning-be/internal/config"
	"corp-learning-be/internal/controller"
	"corp-learning-be/internal/pkg/logger"
	"corp-learning-be/internal/repository/implementation"
	"corp-learning-be/internal/service"
	"corp-learning-be/pkg/embedding"
	"corp-learning-be/pkg/llm"
	"corp-learning-be/pkg/llm/factory"
	"corp-learning-be/pkg/rag"
	ragcache "corp-learning-be/pkg/rag/cache"

	pktNats "corp-learning-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	EmbeddingController controller.IEmbeddingController

	// Background Services (Exposed for main.go to run)
	IndexerService service.IIndexerService

	// Infrastructure handles main.go needs for shutdown / wiring
	NatsSubscriber *pktNats.Subscriber
	Logger         logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	embeddingProvider := newEmbeddingProvider(cfg)
	llmProvider, err := newLLMProvider(cfg)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// 5. Repositories
	embeddingRepo := implementation.NewDocumentEmbeddingRepository(db)
	messageRepo := implementation.NewChatMessageRepository(db)
	queryLogRepo := implementation.NewQueryLogRepository(db)
	catalogRepo := implementation.NewCatalogRepository(db)

	cacheStore := newCacheStore(cfg, db, sysLogger)

	// 6. RAG Pipeline
	recorder := service.NewTurnRecorder(messageRepo, queryLogRepo)
	pipeline := rag.NewService(
		embeddingProvider,
		llmProvider,
		embeddingRepo,
		cacheStore,
		recorder,
		sysLogger,
		rag.Config{
			ContextModel:   cfg.Ai.LLMModel,
			FallbackModel:  cfg.Ai.FallbackModel,
			MatchThreshold: cfg.Rag.MatchThreshold,
			MatchCount:     cfg.Rag.MatchCount,
			MockMode:       cfg.Ai.MockMode,
		},
	)

	// 7. Services
	chatService := service.NewChatService(pipeline, messageRepo, sysLogger)
	indexerService := service.NewIndexerService(
		embeddingRepo,
		catalogRepo,
		embeddingProvider,
		pubSub,
		cfg.Keys.IndexContentTopic,
		natsPub,
		sysLogger,
		cfg.Ai.MockMode,
	)

	// Bridge content lifecycle events from the platform into the indexer
	if natsSub != nil {
		if err := natsSub.Subscribe("events.>", "rag-indexer", indexerService.HandleContentEvent); err != nil {
			log.Printf("[WARN] Failed to subscribe to content events: %v", err)
		}
	}

	// 8. Controllers
	return &Container{
		ChatController:      controller.NewChatController(chatService),
		EmbeddingController: controller.NewEmbeddingController(indexerService),

		IndexerService: indexerService,
		NatsSubscriber: natsSub,
		Logger:         sysLogger,
	}
}

// newLLMProvider returns nil in mock mode: the pipeline answers from canned
// content before any generation call, so no provider and no credentials are
// needed.
func newLLMProvider(cfg *config.Config) (llm.Provider, error) {
	if cfg.Ai.MockMode {
		log.Println("[INFO] Using LLM Provider: MOCK")
		return nil, nil
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	return factory.NewProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Keys.OpenAI,
		cfg.Ai.OllamaBaseURL,
	)
}

func newEmbeddingProvider(cfg *config.Config) embedding.Provider {
	if cfg.Ai.MockMode {
		log.Println("[INFO] Using Embedding Provider: MOCK")
		return embedding.NewMockProvider(0)
	}
	if cfg.Ai.EmbeddingProvider == "ollama" {
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	}
	log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	return embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
}

// newCacheStore picks the search cache backend. The database backend is the
// default because results must survive restarts alongside the index itself.
func newCacheStore(cfg *config.Config, db *gorm.DB, sysLogger logger.ILogger) rag.CacheStore {
	switch cfg.Rag.CacheBackend {
	case "memory":
		return ragcache.NewMemoryStore()
	case "redis":
		store, err := ragcache.NewRedisStore(cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn("bootstrap", "redis cache unavailable, falling back to memory", map[string]interface{}{"error": err.Error()})
			return ragcache.NewMemoryStore()
		}
		// Fail fast on an unreachable Redis instead of erroring every search
		if opts, perr := redis.ParseURL(cfg.App.RedisURL); perr == nil {
			probe := redis.NewClient(opts)
			pingErr := probe.Ping(context.Background()).Err()
			probe.Close()
			if pingErr != nil {
				sysLogger.Warn("bootstrap", "redis unreachable, falling back to memory", map[string]interface{}{"error": pingErr.Error()})
				return ragcache.NewMemoryStore()
			}
		}
		return store
	default:
		return implementation.NewSearchCacheRepository(db)
	}
}
