package main

import (
	"context"
	"flag"
	"log"

	"corp-learning-be/internal/config"
	"corp-learning-be/internal/pkg/logger"
	"corp-learning-be/internal/repository/implementation"
	"corp-learning-be/internal/service"
	"corp-learning-be/pkg/database"
	"corp-learning-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Rebuilds the embedding index from the catalog tables. Intended for initial
// seeding and for recovering after an embedding model change.
func main() {
	contentType := flag.String("type", "all", "content type to rebuild (user|skill|learning_content|user_progress|all)")
	flag.Parse()

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	var provider embedding.Provider
	if cfg.Ai.MockMode {
		log.Println("[INFO] Rebuilding with MOCK embeddings")
		provider = embedding.NewMockProvider(0)
	} else if cfg.Ai.EmbeddingProvider == "ollama" {
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else {
		provider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))

	indexer := service.NewIndexerService(
		implementation.NewDocumentEmbeddingRepository(db),
		implementation.NewCatalogRepository(db),
		provider,
		pubSub,
		cfg.Keys.IndexContentTopic,
		nil, // no event bus for a one-shot rebuild
		sysLogger,
		cfg.Ai.MockMode,
	)

	documents, err := indexer.Rebuild(context.Background(), *contentType)
	if err != nil {
		log.Fatalf("Error: Rebuild failed after %d documents: %v", documents, err)
	}

	log.Printf("✅ Success: indexed %d documents (%s)", documents, *contentType)
}
