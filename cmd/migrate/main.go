package main

import (
	"log"
	"os"

	"corp-learning-be/internal/model"
	"corp-learning-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: Extensions (AutoMigrate cannot create these)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate the tables this service owns. Catalog tables (users,
	// skills, learning_content, user_progress) belong to the platform's CRUD
	// service and are never migrated from here.
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.DocumentEmbedding{},
		&model.ChatMessage{},
		&model.QueryLog{},
		&model.SearchCacheEntry{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: similarity search index. IVFFlat needs data to build
	// useful lists; creating it up front is still safe.
	log.Println("Step 3: Creating vector index...")

	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_document_embeddings_embedding
		 ON document_embeddings USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100);`,
		`CREATE INDEX IF NOT EXISTS idx_document_embeddings_content_type
		 ON document_embeddings (content_type);`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_session
		 ON chat_messages (user_id, session_id, created_at);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
