package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Rag      RagConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	OpenAI            string
	IndexContentTopic string // in-process topic for indexing requests
}

type AIConfig struct {
	EmbeddingProvider string // "openai" or "ollama"
	EmbeddingModel    string
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "openai" or "ollama"
	LLMModel          string // grounded-answer model
	FallbackModel     string // cheaper tier for no-context answers
	MockMode          bool
}

type RagConfig struct {
	MatchThreshold float64
	MatchCount     int
	CacheBackend   string // "database", "memory" or "redis"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenAI:            getEnv("OPENAI_API_KEY", ""),
			IndexContentTopic: getEnv("INDEX_CONTENT_TOPIC_NAME", "INDEX_LEARNING_CONTENT"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-ada-002"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4"),
			FallbackModel:     getEnv("LLM_FALLBACK_MODEL", "gpt-3.5-turbo"),
			MockMode:          getEnvAsBool("RAG_MOCK_MODE", false),
		},
		Rag: RagConfig{
			MatchThreshold: getEnvAsFloat("RAG_MATCH_THRESHOLD", 0.7),
			MatchCount:     getEnvAsInt("RAG_MATCH_COUNT", 5),
			CacheBackend:   getEnv("RAG_CACHE_BACKEND", "database"),
		},
	}

	// Without credentials the OpenAI-backed providers cannot work; force the
	// service into mock mode instead of failing every request.
	if cfg.Keys.OpenAI == "" && (cfg.Ai.EmbeddingProvider == "openai" || cfg.Ai.LLMProvider == "openai") {
		if !cfg.Ai.MockMode {
			log.Println("Note: OPENAI_API_KEY not set, running in mock mode")
		}
		cfg.Ai.MockMode = true
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
