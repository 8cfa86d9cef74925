package config

import (
	"os"
	"strconv"

	"github.com/docuchat/docuchat/internal/domain/faults"
	"github.com/joho/godotenv"
)

// Settings holds the per-deployment values read from the environment at
// process start. Tunables that never vary per deployment live in config.go.
type Settings struct {
	GoogleAPIKey      string
	OpenAIAPIKey      string
	EmbeddingProvider string // "google" or "openai"
	QdrantHost        string
	QdrantPort        int
	RedisAddr         string
}

// Load reads the environment (a local .env is honored when present) and
// validates required credentials. A missing credential is fatal here, before
// the server accepts a single request - never a per-request error.
func Load() (*Settings, error) {
	_ = godotenv.Load()

	s := &Settings{
		GoogleAPIKey:      os.Getenv("GOOGLE_API_KEY"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		EmbeddingProvider: os.Getenv("EMBEDDING_PROVIDER"),
		QdrantHost:        os.Getenv("QDRANT_HOST"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
	}

	if s.EmbeddingProvider == "" {
		s.EmbeddingProvider = "google"
	}
	if s.QdrantHost == "" {
		s.QdrantHost = QdrantHost
	}
	if s.RedisAddr == "" {
		s.RedisAddr = RedisAddr
	}
	s.QdrantPort = QdrantGrpcPort
	if p := os.Getenv("QDRANT_PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, faults.Wrap(faults.KindConfiguration, "config", "invalid QDRANT_PORT", err)
		}
		s.QdrantPort = port
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) validate() error {
	if s.GoogleAPIKey == "" {
		return faults.New(faults.KindConfiguration, "config", "GOOGLE_API_KEY is required")
	}
	switch s.EmbeddingProvider {
	case "google":
	case "openai":
		if s.OpenAIAPIKey == "" {
			return faults.New(faults.KindConfiguration, "config", "OPENAI_API_KEY is required for the openai embedding provider")
		}
	default:
		return faults.New(faults.KindConfiguration, "config", "EMBEDDING_PROVIDER must be google or openai")
	}
	return nil
}
