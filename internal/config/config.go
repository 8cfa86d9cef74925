package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	//chunking policy - mirrors the splitter defaults the indexed corpus was built with
	ChunkSize    = 1000
	ChunkOverlap = 200

	//retrieval
	TopK                  = 4
	CacheSimilarityCutoff = 0.97

	EmbeddingOutputDimensionality int32 = 1536
	DocCollectionName                   = "doc-chunks"
	AnswerCacheCollection               = "answer-cache"

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 60 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//one bound per request around all external round trips
	PipelineTimeout = 30 * time.Second

	ServerListenAddr = ":3000"

	//vectorDB
	QdrantHost     = "localhost"
	QdrantGrpcPort = 6334
	QdrantUseTLS   = false
	QdrantPoolSize = 1

	//models
	GeminiModelName      = "gemini-2.0-flash"
	GoogleEmbeddingModel = "gemini-embedding-001"
	OpenAIEmbeddingModel = "text-embedding-3-small"

	EmbedBatchSize = 100

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	RedisAddr          = "127.0.0.1:6379"
	RedisPassword      = ""
	RedisDocumentStore = 0
	//documents are immutable once written, no expiry
	RedisDocumentTTL time.Duration = 0
)
