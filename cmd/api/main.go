package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/data/store"
	"github.com/docuchat/docuchat/internal/domain/docmodel"
	"github.com/docuchat/docuchat/internal/handlers"
	"github.com/docuchat/docuchat/internal/rag"
	"github.com/docuchat/docuchat/internal/rag/embedding"
	"github.com/docuchat/docuchat/internal/rag/embedding/googleEmbedding"
	"github.com/docuchat/docuchat/internal/rag/embedding/openaiEmbedding"
	"github.com/docuchat/docuchat/internal/rag/llm/gemini"
	"github.com/docuchat/docuchat/internal/rag/vectorDB/qdrantDB"
	"github.com/docuchat/docuchat/internal/server"
	"github.com/docuchat/docuchat/pkg/applog"
)

var listenAddr string

func main() {
	applog.Init()
	var logger = applog.NewLogger("main")

	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	// Missing credentials stop the process here, before any request is taken.
	settings, err := config.Load()
	if err != nil {
		logger.Error("Configuration error", "error", err)
		os.Exit(1)
	}

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	var documentStore docmodel.DocumentStore
	if redisStore := store.GetRedisDocumentStore(serviceContext, settings.RedisAddr); redisStore != nil {
		documentStore = redisStore
	} else {
		logger.Warn("Redis is offline, using the in-memory document registry")
		documentStore = store.InitInMemoryDocumentStore()
	}

	vectorDB := qdrantDB.GetQdrantClient(serviceContext, settings.QdrantHost, settings.QdrantPort)

	var embeddingService embedding.Embedder
	if settings.EmbeddingProvider == "openai" {
		embeddingService = openaiEmbedding.GetOpenAIEmbeddingClient(settings.OpenAIAPIKey)
	} else {
		embeddingService = googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, settings.GoogleAPIKey)
	}

	llmProvider := gemini.GetGeminiClient(serviceContext, settings.GoogleAPIKey, config.GeminiModelName)

	if vectorDB == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorDB != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	ragService := rag.NewService(vectorDB, llmProvider, embeddingService, documentStore)
	handlers.Init(ragService, documentStore)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
