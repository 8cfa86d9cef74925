package openaiEmbedding

import (
	"context"
	"errors"
	"sync"

	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/customHttpClient"
	"github.com/docuchat/docuchat/internal/rag/embedding"
	"github.com/docuchat/docuchat/pkg/applog"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var logger *applog.Logger
var once sync.Once
var embeddingClient *client

type client struct {
	oa    openai.Client
	model string
}

// GetOpenAIEmbeddingClient is the alternate provider behind the Embedder
// interface, selected with EMBEDDING_PROVIDER=openai.
func GetOpenAIEmbeddingClient(apikey string) embedding.Embedder {
	once.Do(func() {
		logger = applog.NewLogger("openai_embedding")
		embeddingClient = &client{
			oa:    openai.NewClient(option.WithAPIKey(apikey), option.WithHTTPClient(customHttpClient.Pooled())),
			model: config.OpenAIEmbeddingModel,
		}
		logger.Info("OpenAI Embedding client created", "model", config.OpenAIEmbeddingModel)
	})
	return &client{oa: embeddingClient.oa, model: embeddingClient.model}
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	vectors, err := c.BatchEmbedding(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, errors.New("openai returned no embedding")
	}
	return vectors[0], nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	log := logger.WithTrace(ctx)

	resp, err := c.oa.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model:      c.model,
		Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: chunks},
		Dimensions: openai.Int(int64(config.EmbeddingOutputDimensionality)),
	})
	if err != nil {
		log.Error("Error getting Embeddings from OpenAI", "error", err)
		return nil, err
	}

	vectors := make([][]float32, 0, len(resp.Data))
	for _, d := range resp.Data {
		vec := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}
