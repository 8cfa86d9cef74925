package ingest

import (
	"context"
	"fmt"

	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/domain/docmodel"
	"github.com/docuchat/docuchat/internal/rag/embedding"
	"github.com/docuchat/docuchat/internal/rag/vectorDB"
	"github.com/docuchat/docuchat/pkg/applog"
)

var logger = applog.NewLogger("Ingest")

// BatchIngest embeds tagged chunks and writes them to the vector store in
// sub-batches, bounding round trips. It stops at the first failed sub-batch;
// points already written stay written - the caller reports the whole upload
// as failed and a retry re-ingests under a fresh document ID.
func BatchIngest(ctx context.Context, chunks []docmodel.Chunk, vectorDatabase vectorDB.DataProcessor, embedder embedding.Embedder) error {
	log := logger.WithTrace(ctx)

	batchSize := config.EmbedBatchSize
	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		currentBatch := chunks[i:end]

		texts := make([]string, 0, len(currentBatch))
		for _, c := range currentBatch {
			texts = append(texts, c.Text)
		}

		log.Debug("Starting embedding call", "batch length", len(currentBatch))
		vectors, err := embedder.BatchEmbedding(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}

		if err := vectorDatabase.UpsertBatch(ctx, currentBatch, vectors); err != nil {
			return fmt.Errorf("upserting batch failed: %w", err)
		}
	}

	return nil
}
