package vectorDB

import (
	"context"

	"github.com/docuchat/docuchat/internal/domain/docmodel"
)

// Match is one retrieved record, ranked by the store's similarity score.
type Match struct {
	Text       string
	DocumentID string
	PageNum    int64
	ChunkOrder int64
	Score      float32
}

type DataProcessor interface {
	// QueryByDocument returns up to limit records whose document_id payload
	// equals documentID. Zero matches is a valid result, not an error.
	QueryByDocument(ctx context.Context, vector []float32, documentID string, limit uint64) ([]Match, error)

	// UpsertBatch persists one logical batch of (vector, text, metadata)
	// records. Chunks carry their document_id in metadata already.
	UpsertBatch(ctx context.Context, chunks []docmodel.Chunk, vectors [][]float32) error

	// Answer cache, scoped to a single document.
	GetCachedAnswer(ctx context.Context, queryVector []float32, documentID string) (string, bool, error)
	SaveToCache(ctx context.Context, id string, vector []float32, documentID string, answer string) error

	EnsureCollections(ctx context.Context) error
}
