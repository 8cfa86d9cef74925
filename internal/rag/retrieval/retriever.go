package retrieval

import (
	"context"

	"github.com/docuchat/docuchat/internal/rag/embedding"
	"github.com/docuchat/docuchat/internal/rag/vectorDB"
	"github.com/docuchat/docuchat/pkg/applog"
)

// Retriever answers "which passages of this document are closest to this
// question". Scoring is the vector store's; nothing is recomputed here.
type Retriever struct {
	store    vectorDB.DataProcessor
	embedder embedding.Embedder
	topK     uint64
	logger   *applog.Logger
}

func New(store vectorDB.DataProcessor, embedder embedding.Embedder, topK int) *Retriever {
	if topK <= 0 {
		topK = 4
	}
	return &Retriever{
		store:    store,
		embedder: embedder,
		topK:     uint64(topK),
		logger:   applog.NewLogger("Retriever"),
	}
}

// EmbedQuery maps the question into the embedding space once; the caller can
// reuse the vector for the answer cache lookup.
func (r *Retriever) EmbedQuery(ctx context.Context, question string) ([]float32, error) {
	return r.embedder.GetEmbedding(ctx, question)
}

// Search returns the top-k matches scoped to documentID. k is a hard cap,
// not a minimum; an empty slice means "no relevant content found" and is a
// valid result.
func (r *Retriever) Search(ctx context.Context, vector []float32, documentID string) ([]vectorDB.Match, error) {
	matches, err := r.store.QueryByDocument(ctx, vector, documentID, r.topK)
	if err != nil {
		return nil, err
	}
	r.logger.WithTrace(ctx).Debug("Retrieved matches", "documentId", documentID, "count", len(matches))
	return matches, nil
}

// Retrieve is EmbedQuery followed by Search.
func (r *Retriever) Retrieve(ctx context.Context, question string, documentID string) ([]vectorDB.Match, error) {
	vector, err := r.EmbedQuery(ctx, question)
	if err != nil {
		return nil, err
	}
	return r.Search(ctx, vector, documentID)
}
