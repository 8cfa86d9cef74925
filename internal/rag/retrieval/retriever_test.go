package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/docuchat/docuchat/internal/domain/docmodel"
	"github.com/docuchat/docuchat/internal/rag/vectorDB"
)

type stubEmbedder struct {
	embedFunc func(ctx context.Context, query string) ([]float32, error)
}

func (s *stubEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	return s.embedFunc(ctx, query)
}
func (s *stubEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	return nil, nil
}

type stubStore struct {
	queryFunc func(ctx context.Context, vector []float32, documentID string, limit uint64) ([]vectorDB.Match, error)
}

func (s *stubStore) QueryByDocument(ctx context.Context, vector []float32, documentID string, limit uint64) ([]vectorDB.Match, error) {
	return s.queryFunc(ctx, vector, documentID, limit)
}
func (s *stubStore) UpsertBatch(ctx context.Context, chunks []docmodel.Chunk, vectors [][]float32) error {
	return nil
}
func (s *stubStore) GetCachedAnswer(ctx context.Context, v []float32, documentID string) (string, bool, error) {
	return "", false, nil
}
func (s *stubStore) SaveToCache(ctx context.Context, id string, v []float32, documentID string, answer string) error {
	return nil
}
func (s *stubStore) EnsureCollections(ctx context.Context) error { return nil }

func TestSearch_PassesScopeAndLimit(t *testing.T) {
	var gotDoc string
	var gotLimit uint64

	st := &stubStore{
		queryFunc: func(ctx context.Context, vector []float32, documentID string, limit uint64) ([]vectorDB.Match, error) {
			gotDoc = documentID
			gotLimit = limit
			return []vectorDB.Match{{Text: "passage"}}, nil
		},
	}
	r := New(st, &stubEmbedder{}, 4)

	matches, err := r.Search(context.Background(), []float32{0.5}, "doc-7")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotDoc != "doc-7" {
		t.Errorf("Search scoped to %s, want doc-7", gotDoc)
	}
	if gotLimit != 4 {
		t.Errorf("Limit got %d, want 4", gotLimit)
	}
	if len(matches) != 1 {
		t.Errorf("Expected 1 match, got %d", len(matches))
	}
}

func TestSearch_EmptyResultIsNotAnError(t *testing.T) {
	st := &stubStore{
		queryFunc: func(ctx context.Context, vector []float32, documentID string, limit uint64) ([]vectorDB.Match, error) {
			return []vectorDB.Match{}, nil
		},
	}
	r := New(st, &stubEmbedder{}, 4)

	matches, err := r.Search(context.Background(), []float32{0.5}, "doc-7")
	if err != nil {
		t.Fatalf("Search failed on empty result: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Expected 0 matches, got %d", len(matches))
	}
}

func TestRetrieve_EmbedsThenSearches(t *testing.T) {
	emb := &stubEmbedder{
		embedFunc: func(ctx context.Context, query string) ([]float32, error) {
			return []float32{1, 2, 3}, nil
		},
	}
	var gotVector []float32
	st := &stubStore{
		queryFunc: func(ctx context.Context, vector []float32, documentID string, limit uint64) ([]vectorDB.Match, error) {
			gotVector = vector
			return nil, nil
		},
	}
	r := New(st, emb, 4)

	if _, err := r.Retrieve(context.Background(), "a question", "doc-1"); err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(gotVector) != 3 {
		t.Errorf("Search did not receive the query vector, got %v", gotVector)
	}
}

func TestRetrieve_EmbeddingFailureStopsSearch(t *testing.T) {
	emb := &stubEmbedder{
		embedFunc: func(ctx context.Context, query string) ([]float32, error) {
			return nil, errors.New("quota exceeded")
		},
	}
	st := &stubStore{
		queryFunc: func(ctx context.Context, vector []float32, documentID string, limit uint64) ([]vectorDB.Match, error) {
			t.Error("Search must not run when embedding fails")
			return nil, nil
		},
	}
	r := New(st, emb, 4)

	if _, err := r.Retrieve(context.Background(), "a question", "doc-1"); err == nil {
		t.Error("Expected error from Retrieve, got nil")
	}
}

func TestNew_DefaultsTopK(t *testing.T) {
	r := New(&stubStore{}, &stubEmbedder{}, 0)
	if r.topK != 4 {
		t.Errorf("Default topK got %d, want 4", r.topK)
	}
}
