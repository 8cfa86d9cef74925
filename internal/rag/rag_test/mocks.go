package rag_test

import (
	"context"

	"github.com/docuchat/docuchat/internal/domain/docmodel"
	"github.com/docuchat/docuchat/internal/rag/vectorDB"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	// Control fields to simulate different behaviors
	OnQueryByDocument   func(ctx context.Context, vector []float32, documentID string, limit uint64) ([]vectorDB.Match, error)
	OnGetCachedAnswer   func(ctx context.Context, queryVector []float32, documentID string) (string, bool, error)
	OnSaveToCache       func(ctx context.Context, id string, vector []float32, documentID string, answer string) error
	OnUpsertBatch       func(ctx context.Context, chunks []docmodel.Chunk, vectors [][]float32) error
	OnEnsureCollections func(ctx context.Context) error
}

func (m *MockVectorDB) QueryByDocument(ctx context.Context, vector []float32, documentID string, limit uint64) ([]vectorDB.Match, error) {
	if m.OnQueryByDocument != nil {
		return m.OnQueryByDocument(ctx, vector, documentID, limit)
	}
	return []vectorDB.Match{{Text: "default context", DocumentID: documentID}}, nil
}

func (m *MockVectorDB) GetCachedAnswer(ctx context.Context, v []float32, documentID string) (string, bool, error) {
	if m.OnGetCachedAnswer != nil {
		return m.OnGetCachedAnswer(ctx, v, documentID)
	}
	return "", false, nil
}

func (m *MockVectorDB) SaveToCache(ctx context.Context, id string, v []float32, documentID string, answer string) error {
	if m.OnSaveToCache != nil {
		return m.OnSaveToCache(ctx, id, v, documentID, answer)
	}
	return nil
}

func (m *MockVectorDB) UpsertBatch(ctx context.Context, chunks []docmodel.Chunk, vectors [][]float32) error {
	if m.OnUpsertBatch != nil {
		return m.OnUpsertBatch(ctx, chunks, vectors)
	}
	return nil
}

func (m *MockVectorDB) EnsureCollections(ctx context.Context) error {
	if m.OnEnsureCollections != nil {
		return m.OnEnsureCollections(ctx)
	}
	return nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks)
	}
	// Return dummy vectors matching chunk count
	return make([][]float32, len(chunks)), nil
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1}, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, systemText string, userText string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, systemText string, userText string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, systemText, userText)
	}
	return "mocked llm response", nil
}

// MockRegistry implements docmodel.DocumentStore
type MockRegistry struct {
	OnSaveDocument func(ctx context.Context, doc docmodel.Document) error
	Saved          []docmodel.Document
}

func (m *MockRegistry) SaveDocument(ctx context.Context, doc docmodel.Document) error {
	if m.OnSaveDocument != nil {
		return m.OnSaveDocument(ctx, doc)
	}
	m.Saved = append(m.Saved, doc)
	return nil
}

func (m *MockRegistry) GetDocument(ctx context.Context, id string) (docmodel.Document, bool) {
	for _, d := range m.Saved {
		if d.ID == id {
			return d, true
		}
	}
	return docmodel.Document{}, false
}

func (m *MockRegistry) DeleteDocument(ctx context.Context, id string) {}
