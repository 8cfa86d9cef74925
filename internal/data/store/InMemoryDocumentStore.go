package store

import (
	"context"
	"sync"

	"github.com/docuchat/docuchat/internal/domain/docmodel"
	"github.com/docuchat/docuchat/pkg/applog"
)

// InMemoryDocumentStore is the fallback registry when Redis is offline.
type InMemoryDocumentStore struct {
	mu     *sync.RWMutex
	docs   map[string]docmodel.Document
	logger *applog.Logger
}

func InitInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		mu:     new(sync.RWMutex),
		docs:   make(map[string]docmodel.Document),
		logger: applog.NewLogger("InMem DocumentStore"),
	}
}

func (s *InMemoryDocumentStore) SaveDocument(ctx context.Context, doc docmodel.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	s.logger.Debug("Saved document record", "documentId", doc.ID)
	return nil
}

func (s *InMemoryDocumentStore) GetDocument(ctx context.Context, id string) (docmodel.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, found := s.docs[id]
	return doc, found
}

func (s *InMemoryDocumentStore) DeleteDocument(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
}
