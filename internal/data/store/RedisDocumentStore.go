package store

import (
	"context"
	"encoding/json"

	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/data/redisStore"
	"github.com/docuchat/docuchat/internal/domain/docmodel"
	"github.com/docuchat/docuchat/pkg/applog"
)

type RedisDocumentStore struct {
	store  *redisStore.Store
	logger *applog.Logger
}

func GetRedisDocumentStore(ctx context.Context, addr string) *RedisDocumentStore {
	inner := redisStore.GetRedisStore(ctx, addr, config.RedisDocumentStore)
	if inner == nil {
		return nil
	}
	return &RedisDocumentStore{
		store:  inner,
		logger: applog.NewLogger("DocumentStore"),
	}
}

func (s *RedisDocumentStore) SaveDocument(ctx context.Context, doc docmodel.Document) error {
	log := s.logger.WithTrace(ctx).With("documentId", doc.ID)
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, doc.ID, data, config.RedisDocumentTTL)
	if err == nil {
		log.Debug("Saved document record")
	}
	return err
}

func (s *RedisDocumentStore) GetDocument(ctx context.Context, id string) (docmodel.Document, bool) {
	var doc docmodel.Document
	log := s.logger.WithTrace(ctx).With("documentId", id)

	val, err := s.store.Get(ctx, id)
	if s.store.IsNil(err) {
		return doc, false
	} else if err != nil {
		log.Error("Error reading document record", "error", err)
		return doc, false
	}

	if err = json.Unmarshal([]byte(val), &doc); err != nil {
		log.Error("Error decoding document record", "error", err)
		return doc, false
	}
	return doc, true
}

func (s *RedisDocumentStore) DeleteDocument(ctx context.Context, id string) {
	if err := s.store.Del(ctx, id); err != nil {
		s.logger.Error("Error deleting document record", "documentId", id, "error", err)
		return
	}
	s.logger.Debug("Document record deleted", "documentId", id)
}

// TestDocumentStore builds a registry over an injected store; for tests only.
func TestDocumentStore(store *redisStore.Store) *RedisDocumentStore {
	return &RedisDocumentStore{
		store:  store,
		logger: applog.NewLogger("test document store"),
	}
}
