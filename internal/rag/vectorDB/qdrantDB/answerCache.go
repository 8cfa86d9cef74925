package qdrantDB

import (
	"context"
	"time"

	"github.com/docuchat/docuchat/internal/config"
	"github.com/qdrant/go-client/qdrant"
)

// GetCachedAnswer looks for a previously synthesized answer to a semantically
// equivalent question against the same document. The document_id filter keeps
// cache hits from ever crossing documents.
func (db *ClientHolder) GetCachedAnswer(ctx context.Context, queryVector []float32, documentID string) (string, bool, error) {
	loggr := logger.WithTrace(ctx)

	searchResult, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: config.AnswerCacheCollection,
		Query:          qdrant.NewQuery(queryVector...),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("document_id", documentID),
			},
		},
		Limit:       qdrant.PtrOf(uint64(1)),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil || len(searchResult) == 0 {
		return "", false, err
	}

	if searchResult[0].GetScore() < config.CacheSimilarityCutoff {
		return "", false, nil
	}

	loggr.Debug("Answer cache hit", "score", searchResult[0].GetScore())
	answer := searchResult[0].Payload["answer"].GetStringValue()
	return answer, true, nil
}

func (db *ClientHolder) SaveToCache(ctx context.Context, id string, vector []float32, documentID string, answer string) error {
	loggr := logger.WithTrace(ctx)

	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: config.AnswerCacheCollection,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(id),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"answer":      answer,
					"document_id": documentID,
					"timestamp":   time.Now().Unix(),
				}),
			},
		},
	})
	if err != nil {
		loggr.Error("Saving answer to cache failed", "error", err)
	}
	return err
}
