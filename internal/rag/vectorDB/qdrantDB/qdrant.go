package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/domain/docmodel"
	"github.com/docuchat/docuchat/internal/rag/vectorDB"
	"github.com/docuchat/docuchat/pkg/applog"
	"github.com/qdrant/go-client/qdrant"
)

var logger *applog.Logger
var qdrantInstance *qdrant.Client
var once sync.Once
var dimension = uint64(config.EmbeddingOutputDimensionality)

type ClientHolder struct {
	QObj *qdrant.Client
}

func GetQdrantClient(ctx context.Context, host string, port int) *ClientHolder {
	once.Do(func() {
		logger = applog.NewLogger("Qdrant")
		res := newClient(ctx, host, port)
		if res != nil {
			qdrantInstance = res
			go closeQdrant(ctx, qdrantInstance)
		}
	})

	if qdrantInstance == nil {
		return nil
	}
	return &ClientHolder{
		QObj: qdrantInstance,
	}
}

func newClient(ctx context.Context, host string, port int) *qdrant.Client {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil
	}

	holder := &ClientHolder{QObj: client}
	if err := holder.EnsureCollections(ctx); err != nil {
		logger.Error("could not create collections: ", "error:", err)
		return nil
	}

	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	if err := qi.Close(); err != nil {
		logger.Error("could not close Qdrant: ", "error:", err)
	}
	logger.Info("Closed Qdrant")
}

// EnsureCollections creates the chunk and answer-cache collections when absent.
func (db *ClientHolder) EnsureCollections(ctx context.Context) error {
	if err := createCollection(ctx, db.QObj, config.DocCollectionName); err != nil {
		return err
	}
	return createCollection(ctx, db.QObj, config.AnswerCacheCollection)
}

// QueryByDocument searches the chunk collection restricted to one document.
// The filter is a strict keyword match on document_id - records from any
// other document are never returned, whatever their score.
func (db *ClientHolder) QueryByDocument(ctx context.Context, vector []float32, documentID string, limit uint64) ([]vectorDB.Match, error) {
	loggr := logger.WithTrace(ctx)

	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: config.DocCollectionName,
		Query:          qdrant.NewQuery(vector...),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("document_id", documentID),
			},
		},
		Limit:       qdrant.PtrOf(limit),
		WithPayload: qdrant.NewWithPayload(true),
	})

	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return nil, err
	}

	matches := make([]vectorDB.Match, 0, len(result))
	for _, hit := range result {
		matches = append(matches, vectorDB.Match{
			Text:       hit.Payload["content"].GetStringValue(),
			DocumentID: hit.Payload["document_id"].GetStringValue(),
			PageNum:    hit.Payload["page_num"].GetIntegerValue(),
			ChunkOrder: hit.Payload["chunk_order"].GetIntegerValue(),
			Score:      hit.GetScore(),
		})
	}

	loggr.Debug("Qdrant query done", "documentId", documentID, "matches", len(matches))
	return matches, nil
}

func (db *ClientHolder) UpsertBatch(ctx context.Context, chunks []docmodel.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(chunks))

	for i, chunk := range chunks {
		payload := map[string]any{
			"content": chunk.Text,
		}
		for k, v := range chunk.Metadata {
			payload[k] = v
		}

		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(chunk.ID),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(payload),
		}
	}

	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: config.DocCollectionName,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})

	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}

	return nil
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	return err
}
