package rag

import (
	"context"
	"strings"
	"time"

	"github.com/docuchat/docuchat/internal/adapter/utils"
	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/domain/docmodel"
	"github.com/docuchat/docuchat/internal/domain/faults"
	"github.com/docuchat/docuchat/internal/metrics"
	"github.com/docuchat/docuchat/internal/rag/embedding"
	"github.com/docuchat/docuchat/internal/rag/ingest"
	"github.com/docuchat/docuchat/internal/rag/llm"
	"github.com/docuchat/docuchat/internal/rag/retrieval"
	"github.com/docuchat/docuchat/internal/rag/synthesis"
	"github.com/docuchat/docuchat/internal/rag/vectorDB"
	"github.com/docuchat/docuchat/pkg/applog"
)

// NoContentSummary is returned for uploads whose extracted text is empty.
// The upload still succeeds with an empty index.
const NoContentSummary = "The document contains no extractable text."

// Service is the pipeline orchestrator: the handlers only see this contract,
// never the vector store or provider clients behind it. Both operations are
// stateless across requests.
type Service interface {
	Ingest(ctx context.Context, upload docmodel.Upload) (docmodel.IngestResult, error)
	Ask(ctx context.Context, query docmodel.Query) (string, error)
}

type service struct {
	vectorDB  vectorDB.DataProcessor
	embedder  embedding.Embedder
	retriever *retrieval.Retriever
	synth     *synthesis.Synthesizer
	registry  docmodel.DocumentStore
	logger    *applog.Logger
}

// NewService wires the collaborators together. Substituting mocks here is how
// the pipeline is tested without live providers.
func NewService(vector vectorDB.DataProcessor, provider llm.Provider, em embedding.Embedder, registry docmodel.DocumentStore) Service {
	return &service{
		vectorDB:  vector,
		embedder:  em,
		retriever: retrieval.New(vector, em, config.TopK),
		synth:     synthesis.New(provider),
		registry:  registry,
		logger:    applog.NewLogger("RAG Service"),
	}
}

// Ingest runs the upload path: extract, chunk, tag, index, summarize.
// Any stage failure is reported as failure - partial indexing is never
// reported as success - except summarization, which degrades to an empty
// summary rather than discarding an already indexed document.
func (s *service) Ingest(ctx context.Context, upload docmodel.Upload) (docmodel.IngestResult, error) {
	start := time.Now()
	defer func() { metrics.CapturePipelineMetrics("upload", time.Since(start)) }()

	log := s.logger.WithTrace(ctx)
	processCtx, cancel := context.WithTimeout(ctx, config.PipelineTimeout)
	defer cancel()

	docType := ingest.GetDocType(upload.Path)
	if docType == docmodel.ERR {
		return docmodel.IngestResult{}, faults.New(faults.KindExtraction, "extract", "Unsupported document type")
	}

	pages, err := s.executeExtractionStep(processCtx, upload.Path, docType)
	if err != nil {
		return docmodel.IngestResult{}, faults.Wrap(faults.KindExtraction, "extract", "Could not extract text from the document", err)
	}

	documentID := utils.GetNewUUID()

	pieces, err := ingest.SplitPages(pages, config.ChunkSize, config.ChunkOverlap)
	if err != nil {
		// Only a bad size/overlap pair reaches this; it is a deployment
		// problem, not a caller problem.
		return docmodel.IngestResult{}, faults.Wrap(faults.KindConfiguration, "chunk", "Invalid chunking configuration", err)
	}
	chunks := ingest.TagChunks(ingest.PrepareChunks(pieces), documentID)
	log.Debug("Prepared chunks", "documentId", documentID, "pages", len(pages), "chunks", len(chunks))

	summary := NoContentSummary
	if len(chunks) > 0 {
		if err := s.executeIndexStep(processCtx, chunks); err != nil {
			return docmodel.IngestResult{}, faults.Wrap(faults.KindIndexing, "index", "Could not index the document", err)
		}

		summary, err = s.executeSummaryStep(processCtx, chunks[0].Text)
		if err != nil {
			// Indexing already succeeded; a lost summary must not fail the upload.
			log.Error("Ingestion summary failed", "documentId", documentID, "error", err)
			summary = ""
		}
	}

	doc := docmodel.Document{
		ID:         documentID,
		Name:       upload.Name,
		PageCount:  len(pages),
		ChunkCount: len(chunks),
		Summary:    summary,
		UploadedAt: time.Now(),
	}
	if err := s.registry.SaveDocument(ctx, doc); err != nil {
		log.Error("Failed to save document record", "documentId", documentID, "error", err)
	}

	metrics.CountDocumentIngested(len(chunks))
	return docmodel.IngestResult{
		DocumentID: documentID,
		Summary:    summary,
		PageCount:  len(pages),
	}, nil
}

// Ask runs the question path. Routing is solely a function of whether a
// document ID was supplied - no other state is consulted.
func (s *service) Ask(ctx context.Context, query docmodel.Query) (string, error) {
	start := time.Now()
	defer func() { metrics.CapturePipelineMetrics("question", time.Since(start)) }()

	if strings.TrimSpace(query.Question) == "" {
		return "", faults.New(faults.KindMissingInput, "validate", "question is required")
	}

	processCtx, cancel := context.WithTimeout(ctx, config.PipelineTimeout)
	defer cancel()

	if query.DocumentID == "" {
		answer, err := s.executeGeneralStep(processCtx, query.Question)
		if err != nil {
			return "", faults.Wrap(faults.KindSynthesis, "synthesize", "An error occurred while processing your question", err)
		}
		return answer, nil
	}

	return s.askGrounded(processCtx, ctx, query)
}

func (s *service) askGrounded(ctx context.Context, requestCtx context.Context, query docmodel.Query) (string, error) {
	vector, err := s.executeEmbeddingStep(ctx, query.Question)
	if err != nil {
		return "", faults.Wrap(faults.KindSynthesis, "embed_query", "Could not search the document", err)
	}

	if answer, found := s.executeCacheCheckStep(ctx, vector, query.DocumentID); found {
		metrics.CountAnswerCacheHit()
		return answer, nil
	}

	matches, err := s.executeSearchStep(ctx, vector, query.DocumentID)
	if err != nil {
		return "", faults.Wrap(faults.KindSynthesis, "retrieve", "Could not search the document", err)
	}

	passages := make([]string, 0, len(matches))
	for _, m := range matches {
		passages = append(passages, m.Text)
	}

	answer, err := s.executeSynthesisStep(ctx, query.Question, passages)
	if err != nil {
		return "", faults.Wrap(faults.KindSynthesis, "synthesize", "An error occurred while processing your question", err)
	}

	if len(matches) > 0 {
		// Cache write happens off the request path; losing it only costs a
		// future cache miss.
		go s.saveAnswerToCache(requestCtx, vector, query.DocumentID, answer)
	}

	return answer, nil
}

func (s *service) saveAnswerToCache(requestCtx context.Context, vector []float32, documentID string, answer string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(requestCtx), 10*time.Second)
	defer cancel()
	if err := s.vectorDB.SaveToCache(ctx, utils.GetNewUUID(), vector, documentID, answer); err != nil {
		s.logger.Error("Failed to save answer to cache", "documentId", documentID, "error", err)
	}
}
