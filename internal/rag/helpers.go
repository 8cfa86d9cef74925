package rag

import (
	"context"
	"os"
	"time"

	"github.com/docuchat/docuchat/internal/domain/docmodel"
	"github.com/docuchat/docuchat/internal/metrics"
	"github.com/docuchat/docuchat/internal/rag/ingest"
	"github.com/docuchat/docuchat/internal/rag/vectorDB"
)

func (s *service) executeExtractionStep(ctx context.Context, path string, docType docmodel.DocType) ([]docmodel.Page, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("extraction", time.Since(start)) }()

	pages, err := ingest.ExtractText(path, docType)

	// The handler's temp file is consumed either way.
	if removeErr := os.Remove(path); removeErr != nil {
		s.logger.WithTrace(ctx).Error("Error removing temp file", "path", path, "error", removeErr)
	}
	return pages, err
}

func (s *service) executeIndexStep(ctx context.Context, chunks []docmodel.Chunk) error {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("indexing", time.Since(start)) }()

	return ingest.BatchIngest(ctx, chunks, s.vectorDB, s.embedder)
}

func (s *service) executeSummaryStep(ctx context.Context, excerpt string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("summary_generation", time.Since(start)) }()

	return s.synth.Summarize(ctx, excerpt)
}

func (s *service) executeEmbeddingStep(ctx context.Context, question string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.retriever.EmbedQuery(ctx, question)
}

func (s *service) executeCacheCheckStep(ctx context.Context, vector []float32, documentID string) (string, bool) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	answer, found, err := s.vectorDB.GetCachedAnswer(ctx, vector, documentID)
	if err != nil {
		// A broken cache only costs latency; the pipeline continues.
		s.logger.WithTrace(ctx).Warn("Answer cache lookup failed", "error", err)
		return "", false
	}
	return answer, found
}

func (s *service) executeSearchStep(ctx context.Context, vector []float32, documentID string) ([]vectorDB.Match, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return s.retriever.Search(ctx, vector, documentID)
}

func (s *service) executeSynthesisStep(ctx context.Context, question string, passages []string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.synth.AnswerGrounded(ctx, question, passages)
}

func (s *service) executeGeneralStep(ctx context.Context, question string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.synth.AnswerGeneral(ctx, question)
}
