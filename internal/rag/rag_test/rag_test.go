package rag_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/domain/docmodel"
	"github.com/docuchat/docuchat/internal/domain/faults"
	"github.com/docuchat/docuchat/internal/rag"
	"github.com/docuchat/docuchat/internal/rag/synthesis"
	"github.com/docuchat/docuchat/internal/rag/vectorDB"
)

func TestAsk_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		question       string
		documentID     string
		setupMocks     func(e *MockEmbedder, v *MockVectorDB, l *MockLLM)
		expectedAnswer string
		expectedKind   faults.Kind
	}{
		{
			name:       "Success_Grounded_Flow",
			question:   "what does clause 4 say",
			documentID: "doc-1",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnQueryByDocument = func(ctx context.Context, vec []float32, docID string, limit uint64) ([]vectorDB.Match, error) {
					if docID != "doc-1" {
						t.Errorf("Search got document %s, want doc-1", docID)
					}
					return []vectorDB.Match{{Text: "clause 4 text", DocumentID: docID}}, nil
				}
				l.OnGenerate = func(ctx context.Context, sys string, usr string) (string, error) {
					return "final answer", nil
				}
			},
			expectedAnswer: "final answer",
		},
		{
			name:       "Success_Cache_Hit",
			question:   "cached question",
			documentID: "doc-1",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnGetCachedAnswer = func(ctx context.Context, vec []float32, docID string) (string, bool, error) {
					return "cached answer", true, nil
				}
				l.OnGenerate = func(ctx context.Context, sys string, usr string) (string, error) {
					t.Error("LLM must not be called on a cache hit")
					return "", nil
				}
			},
			expectedAnswer: "cached answer",
		},
		{
			name:       "Success_No_Matches_Fixed_Answer",
			question:   "question with no relevant content",
			documentID: "doc-1",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnQueryByDocument = func(ctx context.Context, vec []float32, docID string, limit uint64) ([]vectorDB.Match, error) {
					return []vectorDB.Match{}, nil
				}
				l.OnGenerate = func(ctx context.Context, sys string, usr string) (string, error) {
					t.Error("LLM must not be called when retrieval is empty")
					return "", nil
				}
			},
			expectedAnswer: synthesis.NoMatchAnswer,
		},
		{
			name:     "Success_General_Never_Searches",
			question: "what is the capital of France",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnQueryByDocument = func(ctx context.Context, vec []float32, docID string, limit uint64) ([]vectorDB.Match, error) {
					t.Error("Vector search must not run without a document ID")
					return nil, nil
				}
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					t.Error("Query embedding must not run without a document ID")
					return nil, nil
				}
				l.OnGenerate = func(ctx context.Context, sys string, usr string) (string, error) {
					return "general answer", nil
				}
			},
			expectedAnswer: "general answer",
		},
		{
			name:         "Failure_Blank_Question",
			question:     "   ",
			documentID:   "doc-1",
			setupMocks:   func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {},
			expectedKind: faults.KindMissingInput,
		},
		{
			name:       "Failure_Embedding",
			question:   "test question",
			documentID: "doc-1",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedKind: faults.KindSynthesis,
		},
		{
			name:       "Failure_Vector_Search",
			question:   "test question",
			documentID: "doc-1",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnQueryByDocument = func(ctx context.Context, vec []float32, docID string, limit uint64) ([]vectorDB.Match, error) {
					return nil, errors.New("db timeout")
				}
			},
			expectedKind: faults.KindSynthesis,
		},
		{
			name:       "Failure_LLM_Generation",
			question:   "test question",
			documentID: "doc-1",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, sys string, usr string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectedKind: faults.KindSynthesis,
		},
		{
			name:       "Cache_Error_Degrades_To_Miss",
			question:   "test question",
			documentID: "doc-1",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnGetCachedAnswer = func(ctx context.Context, vec []float32, docID string) (string, bool, error) {
					return "", false, errors.New("cache unavailable")
				}
				l.OnGenerate = func(ctx context.Context, sys string, usr string) (string, error) {
					return "answer despite broken cache", nil
				}
			},
			expectedAnswer: "answer despite broken cache",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}
			mLLM := &MockLLM{}

			tt.setupMocks(mEmbed, mVec, mLLM)

			s := rag.NewService(mVec, mLLM, mEmbed, &MockRegistry{})

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
			answer, err := s.Ask(ctx, docmodel.Query{Question: tt.question, DocumentID: tt.documentID})

			if tt.expectedKind != "" {
				if err == nil {
					t.Fatalf("Expected %s error, got nil", tt.expectedKind)
				}
				if got := faults.KindOf(err); got != tt.expectedKind {
					t.Errorf("Error kind got %s, want %s", got, tt.expectedKind)
				}
				return
			}

			if err != nil {
				t.Fatalf("Ask failed: %v", err)
			}
			if answer != tt.expectedAnswer {
				t.Errorf("Answer got %q, want %q", answer, tt.expectedAnswer)
			}
		})
	}
}

func TestIngest_Scenarios(t *testing.T) {
	dummyFile := "test_ingest.txt"
	content := []byte("test content for ingestion")

	tests := []struct {
		name         string
		path         string
		setupMocks   func(e *MockEmbedder, v *MockVectorDB, l *MockLLM)
		expectedKind faults.Kind
		checkResult  func(t *testing.T, summary string, pageCount int)
	}{
		{
			name: "Ingestion_Success",
			path: dummyFile,
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, sys string, usr string) (string, error) {
					return "a short summary", nil
				}
			},
			checkResult: func(t *testing.T, summary string, pageCount int) {
				if summary != "a short summary" {
					t.Errorf("Summary got %q, want %q", summary, "a short summary")
				}
				if pageCount != 1 {
					t.Errorf("PageCount got %d, want 1", pageCount)
				}
			},
		},
		{
			name:         "Failure_Unsupported_Type",
			path:         "image.png",
			setupMocks:   func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {},
			expectedKind: faults.KindExtraction,
		},
		{
			name:         "Failure_Missing_File",
			path:         "does_not_exist.txt",
			setupMocks:   func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {},
			expectedKind: faults.KindExtraction,
		},
		{
			name: "Failure_Embedding",
			path: dummyFile,
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				e.OnBatchEmbedding = func(ctx context.Context, chunks []string) ([][]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedKind: faults.KindIndexing,
		},
		{
			name: "Failure_Batch_Upsert",
			path: dummyFile,
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnUpsertBatch = func(ctx context.Context, chunks []docmodel.Chunk, vectors [][]float32) error {
					return errors.New("disk full")
				}
			},
			expectedKind: faults.KindIndexing,
		},
		{
			name: "Summary_Failure_Is_Not_Fatal",
			path: dummyFile,
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, sys string, usr string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			checkResult: func(t *testing.T, summary string, pageCount int) {
				if summary != "" {
					t.Errorf("Summary got %q, want empty on summarizer failure", summary)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Extraction consumes the temp file, so each case gets a fresh one.
			if tt.path == dummyFile {
				if err := os.WriteFile(dummyFile, content, 0644); err != nil {
					t.Fatalf("Could not write test file: %v", err)
				}
			}
			t.Cleanup(func() { os.Remove(dummyFile) })

			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}
			mLLM := &MockLLM{}

			tt.setupMocks(mEmbed, mVec, mLLM)

			registry := &MockRegistry{}
			s := rag.NewService(mVec, mLLM, mEmbed, registry)

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "ingest-trace")
			result, err := s.Ingest(ctx, docmodel.Upload{Name: "contract.txt", Path: tt.path})

			if tt.expectedKind != "" {
				if err == nil {
					t.Fatalf("Expected %s error, got nil", tt.expectedKind)
				}
				if got := faults.KindOf(err); got != tt.expectedKind {
					t.Errorf("Error kind got %s, want %s", got, tt.expectedKind)
				}
				return
			}

			if err != nil {
				t.Fatalf("Ingest failed: %v", err)
			}
			if result.DocumentID == "" {
				t.Error("Expected a minted document ID")
			}
			if len(registry.Saved) != 1 {
				t.Errorf("Expected 1 registry record, got %d", len(registry.Saved))
			}
			if tt.checkResult != nil {
				tt.checkResult(t, result.Summary, result.PageCount)
			}
		})
	}
}

func TestIngest_MintsFreshIDs(t *testing.T) {
	dummyFile1 := "test_dup_a.txt"
	dummyFile2 := "test_dup_b.txt"
	for _, f := range []string{dummyFile1, dummyFile2} {
		if err := os.WriteFile(f, []byte("identical content"), 0644); err != nil {
			t.Fatalf("Could not write test file: %v", err)
		}
	}
	t.Cleanup(func() {
		os.Remove(dummyFile1)
		os.Remove(dummyFile2)
	})

	s := rag.NewService(&MockVectorDB{}, &MockLLM{}, &MockEmbedder{}, &MockRegistry{})
	ctx := context.Background()

	first, err := s.Ingest(ctx, docmodel.Upload{Name: "same.txt", Path: dummyFile1})
	if err != nil {
		t.Fatalf("First ingest failed: %v", err)
	}
	second, err := s.Ingest(ctx, docmodel.Upload{Name: "same.txt", Path: dummyFile2})
	if err != nil {
		t.Fatalf("Second ingest failed: %v", err)
	}

	if first.DocumentID == second.DocumentID {
		t.Errorf("Re-uploading the same content must mint a fresh ID, both got %s", first.DocumentID)
	}
}

func TestIngest_GroundedPromptCarriesPassages(t *testing.T) {
	var capturedUser string
	mLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, sys string, usr string) (string, error) {
			capturedUser = usr
			return "answer", nil
		},
	}
	mVec := &MockVectorDB{
		OnQueryByDocument: func(ctx context.Context, vec []float32, docID string, limit uint64) ([]vectorDB.Match, error) {
			return []vectorDB.Match{{Text: "the termination clause"}}, nil
		},
	}

	s := rag.NewService(mVec, mLLM, &MockEmbedder{}, &MockRegistry{})
	if _, err := s.Ask(context.Background(), docmodel.Query{Question: "when can I terminate?", DocumentID: "doc-9"}); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	if !strings.Contains(capturedUser, "the termination clause") {
		t.Errorf("Prompt does not carry the retrieved passage: %q", capturedUser)
	}
	if !strings.Contains(capturedUser, "when can I terminate?") {
		t.Errorf("Prompt does not carry the question: %q", capturedUser)
	}
}
