package docmodel

import (
	"context"
	"time"
)

type DocType string

const (
	PDF  DocType = "PDF"
	DOCX DocType = "DOCX"
	ERR  DocType = "ERROR"
)

// Document is the registry record minted at upload time. It is immutable once
// written; a re-upload of the same file mints a fresh ID and a fresh record.
type Document struct {
	ID         string    `json:"document_id"`
	Name       string    `json:"doc_name"`
	PageCount  int       `json:"page_count"`
	ChunkCount int       `json:"chunk_count"`
	Summary    string    `json:"summary,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Page is one unit of extracted text, ordered as the extractor produced it.
type Page struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

// Chunk is the unit of indexing and retrieval. Metadata holds positional keys
// (page_num, chunk_order, offset) set by the chunker and the document_id set
// by the tagger.
type Chunk struct {
	ID       string
	Text     string
	Metadata map[string]any
}

// Upload is the orchestrator's ingest input: a display name plus the path of
// the temporary file the handler wrote.
type Upload struct {
	Name string
	Path string
}

// IngestResult is returned to the caller once the upload path completes.
type IngestResult struct {
	DocumentID string
	Summary    string
	PageCount  int
}

// Query routes the question path. An empty DocumentID selects ungrounded mode;
// routing consults nothing else.
type Query struct {
	Question   string
	DocumentID string
}

// DocumentStore is the document registry. Implementations must be safe for
// concurrent use.
type DocumentStore interface {
	SaveDocument(ctx context.Context, doc Document) error
	GetDocument(ctx context.Context, id string) (Document, bool)
	DeleteDocument(ctx context.Context, id string)
}
