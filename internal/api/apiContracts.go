package api

// responses---------------------

type IngestResponse struct {
	DocumentID string `json:"document_id" example:"4f3a2b10-77aa-4c1e-9f6e-2f9d1c0a5b21"`
	Summary    string `json:"summary"`
	PageCount  int    `json:"page_count" example:"3"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type DocumentResponse struct {
	DocumentID string `json:"document_id"`
	Name       string `json:"doc_name"`
	PageCount  int    `json:"page_count"`
	ChunkCount int    `json:"chunk_count"`
	Summary    string `json:"summary,omitempty"`
	UploadedAt string `json:"uploaded_at"`
}

type ErrorResponse struct {
	Error OutgoingError `json:"error"`
}

type OutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Kind    string `json:"kind" example:"MissingInput"`
	Message string `json:"message" example:"question is required"`
}

// requests---------------------

type AskRequest struct {
	Question   string `json:"question" validate:"required"`
	DocumentID string `json:"document_id,omitempty"`
}
