package adapter

import (
	"net/http"

	"github.com/docuchat/docuchat/internal/api"
	"github.com/docuchat/docuchat/internal/domain/docmodel"
	"github.com/docuchat/docuchat/internal/domain/faults"
)

func ToIngestResponse(result docmodel.IngestResult) api.IngestResponse {
	return api.IngestResponse{
		DocumentID: result.DocumentID,
		Summary:    result.Summary,
		PageCount:  result.PageCount,
	}
}

func ToAskResponse(answer string) api.AskResponse {
	return api.AskResponse{Answer: answer}
}

func ToDocumentResponse(doc docmodel.Document) api.DocumentResponse {
	return api.DocumentResponse{
		DocumentID: doc.ID,
		Name:       doc.Name,
		PageCount:  doc.PageCount,
		ChunkCount: doc.ChunkCount,
		Summary:    doc.Summary,
		UploadedAt: doc.UploadedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ToErrorResponse maps a pipeline fault to the HTTP status and the stable
// user-safe body. Internal detail stays in the logs.
func ToErrorResponse(err error) (int, api.ErrorResponse) {
	kind := faults.KindOf(err)
	code := http.StatusInternalServerError
	switch kind {
	case faults.KindMissingInput:
		code = http.StatusBadRequest
	case faults.KindExtraction:
		code = http.StatusUnprocessableEntity
	case faults.KindIndexing, faults.KindSynthesis:
		code = http.StatusBadGateway
	case "":
		kind = "InternalError"
	}
	return code, api.ErrorResponse{
		Error: api.OutgoingError{
			Code:    code,
			Kind:    string(kind),
			Message: faults.SafeMessage(err),
		},
	}
}

func BadRequest(message string) (int, api.ErrorResponse) {
	return http.StatusBadRequest, api.ErrorResponse{
		Error: api.OutgoingError{
			Code:    http.StatusBadRequest,
			Kind:    string(faults.KindMissingInput),
			Message: message,
		},
	}
}
