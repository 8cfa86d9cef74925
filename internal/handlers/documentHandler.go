package handlers

import (
	"net/http"

	"github.com/docuchat/docuchat/internal/adapter"
	"github.com/docuchat/docuchat/internal/adapter/utils"
	"github.com/docuchat/docuchat/internal/api"
)

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// GetDocumentHandler resolves a document ID to its registry record.
// @Summary      Get document metadata
// @Description  Returns the registry record for an ingested document.
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.DocumentResponse
// @Failure      404  {object}  api.ErrorResponse  "Unknown document ID"
// @Router       /documents/{id} [get]
func GetDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	id := utils.GetChiURLParam(r, "id")
	if id == "" {
		writeBadRequest(w, "document id is required")
		return
	}

	doc, found := registry.GetDocument(r.Context(), id)
	if !found {
		writeJsonResponse(w, http.StatusNotFound, api.ErrorResponse{
			Error: api.OutgoingError{
				Code:    http.StatusNotFound,
				Kind:    "NotFound",
				Message: "Document not found",
			},
		})
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponse(doc))
}
