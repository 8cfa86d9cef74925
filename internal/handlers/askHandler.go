package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/docuchat/docuchat/internal/adapter"
	"github.com/docuchat/docuchat/internal/api"
	"github.com/docuchat/docuchat/internal/domain/docmodel"
)

// AskHandler answers a question, grounded in a document when an ID is
// supplied and open-domain otherwise.
// @Summary      Ask a question
// @Description  Answers from the selected document's indexed passages when document_id is present; falls back to open-domain answering when absent.
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        request  body      api.AskRequest  true  "Question and optional document ID"
// @Success      200      {object}  api.AskResponse
// @Failure      400      {object}  api.ErrorResponse  "Empty question"
// @Failure      502      {object}  api.ErrorResponse  "Provider failure"
// @Router       /ask [post]
func AskHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remoteAddr", r.RemoteAddr)
		return
	}

	var requestData api.AskRequest
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logRH.Error("Couldn't close the Ask handler reader", "error", err)
		}
	}(r.Body)

	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		logRH.Warn("Bad Ask Request", "error", err)
		writeBadRequest(w, "Bad Request")
		return
	}
	if strings.TrimSpace(requestData.Question) == "" {
		writeBadRequest(w, "question is required")
		return
	}

	answer, err := ragService.Ask(r.Context(), docmodel.Query{
		Question:   requestData.Question,
		DocumentID: requestData.DocumentID,
	})
	if err != nil {
		writeFaultResponse(w, r, err)
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAskResponse(answer))
}
