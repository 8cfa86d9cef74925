package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/docuchat/docuchat/internal/adapter"
	"github.com/docuchat/docuchat/internal/api"
	"github.com/docuchat/docuchat/internal/domain/docmodel"
	"github.com/docuchat/docuchat/internal/rag"
	"github.com/docuchat/docuchat/pkg/applog"
)

var (
	ragService rag.Service
	registry   docmodel.DocumentStore
	logRH      *applog.Logger
)

// Init hands the handlers their collaborators once at startup.
func Init(service rag.Service, documentStore docmodel.DocumentStore) {
	ragService = service
	registry = documentStore
	logRH = applog.NewLogger("RequestHandler")
	logRH.Info("Request handlers initialized")
}

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

func writeFaultResponse(w http.ResponseWriter, r *http.Request, err error) {
	logRH.WithTrace(r.Context()).Error("Request failed", "path", r.URL.Path, "error", err)
	code, body := adapter.ToErrorResponse(err)
	writeJsonResponse(w, code, body)
}

func writeBadRequest(w http.ResponseWriter, message string) {
	code, body := adapter.BadRequest(message)
	writeJsonResponse(w, code, body)
}

func storageErrorBody() api.ErrorResponse {
	return api.ErrorResponse{
		Error: api.OutgoingError{
			Code:    http.StatusInternalServerError,
			Kind:    "InternalError",
			Message: "Storage error",
		},
	}
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.Warn("context error", "error", ctx.Err())
		return false
	}
	return true
}

func getTargetDirectory() (string, error) {
	root, err := os.Getwd()
	if err != nil {
		return "", err
	}

	targetDir := filepath.Join(root, "temporary_data")
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", err
	}
	return targetDir, nil
}
