package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/docuchat/docuchat/internal/adapter"
	"github.com/docuchat/docuchat/internal/domain/docmodel"
)

// UploadHandler ingests a document and answers with its minted ID, page
// count and summary.
// @Summary      Upload a document for ingestion
// @Description  Receives a PDF or DOCX file via multipart/form-data, indexes it and returns the document ID, page count and an auto-generated summary.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        document       formData  file    true   "The PDF or DOCX file to upload"
// @Param        document_name  formData  string  false  "Display name; defaults to the uploaded filename"
// @Success      202  {object}  api.IngestResponse
// @Failure      400  {object}  api.ErrorResponse  "No file supplied"
// @Failure      422  {object}  api.ErrorResponse  "The file could not be parsed into text"
// @Failure      502  {object}  api.ErrorResponse  "Embedding or vector store failure"
// @Router       /upload [post]
func UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remoteAddr", r.RemoteAddr)
		return
	}

	const maxUploadSize = 32 << 20 //32mb
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeBadRequest(w, "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		writeBadRequest(w, "No document file supplied")
		return
	}
	defer fileReader.Close()

	docName := r.FormValue("document_name")
	if docName == "" {
		docName = fileMetadata.Filename
	}

	tempPath, err := saveTempFile(fileReader, fileMetadata.Filename)
	if err != nil {
		logRH.WithTrace(r.Context()).Error("Could not store upload", "error", err)
		writeJsonResponse(w, http.StatusInternalServerError, storageErrorBody())
		return
	}

	result, err := ragService.Ingest(r.Context(), docmodel.Upload{
		Name: docName,
		Path: tempPath,
	})
	if err != nil {
		writeFaultResponse(w, r, err)
		return
	}

	writeJsonResponse(w, http.StatusAccepted, adapter.ToIngestResponse(result))
}

func saveTempFile(fileReader io.Reader, originalName string) (string, error) {
	targetDir, err := getTargetDirectory()
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(originalName))
	tempFilePath := filepath.Join(targetDir, filename)
	destination, err := os.Create(tempFilePath)
	if err != nil {
		return "", err
	}
	defer destination.Close()

	if _, err := io.Copy(destination, fileReader); err != nil {
		return "", err
	}
	return tempFilePath, nil
}
