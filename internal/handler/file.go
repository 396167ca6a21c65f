package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jobpal/jobpal/internal/auth"
	"github.com/jobpal/jobpal/internal/handler/dto"
	"github.com/jobpal/jobpal/internal/service"
)

// FileHandler handles HTTP requests for attachment uploads.
type FileHandler struct {
	svc           *service.FileService
	logger        *slog.Logger
	maxUploadSize int64
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(svc *service.FileService, logger *slog.Logger, maxUploadSize int64) *FileHandler {
	return &FileHandler{
		svc:           svc,
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

// Upload handles POST /api/jobs/{id}/files.
// Expects multipart form data with a "file" part and an optional
// "file_type" value.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	jobID := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_UPLOAD", "No file provided or upload too large")
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "NO_FILE", "No file provided")
		return
	}
	defer part.Close()

	file, err := h.svc.Upload(r.Context(), userID, service.UploadInput{
		JobID:    jobID,
		Filename: header.Filename,
		FileType: r.FormValue("file_type"),
		Content:  part,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("file_uploaded",
		"file_id", file.ID,
		"job_id", jobID,
		"filename", file.Filename,
	)

	writeJSON(w, http.StatusCreated, dto.ToFileResponse(file))
}

// List handles GET /api/jobs/{id}/files.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	jobID := chi.URLParam(r, "id")

	files, err := h.svc.ListFiles(r.Context(), userID, jobID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToFileListResponse(files))
}

// handleServiceError maps file service errors to HTTP responses.
func (h *FileHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		writeError(w, http.StatusNotFound, "JOB_NOT_FOUND", "Job not found")
	case errors.Is(err, service.ErrEmptyFilename):
		writeError(w, http.StatusBadRequest, "NO_FILE_SELECTED", "No file selected")
	case errors.Is(err, service.ErrDisallowedType):
		writeError(w, http.StatusBadRequest, "INVALID_FILE_TYPE", "Invalid file type")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
