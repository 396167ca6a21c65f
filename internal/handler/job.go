package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jobpal/jobpal/internal/auth"
	"github.com/jobpal/jobpal/internal/handler/dto"
	"github.com/jobpal/jobpal/internal/service"
)

// JobHandler handles HTTP requests for job operations.
type JobHandler struct {
	svc    *service.JobService
	logger *slog.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(svc *service.JobService, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/jobs.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	jobs, err := h.svc.ListJobs(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToJobListResponse(jobs))
}

// Create handles POST /api/jobs.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req dto.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	job, err := h.svc.CreateJob(r.Context(), userID, service.CreateJobInput{
		CompanyName:       req.CompanyName,
		RoleTitle:         req.RoleTitle,
		VacancyLink:       req.VacancyLink,
		VacancyText:       req.VacancyText,
		ApplicationStatus: req.ApplicationStatus,
		Source:            req.Source,
		DateApplied:       req.DateApplied,
		NextMilestoneDate: req.NextMilestoneDate,
		SalaryMin:         req.SalaryMin,
		SalaryMax:         req.SalaryMax,
		NotificationSent:  req.NotificationSent,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("job_created",
		"job_id", job.ID,
		"status", string(job.ApplicationStatus),
	)

	writeJSON(w, http.StatusCreated, dto.ToJobResponse(job))
}

// Get handles GET /api/jobs/{id}.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	jobID := chi.URLParam(r, "id")

	job, err := h.svc.GetJob(r.Context(), userID, jobID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToJobResponse(job))
}

// Update handles PUT and PATCH /api/jobs/{id}.
// Both verbs apply partial semantics: only supplied fields change.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	jobID := chi.URLParam(r, "id")

	var req dto.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	job, err := h.svc.UpdateJob(r.Context(), userID, jobID, service.UpdateJobInput{
		CompanyName:       req.CompanyName,
		RoleTitle:         req.RoleTitle,
		VacancyLink:       req.VacancyLink,
		VacancyText:       req.VacancyText,
		ApplicationStatus: req.ApplicationStatus,
		Source:            req.Source,
		DateApplied:       req.DateApplied,
		NextMilestoneDate: req.NextMilestoneDate,
		SalaryMin:         req.SalaryMin,
		SalaryMax:         req.SalaryMax,
		NotificationSent:  req.NotificationSent,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("job_updated", "job_id", job.ID)

	writeJSON(w, http.StatusOK, dto.ToJobResponse(job))
}

// Delete handles DELETE /api/jobs/{id}.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	jobID := chi.URLParam(r, "id")

	if err := h.svc.DeleteJob(r.Context(), userID, jobID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("job_deleted", "job_id", jobID)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps job service errors to HTTP responses.
func (h *JobHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		writeError(w, http.StatusNotFound, "JOB_NOT_FOUND", "Job not found")
	case errors.Is(err, service.ErrMissingCompanyName):
		writeError(w, http.StatusBadRequest, "MISSING_COMPANY_NAME", "company_name is required")
	case errors.Is(err, service.ErrMissingRoleTitle):
		writeError(w, http.StatusBadRequest, "MISSING_ROLE_TITLE", "role_title is required")
	case errors.Is(err, service.ErrMissingStatus):
		writeError(w, http.StatusBadRequest, "MISSING_STATUS", "application_status is required")
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "INVALID_STATUS", "Invalid application_status value")
	case errors.Is(err, service.ErrInvalidSource):
		writeError(w, http.StatusBadRequest, "INVALID_SOURCE", "Invalid source value")
	case errors.Is(err, service.ErrInvalidTimestamp):
		writeError(w, http.StatusBadRequest, "INVALID_TIMESTAMP", "Timestamps must be RFC 3339")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
