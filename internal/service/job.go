package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jobpal/jobpal/internal/metrics"
	"github.com/jobpal/jobpal/internal/model"
	"github.com/jobpal/jobpal/internal/repository"
)

// Job service errors.
var (
	ErrMissingCompanyName = errors.New("company_name is required")
	ErrMissingRoleTitle   = errors.New("role_title is required")
	ErrMissingStatus      = errors.New("application_status is required")
	ErrInvalidStatus      = errors.New("invalid application_status value")
	ErrInvalidSource      = errors.New("invalid source value")
	ErrInvalidTimestamp   = errors.New("invalid timestamp, expected RFC 3339")
	ErrJobNotFound        = errors.New("job not found")
)

// JobService handles job application business logic.
type JobService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewJobService creates a new JobService.
func NewJobService(repo *repository.Repository, recorder metrics.Recorder) *JobService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &JobService{
		repo:    repo,
		metrics: recorder,
	}
}

// CreateJobInput defines input for creating a job.
// Date fields are RFC 3339 strings; empty means unset.
type CreateJobInput struct {
	CompanyName       string
	RoleTitle         string
	VacancyLink       *string
	VacancyText       *string
	ApplicationStatus string
	Source            string
	DateApplied       string
	NextMilestoneDate string
	SalaryMin         *int
	SalaryMax         *int
	NotificationSent  bool
}

// CreateJob validates and persists a new job owned by the user.
func (s *JobService) CreateJob(ctx context.Context, userID string, input CreateJobInput) (*model.Job, error) {
	if input.CompanyName == "" {
		return nil, ErrMissingCompanyName
	}
	if input.RoleTitle == "" {
		return nil, ErrMissingRoleTitle
	}
	if input.ApplicationStatus == "" {
		return nil, ErrMissingStatus
	}

	status := model.ApplicationStatus(input.ApplicationStatus)
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	source := model.SourceOther
	if input.Source != "" {
		source = model.JobSource(input.Source)
		if !source.IsValid() {
			return nil, ErrInvalidSource
		}
	}

	dateApplied, err := parseOptionalTime(input.DateApplied)
	if err != nil {
		return nil, ErrInvalidTimestamp
	}
	nextMilestone, err := parseOptionalTime(input.NextMilestoneDate)
	if err != nil {
		return nil, ErrInvalidTimestamp
	}

	job := &model.Job{
		ID:                ulid.Make().String(),
		UserID:            userID,
		CompanyName:       input.CompanyName,
		RoleTitle:         input.RoleTitle,
		VacancyLink:       input.VacancyLink,
		VacancyText:       input.VacancyText,
		ApplicationStatus: status,
		Source:            source,
		DateApplied:       dateApplied,
		NextMilestoneDate: nextMilestone,
		SalaryMin:         input.SalaryMin,
		SalaryMax:         input.SalaryMax,
		NotificationSent:  input.NotificationSent,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.metrics.IncJobCreated()

	return job, nil
}

// GetJob retrieves a job owned by the user.
func (s *JobService) GetJob(ctx context.Context, userID, jobID string) (*model.Job, error) {
	job, err := s.repo.GetJob(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

// ListJobs retrieves all jobs owned by the user.
func (s *JobService) ListJobs(ctx context.Context, userID string) ([]*model.Job, error) {
	return s.repo.ListJobs(ctx, userID)
}

// UpdateJobInput defines the partial update of a job. Nil fields are
// left untouched. Date fields accept an RFC 3339 string or an empty
// string to clear the stored value.
type UpdateJobInput struct {
	CompanyName       *string
	RoleTitle         *string
	VacancyLink       *string
	VacancyText       *string
	ApplicationStatus *string
	Source            *string
	DateApplied       *string
	NextMilestoneDate *string
	SalaryMin         *int
	SalaryMax         *int
	NotificationSent  *bool
}

// UpdateJob loads the owned job, applies only the supplied fields and
// writes it back with a refreshed updated_at.
func (s *JobService) UpdateJob(ctx context.Context, userID, jobID string, input UpdateJobInput) (*model.Job, error) {
	job, err := s.repo.GetJob(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	if input.CompanyName != nil {
		if *input.CompanyName == "" {
			return nil, ErrMissingCompanyName
		}
		job.CompanyName = *input.CompanyName
	}
	if input.RoleTitle != nil {
		if *input.RoleTitle == "" {
			return nil, ErrMissingRoleTitle
		}
		job.RoleTitle = *input.RoleTitle
	}
	if input.VacancyLink != nil {
		job.VacancyLink = input.VacancyLink
	}
	if input.VacancyText != nil {
		job.VacancyText = input.VacancyText
	}
	if input.ApplicationStatus != nil {
		status := model.ApplicationStatus(*input.ApplicationStatus)
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
		job.ApplicationStatus = status
	}
	if input.Source != nil {
		source := model.JobSource(*input.Source)
		if !source.IsValid() {
			return nil, ErrInvalidSource
		}
		job.Source = source
	}
	if input.DateApplied != nil {
		t, err := parseOptionalTime(*input.DateApplied)
		if err != nil {
			return nil, ErrInvalidTimestamp
		}
		job.DateApplied = t
	}
	if input.NextMilestoneDate != nil {
		t, err := parseOptionalTime(*input.NextMilestoneDate)
		if err != nil {
			return nil, ErrInvalidTimestamp
		}
		job.NextMilestoneDate = t
	}
	if input.SalaryMin != nil {
		job.SalaryMin = input.SalaryMin
	}
	if input.SalaryMax != nil {
		job.SalaryMax = input.SalaryMax
	}
	if input.NotificationSent != nil {
		job.NotificationSent = *input.NotificationSent
	}

	now := time.Now().UTC()
	job.UpdatedAt = &now

	if err := s.repo.UpdateJob(ctx, job); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("update job: %w", err)
	}

	s.metrics.IncJobUpdated()

	return job, nil
}

// DeleteJob removes a job owned by the user; attached files go with it.
func (s *JobService) DeleteJob(ctx context.Context, userID, jobID string) error {
	if err := s.repo.DeleteJob(ctx, userID, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return fmt.Errorf("delete job: %w", err)
	}

	s.metrics.IncJobDeleted()

	return nil
}

// parseOptionalTime parses an RFC 3339 timestamp. An empty string
// yields nil (unset/cleared); anything unparseable is an error rather
// than a silent coercion.
func parseOptionalTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	utc := t.UTC()
	return &utc, nil
}
