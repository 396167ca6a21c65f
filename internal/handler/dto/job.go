package dto

import (
	"time"

	"github.com/jobpal/jobpal/internal/model"
)

// CreateJobRequest represents the request body for creating a job.
// Date fields are RFC 3339 strings.
type CreateJobRequest struct {
	CompanyName       string  `json:"company_name"`
	RoleTitle         string  `json:"role_title"`
	VacancyLink       *string `json:"vacancy_link,omitempty"`
	VacancyText       *string `json:"vacancy_text,omitempty"`
	ApplicationStatus string  `json:"application_status"`
	Source            string  `json:"source,omitempty"`
	DateApplied       string  `json:"date_applied,omitempty"`
	NextMilestoneDate string  `json:"next_milestone_date,omitempty"`
	SalaryMin         *int    `json:"salary_min,omitempty"`
	SalaryMax         *int    `json:"salary_max,omitempty"`
	NotificationSent  bool    `json:"notification_sent,omitempty"`
}

// UpdateJobRequest represents the partial update of a job.
// Absent fields are left untouched; an empty string on a date field
// clears the stored value.
type UpdateJobRequest struct {
	CompanyName       *string `json:"company_name,omitempty"`
	RoleTitle         *string `json:"role_title,omitempty"`
	VacancyLink       *string `json:"vacancy_link,omitempty"`
	VacancyText       *string `json:"vacancy_text,omitempty"`
	ApplicationStatus *string `json:"application_status,omitempty"`
	Source            *string `json:"source,omitempty"`
	DateApplied       *string `json:"date_applied,omitempty"`
	NextMilestoneDate *string `json:"next_milestone_date,omitempty"`
	SalaryMin         *int    `json:"salary_min,omitempty"`
	SalaryMax         *int    `json:"salary_max,omitempty"`
	NotificationSent  *bool   `json:"notification_sent,omitempty"`
}

// JobResponse represents a job in API responses.
type JobResponse struct {
	ID                string     `json:"id"`
	CompanyName       string     `json:"company_name"`
	RoleTitle         string     `json:"role_title"`
	VacancyLink       *string    `json:"vacancy_link"`
	VacancyText       *string    `json:"vacancy_text"`
	ApplicationStatus string     `json:"application_status"`
	Source            string     `json:"source"`
	DateApplied       *time.Time `json:"date_applied"`
	NextMilestoneDate *time.Time `json:"next_milestone_date"`
	SalaryMin         *int       `json:"salary_min"`
	SalaryMax         *int       `json:"salary_max"`
	NotificationSent  bool       `json:"notification_sent"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

// ToJobResponse converts a Job model to JobResponse DTO.
func ToJobResponse(job *model.Job) *JobResponse {
	return &JobResponse{
		ID:                job.ID,
		CompanyName:       job.CompanyName,
		RoleTitle:         job.RoleTitle,
		VacancyLink:       job.VacancyLink,
		VacancyText:       job.VacancyText,
		ApplicationStatus: string(job.ApplicationStatus),
		Source:            string(job.Source),
		DateApplied:       job.DateApplied,
		NextMilestoneDate: job.NextMilestoneDate,
		SalaryMin:         job.SalaryMin,
		SalaryMax:         job.SalaryMax,
		NotificationSent:  job.NotificationSent,
		CreatedAt:         job.CreatedAt,
		UpdatedAt:         job.UpdatedAt,
	}
}

// ToJobListResponse converts a slice of Job models to response DTOs.
func ToJobListResponse(jobs []*model.Job) []JobResponse {
	responses := make([]JobResponse, len(jobs))
	for i, job := range jobs {
		responses[i] = *ToJobResponse(job)
	}
	return responses
}
