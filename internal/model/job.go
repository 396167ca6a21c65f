// Package model defines domain entities for the application.
package model

import "time"

// ApplicationStatus is the stage a job application is in.
// The set is closed; unknown values are rejected at the boundary.
type ApplicationStatus string

const (
	StatusNotYetApplied ApplicationStatus = "not_yet_applied"
	StatusApplied       ApplicationStatus = "applied"
	StatusRejected      ApplicationStatus = "rejected"
	StatusTestTask      ApplicationStatus = "test_task"
	StatusScreeningCall ApplicationStatus = "screening_call"
	StatusInterview     ApplicationStatus = "interview"
	StatusOffer         ApplicationStatus = "offer"
)

// IsValid checks if the status is one of the known values.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusNotYetApplied, StatusApplied, StatusRejected,
		StatusTestTask, StatusScreeningCall, StatusInterview, StatusOffer:
		return true
	}
	return false
}

// JobSource is where a vacancy was found.
type JobSource string

const (
	SourceLinkedIn       JobSource = "linkedin"
	SourceIndeed         JobSource = "indeed"
	SourceCompanyWebsite JobSource = "company_website"
	SourceReferral       JobSource = "referral"
	SourceOther          JobSource = "other"
)

// IsValid checks if the source is one of the known values.
func (s JobSource) IsValid() bool {
	switch s {
	case SourceLinkedIn, SourceIndeed, SourceCompanyWebsite, SourceReferral, SourceOther:
		return true
	}
	return false
}

// Job represents a tracked job application owned by a user.
type Job struct {
	ID                string            `json:"id"`
	UserID            string            `json:"-"`
	CompanyName       string            `json:"company_name"`
	RoleTitle         string            `json:"role_title"`
	VacancyLink       *string           `json:"vacancy_link"`
	VacancyText       *string           `json:"vacancy_text"`
	ApplicationStatus ApplicationStatus `json:"application_status"`
	Source            JobSource         `json:"source"`
	DateApplied       *time.Time        `json:"date_applied"`
	NextMilestoneDate *time.Time        `json:"next_milestone_date"`
	SalaryMin         *int              `json:"salary_min"`
	SalaryMax         *int              `json:"salary_max"`
	NotificationSent  bool              `json:"notification_sent"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         *time.Time        `json:"updated_at"`
}
