package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jobpal/jobpal/internal/model"
)

// Common errors for job repository operations.
var (
	// ErrJobNotFound covers both a missing row and a row owned by a
	// different user; callers must not be able to tell them apart.
	ErrJobNotFound = errors.New("job not found")
)

const jobColumns = `id, user_id, company_name, role_title, vacancy_link, vacancy_text,
		application_status, source, date_applied, next_milestone_date,
		salary_min, salary_max, notification_sent, created_at, updated_at`

// CreateJob inserts a new job into the database.
func (r *Repository) CreateJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query,
		job.ID,
		job.UserID,
		job.CompanyName,
		job.RoleTitle,
		job.VacancyLink,
		job.VacancyText,
		job.ApplicationStatus,
		job.Source,
		job.DateApplied,
		job.NextMilestoneDate,
		job.SalaryMin,
		job.SalaryMax,
		job.NotificationSent,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetJob retrieves a job by ID scoped to its owner.
// A job owned by another user is reported as not found.
func (r *Repository) GetJob(ctx context.Context, userID, jobID string) (*model.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE id = $1 AND user_id = $2
	`

	job, err := scanJob(r.pool.QueryRow(ctx, query, jobID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return job, nil
}

// ListJobs retrieves all jobs owned by a user, newest first.
func (r *Repository) ListJobs(ctx context.Context, userID string) ([]*model.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]*model.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}

	return jobs, nil
}

// UpdateJob writes the mutable fields of a job, scoped to its owner.
func (r *Repository) UpdateJob(ctx context.Context, job *model.Job) error {
	query := `
		UPDATE jobs
		SET company_name = $3, role_title = $4, vacancy_link = $5, vacancy_text = $6,
		    application_status = $7, source = $8, date_applied = $9, next_milestone_date = $10,
		    salary_min = $11, salary_max = $12, notification_sent = $13, updated_at = $14
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		job.ID,
		job.UserID,
		job.CompanyName,
		job.RoleTitle,
		job.VacancyLink,
		job.VacancyText,
		job.ApplicationStatus,
		job.Source,
		job.DateApplied,
		job.NextMilestoneDate,
		job.SalaryMin,
		job.SalaryMax,
		job.NotificationSent,
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrJobNotFound
	}

	return nil
}

// DeleteJob removes a job scoped to its owner.
// Attached files are removed by the ON DELETE CASCADE constraint.
func (r *Repository) DeleteJob(ctx context.Context, userID, jobID string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND user_id = $2`, jobID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrJobNotFound
	}

	return nil
}

func scanJob(row pgx.Row) (*model.Job, error) {
	var job model.Job
	err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.CompanyName,
		&job.RoleTitle,
		&job.VacancyLink,
		&job.VacancyText,
		&job.ApplicationStatus,
		&job.Source,
		&job.DateApplied,
		&job.NextMilestoneDate,
		&job.SalaryMin,
		&job.SalaryMax,
		&job.NotificationSent,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}
