package legacy

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SourceJob is one row from the legacy SQLite database, joined across
// its lookup tables. All fields are nullable in the old schema.
type SourceJob struct {
	Status      sql.NullString
	Source      sql.NullString
	Company     sql.NullString
	JobTitle    sql.NullString
	VacancyText sql.NullString
	VacancyLink sql.NullString
	AppliedDate sql.NullInt64
	DueDate     sql.NullInt64
	CreatedAt   sql.NullInt64
	Applied     sql.NullInt64
	SalaryRange sql.NullString
}

// Source reads the legacy SQLite database.
type Source struct {
	db *sql.DB
}

// OpenSource opens the legacy SQLite database read-only.
func OpenSource(path string) (*Source, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	return &Source{db: db}, nil
}

// Close closes the database handle.
func (s *Source) Close() error {
	return s.db.Close()
}

// Jobs reads every job with its status, source, company and title
// resolved through the legacy lookup tables, newest first.
func (s *Source) Jobs(ctx context.Context) ([]SourceJob, error) {
	query := `
		SELECT DISTINCT js.value, src.value, c.value, jt.value,
		       j.description, j.jobUrl,
		       j.appliedDate, j.dueDate, j.createdAt,
		       j.applied, j."salaryRange"
		FROM "Job" j
		LEFT JOIN "JobStatus" js ON j."statusId" = js.id
		LEFT JOIN "JobSource" src ON j."jobSourceId" = src.id
		LEFT JOIN "Company" c ON j."companyId" = c.id
		LEFT JOIN "JobTitle" jt ON j."jobTitleId" = jt.id
		ORDER BY j."createdAt" DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query legacy jobs: %w", err)
	}
	defer rows.Close()

	var jobs []SourceJob
	for rows.Next() {
		var job SourceJob
		err := rows.Scan(
			&job.Status,
			&job.Source,
			&job.Company,
			&job.JobTitle,
			&job.VacancyText,
			&job.VacancyLink,
			&job.AppliedDate,
			&job.DueDate,
			&job.CreatedAt,
			&job.Applied,
			&job.SalaryRange,
		)
		if err != nil {
			return nil, fmt.Errorf("scan legacy job: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legacy jobs: %w", err)
	}

	return jobs, nil
}
