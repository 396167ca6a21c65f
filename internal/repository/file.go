package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jobpal/jobpal/internal/model"
)

// Common errors for file repository operations.
var (
	ErrFileNotFound = errors.New("file not found")
)

// CreateFile inserts a new file row into the database.
func (r *Repository) CreateFile(ctx context.Context, file *model.File) error {
	query := `
		INSERT INTO files (id, job_id, filename, file_path, file_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		file.ID,
		file.JobID,
		file.Filename,
		file.FilePath,
		file.FileType,
		file.CreatedAt,
		file.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	return nil
}

// GetFileByID retrieves a file row by its ID.
func (r *Repository) GetFileByID(ctx context.Context, id string) (*model.File, error) {
	query := `
		SELECT id, job_id, filename, file_path, file_type, created_at, updated_at
		FROM files
		WHERE id = $1
	`

	var file model.File
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.JobID,
		&file.Filename,
		&file.FilePath,
		&file.FileType,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to get file: %w", err)
	}

	return &file, nil
}

// ListFilesByJobID retrieves all files attached to a job.
func (r *Repository) ListFilesByJobID(ctx context.Context, jobID string) ([]*model.File, error) {
	query := `
		SELECT id, job_id, filename, file_path, file_type, created_at, updated_at
		FROM files
		WHERE job_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	files := make([]*model.File, 0)
	for rows.Next() {
		var file model.File
		if err := rows.Scan(
			&file.ID,
			&file.JobID,
			&file.Filename,
			&file.FilePath,
			&file.FileType,
			&file.CreatedAt,
			&file.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, &file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating files: %w", err)
	}

	return files, nil
}
