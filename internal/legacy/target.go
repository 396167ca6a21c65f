package legacy

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/jobpal/jobpal/internal/auth"
	"github.com/jobpal/jobpal/internal/model"
)

// Target writes converted rows into the PostgreSQL database.
type Target struct {
	pool *pgxpool.Pool
}

// OpenTarget connects to the target PostgreSQL database.
func OpenTarget(ctx context.Context, databaseURL string) (*Target, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Target{pool: pool}, nil
}

// Close closes the connection pool.
func (t *Target) Close() {
	t.pool.Close()
}

// EnsureUser finds the user that will own the migrated jobs, creating
// the account if it does not exist. A created account gets a random
// password; the owner must reset it before logging in.
func (t *Target) EnsureUser(ctx context.Context, email string) (*model.User, bool, error) {
	var user model.User
	err := t.pool.QueryRow(ctx,
		`SELECT id, email FROM users WHERE email = $1`, email,
	).Scan(&user.ID, &user.Email)
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("look up user: %w", err)
	}

	hash, err := auth.HashPassword(randomPassword())
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	user = model.User{
		ID:           ulid.Make().String(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Migrated",
		LastName:     "User",
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = t.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, first_name, last_name, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}

	return &user, true, nil
}

// InsertJobs writes all jobs in a single transaction so a failed run
// leaves the target untouched.
func (t *Target) InsertJobs(ctx context.Context, jobs []*model.Job) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, job := range jobs {
		_, err := tx.Exec(ctx,
			`INSERT INTO jobs (id, user_id, company_name, role_title, vacancy_link, vacancy_text,
			                   application_status, source, date_applied, next_milestone_date,
			                   salary_min, salary_max, notification_sent, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			job.ID, job.UserID, job.CompanyName, job.RoleTitle, job.VacancyLink, job.VacancyText,
			job.ApplicationStatus, job.Source, job.DateApplied, job.NextMilestoneDate,
			job.SalaryMin, job.SalaryMax, job.NotificationSent, job.CreatedAt, job.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert job %s: %w", job.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func randomPassword() string {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
