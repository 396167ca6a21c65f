// Package main dumps the application database to a JSON file and
// restores it into a freshly migrated schema.
//
// Usage:
//
//	backup -dump backup.json
//	backup -restore backup.json
//
// The database is taken from DATABASE_URL. Rows are re-keyed on
// restore: users are matched by email and all ids are regenerated, so
// a dump can be restored into a database with a different id scheme.
package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/oklog/ulid/v2"
)

type userRecord struct {
	Email        string     `json:"email"`
	PasswordHash string     `json:"password_hash"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type fileRecord struct {
	Filename  string     `json:"filename"`
	FilePath  string     `json:"file_path"`
	FileType  string     `json:"file_type"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type jobRecord struct {
	OwnerEmail        string       `json:"owner_email"`
	CompanyName       string       `json:"company_name"`
	RoleTitle         string       `json:"role_title"`
	VacancyLink       *string      `json:"vacancy_link"`
	VacancyText       *string      `json:"vacancy_text"`
	ApplicationStatus string       `json:"application_status"`
	Source            string       `json:"source"`
	DateApplied       *time.Time   `json:"date_applied"`
	NextMilestoneDate *time.Time   `json:"next_milestone_date"`
	SalaryMin         *int         `json:"salary_min"`
	SalaryMax         *int         `json:"salary_max"`
	NotificationSent  bool         `json:"notification_sent"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         *time.Time   `json:"updated_at"`
	Files             []fileRecord `json:"files"`
}

type backupDocument struct {
	DumpedAt time.Time    `json:"dumped_at"`
	Users    []userRecord `json:"users"`
	Jobs     []jobRecord  `json:"jobs"`
}

func main() {
	var (
		dumpPath    = flag.String("dump", "", "write a backup to this file")
		restorePath = flag.String("restore", "", "restore a backup from this file")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if (*dumpPath == "") == (*restorePath == "") {
		logger.Error("exactly one of -dump or -restore is required")
		flag.Usage()
		os.Exit(2)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Error("DATABASE_URL not set")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("ping database", "error", err)
		os.Exit(1)
	}

	if *dumpPath != "" {
		err = dump(db, *dumpPath, logger)
	} else {
		err = restore(db, *restorePath, logger)
	}
	if err != nil {
		logger.Error("backup failed", "error", err)
		os.Exit(1)
	}
}

func dump(db *sql.DB, path string, logger *slog.Logger) error {
	doc := backupDocument{DumpedAt: time.Now().UTC()}

	// Email doubles as the stable user key in the dump.
	emailByUserID := make(map[string]string)

	rows, err := db.Query(`SELECT id, email, password_hash, first_name, last_name, is_active, created_at, updated_at FROM users ORDER BY created_at`)
	if err != nil {
		return fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var u userRecord
		if err := rows.Scan(&id, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return fmt.Errorf("scan user: %w", err)
		}
		emailByUserID[id] = u.Email
		doc.Users = append(doc.Users, u)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate users: %w", err)
	}

	jobRows, err := db.Query(`SELECT id, user_id, company_name, role_title, vacancy_link, vacancy_text,
		application_status, source, date_applied, next_milestone_date,
		salary_min, salary_max, notification_sent, created_at, updated_at
		FROM jobs ORDER BY created_at`)
	if err != nil {
		return fmt.Errorf("query jobs: %w", err)
	}
	defer jobRows.Close()

	jobIndexByID := make(map[string]int)

	for jobRows.Next() {
		var id, userID string
		var j jobRecord
		err := jobRows.Scan(&id, &userID, &j.CompanyName, &j.RoleTitle, &j.VacancyLink, &j.VacancyText,
			&j.ApplicationStatus, &j.Source, &j.DateApplied, &j.NextMilestoneDate,
			&j.SalaryMin, &j.SalaryMax, &j.NotificationSent, &j.CreatedAt, &j.UpdatedAt)
		if err != nil {
			return fmt.Errorf("scan job: %w", err)
		}
		j.OwnerEmail = emailByUserID[userID]
		j.Files = []fileRecord{}
		jobIndexByID[id] = len(doc.Jobs)
		doc.Jobs = append(doc.Jobs, j)
	}
	if err := jobRows.Err(); err != nil {
		return fmt.Errorf("iterate jobs: %w", err)
	}

	fileRows, err := db.Query(`SELECT job_id, filename, file_path, file_type, created_at, updated_at FROM files ORDER BY created_at`)
	if err != nil {
		return fmt.Errorf("query files: %w", err)
	}
	defer fileRows.Close()

	for fileRows.Next() {
		var jobID string
		var f fileRecord
		if err := fileRows.Scan(&jobID, &f.Filename, &f.FilePath, &f.FileType, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return fmt.Errorf("scan file: %w", err)
		}
		if idx, ok := jobIndexByID[jobID]; ok {
			doc.Jobs[idx].Files = append(doc.Jobs[idx].Files, f)
		}
	}
	if err := fileRows.Err(); err != nil {
		return fmt.Errorf("iterate files: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	logger.Info("backup written", "path", path, "users", len(doc.Users), "jobs", len(doc.Jobs))
	return nil
}

func restore(db *sql.DB, path string, logger *slog.Logger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read backup file: %w", err)
	}

	var doc backupDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse backup: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	idByEmail := make(map[string]string, len(doc.Users))
	fileCount := 0

	for _, u := range doc.Users {
		id := ulid.Make().String()
		_, err := tx.Exec(`INSERT INTO users (id, email, password_hash, first_name, last_name, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.IsActive, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert user %s: %w", u.Email, err)
		}
		idByEmail[u.Email] = id
	}

	for _, j := range doc.Jobs {
		userID, ok := idByEmail[j.OwnerEmail]
		if !ok {
			return fmt.Errorf("job %q references unknown owner %q", j.CompanyName, j.OwnerEmail)
		}

		jobID := ulid.Make().String()
		_, err := tx.Exec(`INSERT INTO jobs (id, user_id, company_name, role_title, vacancy_link, vacancy_text,
			application_status, source, date_applied, next_milestone_date,
			salary_min, salary_max, notification_sent, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			jobID, userID, j.CompanyName, j.RoleTitle, j.VacancyLink, j.VacancyText,
			j.ApplicationStatus, j.Source, j.DateApplied, j.NextMilestoneDate,
			j.SalaryMin, j.SalaryMax, j.NotificationSent, j.CreatedAt, j.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert job %q: %w", j.CompanyName, err)
		}

		for _, f := range j.Files {
			_, err := tx.Exec(`INSERT INTO files (id, job_id, filename, file_path, file_type, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				ulid.Make().String(), jobID, f.Filename, f.FilePath, f.FileType, f.CreatedAt, f.UpdatedAt)
			if err != nil {
				return fmt.Errorf("insert file %q: %w", f.Filename, err)
			}
			fileCount++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	logger.Info("backup restored", "users", len(doc.Users), "jobs", len(doc.Jobs), "files", fileCount)
	return nil
}
