// Package main migrates data from the legacy SQLite tracker into the
// PostgreSQL database.
//
// Usage:
//
//	migrate-legacy -sqlite old.db -user-email me@example.com [-dry-run]
//
// The target database is taken from DATABASE_URL. A dry run prints the
// conversion analysis without touching the target.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/jobpal/jobpal/internal/legacy"
	"github.com/jobpal/jobpal/internal/model"
)

func main() {
	var (
		sqlitePath = flag.String("sqlite", "", "path to the legacy SQLite database")
		userEmail  = flag.String("user-email", "", "email of the account that will own the migrated jobs")
		dryRun     = flag.Bool("dry-run", false, "analyze the data without writing to the target")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *sqlitePath == "" {
		logger.Error("missing -sqlite flag")
		flag.Usage()
		os.Exit(2)
	}
	if !*dryRun && *userEmail == "" {
		logger.Error("missing -user-email flag (required unless -dry-run)")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*sqlitePath, *userEmail, *dryRun, logger); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(sqlitePath, userEmail string, dryRun bool, logger *slog.Logger) error {
	ctx := context.Background()

	source, err := legacy.OpenSource(sqlitePath)
	if err != nil {
		return err
	}
	defer source.Close()

	rows, err := source.Jobs(ctx)
	if err != nil {
		return err
	}
	logger.Info("read legacy jobs", "count", len(rows))

	transformer := legacy.NewTransformer()

	// Owner id is attached later; conversion and analysis do not need it.
	jobs := make([]*model.Job, 0, len(rows))
	statusCounts := make(map[model.ApplicationStatus]int)
	sourceCounts := make(map[model.JobSource]int)

	for _, row := range rows {
		job, err := transformer.Job("", row)
		if err != nil {
			return fmt.Errorf("convert job (%s / %s): %w", row.Company.String, row.JobTitle.String, err)
		}
		jobs = append(jobs, job)
		statusCounts[job.ApplicationStatus]++
		sourceCounts[job.Source]++
	}

	printAnalysis(jobs, statusCounts, sourceCounts)

	if dryRun {
		logger.Info("dry run, target untouched")
		return nil
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL not set")
	}

	target, err := legacy.OpenTarget(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer target.Close()

	user, created, err := target.EnsureUser(ctx, userEmail)
	if err != nil {
		return err
	}
	if created {
		logger.Info("created owner account; set a password before logging in", "email", userEmail)
	} else {
		logger.Info("using existing owner account", "email", userEmail)
	}

	for _, job := range jobs {
		job.UserID = user.ID
	}

	if err := target.InsertJobs(ctx, jobs); err != nil {
		return err
	}

	logger.Info("migration complete", "jobs", len(jobs), "owner", user.ID)
	return nil
}

func printAnalysis(jobs []*model.Job, statusCounts map[model.ApplicationStatus]int, sourceCounts map[model.JobSource]int) {
	fmt.Println("Migration Analysis")
	fmt.Println("==================")
	fmt.Printf("Jobs: %d\n", len(jobs))

	fmt.Println("\nStatus distribution:")
	for _, key := range sortedKeys(statusCounts) {
		fmt.Printf("  %-16s %d\n", key, statusCounts[model.ApplicationStatus(key)])
	}

	fmt.Println("\nSource distribution:")
	for _, key := range sortedKeys(sourceCounts) {
		fmt.Printf("  %-16s %d\n", key, sourceCounts[model.JobSource(key)])
	}
}

func sortedKeys[K ~string, V any](m map[K]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}
