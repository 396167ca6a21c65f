//go:build integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/jobpal/jobpal/internal/model"
	"github.com/jobpal/jobpal/internal/repository"
	"github.com/jobpal/jobpal/internal/testutil"
)

func TestIntegrationJobService_UpdateJob_SingleFieldLeavesRestUntouched(t *testing.T) {
	ctx, repo := newTestEnv(t)
	user := createTestUser(t, ctx, repo)
	svc := NewJobService(repo, nil)

	salaryMin, salaryMax := 90, 120
	created, err := svc.CreateJob(ctx, user.ID, CreateJobInput{
		CompanyName:       "Initech",
		RoleTitle:         "Platform Engineer",
		ApplicationStatus: "applied",
		Source:            "referral",
		DateApplied:       "2026-08-01T09:00:00Z",
		SalaryMin:         &salaryMin,
		SalaryMax:         &salaryMax,
	})
	if err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}

	newName := "Initech GmbH"
	updated, err := svc.UpdateJob(ctx, user.ID, created.ID, UpdateJobInput{
		CompanyName: &newName,
	})
	if err != nil {
		t.Fatalf("UpdateJob failed: %v", err)
	}

	if updated.CompanyName != newName {
		t.Errorf("CompanyName = %q, want %q", updated.CompanyName, newName)
	}
	if updated.UpdatedAt == nil {
		t.Error("UpdatedAt should be set after update")
	}

	// Re-read from the database so the assertion covers the persisted
	// row, not the in-memory struct.
	retrieved, err := svc.GetJob(ctx, user.ID, created.ID)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}

	if retrieved.CompanyName != newName {
		t.Errorf("persisted CompanyName = %q, want %q", retrieved.CompanyName, newName)
	}
	if retrieved.RoleTitle != "Platform Engineer" {
		t.Errorf("RoleTitle changed by unrelated update: got %q", retrieved.RoleTitle)
	}
	if retrieved.ApplicationStatus != model.StatusApplied {
		t.Errorf("ApplicationStatus changed: got %q", retrieved.ApplicationStatus)
	}
	if retrieved.Source != model.SourceReferral {
		t.Errorf("Source changed: got %q", retrieved.Source)
	}
	if retrieved.SalaryMin == nil || *retrieved.SalaryMin != salaryMin {
		t.Errorf("SalaryMin changed: got %v", retrieved.SalaryMin)
	}
	if retrieved.SalaryMax == nil || *retrieved.SalaryMax != salaryMax {
		t.Errorf("SalaryMax changed: got %v", retrieved.SalaryMax)
	}
	wantApplied := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	if retrieved.DateApplied == nil || !retrieved.DateApplied.Equal(wantApplied) {
		t.Errorf("DateApplied changed: got %v, want %v", retrieved.DateApplied, wantApplied)
	}
	if retrieved.UpdatedAt == nil {
		t.Error("persisted UpdatedAt should be set after update")
	}
}

func TestIntegrationJobService_UpdateJob_ClearsDateOnEmptyString(t *testing.T) {
	ctx, repo := newTestEnv(t)
	user := createTestUser(t, ctx, repo)
	svc := NewJobService(repo, nil)

	created, err := svc.CreateJob(ctx, user.ID, CreateJobInput{
		CompanyName:       "Initech",
		RoleTitle:         "Platform Engineer",
		ApplicationStatus: "applied",
		DateApplied:       "2026-08-01T09:00:00Z",
	})
	if err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}

	cleared := ""
	if _, err := svc.UpdateJob(ctx, user.ID, created.ID, UpdateJobInput{
		DateApplied: &cleared,
	}); err != nil {
		t.Fatalf("UpdateJob failed: %v", err)
	}

	retrieved, err := svc.GetJob(ctx, user.ID, created.ID)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if retrieved.DateApplied != nil {
		t.Errorf("DateApplied should be cleared, got %v", retrieved.DateApplied)
	}
	if retrieved.CompanyName != "Initech" {
		t.Errorf("CompanyName changed: got %q", retrieved.CompanyName)
	}
}

// newTestEnv connects to the test database, serializes access and
// resets the schema.
func newTestEnv(t *testing.T) (context.Context, *repository.Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := repository.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return ctx, repo
}

func createTestUser(t *testing.T, ctx context.Context, repo *repository.Repository) *model.User {
	t.Helper()
	user := testutil.NewTestUser(t, testutil.UniqueEmail("svc"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}
