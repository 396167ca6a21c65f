package legacy

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/jobpal/jobpal/internal/model"
)

func TestStatusFromLegacy(t *testing.T) {
	tests := []struct {
		in   string
		want model.ApplicationStatus
	}{
		{"applied", model.StatusApplied},
		{"APPLIED", model.StatusApplied},
		{"rejected", model.StatusRejected},
		{"test_task", model.StatusTestTask},
		{"screening_call", model.StatusScreeningCall},
		{"interview", model.StatusInterview},
		{"offer", model.StatusOffer},
		{"", model.StatusNotYetApplied},
		{"wishlist", model.StatusNotYetApplied},
	}

	for _, test := range tests {
		if got := StatusFromLegacy(test.in); got != test.want {
			t.Errorf("StatusFromLegacy(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestSourceFromLegacy(t *testing.T) {
	tests := []struct {
		in   string
		want model.JobSource
	}{
		{"linkedin", model.SourceLinkedIn},
		{"Indeed", model.SourceIndeed},
		{"company_website", model.SourceCompanyWebsite},
		{"referral", model.SourceReferral},
		{"other", model.SourceOther},
		{"", model.SourceOther},
		{"glassdoor", model.SourceOther},
	}

	for _, test := range tests {
		if got := SourceFromLegacy(test.in); got != test.want {
			t.Errorf("SourceFromLegacy(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestSalaryRange(t *testing.T) {
	tests := []struct {
		code    string
		wantMin int
		wantMax int
		wantNil bool
	}{
		{"1", 0, 10000, false},
		{"10", 90000, 100000, false},
		{"11", 100000, 110000, false},
		{"12", 120000, 130000, false},
		{"15", 150000, 200000, false},
		{"", 0, 0, true},
		{"16", 0, 0, true},
		{"0", 0, 0, true},
	}

	for _, test := range tests {
		min, max := SalaryRange(test.code)
		if test.wantNil {
			if min != nil || max != nil {
				t.Errorf("SalaryRange(%q) = %v, %v, want nil, nil", test.code, min, max)
			}
			continue
		}
		if min == nil || max == nil {
			t.Fatalf("SalaryRange(%q) returned nil", test.code)
		}
		if *min != test.wantMin || *max != test.wantMax {
			t.Errorf("SalaryRange(%q) = %d, %d, want %d, %d", test.code, *min, *max, test.wantMin, test.wantMax)
		}
	}
}

func TestMsToTime(t *testing.T) {
	got := MsToTime(1700000000000)
	want := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("MsToTime = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", got.Location())
	}
}

func TestProperCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"acme corp", "Acme Corp"},
		{"ACME CORP", "Acme Corp"},
		{"  spaced   out  ", "Spaced Out"},
		{"", ""},
		{"single", "Single"},
	}

	for _, test := range tests {
		if got := ProperCase(test.in); got != test.want {
			t.Errorf("ProperCase(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestTransformerJob(t *testing.T) {
	tr := NewTransformer()

	row := SourceJob{
		Status:      sql.NullString{String: "interview", Valid: true},
		Source:      sql.NullString{String: "linkedin", Valid: true},
		Company:     sql.NullString{String: "acme corp", Valid: true},
		JobTitle:    sql.NullString{String: "backend engineer", Valid: true},
		VacancyText: sql.NullString{String: "<p>Build <strong>services</strong></p>", Valid: true},
		VacancyLink: sql.NullString{String: "https://jobs.example.com/1", Valid: true},
		AppliedDate: sql.NullInt64{Int64: 1700000000000, Valid: true},
		DueDate:     sql.NullInt64{Int64: 1700600000000, Valid: true},
		CreatedAt:   sql.NullInt64{Int64: 1699000000000, Valid: true},
		Applied:     sql.NullInt64{Int64: 1, Valid: true},
		SalaryRange: sql.NullString{String: "12", Valid: true},
	}

	job, err := tr.Job("user-1", row)
	if err != nil {
		t.Fatalf("Job failed: %v", err)
	}

	if job.CompanyName != "Acme Corp" {
		t.Errorf("CompanyName = %q, want %q", job.CompanyName, "Acme Corp")
	}
	if job.RoleTitle != "Backend Engineer" {
		t.Errorf("RoleTitle = %q, want %q", job.RoleTitle, "Backend Engineer")
	}
	if job.ApplicationStatus != model.StatusInterview {
		t.Errorf("status = %q, want interview", job.ApplicationStatus)
	}
	if job.Source != model.SourceLinkedIn {
		t.Errorf("source = %q, want linkedin", job.Source)
	}
	if job.VacancyText == nil || !strings.Contains(*job.VacancyText, "**services**") {
		t.Errorf("VacancyText not converted to Markdown: %v", job.VacancyText)
	}
	if job.DateApplied == nil || !job.DateApplied.Equal(MsToTime(1700000000000)) {
		t.Errorf("DateApplied = %v", job.DateApplied)
	}
	if job.SalaryMin == nil || *job.SalaryMin != 120000 {
		t.Errorf("SalaryMin = %v, want 120000", job.SalaryMin)
	}
	if job.SalaryMax == nil || *job.SalaryMax != 130000 {
		t.Errorf("SalaryMax = %v, want 130000", job.SalaryMax)
	}
	if job.UpdatedAt == nil || !job.UpdatedAt.Equal(MsToTime(1699000000000)) {
		t.Errorf("UpdatedAt = %v", job.UpdatedAt)
	}
	if job.NotificationSent {
		t.Error("NotificationSent should default to false")
	}
	if job.ID == "" || job.UserID != "user-1" {
		t.Errorf("identity fields not set: id=%q user=%q", job.ID, job.UserID)
	}
}

func TestTransformerJob_NotAppliedDropsDate(t *testing.T) {
	tr := NewTransformer()

	row := SourceJob{
		Company:     sql.NullString{String: "acme", Valid: true},
		JobTitle:    sql.NullString{String: "engineer", Valid: true},
		AppliedDate: sql.NullInt64{Int64: 1700000000000, Valid: true},
		Applied:     sql.NullInt64{Int64: 0, Valid: true},
	}

	job, err := tr.Job("user-1", row)
	if err != nil {
		t.Fatalf("Job failed: %v", err)
	}

	if job.DateApplied != nil {
		t.Errorf("DateApplied should be nil when applied flag is unset, got %v", job.DateApplied)
	}
	if job.ApplicationStatus != model.StatusNotYetApplied {
		t.Errorf("status = %q, want not_yet_applied", job.ApplicationStatus)
	}
	if job.Source != model.SourceOther {
		t.Errorf("source = %q, want other", job.Source)
	}
}
