package model

import "testing"

func TestApplicationStatus_IsValid(t *testing.T) {
	valid := []ApplicationStatus{
		StatusNotYetApplied,
		StatusApplied,
		StatusRejected,
		StatusTestTask,
		StatusScreeningCall,
		StatusInterview,
		StatusOffer,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("expected %q to be valid", s)
		}
	}

	invalid := []ApplicationStatus{"", "pending", "NOT_YET_APPLIED", "hired"}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestJobSource_IsValid(t *testing.T) {
	valid := []JobSource{
		SourceLinkedIn,
		SourceIndeed,
		SourceCompanyWebsite,
		SourceReferral,
		SourceOther,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("expected %q to be valid", s)
		}
	}

	invalid := []JobSource{"", "glassdoor", "LinkedIn"}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
