package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"resume.pdf", "resume.pdf"},
		{"my resume (final).pdf", "my_resume_final_.pdf"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\windows\\system32\\cmd.exe", "cmd.exe"},
		{"/absolute/path/cover_letter.docx", "cover_letter.docx"},
		{"übersicht.pdf", "bersicht.pdf"},
	}

	for _, tc := range cases {
		got, err := SanitizeFilename(tc.in)
		if err != nil {
			t.Errorf("SanitizeFilename(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeFilename_Empty(t *testing.T) {
	for _, in := range []string{"", "...", "///", "␀"} {
		if _, err := SanitizeFilename(in); !errors.Is(err, ErrEmptyFilename) {
			t.Errorf("SanitizeFilename(%q): expected ErrEmptyFilename, got %v", in, err)
		}
	}
}

func TestLocalStore_SaveAndRemove(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	path, err := store.Save("resume.pdf", strings.NewReader("pdf bytes"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected stored file to exist: %v", err)
	}
	if string(content) != "pdf bytes" {
		t.Errorf("unexpected content: %s", content)
	}

	if filepath.Dir(path) != store.Dir() {
		t.Errorf("expected file inside upload dir, got %s", path)
	}

	if err := store.Remove(path); err != nil {
		t.Fatalf("expected no error removing, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("expected file to be removed")
	}

	// Removing twice is not an error.
	if err := store.Remove(path); err != nil {
		t.Errorf("expected idempotent remove, got %v", err)
	}
}

func TestLocalStore_RejectsPathEscape(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := store.Save("../escape.pdf", strings.NewReader("x")); err == nil {
		t.Error("expected error for path traversal name")
	}
	if _, err := store.Save("", strings.NewReader("x")); err == nil {
		t.Error("expected error for empty name")
	}
}
