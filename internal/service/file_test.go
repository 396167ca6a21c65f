package service

import "testing"

func TestAllowedExtensions(t *testing.T) {
	tests := []struct {
		ext     string
		allowed bool
	}{
		{".pdf", true},
		{".doc", true},
		{".docx", true},
		{".txt", true},
		{".exe", false},
		{".sh", false},
		{".pdf.exe", false},
		{"", false},
	}

	for _, test := range tests {
		if got := allowedExtensions[test.ext]; got != test.allowed {
			t.Errorf("allowedExtensions[%q] = %v, want %v", test.ext, got, test.allowed)
		}
	}
}
