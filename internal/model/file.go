// Package model defines domain entities for the application.
package model

import "time"

// File represents an uploaded attachment (resume, cover letter)
// linked to a job application.
type File struct {
	ID        string     `json:"id"`
	JobID     string     `json:"-"`
	Filename  string     `json:"filename"`
	FilePath  string     `json:"-"`
	FileType  string     `json:"file_type"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
