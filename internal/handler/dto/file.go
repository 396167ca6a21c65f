package dto

import (
	"time"

	"github.com/jobpal/jobpal/internal/model"
)

// FileResponse represents an uploaded attachment in API responses.
type FileResponse struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	FileType  string    `json:"file_type"`
	CreatedAt time.Time `json:"created_at"`
}

// ToFileResponse converts a File model to FileResponse DTO.
func ToFileResponse(file *model.File) *FileResponse {
	return &FileResponse{
		ID:        file.ID,
		Filename:  file.Filename,
		FileType:  file.FileType,
		CreatedAt: file.CreatedAt,
	}
}

// ToFileListResponse converts a slice of File models to DTOs.
// Always returns a non-nil slice so empty lists encode as [].
func ToFileListResponse(files []*model.File) []*FileResponse {
	out := make([]*FileResponse, 0, len(files))
	for _, file := range files {
		out = append(out, ToFileResponse(file))
	}
	return out
}
