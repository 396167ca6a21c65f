package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jobpal/jobpal/internal/metrics"
	"github.com/jobpal/jobpal/internal/model"
	"github.com/jobpal/jobpal/internal/repository"
	"github.com/jobpal/jobpal/internal/storage"
)

// File service errors. A missing multipart part never reaches the
// service; the handler rejects it while reading the form.
var (
	ErrEmptyFilename  = errors.New("no file selected")
	ErrDisallowedType = errors.New("file type not allowed")
)

// allowedExtensions is the document allow-list for attachments.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

// defaultFileType is recorded when the client does not label the upload.
const defaultFileType = "resume"

// FileService handles attachment uploads.
type FileService struct {
	repo    *repository.Repository
	store   *storage.LocalStore
	metrics metrics.Recorder
}

// NewFileService creates a new FileService.
func NewFileService(repo *repository.Repository, store *storage.LocalStore, recorder metrics.Recorder) *FileService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &FileService{
		repo:    repo,
		store:   store,
		metrics: recorder,
	}
}

// ListFiles retrieves all files attached to a job owned by the user.
func (s *FileService) ListFiles(ctx context.Context, userID, jobID string) ([]*model.File, error) {
	if _, err := s.repo.GetJob(ctx, userID, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return s.repo.ListFilesByJobID(ctx, jobID)
}

// UploadInput defines input for attaching a file to a job.
type UploadInput struct {
	JobID    string
	Filename string
	FileType string
	Content  io.Reader
}

// Upload validates the attachment, stores its bytes under the upload
// directory and persists the file row. The job must be owned by the
// user; a foreign job is reported as not found.
func (s *FileService) Upload(ctx context.Context, userID string, input UploadInput) (*model.File, error) {
	// Ownership gate before anything touches disk.
	if _, err := s.repo.GetJob(ctx, userID, input.JobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	if input.Filename == "" {
		s.metrics.IncFileRejected()
		return nil, ErrEmptyFilename
	}

	ext := strings.ToLower(filepath.Ext(input.Filename))
	if !allowedExtensions[ext] {
		s.metrics.IncFileRejected()
		return nil, ErrDisallowedType
	}

	name, err := storage.SanitizeFilename(input.Filename)
	if err != nil {
		s.metrics.IncFileRejected()
		return nil, ErrEmptyFilename
	}

	fileType := input.FileType
	if fileType == "" {
		fileType = defaultFileType
	}

	id := ulid.Make().String()

	// The stored name is server-controlled: ULID prefix keeps paths
	// unique even when two uploads share a sanitized name.
	path, err := s.store.Save(id+"_"+name, input.Content)
	if err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	file := &model.File{
		ID:        id,
		JobID:     input.JobID,
		Filename:  name,
		FilePath:  path,
		FileType:  fileType,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateFile(ctx, file); err != nil {
		// Do not leave orphaned bytes behind a failed insert.
		_ = s.store.Remove(path)
		return nil, fmt.Errorf("create file record: %w", err)
	}

	s.metrics.IncFileUploaded()

	return file, nil
}
