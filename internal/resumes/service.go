package resumes

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobmaster-backend/internal/extract"
	"jobmaster-backend/internal/shared/storage/object"
	"jobmaster-backend/internal/shared/telemetry"
)

// Service contains business logic for resumes.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

func NewService(store object.ObjectStore, repo Repo) *Service {
	return &Service{Store: store, Repo: repo}
}

// Upload saves the file to object storage, extracts its text, and
// records the resume. Users keep at most MaxPerUser resumes.
func (s *Service) Upload(ctx context.Context, userID, title, fileName string, r io.Reader) (Resume, error) {
	if fileName == "" {
		return Resume{}, ErrInvalidInput
	}

	count, err := s.Repo.CountByUser(ctx, userID)
	if err != nil {
		return Resume{}, err
	}
	if count >= MaxPerUser {
		return Resume{}, ErrLimitReached
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Resume{}, err
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return Resume{}, err
	}

	text, err := extract.Text(data, mimeType, fileName)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			return Resume{}, ErrInvalidInput
		}
		telemetry.Error("resume.extract_failed", map[string]any{
			"user_id":   userID,
			"file_name": fileName,
			"error":     err.Error(),
		})
		return Resume{}, err
	}

	if strings.TrimSpace(title) == "" {
		title = fileName
	}

	resume := Resume{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         title,
		FileName:      fileName,
		MimeType:      mimeType,
		SizeBytes:     size,
		StorageKey:    storageKey,
		ExtractedText: text,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	if userID == "" || resumeID == "" {
		return Resume{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

func (s *Service) List(ctx context.Context, userID string) ([]Resume, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Download opens the stored file for streaming back to the client.
func (s *Service) Download(ctx context.Context, userID, resumeID string) (Resume, io.ReadCloser, error) {
	resume, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, nil, err
	}
	body, err := s.Store.Open(ctx, resume.StorageKey)
	if err != nil {
		return Resume{}, nil, err
	}
	return resume, body, nil
}

func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	return s.Repo.Delete(ctx, userID, resumeID)
}
