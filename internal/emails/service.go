package emails

import (
	"context"

	"jobmaster-backend/internal/outreach"
)

// Service contains business logic for email history.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) Create(ctx context.Context, email Email) error {
	if email.Status == "" {
		email.Status = outreach.StatusGenerated
	}
	if email.Purpose == "" {
		email.Purpose = PurposeOutreach
	}
	return s.Repo.Create(ctx, email)
}

func (s *Service) Get(ctx context.Context, userID, emailID string) (Email, error) {
	return s.Repo.GetByID(ctx, userID, emailID)
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Email, int, error) {
	items, err := s.Repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) UpdateStatus(ctx context.Context, userID, emailID, status string) error {
	if !outreach.ValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.Repo.UpdateStatus(ctx, userID, emailID, status)
}

func (s *Service) Delete(ctx context.Context, userID, emailID string) error {
	return s.Repo.Delete(ctx, userID, emailID)
}
