package coverletters

import (
	"context"

	"jobmaster-backend/internal/outreach"
)

// Service contains business logic for cover letter history.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) Create(ctx context.Context, letter CoverLetter) error {
	if letter.Status == "" {
		letter.Status = outreach.StatusGenerated
	}
	return s.Repo.Create(ctx, letter)
}

func (s *Service) Get(ctx context.Context, userID, letterID string) (CoverLetter, error) {
	return s.Repo.GetByID(ctx, userID, letterID)
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]CoverLetter, int, error) {
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

func (s *Service) UpdateStatus(ctx context.Context, userID, letterID, status string) error {
	if !outreach.ValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.Repo.UpdateStatus(ctx, userID, letterID, status)
}

func (s *Service) Delete(ctx context.Context, userID, letterID string) error {
	return s.Repo.Delete(ctx, userID, letterID)
}
