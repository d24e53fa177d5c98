package linkedin

import (
	"context"
	"strings"

	"jobmaster-backend/internal/outreach"
)

// Service contains business logic for LinkedIn message history.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create records a generated message. A user can keep at most
// MaxPerRecipient messages per recipient profile.
func (s *Service) Create(ctx context.Context, msg Message) error {
	profile := strings.TrimSpace(msg.RecipientProfileURL)
	if profile == "" {
		return ErrMissingRecipient
	}
	count, err := s.Repo.CountByRecipient(ctx, msg.UserID, profile)
	if err != nil {
		return err
	}
	if count >= MaxPerRecipient {
		return ErrRecipientLimit
	}
	if msg.Status == "" {
		msg.Status = outreach.StatusGenerated
	}
	msg.RecipientProfileURL = profile
	return s.Repo.Create(ctx, msg)
}

// CheckRecipient reports whether another message may still be created
// for the recipient profile.
func (s *Service) CheckRecipient(ctx context.Context, userID, profileURL string) error {
	profile := strings.TrimSpace(profileURL)
	if profile == "" {
		return ErrMissingRecipient
	}
	count, err := s.Repo.CountByRecipient(ctx, userID, profile)
	if err != nil {
		return err
	}
	if count >= MaxPerRecipient {
		return ErrRecipientLimit
	}
	return nil
}

func (s *Service) Get(ctx context.Context, userID, msgID string) (Message, error) {
	return s.Repo.GetByID(ctx, userID, msgID)
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Message, int, error) {
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

func (s *Service) UpdateStatus(ctx context.Context, userID, msgID, status string) error {
	if !outreach.ValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.Repo.UpdateStatus(ctx, userID, msgID, status)
}

func (s *Service) Delete(ctx context.Context, userID, msgID string) error {
	return s.Repo.Delete(ctx, userID, msgID)
}
