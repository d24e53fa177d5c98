package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobmaster-backend/internal/shared/auth"
)

type Service struct {
	Repo      Repo
	Passwords *auth.PasswordConfig
}

func NewService(repo Repo, passwords *auth.PasswordConfig) *Service {
	return &Service{Repo: repo, Passwords: passwords}
}

// Register creates an email/password account on the free tier.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return User{}, ErrInvalidInput
	}
	if len(password) < 8 {
		return User{}, ErrInvalidInput
	}

	hash, err := s.Passwords.HashPassword(password)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: hash,
		Role:         RoleUser,
		Tier:         TierFree,
		Status:       StatusActive,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login verifies credentials and returns the account.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	user, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if user.PasswordHash == "" || !s.Passwords.VerifyPassword(password, user.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}
	if user.Status == StatusSuspended {
		return User{}, ErrSuspended
	}
	return user, nil
}

// UpsertFromOAuth persists the identity from an OAuth callback. New
// accounts start as free-tier users; existing rows keep role and tier.
func (s *Service) UpsertFromOAuth(ctx context.Context, user User) (User, error) {
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return User{}, ErrInvalidInput
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	if user.Tier == "" {
		user.Tier = TierFree
	}
	if user.Status == "" {
		user.Status = StatusActive
	}
	if err := s.Repo.UpsertOAuth(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, user.ID)
}

// UpdatePassword sets a new password after verifying the current one.
// Accounts without a password (OAuth-only) may set one directly.
func (s *Service) UpdatePassword(ctx context.Context, userID, current, next string) error {
	if len(next) < 8 {
		return ErrInvalidInput
	}
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.PasswordHash != "" && !s.Passwords.VerifyPassword(current, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	hash, err := s.Passwords.HashPassword(next)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, userID, hash)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID)
}

// List returns a page of users plus the total count for the search.
func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]User, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	items, err := s.Repo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.Count(ctx, search)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// AdminUpdate applies role/tier/status changes to an account.
func (s *Service) AdminUpdate(ctx context.Context, userID, role, tier, status string) (User, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	if role != "" {
		if !ValidRole(role) {
			return User{}, ErrInvalidInput
		}
		user.Role = role
	}
	if tier != "" {
		if !ValidTier(tier) {
			return User{}, ErrInvalidInput
		}
		user.Tier = tier
	}
	if status != "" {
		if !ValidStatus(status) {
			return User{}, ErrInvalidInput
		}
		user.Status = status
	}
	if err := s.Repo.Update(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.Repo.Delete(ctx, userID)
}
