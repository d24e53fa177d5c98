package apikeys

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobmaster-backend/internal/shared/secrets"
)

// ModelLister fetches a provider's available model IDs using a
// decrypted key. Implemented by the llm package.
type ModelLister interface {
	ListModels(ctx context.Context, provider, apiKey string) ([]string, error)
}

// Service stores keys encrypted and resolves them for generation.
type Service struct {
	Repo   Repo
	Box    *secrets.Box
	Models ModelLister
}

func NewService(repo Repo, box *secrets.Box, models ModelLister) *Service {
	return &Service{Repo: repo, Box: box, Models: models}
}

// SetUserKey encrypts and stores a user's key for a provider.
func (s *Service) SetUserKey(ctx context.Context, userID, provider, apiKey string) (UserKey, error) {
	if !ValidProvider(provider) {
		return UserKey{}, ErrInvalidProvider
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return UserKey{}, ErrInvalidInput
	}

	ciphertext, err := s.Box.Encrypt(apiKey)
	if err != nil {
		return UserKey{}, err
	}
	key := UserKey{
		ID:         uuid.NewString(),
		UserID:     userID,
		Provider:   provider,
		Ciphertext: ciphertext,
		Masked:     secrets.Mask(apiKey),
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.UpsertUserKey(ctx, key); err != nil {
		return UserKey{}, err
	}
	return key, nil
}

// ListUserKeys returns the user's keys, masked.
func (s *Service) ListUserKeys(ctx context.Context, userID string) ([]UserKey, error) {
	return s.Repo.ListUserKeys(ctx, userID)
}

func (s *Service) DeleteUserKey(ctx context.Context, userID, provider string) error {
	if !ValidProvider(provider) {
		return ErrInvalidProvider
	}
	return s.Repo.DeleteUserKey(ctx, userID, provider)
}

// Resolve returns the decrypted key to use for a provider call: the
// user's own key first, then the active shared key for plus-tier
// users. Source is SourceUser or SourceShared.
func (s *Service) Resolve(ctx context.Context, userID, tier, provider string) (apiKey, source string, err error) {
	if !ValidProvider(provider) {
		return "", "", ErrInvalidProvider
	}

	userKey, err := s.Repo.GetUserKey(ctx, userID, provider)
	if err == nil {
		plaintext, err := s.Box.Decrypt(userKey.Ciphertext)
		if err != nil {
			return "", "", err
		}
		return plaintext, SourceUser, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", "", err
	}

	if tier != "plus" {
		return "", "", ErrNoKey
	}
	sharedKey, err := s.Repo.GetActiveSharedKey(ctx, provider)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", "", ErrNoKey
		}
		return "", "", err
	}
	plaintext, err := s.Box.Decrypt(sharedKey.Ciphertext)
	if err != nil {
		return "", "", err
	}
	return plaintext, SourceShared, nil
}

// CreateSharedKey stores an admin-provisioned key. Activating it
// deactivates any other shared key for the same provider.
func (s *Service) CreateSharedKey(ctx context.Context, name, provider, apiKey string, active bool) (SharedKey, error) {
	if !ValidProvider(provider) {
		return SharedKey{}, ErrInvalidProvider
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" || strings.TrimSpace(name) == "" {
		return SharedKey{}, ErrInvalidInput
	}

	ciphertext, err := s.Box.Encrypt(apiKey)
	if err != nil {
		return SharedKey{}, err
	}
	key := SharedKey{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(name),
		Provider:   provider,
		Ciphertext: ciphertext,
		Masked:     secrets.Mask(apiKey),
		Active:     active,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.CreateSharedKey(ctx, key); err != nil {
		return SharedKey{}, err
	}
	if active {
		if err := s.Repo.DeactivateSharedKeys(ctx, provider, key.ID); err != nil {
			return SharedKey{}, err
		}
	}
	return key, nil
}

func (s *Service) ListSharedKeys(ctx context.Context) ([]SharedKey, error) {
	return s.Repo.ListSharedKeys(ctx)
}

// UpdateSharedKey renames and/or toggles a shared key.
func (s *Service) UpdateSharedKey(ctx context.Context, keyID string, name *string, active *bool) (SharedKey, error) {
	key, err := s.Repo.GetSharedKey(ctx, keyID)
	if err != nil {
		return SharedKey{}, err
	}
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return SharedKey{}, ErrInvalidInput
		}
		key.Name = strings.TrimSpace(*name)
	}
	if active != nil {
		key.Active = *active
	}
	if err := s.Repo.UpdateSharedKey(ctx, key); err != nil {
		return SharedKey{}, err
	}
	if key.Active {
		if err := s.Repo.DeactivateSharedKeys(ctx, key.Provider, key.ID); err != nil {
			return SharedKey{}, err
		}
	}
	return key, nil
}

func (s *Service) DeleteSharedKey(ctx context.Context, keyID string) error {
	return s.Repo.DeleteSharedKey(ctx, keyID)
}

// SharedKeyModels lists the provider's models using the decrypted key.
func (s *Service) SharedKeyModels(ctx context.Context, keyID string) ([]string, error) {
	key, err := s.Repo.GetSharedKey(ctx, keyID)
	if err != nil {
		return nil, err
	}
	plaintext, err := s.Box.Decrypt(key.Ciphertext)
	if err != nil {
		return nil, err
	}
	return s.Models.ListModels(ctx, key.Provider, plaintext)
}

// DeleteForUser removes all of a user's keys.
func (s *Service) DeleteForUser(ctx context.Context, userID string) error {
	return s.Repo.DeleteUserKeys(ctx, userID)
}
