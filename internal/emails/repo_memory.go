package emails

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in dev mode and tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	emails map[string]Email
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{emails: make(map[string]Email)}
}

func (r *MemoryRepo) Create(ctx context.Context, email Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emails[email.ID] = email
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, emailID string) (Email, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email, ok := r.emails[emailID]
	if !ok || email.UserID != userID {
		return Email{}, ErrNotFound
	}
	return email, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Email, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Email
	for _, email := range r.emails {
		if email.UserID == userID {
			out = append(out, email)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, email := range r.emails {
		if email.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.emails), nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, userID, emailID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	email, ok := r.emails[emailID]
	if !ok || email.UserID != userID {
		return ErrNotFound
	}
	email.Status = status
	email.UpdatedAt = time.Now().UTC()
	r.emails[emailID] = email
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, emailID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	email, ok := r.emails[emailID]
	if !ok || email.UserID != userID {
		return ErrNotFound
	}
	delete(r.emails, emailID)
	return nil
}

func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, email := range r.emails {
		if email.UserID == userID {
			delete(r.emails, id)
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
