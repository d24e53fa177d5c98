package coverletters

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in dev mode and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	letters map[string]CoverLetter
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{letters: make(map[string]CoverLetter)}
}

func (r *MemoryRepo) Create(ctx context.Context, letter CoverLetter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.letters[letter.ID] = letter
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, letterID string) (CoverLetter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	letter, ok := r.letters[letterID]
	if !ok || letter.UserID != userID {
		return CoverLetter{}, ErrNotFound
	}
	return letter, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]CoverLetter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []CoverLetter
	for _, letter := range r.letters {
		if letter.UserID == userID {
			out = append(out, letter)
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
	for _, letter := range r.letters {
		if letter.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.letters), nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, userID, letterID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	letter, ok := r.letters[letterID]
	if !ok || letter.UserID != userID {
		return ErrNotFound
	}
	letter.Status = status
	letter.UpdatedAt = time.Now().UTC()
	r.letters[letterID] = letter
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, letterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	letter, ok := r.letters[letterID]
	if !ok || letter.UserID != userID {
		return ErrNotFound
	}
	delete(r.letters, letterID)
	return nil
}

func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, letter := range r.letters {
		if letter.UserID == userID {
			delete(r.letters, id)
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
