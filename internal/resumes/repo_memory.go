package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo used in dev mode and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	resumes map[string]Resume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{resumes: make(map[string]Resume)}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes[resume.ID] = resume
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.resumes[resumeID]
	if !ok || resume.UserID != userID {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Resume
	for _, resume := range r.resumes {
		if resume.UserID == userID {
			out = append(out, resume)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, resume := range r.resumes {
		if resume.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, resumeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[resumeID]
	if !ok || resume.UserID != userID {
		return ErrNotFound
	}
	delete(r.resumes, resumeID)
	return nil
}

func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, resume := range r.resumes {
		if resume.UserID == userID {
			delete(r.resumes, id)
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
