package activity

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in dev mode and tests.
type MemoryRepo struct {
	mu         sync.RWMutex
	activities map[string]Activity
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{activities: make(map[string]Activity)}
}

func (r *MemoryRepo) Create(ctx context.Context, act Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if act.IdempotencyKey != "" {
		for _, existing := range r.activities {
			if existing.UserID == act.UserID && existing.IdempotencyKey == act.IdempotencyKey {
				return ErrDuplicate
			}
		}
	}
	r.activities[act.ID] = act
	return nil
}

func (r *MemoryRepo) GetByIdempotencyKey(ctx context.Context, userID, key string) (Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, act := range r.activities {
		if act.UserID == userID && act.IdempotencyKey == key {
			return act, nil
		}
	}
	return Activity{}, ErrNotFound
}

func (r *MemoryRepo) ExistsBySource(ctx context.Context, userID, kind, sourceID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, act := range r.activities {
		if act.UserID == userID && act.Kind == kind && act.SourceID == sourceID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Activity
	for _, act := range r.activities {
		if act.UserID == userID {
			out = append(out, act)
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
	for _, act := range r.activities {
		if act.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, act := range r.activities {
		if !act.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepo) CountDistinctUsers(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, act := range r.activities {
		seen[act.UserID] = struct{}{}
	}
	return len(seen), nil
}

func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, act := range r.activities {
		if act.UserID == userID {
			delete(r.activities, id)
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
