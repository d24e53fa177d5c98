package apikeys

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in dev mode and tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	user   map[string]UserKey   // keyed by userID + "/" + provider
	shared map[string]SharedKey // keyed by id
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		user:   make(map[string]UserKey),
		shared: make(map[string]SharedKey),
	}
}

func userKeyID(userID, provider string) string {
	return userID + "/" + provider
}

func (r *MemoryRepo) UpsertUserKey(ctx context.Context, key UserKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := userKeyID(key.UserID, key.Provider)
	if existing, ok := r.user[id]; ok {
		key.ID = existing.ID
		key.CreatedAt = existing.CreatedAt
	}
	key.UpdatedAt = time.Now().UTC()
	r.user[id] = key
	return nil
}

func (r *MemoryRepo) GetUserKey(ctx context.Context, userID, provider string) (UserKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.user[userKeyID(userID, provider)]
	if !ok {
		return UserKey{}, ErrNotFound
	}
	return key, nil
}

func (r *MemoryRepo) ListUserKeys(ctx context.Context, userID string) ([]UserKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []UserKey
	for _, key := range r.user {
		if key.UserID == userID {
			out = append(out, key)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out, nil
}

func (r *MemoryRepo) DeleteUserKey(ctx context.Context, userID, provider string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := userKeyID(userID, provider)
	if _, ok := r.user[id]; !ok {
		return ErrNotFound
	}
	delete(r.user, id)
	return nil
}

func (r *MemoryRepo) DeleteUserKeys(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, key := range r.user {
		if key.UserID == userID {
			delete(r.user, id)
		}
	}
	return nil
}

func (r *MemoryRepo) CreateSharedKey(ctx context.Context, key SharedKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shared[key.ID] = key
	return nil
}

func (r *MemoryRepo) GetSharedKey(ctx context.Context, keyID string) (SharedKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.shared[keyID]
	if !ok {
		return SharedKey{}, ErrNotFound
	}
	return key, nil
}

func (r *MemoryRepo) GetActiveSharedKey(ctx context.Context, provider string) (SharedKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, key := range r.shared {
		if key.Provider == provider && key.Active {
			return key, nil
		}
	}
	return SharedKey{}, ErrNotFound
}

func (r *MemoryRepo) ListSharedKeys(ctx context.Context) ([]SharedKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []SharedKey
	for _, key := range r.shared {
		out = append(out, key)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Provider != out[j].Provider {
			return out[i].Provider < out[j].Provider
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) UpdateSharedKey(ctx context.Context, key SharedKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.shared[key.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Name = key.Name
	existing.Active = key.Active
	existing.UpdatedAt = time.Now().UTC()
	r.shared[key.ID] = existing
	return nil
}

func (r *MemoryRepo) DeactivateSharedKeys(ctx context.Context, provider, exceptID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, key := range r.shared {
		if key.Provider == provider && id != exceptID && key.Active {
			key.Active = false
			r.shared[id] = key
		}
	}
	return nil
}

func (r *MemoryRepo) DeleteSharedKey(ctx context.Context, keyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shared[keyID]; !ok {
		return ErrNotFound
	}
	delete(r.shared, keyID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
