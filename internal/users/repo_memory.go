package users

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory Repo used in dev mode and tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[string]User)}
}

func (r *MemoryRepo) Create(ctx context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrEmailTaken
		}
	}
	user.Email = strings.ToLower(user.Email)
	r.users[user.ID] = user
	return nil
}

func (r *MemoryRepo) UpsertOAuth(ctx context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[user.ID]; ok {
		existing.Email = strings.ToLower(user.Email)
		existing.FullName = user.FullName
		existing.PictureURL = user.PictureURL
		r.users[user.ID] = existing
		return nil
	}
	user.Email = strings.ToLower(user.Email)
	r.users[user.ID] = user
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) List(ctx context.Context, search string, limit, offset int) ([]User, error) {
	matched := r.matching(search)
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *MemoryRepo) Count(ctx context.Context, search string) (int, error) {
	return len(r.matching(search)), nil
}

func (r *MemoryRepo) CountByTier(ctx context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := map[string]int{}
	for _, user := range r.users {
		out[user.Tier]++
	}
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	existing.FullName = user.FullName
	existing.PictureURL = user.PictureURL
	existing.Role = user.Role
	existing.Tier = user.Tier
	existing.Status = user.Status
	r.users[user.ID] = existing
	return nil
}

func (r *MemoryRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return ErrNotFound
	}
	user.PasswordHash = passwordHash
	r.users[userID] = user
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return ErrNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *MemoryRepo) matching(search string) []User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	needle := strings.ToLower(strings.TrimSpace(search))
	var out []User
	for _, user := range r.users {
		if needle == "" || strings.Contains(strings.ToLower(user.Email), needle) {
			out = append(out, user)
		}
	}
	return out
}
