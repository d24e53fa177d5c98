package linkedin

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in dev mode and tests.
type MemoryRepo struct {
	mu       sync.RWMutex
	messages map[string]Message
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{messages: make(map[string]Message)}
}

func (r *MemoryRepo) Create(ctx context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[msg.ID] = msg
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, msgID string) (Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	msg, ok := r.messages[msgID]
	if !ok || msg.UserID != userID {
		return Message{}, ErrNotFound
	}
	return msg, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Message
	for _, msg := range r.messages {
		if msg.UserID == userID {
			out = append(out, msg)
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
	for _, msg := range r.messages {
		if msg.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepo) CountByRecipient(ctx context.Context, userID, profileURL string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, msg := range r.messages {
		if msg.UserID == userID && strings.EqualFold(msg.RecipientProfileURL, profileURL) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages), nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, userID, msgID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg, ok := r.messages[msgID]
	if !ok || msg.UserID != userID {
		return ErrNotFound
	}
	msg.Status = status
	msg.UpdatedAt = time.Now().UTC()
	r.messages[msgID] = msg
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, msgID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg, ok := r.messages[msgID]
	if !ok || msg.UserID != userID {
		return ErrNotFound
	}
	delete(r.messages, msgID)
	return nil
}

func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, msg := range r.messages {
		if msg.UserID == userID {
			delete(r.messages, id)
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
