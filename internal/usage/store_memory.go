package usage

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu       sync.Mutex
	settings map[string]Settings
	counters map[string]Counters
}

// NewMemoryStore constructs an in-memory usage store for dev mode and tests.
func NewMemoryStore() Store {
	return &memoryStore{
		settings: make(map[string]Settings),
		counters: make(map[string]Counters),
	}
}

func (s *memoryStore) GetSettings(ctx context.Context, tier string) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return Settings{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if settings, ok := s.settings[tier]; ok {
		return settings, nil
	}
	return DefaultSettings(tier), nil
}

func (s *memoryStore) UpsertSettings(ctx context.Context, settings Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[settings.Tier] = settings
	return nil
}

func (s *memoryStore) GetCounters(ctx context.Context, userID string) (Counters, error) {
	if err := ctx.Err(); err != nil {
		return Counters{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensure(userID), nil
}

func (s *memoryStore) Consume(ctx context.Context, userID, kind string, limit int) (Counters, error) {
	if err := ctx.Err(); err != nil {
		return Counters{}, err
	}
	if _, err := counterColumn(kind); err != nil {
		return Counters{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	counters := s.ensure(userID)
	used := counterValue(counters, kind)
	if limit >= 0 && used+1 > limit {
		return Counters{}, ErrLimitReached
	}
	setCounterValue(&counters, kind, used+1)
	s.counters[userID] = counters
	return counters, nil
}

func (s *memoryStore) ResetCounters(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[userID] = Counters{UserID: userID, PeriodStart: monthStart(time.Now())}
	return nil
}

func (s *memoryStore) DeleteCounters(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counters, userID)
	return nil
}

// ensure must be called with the lock held.
func (s *memoryStore) ensure(userID string) Counters {
	current := monthStart(time.Now())
	counters, ok := s.counters[userID]
	if !ok {
		counters = Counters{UserID: userID, PeriodStart: current}
	}
	if monthStart(counters.PeriodStart) != current {
		counters = Counters{UserID: userID, PeriodStart: current}
	}
	s.counters[userID] = counters
	return counters
}
