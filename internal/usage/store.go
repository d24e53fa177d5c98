package usage

import "context"

// Store persists per-tier settings and per-user counters. Counter
// reads and consumes both roll the period over when the calendar
// month has changed since PeriodStart.
type Store interface {
	GetSettings(ctx context.Context, tier string) (Settings, error)
	UpsertSettings(ctx context.Context, settings Settings) error
	GetCounters(ctx context.Context, userID string) (Counters, error)
	// Consume adds one to the kind's counter. A negative limit means
	// unlimited. Returns ErrLimitReached when the counter is full.
	Consume(ctx context.Context, userID, kind string, limit int) (Counters, error)
	ResetCounters(ctx context.Context, userID string) error
	DeleteCounters(ctx context.Context, userID string) error
}
