package activity

import (
	"context"
	"time"
)

// Repo defines persistence operations for activity rows.
type Repo interface {
	Create(ctx context.Context, act Activity) error
	GetByIdempotencyKey(ctx context.Context, userID, key string) (Activity, error)
	ExistsBySource(ctx context.Context, userID, kind, sourceID string) (bool, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Activity, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	CountDistinctUsers(ctx context.Context) (int, error)
	DeleteByUser(ctx context.Context, userID string) error
}
