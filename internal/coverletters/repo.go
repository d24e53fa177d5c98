package coverletters

import "context"

// Repo defines persistence operations for cover letters.
type Repo interface {
	Create(ctx context.Context, letter CoverLetter) error
	GetByID(ctx context.Context, userID, letterID string) (CoverLetter, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]CoverLetter, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	Count(ctx context.Context) (int, error)
	UpdateStatus(ctx context.Context, userID, letterID, status string) error
	Delete(ctx context.Context, userID, letterID string) error
	DeleteByUser(ctx context.Context, userID string) error
}
