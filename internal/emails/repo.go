package emails

import "context"

// Repo defines persistence operations for emails.
type Repo interface {
	Create(ctx context.Context, email Email) error
	GetByID(ctx context.Context, userID, emailID string) (Email, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Email, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	Count(ctx context.Context) (int, error)
	UpdateStatus(ctx context.Context, userID, emailID, status string) error
	Delete(ctx context.Context, userID, emailID string) error
	DeleteByUser(ctx context.Context, userID string) error
}
