package linkedin

import "context"

// Repo defines persistence operations for LinkedIn messages.
type Repo interface {
	Create(ctx context.Context, msg Message) error
	GetByID(ctx context.Context, userID, msgID string) (Message, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Message, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	CountByRecipient(ctx context.Context, userID, profileURL string) (int, error)
	Count(ctx context.Context) (int, error)
	UpdateStatus(ctx context.Context, userID, msgID, status string) error
	Delete(ctx context.Context, userID, msgID string) error
	DeleteByUser(ctx context.Context, userID string) error
}
