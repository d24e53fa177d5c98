package users

import "context"

// Repo defines persistence operations for user accounts.
type Repo interface {
	Create(ctx context.Context, user User) error
	UpsertOAuth(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, search string, limit, offset int) ([]User, error)
	Count(ctx context.Context, search string) (int, error)
	CountByTier(ctx context.Context) (map[string]int, error)
	Update(ctx context.Context, user User) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	Delete(ctx context.Context, userID string) error
}
