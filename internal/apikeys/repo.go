package apikeys

import "context"

// Repo defines persistence operations for user and shared keys.
type Repo interface {
	UpsertUserKey(ctx context.Context, key UserKey) error
	GetUserKey(ctx context.Context, userID, provider string) (UserKey, error)
	ListUserKeys(ctx context.Context, userID string) ([]UserKey, error)
	DeleteUserKey(ctx context.Context, userID, provider string) error
	DeleteUserKeys(ctx context.Context, userID string) error

	CreateSharedKey(ctx context.Context, key SharedKey) error
	GetSharedKey(ctx context.Context, keyID string) (SharedKey, error)
	GetActiveSharedKey(ctx context.Context, provider string) (SharedKey, error)
	ListSharedKeys(ctx context.Context) ([]SharedKey, error)
	UpdateSharedKey(ctx context.Context, key SharedKey) error
	DeactivateSharedKeys(ctx context.Context, provider, exceptID string) error
	DeleteSharedKey(ctx context.Context, keyID string) error
}
