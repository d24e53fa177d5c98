package resumes

import "context"

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, userID, resumeID string) error
	DeleteByUser(ctx context.Context, userID string) error
}
