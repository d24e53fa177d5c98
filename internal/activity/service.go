package activity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"jobmaster-backend/internal/coverletters"
	"jobmaster-backend/internal/emails"
	"jobmaster-backend/internal/linkedin"
)

// Quota consumes the monthly activity counter. Nil disables enforcement.
type Quota interface {
	ConsumeActivity(ctx context.Context, userID string) error
}

// backfillPage bounds how many history rows one scan request reads per table.
const backfillPage = 500

// Service contains business logic for the activity feed.
type Service struct {
	Repo         Repo
	Quota        Quota
	CoverLetters coverletters.Repo
	LinkedIn     linkedin.Repo
	Emails       emails.Repo
}

// Record inserts an activity row. With an idempotency key, replays
// return the original row without consuming quota again.
func (s *Service) Record(ctx context.Context, act Activity, idempotencyKey string) (Activity, bool, error) {
	if !ValidKind(act.Kind) || act.SourceID == "" {
		return Activity{}, false, ErrInvalidInput
	}

	if idempotencyKey != "" {
		existing, err := s.Repo.GetByIdempotencyKey(ctx, act.UserID, idempotencyKey)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Activity{}, false, err
		}
	}

	if s.Quota != nil {
		if err := s.Quota.ConsumeActivity(ctx, act.UserID); err != nil {
			return Activity{}, false, err
		}
	}

	act.ID = uuid.NewString()
	act.IdempotencyKey = idempotencyKey
	if act.CreatedAt.IsZero() {
		act.CreatedAt = time.Now().UTC()
	}

	err := s.Repo.Create(ctx, act)
	if errors.Is(err, ErrDuplicate) && idempotencyKey != "" {
		// Lost a race with a concurrent replay; the winner's row stands.
		existing, getErr := s.Repo.GetByIdempotencyKey(ctx, act.UserID, idempotencyKey)
		if getErr != nil {
			return Activity{}, false, getErr
		}
		return existing, false, nil
	}
	if err != nil {
		return Activity{}, false, err
	}
	return act, true, nil
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Activity, int, error) {
	items, err := s.Repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// BackfillResult summarizes one backfill run.
type BackfillResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// Backfill scans the user's history tables and inserts activity rows
// missing for any (kind, source) pair. Backfilled rows bypass quota.
func (s *Service) Backfill(ctx context.Context, userID string) (BackfillResult, error) {
	var result BackfillResult

	letters, err := s.CoverLetters.ListByUser(ctx, userID, backfillPage, 0)
	if err != nil {
		return result, err
	}
	for _, letter := range letters {
		inserted, err := s.backfillOne(ctx, Activity{
			UserID:    userID,
			Kind:      KindCoverLetter,
			SourceID:  letter.ID,
			Company:   letter.Company,
			Role:      letter.Role,
			Provider:  letter.Provider,
			Model:     letter.Model,
			CreatedAt: letter.CreatedAt,
		})
		if err != nil {
			return result, err
		}
		result.add(inserted)
	}

	messages, err := s.LinkedIn.ListByUser(ctx, userID, backfillPage, 0)
	if err != nil {
		return result, err
	}
	for _, msg := range messages {
		inserted, err := s.backfillOne(ctx, Activity{
			UserID:    userID,
			Kind:      KindLinkedIn,
			SourceID:  msg.ID,
			Role:      msg.RecipientName,
			Provider:  msg.Provider,
			Model:     msg.Model,
			CreatedAt: msg.CreatedAt,
		})
		if err != nil {
			return result, err
		}
		result.add(inserted)
	}

	mails, err := s.Emails.ListByUser(ctx, userID, backfillPage, 0)
	if err != nil {
		return result, err
	}
	for _, mail := range mails {
		kind := KindEmail
		if mail.Purpose == emails.PurposeFollowUp {
			kind = KindFollowUp
		}
		inserted, err := s.backfillOne(ctx, Activity{
			UserID:    userID,
			Kind:      kind,
			SourceID:  mail.ID,
			Role:      mail.Recipient,
			Provider:  mail.Provider,
			Model:     mail.Model,
			CreatedAt: mail.CreatedAt,
		})
		if err != nil {
			return result, err
		}
		result.add(inserted)
	}

	return result, nil
}

func (s *Service) backfillOne(ctx context.Context, act Activity) (bool, error) {
	exists, err := s.Repo.ExistsBySource(ctx, act.UserID, act.Kind, act.SourceID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	act.ID = uuid.NewString()
	if err := s.Repo.Create(ctx, act); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *BackfillResult) add(inserted bool) {
	if inserted {
		r.Inserted++
	} else {
		r.Skipped++
	}
}
