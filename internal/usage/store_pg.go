package usage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed usage store.
func NewPGStore(db *sql.DB) Store {
	return &pgStore{DB: db}
}

func (s *pgStore) GetSettings(ctx context.Context, tier string) (Settings, error) {
	const query = `
SELECT tier, enabled, monthly_activity_limit, monthly_generation_limit, monthly_followup_limit
FROM usage_limit_settings WHERE tier = $1 LIMIT 1`
	var settings Settings
	err := s.DB.QueryRowContext(ctx, query, tier).Scan(
		&settings.Tier,
		&settings.Enabled,
		&settings.MonthlyActivityLimit,
		&settings.MonthlyGenerationLimit,
		&settings.MonthlyFollowUpLimit,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultSettings(tier), nil
	}
	if err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s *pgStore) UpsertSettings(ctx context.Context, settings Settings) error {
	const query = `
INSERT INTO usage_limit_settings (tier, enabled, monthly_activity_limit, monthly_generation_limit, monthly_followup_limit)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (tier) DO UPDATE SET
  enabled = EXCLUDED.enabled,
  monthly_activity_limit = EXCLUDED.monthly_activity_limit,
  monthly_generation_limit = EXCLUDED.monthly_generation_limit,
  monthly_followup_limit = EXCLUDED.monthly_followup_limit`
	_, err := s.DB.ExecContext(ctx, query,
		settings.Tier,
		settings.Enabled,
		settings.MonthlyActivityLimit,
		settings.MonthlyGenerationLimit,
		settings.MonthlyFollowUpLimit,
	)
	return err
}

func (s *pgStore) GetCounters(ctx context.Context, userID string) (Counters, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Counters{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	counters, err := s.lockAndEnsure(ctx, tx, userID)
	if err != nil {
		return Counters{}, err
	}
	if err = tx.Commit(); err != nil {
		return Counters{}, err
	}
	return counters, nil
}

func (s *pgStore) Consume(ctx context.Context, userID, kind string, limit int) (Counters, error) {
	column, err := counterColumn(kind)
	if err != nil {
		return Counters{}, err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Counters{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	counters, err := s.lockAndEnsure(ctx, tx, userID)
	if err != nil {
		return Counters{}, err
	}

	used := counterValue(counters, kind)
	if limit >= 0 && used+1 > limit {
		err = ErrLimitReached
		return Counters{}, err
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE usage_counters SET `+column+` = `+column+` + 1 WHERE user_id = $1`, userID); err != nil {
		return Counters{}, err
	}
	if err = tx.Commit(); err != nil {
		return Counters{}, err
	}

	setCounterValue(&counters, kind, used+1)
	return counters, nil
}

func (s *pgStore) ResetCounters(ctx context.Context, userID string) error {
	const query = `
INSERT INTO usage_counters (user_id, activity_used, generation_used, followup_used, period_start)
VALUES ($1, 0, 0, 0, $2)
ON CONFLICT (user_id) DO UPDATE SET
  activity_used = 0, generation_used = 0, followup_used = 0, period_start = EXCLUDED.period_start`
	_, err := s.DB.ExecContext(ctx, query, userID, monthStart(time.Now()))
	return err
}

func (s *pgStore) DeleteCounters(ctx context.Context, userID string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM usage_counters WHERE user_id = $1`, userID)
	return err
}

func (s *pgStore) lockAndEnsure(ctx context.Context, tx *sql.Tx, userID string) (Counters, error) {
	var counters Counters
	counters.UserID = userID
	row := tx.QueryRowContext(ctx, `
SELECT activity_used, generation_used, followup_used, period_start
FROM usage_counters WHERE user_id = $1 FOR UPDATE`, userID)
	err := row.Scan(&counters.ActivityUsed, &counters.GenerationUsed, &counters.FollowUpUsed, &counters.PeriodStart)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			counters.PeriodStart = monthStart(time.Now())
			if _, err = tx.ExecContext(ctx, `
INSERT INTO usage_counters (user_id, activity_used, generation_used, followup_used, period_start)
VALUES ($1, 0, 0, 0, $2)`, userID, counters.PeriodStart); err != nil {
				return Counters{}, err
			}
			return counters, nil
		}
		return Counters{}, err
	}

	current := monthStart(time.Now())
	if monthStart(counters.PeriodStart) != current {
		counters.ActivityUsed = 0
		counters.GenerationUsed = 0
		counters.FollowUpUsed = 0
		counters.PeriodStart = current
		if _, err = tx.ExecContext(ctx, `
UPDATE usage_counters SET activity_used = 0, generation_used = 0, followup_used = 0, period_start = $2
WHERE user_id = $1`, userID, current); err != nil {
			return Counters{}, err
		}
	}
	return counters, nil
}

func counterColumn(kind string) (string, error) {
	switch kind {
	case CounterActivity:
		return "activity_used", nil
	case CounterGeneration:
		return "generation_used", nil
	case CounterFollowUp:
		return "followup_used", nil
	}
	return "", ErrUnknownKind
}

func counterValue(c Counters, kind string) int {
	switch kind {
	case CounterActivity:
		return c.ActivityUsed
	case CounterGeneration:
		return c.GenerationUsed
	case CounterFollowUp:
		return c.FollowUpUsed
	}
	return 0
}

func setCounterValue(c *Counters, kind string, value int) {
	switch kind {
	case CounterActivity:
		c.ActivityUsed = value
	case CounterGeneration:
		c.GenerationUsed = value
	case CounterFollowUp:
		c.FollowUpUsed = value
	}
}
