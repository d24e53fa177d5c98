package activity

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres. A unique index on
// (user_id, idempotency_key) backs idempotent creation.
type PGRepo struct {
	DB *sql.DB
}

const activityColumns = `id, user_id, kind, source_id, company, role, provider, model, idempotency_key, created_at`

func (r *PGRepo) Create(ctx context.Context, act Activity) error {
	const query = `
INSERT INTO activity_history (id, user_id, kind, source_id, company, role, provider, model, idempotency_key, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	var key any
	if act.IdempotencyKey != "" {
		key = act.IdempotencyKey
	}
	_, err := r.DB.ExecContext(ctx, query,
		act.ID,
		act.UserID,
		act.Kind,
		act.SourceID,
		act.Company,
		act.Role,
		act.Provider,
		act.Model,
		key,
		act.CreatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrDuplicate
	}
	return err
}

func (r *PGRepo) GetByIdempotencyKey(ctx context.Context, userID, key string) (Activity, error) {
	const query = `SELECT ` + activityColumns + ` FROM activity_history WHERE user_id = $1 AND idempotency_key = $2 LIMIT 1`
	return scanActivity(r.DB.QueryRowContext(ctx, query, userID, key))
}

func (r *PGRepo) ExistsBySource(ctx context.Context, userID, kind, sourceID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM activity_history WHERE user_id = $1 AND kind = $2 AND source_id = $3)`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, userID, kind, sourceID).Scan(&exists)
	return exists, err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Activity, error) {
	const query = `SELECT ` + activityColumns + ` FROM activity_history WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		act, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, act)
	}
	return out, rows.Err()
}

func (r *PGRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM activity_history WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *PGRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM activity_history WHERE created_at >= $1`, since).Scan(&n)
	return n, err
}

func (r *PGRepo) CountDistinctUsers(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(DISTINCT user_id) FROM activity_history`).Scan(&n)
	return n, err
}

func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM activity_history WHERE user_id = $1`, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (Activity, error) {
	var act Activity
	var company, role, provider, model, key sql.NullString
	err := row.Scan(
		&act.ID,
		&act.UserID,
		&act.Kind,
		&act.SourceID,
		&company,
		&role,
		&provider,
		&model,
		&key,
		&act.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Activity{}, ErrNotFound
		}
		return Activity{}, err
	}
	act.Company = company.String
	act.Role = role.String
	act.Provider = provider.String
	act.Model = model.String
	act.IdempotencyKey = key.String
	return act, nil
}

var _ Repo = (*PGRepo)(nil)
