package coverletters

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const letterColumns = `id, user_id, company, role, job_description, tone, content, provider, model, status, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, letter CoverLetter) error {
	const query = `
INSERT INTO cover_letters (id, user_id, company, role, job_description, tone, content, provider, model, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`
	_, err := r.DB.ExecContext(ctx, query,
		letter.ID,
		letter.UserID,
		letter.Company,
		letter.Role,
		letter.JobDescription,
		letter.Tone,
		letter.Content,
		letter.Provider,
		letter.Model,
		letter.Status,
		letter.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, letterID string) (CoverLetter, error) {
	const query = `SELECT ` + letterColumns + ` FROM cover_letters WHERE user_id = $1 AND id = $2 LIMIT 1`
	return scanLetter(r.DB.QueryRowContext(ctx, query, userID, letterID))
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]CoverLetter, error) {
	const query = `SELECT ` + letterColumns + ` FROM cover_letters WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CoverLetter
	for rows.Next() {
		letter, err := scanLetter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, letter)
	}
	return out, rows.Err()
}

func (r *PGRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM cover_letters WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM cover_letters`).Scan(&n)
	return n, err
}

func (r *PGRepo) UpdateStatus(ctx context.Context, userID, letterID, status string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE cover_letters SET status = $3, updated_at = now() WHERE user_id = $1 AND id = $2`,
		userID, letterID, status,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, userID, letterID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM cover_letters WHERE user_id = $1 AND id = $2`, userID, letterID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM cover_letters WHERE user_id = $1`, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLetter(row rowScanner) (CoverLetter, error) {
	var letter CoverLetter
	err := row.Scan(
		&letter.ID,
		&letter.UserID,
		&letter.Company,
		&letter.Role,
		&letter.JobDescription,
		&letter.Tone,
		&letter.Content,
		&letter.Provider,
		&letter.Model,
		&letter.Status,
		&letter.CreatedAt,
		&letter.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CoverLetter{}, ErrNotFound
		}
		return CoverLetter{}, err
	}
	return letter, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
