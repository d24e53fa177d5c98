package emails

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const emailColumns = `id, user_id, recipient, subject, body, purpose, provider, model, status, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, email Email) error {
	const query = `
INSERT INTO email_messages (id, user_id, recipient, subject, body, purpose, provider, model, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`
	_, err := r.DB.ExecContext(ctx, query,
		email.ID,
		email.UserID,
		email.Recipient,
		email.Subject,
		email.Body,
		email.Purpose,
		email.Provider,
		email.Model,
		email.Status,
		email.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, emailID string) (Email, error) {
	const query = `SELECT ` + emailColumns + ` FROM email_messages WHERE user_id = $1 AND id = $2 LIMIT 1`
	return scanEmail(r.DB.QueryRowContext(ctx, query, userID, emailID))
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Email, error) {
	const query = `SELECT ` + emailColumns + ` FROM email_messages WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Email
	for rows.Next() {
		email, err := scanEmail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, email)
	}
	return out, rows.Err()
}

func (r *PGRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM email_messages WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM email_messages`).Scan(&n)
	return n, err
}

func (r *PGRepo) UpdateStatus(ctx context.Context, userID, emailID, status string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE email_messages SET status = $3, updated_at = now() WHERE user_id = $1 AND id = $2`,
		userID, emailID, status,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, userID, emailID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM email_messages WHERE user_id = $1 AND id = $2`, userID, emailID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM email_messages WHERE user_id = $1`, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmail(row rowScanner) (Email, error) {
	var email Email
	err := row.Scan(
		&email.ID,
		&email.UserID,
		&email.Recipient,
		&email.Subject,
		&email.Body,
		&email.Purpose,
		&email.Provider,
		&email.Model,
		&email.Status,
		&email.CreatedAt,
		&email.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Email{}, ErrNotFound
		}
		return Email{}, err
	}
	return email, nil
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
