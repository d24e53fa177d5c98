package linkedin

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const messageColumns = `id, user_id, recipient_name, recipient_profile_url, purpose, content, provider, model, status, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, msg Message) error {
	const query = `
INSERT INTO linkedin_messages (id, user_id, recipient_name, recipient_profile_url, purpose, content, provider, model, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`
	_, err := r.DB.ExecContext(ctx, query,
		msg.ID,
		msg.UserID,
		msg.RecipientName,
		msg.RecipientProfileURL,
		msg.Purpose,
		msg.Content,
		msg.Provider,
		msg.Model,
		msg.Status,
		msg.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, msgID string) (Message, error) {
	const query = `SELECT ` + messageColumns + ` FROM linkedin_messages WHERE user_id = $1 AND id = $2 LIMIT 1`
	return scanMessage(r.DB.QueryRowContext(ctx, query, userID, msgID))
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Message, error) {
	const query = `SELECT ` + messageColumns + ` FROM linkedin_messages WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}

func (r *PGRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM linkedin_messages WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *PGRepo) CountByRecipient(ctx context.Context, userID, profileURL string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM linkedin_messages WHERE user_id = $1 AND recipient_profile_url = $2`,
		userID, profileURL,
	).Scan(&n)
	return n, err
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM linkedin_messages`).Scan(&n)
	return n, err
}

func (r *PGRepo) UpdateStatus(ctx context.Context, userID, msgID, status string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE linkedin_messages SET status = $3, updated_at = now() WHERE user_id = $1 AND id = $2`,
		userID, msgID, status,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, userID, msgID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM linkedin_messages WHERE user_id = $1 AND id = $2`, userID, msgID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM linkedin_messages WHERE user_id = $1`, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (Message, error) {
	var msg Message
	err := row.Scan(
		&msg.ID,
		&msg.UserID,
		&msg.RecipientName,
		&msg.RecipientProfileURL,
		&msg.Purpose,
		&msg.Content,
		&msg.Provider,
		&msg.Model,
		&msg.Status,
		&msg.CreatedAt,
		&msg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Message{}, ErrNotFound
		}
		return Message{}, err
	}
	return msg, nil
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
