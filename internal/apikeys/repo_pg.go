package apikeys

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const userKeyColumns = `id, user_id, provider, ciphertext, masked, created_at, updated_at`
const sharedKeyColumns = `id, name, provider, ciphertext, masked, active, created_at, updated_at`

func (r *PGRepo) UpsertUserKey(ctx context.Context, key UserKey) error {
	const query = `
INSERT INTO user_api_keys (id, user_id, provider, ciphertext, masked, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())
ON CONFLICT (user_id, provider) DO UPDATE SET
  ciphertext = EXCLUDED.ciphertext,
  masked = EXCLUDED.masked,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query, key.ID, key.UserID, key.Provider, key.Ciphertext, key.Masked)
	return err
}

func (r *PGRepo) GetUserKey(ctx context.Context, userID, provider string) (UserKey, error) {
	const query = `SELECT ` + userKeyColumns + ` FROM user_api_keys WHERE user_id = $1 AND provider = $2 LIMIT 1`
	var key UserKey
	err := r.DB.QueryRowContext(ctx, query, userID, provider).Scan(
		&key.ID, &key.UserID, &key.Provider, &key.Ciphertext, &key.Masked, &key.CreatedAt, &key.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return UserKey{}, ErrNotFound
	}
	return key, err
}

func (r *PGRepo) ListUserKeys(ctx context.Context, userID string) ([]UserKey, error) {
	const query = `SELECT ` + userKeyColumns + ` FROM user_api_keys WHERE user_id = $1 ORDER BY provider`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UserKey
	for rows.Next() {
		var key UserKey
		if err := rows.Scan(&key.ID, &key.UserID, &key.Provider, &key.Ciphertext, &key.Masked, &key.CreatedAt, &key.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, key)
	}
	return out, rows.Err()
}

func (r *PGRepo) DeleteUserKey(ctx context.Context, userID, provider string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM user_api_keys WHERE user_id = $1 AND provider = $2`, userID, provider)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteUserKeys(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM user_api_keys WHERE user_id = $1`, userID)
	return err
}

func (r *PGRepo) CreateSharedKey(ctx context.Context, key SharedKey) error {
	const query = `
INSERT INTO shared_api_keys (id, name, provider, ciphertext, masked, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.DB.ExecContext(ctx, query, key.ID, key.Name, key.Provider, key.Ciphertext, key.Masked, key.Active)
	return err
}

func (r *PGRepo) GetSharedKey(ctx context.Context, keyID string) (SharedKey, error) {
	const query = `SELECT ` + sharedKeyColumns + ` FROM shared_api_keys WHERE id = $1 LIMIT 1`
	return scanSharedKey(r.DB.QueryRowContext(ctx, query, keyID))
}

func (r *PGRepo) GetActiveSharedKey(ctx context.Context, provider string) (SharedKey, error) {
	const query = `SELECT ` + sharedKeyColumns + ` FROM shared_api_keys WHERE provider = $1 AND active LIMIT 1`
	return scanSharedKey(r.DB.QueryRowContext(ctx, query, provider))
}

func (r *PGRepo) ListSharedKeys(ctx context.Context) ([]SharedKey, error) {
	const query = `SELECT ` + sharedKeyColumns + ` FROM shared_api_keys ORDER BY provider, created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SharedKey
	for rows.Next() {
		key, err := scanSharedKey(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, key)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateSharedKey(ctx context.Context, key SharedKey) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE shared_api_keys SET name = $2, active = $3, updated_at = now() WHERE id = $1`,
		key.ID, key.Name, key.Active,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeactivateSharedKeys(ctx context.Context, provider, exceptID string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE shared_api_keys SET active = false, updated_at = now() WHERE provider = $1 AND id <> $2`,
		provider, exceptID,
	)
	return err
}

func (r *PGRepo) DeleteSharedKey(ctx context.Context, keyID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM shared_api_keys WHERE id = $1`, keyID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSharedKey(row rowScanner) (SharedKey, error) {
	var key SharedKey
	err := row.Scan(&key.ID, &key.Name, &key.Provider, &key.Ciphertext, &key.Masked, &key.Active, &key.CreatedAt, &key.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SharedKey{}, ErrNotFound
		}
		return SharedKey{}, err
	}
	return key, nil
}

var _ Repo = (*PGRepo)(nil)
