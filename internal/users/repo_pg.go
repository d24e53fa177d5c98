package users

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, email, password_hash, full_name, picture_url, role, tier, status, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, password_hash, full_name, picture_url, role, tier, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		strings.ToLower(user.Email),
		nullableString(user.PasswordHash),
		nullableString(user.FullName),
		nullableString(user.PictureURL),
		user.Role,
		user.Tier,
		user.Status,
	)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrEmailTaken
	}
	return err
}

func (r *PGRepo) UpsertOAuth(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, full_name, picture_url, role, tier, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  full_name = EXCLUDED.full_name,
  picture_url = EXCLUDED.picture_url,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		strings.ToLower(user.Email),
		nullableString(user.FullName),
		nullableString(user.PictureURL),
		user.Role,
		user.Tier,
		user.Status,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, strings.ToLower(email)))
}

func (r *PGRepo) List(ctx context.Context, search string, limit, offset int) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	if strings.TrimSpace(search) != "" {
		query += ` WHERE email ILIKE $1`
		args = append(args, "%"+strings.TrimSpace(search)+"%")
	}
	query += ` ORDER BY created_at DESC LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		user, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

func (r *PGRepo) Count(ctx context.Context, search string) (int, error) {
	query := `SELECT count(*) FROM users`
	args := []any{}
	if strings.TrimSpace(search) != "" {
		query += ` WHERE email ILIKE $1`
		args = append(args, "%"+strings.TrimSpace(search)+"%")
	}
	var n int
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func (r *PGRepo) CountByTier(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT tier, count(*) FROM users GROUP BY tier`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var tier string
		var n int
		if err := rows.Scan(&tier, &n); err != nil {
			return nil, err
		}
		out[tier] = n
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, user User) error {
	const query = `
UPDATE users SET
  full_name = $2,
  picture_url = $3,
  role = $4,
  tier = $5,
  status = $6,
  updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		user.ID,
		nullableString(user.FullName),
		nullableString(user.PictureURL),
		user.Role,
		user.Tier,
		user.Status,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		userID, passwordHash,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, userID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) scanOne(row rowScanner) (User, error) {
	var user User
	var passwordHash, fullName, pictureURL sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.Email,
		&passwordHash,
		&fullName,
		&pictureURL,
		&user.Role,
		&user.Tier,
		&user.Status,
		&user.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.PasswordHash = passwordHash.String
	user.FullName = fullName.String
	user.PictureURL = pictureURL.String
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	} else {
		user.UpdatedAt = time.Now().UTC()
	}
	return user, nil
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

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
