package resumes

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, title, file_name, mime_type, size_bytes, storage_key, extracted_text, created_at`

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (id, user_id, title, file_name, mime_type, size_bytes, storage_key, extracted_text, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Title,
		resume.FileName,
		resume.MimeType,
		resume.SizeBytes,
		resume.StorageKey,
		resume.ExtractedText,
		resume.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	const query = `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 AND id = $2 LIMIT 1`
	return scanResume(r.DB.QueryRowContext(ctx, query, userID, resumeID))
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	const query = `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func (r *PGRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM resumes WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE user_id = $1 AND id = $2`, userID, resumeID)
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

func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE user_id = $1`, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var extracted sql.NullString
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Title,
		&resume.FileName,
		&resume.MimeType,
		&resume.SizeBytes,
		&resume.StorageKey,
		&extracted,
		&resume.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	resume.ExtractedText = extracted.String
	return resume, nil
}

var _ Repo = (*PGRepo)(nil)
