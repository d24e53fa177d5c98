package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateLowercasesEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	user := User{
		ID:           "user-1",
		Email:        "Alice@Example.com",
		PasswordHash: "hash",
		FullName:     "Alice",
		Role:         RoleUser,
		Tier:         TierFree,
		Status:       StatusActive,
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(
			user.ID,
			"alice@example.com",
			"hash",
			"Alice",
			nil, // picture_url
			RoleUser,
			TierFree,
			StatusActive,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateMapsDuplicateKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

	err = repo.Create(context.Background(), User{ID: "user-1", Email: "a@b.com", Role: RoleUser, Tier: TierFree, Status: StatusActive})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestPGRepoGetByEmailScansRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "email", "password_hash", "full_name", "picture_url",
		"role", "tier", "status", "created_at", "updated_at",
	}).AddRow("user-1", "a@b.com", "hash", "Alice", nil, RoleUser, TierPlus, StatusActive, now, now)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("a@b.com").
		WillReturnRows(rows)

	user, err := repo.GetByEmail(context.Background(), "A@B.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if user.ID != "user-1" || user.Tier != TierPlus {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PictureURL != "" {
		t.Fatalf("expected empty picture url, got %q", user.PictureURL)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateRequiresRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE users SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), User{ID: "missing", Role: RoleUser, Tier: TierFree, Status: StatusActive})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoCountByTier(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	rows := sqlmock.NewRows([]string{"tier", "count"}).
		AddRow(TierFree, 7).
		AddRow(TierPlus, 3)
	mock.ExpectQuery("SELECT tier, count").WillReturnRows(rows)

	counts, err := repo.CountByTier(context.Background())
	if err != nil {
		t.Fatalf("CountByTier: %v", err)
	}
	if counts[TierFree] != 7 || counts[TierPlus] != 3 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}
