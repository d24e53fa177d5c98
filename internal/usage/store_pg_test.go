package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGStoreConsumeLocksAndIncrements(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPGStore(db)

	rows := sqlmock.NewRows([]string{"activity_used", "generation_used", "followup_used", "period_start"}).
		AddRow(2, 1, 0, monthStart(time.Now()))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT activity_used, generation_used, followup_used, period_start").
		WithArgs("user-1").
		WillReturnRows(rows)
	mock.ExpectExec("UPDATE usage_counters SET generation_used = generation_used \\+ 1").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	counters, err := store.Consume(context.Background(), "user-1", CounterGeneration, 10)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if counters.GenerationUsed != 2 {
		t.Fatalf("expected generation_used 2, got %d", counters.GenerationUsed)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreConsumeRejectsAtLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPGStore(db)

	rows := sqlmock.NewRows([]string{"activity_used", "generation_used", "followup_used", "period_start"}).
		AddRow(0, 10, 0, monthStart(time.Now()))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT activity_used, generation_used, followup_used, period_start").
		WithArgs("user-1").
		WillReturnRows(rows)
	mock.ExpectRollback()

	_, err = store.Consume(context.Background(), "user-1", CounterGeneration, 10)
	if !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreConsumeResetsStalePeriod(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPGStore(db)

	stale := monthStart(time.Now()).AddDate(0, -1, 0)
	rows := sqlmock.NewRows([]string{"activity_used", "generation_used", "followup_used", "period_start"}).
		AddRow(20, 10, 5, stale)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT activity_used, generation_used, followup_used, period_start").
		WithArgs("user-1").
		WillReturnRows(rows)
	mock.ExpectExec("UPDATE usage_counters SET activity_used = 0").
		WithArgs("user-1", monthStart(time.Now())).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE usage_counters SET generation_used = generation_used \\+ 1").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	counters, err := store.Consume(context.Background(), "user-1", CounterGeneration, 10)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if counters.GenerationUsed != 1 {
		t.Fatalf("expected fresh counter at 1, got %d", counters.GenerationUsed)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
