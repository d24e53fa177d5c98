package usage

import (
	"context"
	"errors"
	"testing"
	"time"
)

type staticTiers map[string]string

func (t staticTiers) TierOf(ctx context.Context, userID string) (string, error) {
	tier, ok := t[userID]
	if !ok {
		return "free", nil
	}
	return tier, nil
}

func TestConsumeGenerationEnforcesFreeLimit(t *testing.T) {
	svc := NewService(NewMemoryStore(), staticTiers{"user-1": "free"})

	free := DefaultSettings("free")
	for i := 0; i < free.MonthlyGenerationLimit; i++ {
		if err := svc.ConsumeGeneration(context.Background(), "user-1"); err != nil {
			t.Fatalf("consume %d: %v", i, err)
		}
	}

	err := svc.ConsumeGeneration(context.Background(), "user-1")
	if !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}

	// The follow-up counter is independent.
	if err := svc.ConsumeFollowUp(context.Background(), "user-1"); err != nil {
		t.Fatalf("follow-up consume: %v", err)
	}
}

func TestPlusTierGetsHigherLimits(t *testing.T) {
	svc := NewService(NewMemoryStore(), staticTiers{"user-1": "free", "user-2": "plus"})

	free := DefaultSettings("free")
	for i := 0; i < free.MonthlyActivityLimit; i++ {
		if err := svc.ConsumeActivity(context.Background(), "user-1"); err != nil {
			t.Fatalf("free consume %d: %v", i, err)
		}
	}
	if err := svc.ConsumeActivity(context.Background(), "user-1"); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected free tier limit, got %v", err)
	}

	for i := 0; i < free.MonthlyActivityLimit+1; i++ {
		if err := svc.ConsumeActivity(context.Background(), "user-2"); err != nil {
			t.Fatalf("plus consume %d: %v", i, err)
		}
	}
}

func TestDisabledSettingsMeanUnlimited(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, staticTiers{"user-1": "free"})

	settings := DefaultSettings("free")
	settings.Enabled = false
	settings.MonthlyGenerationLimit = 1
	if err := svc.UpdateSettings(context.Background(), settings); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := svc.ConsumeGeneration(context.Background(), "user-1"); err != nil {
			t.Fatalf("consume %d with disabled settings: %v", i, err)
		}
	}
}

func TestMonthRolloverResetsCounters(t *testing.T) {
	store := NewMemoryStore().(*memoryStore)
	svc := NewService(store, staticTiers{"user-1": "free"})

	if err := svc.ConsumeGeneration(context.Background(), "user-1"); err != nil {
		t.Fatalf("consume: %v", err)
	}

	// Age the row into the previous month.
	store.mu.Lock()
	counters := store.counters["user-1"]
	counters.PeriodStart = monthStart(time.Now()).AddDate(0, -1, 0)
	store.counters["user-1"] = counters
	store.mu.Unlock()

	snapshot, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if snapshot.Counters.GenerationUsed != 0 {
		t.Fatalf("expected rollover to zero counters, got %d", snapshot.Counters.GenerationUsed)
	}
	if snapshot.Counters.PeriodStart != monthStart(time.Now()) {
		t.Fatalf("expected period start at current month, got %v", snapshot.Counters.PeriodStart)
	}
}

func TestResetZeroesCounters(t *testing.T) {
	svc := NewService(NewMemoryStore(), staticTiers{"user-1": "free"})

	for i := 0; i < 3; i++ {
		if err := svc.ConsumeActivity(context.Background(), "user-1"); err != nil {
			t.Fatalf("consume %d: %v", i, err)
		}
	}
	if err := svc.Reset(context.Background(), "user-1"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	snapshot, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if snapshot.Counters.ActivityUsed != 0 {
		t.Fatalf("expected zeroed counters, got %d", snapshot.Counters.ActivityUsed)
	}
}

func TestUpdateSettingsValidation(t *testing.T) {
	svc := NewService(NewMemoryStore(), staticTiers{})

	if err := svc.UpdateSettings(context.Background(), Settings{Tier: "gold"}); !errors.Is(err, ErrUnknownTier) {
		t.Fatalf("expected ErrUnknownTier, got %v", err)
	}

	bad := DefaultSettings("free")
	bad.MonthlyActivityLimit = -1
	if err := svc.UpdateSettings(context.Background(), bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
