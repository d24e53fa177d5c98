package auth

import (
	"testing"
	"time"
)

func TestStateStoreConsumeIsSingleUse(t *testing.T) {
	store := newStateStore()
	store.put("state-1", time.Now().Add(time.Minute))

	if !store.consume("state-1") {
		t.Fatal("expected first consume to succeed")
	}
	if store.consume("state-1") {
		t.Fatal("expected second consume to fail")
	}
	if store.consume("never-issued") {
		t.Fatal("expected unknown state to fail")
	}
}

func TestStateStoreRejectsExpiredState(t *testing.T) {
	store := newStateStore()
	store.put("state-1", time.Now().Add(-time.Second))

	if store.consume("state-1") {
		t.Fatal("expected expired state to fail")
	}
}

func TestStateStorePutSweepsExpiredEntries(t *testing.T) {
	store := newStateStore()
	store.put("stale-1", time.Now().Add(-time.Minute))
	store.put("stale-2", time.Now().Add(-time.Minute))
	store.put("fresh", time.Now().Add(time.Minute))

	store.mu.Lock()
	n := len(store.items)
	_, staleKept := store.items["stale-1"]
	store.mu.Unlock()
	if staleKept || n != 1 {
		t.Fatalf("expected only the fresh state to remain, got %d entries", n)
	}
	if !store.consume("fresh") {
		t.Fatal("expected fresh state to consume")
	}
}

func TestAppendToken(t *testing.T) {
	got, err := appendToken("https://app.example.com/login?next=%2Fdashboard", "jwt-123")
	if err != nil {
		t.Fatalf("append token: %v", err)
	}
	want := "https://app.example.com/login?next=%2Fdashboard&token=jwt-123"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	if _, err := appendToken("", "jwt-123"); err == nil {
		t.Fatal("expected error for empty redirect url")
	}
}
