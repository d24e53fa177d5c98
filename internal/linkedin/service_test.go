package linkedin

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobmaster-backend/internal/outreach"
)

func seedMessage(id, recipient string) Message {
	return Message{
		ID:                  id,
		UserID:              "user-1",
		RecipientName:       "Jordan",
		RecipientProfileURL: recipient,
		Purpose:             "referral",
		Content:             "hi",
		Status:              outreach.StatusGenerated,
		CreatedAt:           time.Now().UTC(),
	}
}

func TestCreateEnforcesRecipientLimit(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	profile := "https://linkedin.com/in/jordan"

	for i := 0; i < MaxPerRecipient; i++ {
		msg := seedMessage("msg-"+string(rune('a'+i)), profile)
		if err := svc.Create(context.Background(), msg); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	err := svc.Create(context.Background(), seedMessage("msg-over", profile))
	if !errors.Is(err, ErrRecipientLimit) {
		t.Fatalf("expected ErrRecipientLimit, got %v", err)
	}

	// A different recipient is unaffected.
	other := seedMessage("msg-other", "https://linkedin.com/in/casey")
	if err := svc.Create(context.Background(), other); err != nil {
		t.Fatalf("create for other recipient: %v", err)
	}
}

func TestCreateRequiresRecipientProfile(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	err := svc.Create(context.Background(), seedMessage("msg-1", "  "))
	if !errors.Is(err, ErrMissingRecipient) {
		t.Fatalf("expected ErrMissingRecipient, got %v", err)
	}
}

func TestUpdateStatusValidatesEnum(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	msg := seedMessage("msg-1", "https://linkedin.com/in/jordan")
	if err := svc.Create(context.Background(), msg); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.UpdateStatus(context.Background(), "user-1", "msg-1", "delivered"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	for _, status := range []string{outreach.StatusSent, outreach.StatusReplied, outreach.StatusArchived, outreach.StatusGenerated} {
		if err := svc.UpdateStatus(context.Background(), "user-1", "msg-1", status); err != nil {
			t.Fatalf("update to %s: %v", status, err)
		}
	}

	got, err := svc.Get(context.Background(), "user-1", "msg-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != outreach.StatusGenerated {
		t.Fatalf("expected final status generated, got %s", got.Status)
	}
}
