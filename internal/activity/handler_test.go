package activity

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"jobmaster-backend/internal/coverletters"
	"jobmaster-backend/internal/emails"
	"jobmaster-backend/internal/linkedin"
	"jobmaster-backend/internal/outreach"
)

type countingQuota struct {
	consumed int
	err      error
}

func (q *countingQuota) ConsumeActivity(ctx context.Context, userID string) error {
	if q.err != nil {
		return q.err
	}
	q.consumed++
	return nil
}

type testEnv struct {
	router       *gin.Engine
	repo         *MemoryRepo
	quota        *countingQuota
	coverLetters *coverletters.MemoryRepo
	linkedIn     *linkedin.MemoryRepo
	emails       *emails.MemoryRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	quota := &countingQuota{}
	clRepo := coverletters.NewMemoryRepo()
	liRepo := linkedin.NewMemoryRepo()
	emRepo := emails.NewMemoryRepo()

	svc := &Service{
		Repo:         repo,
		Quota:        quota,
		CoverLetters: clRepo,
		LinkedIn:     liRepo,
		Emails:       emRepo,
	}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	api := router.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)

	return &testEnv{
		router:       router,
		repo:         repo,
		quota:        quota,
		coverLetters: clRepo,
		linkedIn:     liRepo,
		emails:       emRepo,
	}
}

func (e *testEnv) post(t *testing.T, path, idempotencyKey string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", idempotencyKey)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func TestRecordActivity(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/api/v1/activity", "", map[string]any{
		"kind":     KindCoverLetter,
		"sourceId": "letter-1",
		"company":  "Acme",
		"role":     "Backend Engineer",
		"provider": "openai",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	if env.quota.consumed != 1 {
		t.Fatalf("quota consumed = %d", env.quota.consumed)
	}

	var act Activity
	if err := json.Unmarshal(resp.Body.Bytes(), &act); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if act.ID == "" || act.Kind != KindCoverLetter || act.SourceID != "letter-1" {
		t.Fatalf("activity = %+v", act)
	}
}

func TestRecordRejectsUnknownKind(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/api/v1/activity", "", map[string]any{
		"kind":     "tweet",
		"sourceId": "x-1",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.Code)
	}
	if env.quota.consumed != 0 {
		t.Fatal("quota should not be consumed")
	}
}

func TestIdempotencyKeyReplaysOriginal(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{"kind": KindEmail, "sourceId": "email-1"}
	first := env.post(t, "/api/v1/activity", "idem-123", payload)
	if first.Code != http.StatusCreated {
		t.Fatalf("first status = %d", first.Code)
	}
	var created Activity
	if err := json.Unmarshal(first.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode first: %v", err)
	}

	second := env.post(t, "/api/v1/activity", "idem-123", payload)
	if second.Code != http.StatusOK {
		t.Fatalf("replay status = %d", second.Code)
	}
	var replayed Activity
	if err := json.Unmarshal(second.Body.Bytes(), &replayed); err != nil {
		t.Fatalf("decode replay: %v", err)
	}
	if replayed.ID != created.ID {
		t.Fatalf("replay returned %q, want %q", replayed.ID, created.ID)
	}
	if env.quota.consumed != 1 {
		t.Fatalf("quota consumed = %d, replay must not consume", env.quota.consumed)
	}
	if total, _ := env.repo.CountByUser(context.Background(), "user-1"); total != 1 {
		t.Fatalf("rows = %d", total)
	}
}

func TestListNewestFirst(t *testing.T) {
	env := newTestEnv(t)

	base := time.Now().UTC()
	for i, id := range []string{"act-old", "act-mid", "act-new"} {
		err := env.repo.Create(context.Background(), Activity{
			ID:        id,
			UserID:    "user-1",
			Kind:      KindEmail,
			SourceID:  "email-" + id,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/activity?limit=2", nil)
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}

	var body struct {
		Items []Activity `json:"items"`
		Total int        `json:"total"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Total != 3 || len(body.Items) != 2 {
		t.Fatalf("total = %d, items = %d", body.Total, len(body.Items))
	}
	if body.Items[0].ID != "act-new" || body.Items[1].ID != "act-mid" {
		t.Fatalf("order = %s, %s", body.Items[0].ID, body.Items[1].ID)
	}
}

func TestBackfillInsertsMissingAndSkipsExisting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.coverLetters.Create(ctx, coverletters.CoverLetter{
		ID: "letter-1", UserID: "user-1", Company: "Acme", Role: "Engineer",
		Provider: "openai", Status: outreach.StatusGenerated, CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed letter: %v", err)
	}
	err = env.linkedIn.Create(ctx, linkedin.Message{
		ID: "msg-1", UserID: "user-1", RecipientName: "Jordan",
		RecipientProfileURL: "https://linkedin.com/in/jordan",
		Status:              outreach.StatusGenerated, CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed message: %v", err)
	}
	err = env.emails.Create(ctx, emails.Email{
		ID: "email-1", UserID: "user-1", Recipient: "sam@acme.test",
		Purpose: emails.PurposeFollowUp, Status: outreach.StatusGenerated, CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed email: %v", err)
	}

	// The letter already has an activity row; backfill must skip it.
	err = env.repo.Create(ctx, Activity{
		ID: "act-1", UserID: "user-1", Kind: KindCoverLetter, SourceID: "letter-1",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed activity: %v", err)
	}

	resp := env.post(t, "/api/v1/activity/backfill", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var result BackfillResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Inserted != 2 || result.Skipped != 1 {
		t.Fatalf("result = %+v", result)
	}

	// Backfill bypasses quota.
	if env.quota.consumed != 0 {
		t.Fatalf("quota consumed = %d", env.quota.consumed)
	}

	items, err := env.repo.ListByUser(ctx, "user-1", 10, 0)
	if err != nil {
		t.Fatalf("list activity: %v", err)
	}
	kinds := map[string]bool{}
	for _, act := range items {
		kinds[act.Kind] = true
	}
	if !kinds[KindLinkedIn] || !kinds[KindFollowUp] {
		t.Fatalf("kinds = %v", kinds)
	}

	// Running again inserts nothing new.
	resp = env.post(t, "/api/v1/activity/backfill", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("second status = %d", resp.Code)
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode second response: %v", err)
	}
	if result.Inserted != 0 || result.Skipped != 3 {
		t.Fatalf("second result = %+v", result)
	}
}
