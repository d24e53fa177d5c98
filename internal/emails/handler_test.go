package emails

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"jobmaster-backend/internal/outreach"
)

func newTestRouter(t *testing.T) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	handler := NewHandler(NewService(repo))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router, repo
}

func seedEmail(t *testing.T, repo *MemoryRepo, id, purpose string, createdAt time.Time) {
	t.Helper()
	email := Email{
		ID:        id,
		UserID:    "user-1",
		Recipient: "sam@acme.test",
		Subject:   "Following up on the Backend Engineer role",
		Body:      "Hi Sam,",
		Purpose:   purpose,
		Status:    outreach.StatusGenerated,
		CreatedAt: createdAt,
	}
	if err := repo.Create(context.Background(), email); err != nil {
		t.Fatalf("seed email: %v", err)
	}
}

func TestListPagesNewestFirst(t *testing.T) {
	router, repo := newTestRouter(t)

	base := time.Now().UTC()
	seedEmail(t, repo, "email-old", PurposeOutreach, base.Add(-2*time.Hour))
	seedEmail(t, repo, "email-mid", PurposeOutreach, base.Add(-time.Hour))
	seedEmail(t, repo, "email-new", PurposeFollowUp, base)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history/emails?limit=2", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body struct {
		Items []Email `json:"items"`
		Total int     `json:"total"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Total != 3 || len(body.Items) != 2 {
		t.Fatalf("expected total 3 with 2 items, got total %d items %d", body.Total, len(body.Items))
	}
	if body.Items[0].ID != "email-new" || body.Items[1].ID != "email-mid" {
		t.Fatalf("unexpected order: %s, %s", body.Items[0].ID, body.Items[1].ID)
	}
	if body.Items[0].Purpose != PurposeFollowUp {
		t.Fatalf("expected follow_up purpose, got %s", body.Items[0].Purpose)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	router, repo := newTestRouter(t)
	seedEmail(t, repo, "email-1", PurposeOutreach, time.Now().UTC())

	payload, _ := json.Marshal(gin.H{"status": "mailed"})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/history/emails/email-1/status", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestUpdateStatusAndDelete(t *testing.T) {
	router, repo := newTestRouter(t)
	seedEmail(t, repo, "email-1", PurposeOutreach, time.Now().UTC())

	payload, _ := json.Marshal(gin.H{"status": outreach.StatusReplied})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/history/emails/email-1/status", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	stored, err := repo.GetByID(context.Background(), "user-1", "email-1")
	if err != nil {
		t.Fatalf("load email: %v", err)
	}
	if stored.Status != outreach.StatusReplied {
		t.Fatalf("expected status replied, got %s", stored.Status)
	}

	delReq := httptest.NewRequest(http.MethodDelete, "/api/v1/history/emails/email-1", nil)
	delResp := httptest.NewRecorder()
	router.ServeHTTP(delResp, delReq)
	if delResp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", delResp.Code)
	}

	missing := httptest.NewRequest(http.MethodGet, "/api/v1/history/emails/email-1", nil)
	missingResp := httptest.NewRecorder()
	router.ServeHTTP(missingResp, missing)
	if missingResp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", missingResp.Code)
	}
}
