package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"jobmaster-backend/internal/activity"
	"jobmaster-backend/internal/apikeys"
	"jobmaster-backend/internal/coverletters"
	"jobmaster-backend/internal/emails"
	"jobmaster-backend/internal/linkedin"
	"jobmaster-backend/internal/outreach"
	"jobmaster-backend/internal/resumes"
	"jobmaster-backend/internal/shared/auth"
	"jobmaster-backend/internal/shared/secrets"
	"jobmaster-backend/internal/usage"
	"jobmaster-backend/internal/users"
)

type staticTiers struct{}

func (staticTiers) TierOf(ctx context.Context, userID string) (string, error) {
	return users.TierFree, nil
}

type testEnv struct {
	router   *gin.Engine
	userID   string
	users    *users.Service
	keys     *apikeys.Service
	resumes  *resumes.MemoryRepo
	letters  *coverletters.MemoryRepo
	activity *activity.MemoryRepo
	usage    *usage.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userSvc := users.NewService(users.NewMemoryRepo(), &auth.PasswordConfig{BcryptCost: 4})
	user, err := userSvc.Register(context.Background(), "casey@example.com", "password1", "Casey")
	if err != nil {
		t.Fatalf("register user: %v", err)
	}

	box, err := secrets.NewBox("test-secret")
	if err != nil {
		t.Fatalf("secrets box: %v", err)
	}
	keySvc := apikeys.NewService(apikeys.NewMemoryRepo(), box, nil)
	usageSvc := usage.NewService(usage.NewMemoryStore(), staticTiers{})

	resumeRepo := resumes.NewMemoryRepo()
	clRepo := coverletters.NewMemoryRepo()
	liRepo := linkedin.NewMemoryRepo()
	emRepo := emails.NewMemoryRepo()
	actRepo := activity.NewMemoryRepo()

	svc := NewService(userSvc, resumeRepo, clRepo, liRepo, emRepo, actRepo, usageSvc, keySvc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", user.ID)
		c.Next()
	})
	api := router.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)

	return &testEnv{
		router:   router,
		userID:   user.ID,
		users:    userSvc,
		keys:     keySvc,
		resumes:  resumeRepo,
		letters:  clRepo,
		activity: actRepo,
		usage:    usageSvc,
	}
}

func (e *testEnv) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	err := e.resumes.Create(ctx, resumes.Resume{
		ID: "resume-1", UserID: e.userID, Title: "Main", FileName: "resume.docx", CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	err = e.letters.Create(ctx, coverletters.CoverLetter{
		ID: "letter-1", UserID: e.userID, Company: "Acme", Role: "Engineer",
		Status: outreach.StatusGenerated, CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed letter: %v", err)
	}
	err = e.activity.Create(ctx, activity.Activity{
		ID: "act-1", UserID: e.userID, Kind: activity.KindCoverLetter, SourceID: "letter-1", CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed activity: %v", err)
	}
	if _, err := e.keys.SetUserKey(ctx, e.userID, apikeys.ProviderOpenAI, "sk-test-1234567890"); err != nil {
		t.Fatalf("seed key: %v", err)
	}
}

func TestSummaryCountsOwnedRows(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account/summary", nil)
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var summary Summary
	if err := json.Unmarshal(resp.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if summary.User.Email != "casey@example.com" {
		t.Fatalf("email = %q", summary.User.Email)
	}
	if summary.Resumes != 1 || summary.CoverLetters != 1 || summary.Activities != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.LinkedInMessages != 0 || summary.Emails != 0 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/account", nil)
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	if _, err := env.users.GetByID(ctx, env.userID); !errors.Is(err, users.ErrNotFound) {
		t.Fatalf("user lookup err = %v", err)
	}
	if n, _ := env.resumes.CountByUser(ctx, env.userID); n != 0 {
		t.Fatalf("resumes left = %d", n)
	}
	if n, _ := env.letters.CountByUser(ctx, env.userID); n != 0 {
		t.Fatalf("letters left = %d", n)
	}
	if n, _ := env.activity.CountByUser(ctx, env.userID); n != 0 {
		t.Fatalf("activity left = %d", n)
	}
	keys, err := env.keys.ListUserKeys(ctx, env.userID)
	if err != nil {
		t.Fatalf("list keys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("keys left = %d", len(keys))
	}
}

func TestDeleteUnknownAccount(t *testing.T) {
	env := newTestEnv(t)

	if err := env.users.Delete(context.Background(), env.userID); err != nil {
		t.Fatalf("remove user: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/account", nil)
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d", resp.Code)
	}
}
