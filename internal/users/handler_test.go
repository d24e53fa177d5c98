package users

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"jobmaster-backend/internal/shared/auth"
)

func newTestHandler(t *testing.T) (*Handler, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	svc := NewService(repo, &auth.PasswordConfig{BcryptCost: 4})
	return NewHandler(svc), repo
}

func newAuthRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	h.RegisterAuthRoutes(api)
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRegisterCreatesFreeTierUser(t *testing.T) {
	handler, repo := newTestHandler(t)
	router := newAuthRouter(handler)

	resp := postJSON(router, "/api/v1/auth/register", gin.H{
		"email":    "Alice@Example.com",
		"password": "supersecret",
		"fullName": "Alice",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
			Tier  string `json:"tier"`
		} `json:"user"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Token == "" {
		t.Fatal("expected a session token")
	}
	if body.User.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", body.User.Email)
	}
	if body.User.Role != RoleUser || body.User.Tier != TierFree {
		t.Fatalf("expected user/free defaults, got %s/%s", body.User.Role, body.User.Tier)
	}

	stored, err := repo.GetByID(context.Background(), body.User.ID)
	if err != nil {
		t.Fatalf("load stored user: %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "supersecret" {
		t.Fatal("expected password to be stored hashed")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	handler, _ := newTestHandler(t)
	router := newAuthRouter(handler)

	first := postJSON(router, "/api/v1/auth/register", gin.H{"email": "dup@example.com", "password": "supersecret"})
	if first.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", first.Code)
	}
	second := postJSON(router, "/api/v1/auth/register", gin.H{"email": "DUP@example.com", "password": "supersecret"})
	if second.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", second.Code)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	handler, _ := newTestHandler(t)
	router := newAuthRouter(handler)

	resp := postJSON(router, "/api/v1/auth/register", gin.H{"email": "a@example.com", "password": "short"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestLoginFlow(t *testing.T) {
	handler, repo := newTestHandler(t)
	router := newAuthRouter(handler)

	created := postJSON(router, "/api/v1/auth/register", gin.H{"email": "bob@example.com", "password": "supersecret"})
	if created.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", created.Code)
	}

	ok := postJSON(router, "/api/v1/auth/login", gin.H{"email": "bob@example.com", "password": "supersecret"})
	if ok.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", ok.Code, ok.Body.String())
	}

	bad := postJSON(router, "/api/v1/auth/login", gin.H{"email": "bob@example.com", "password": "wrongpass"})
	if bad.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", bad.Code)
	}

	unknown := postJSON(router, "/api/v1/auth/login", gin.H{"email": "nobody@example.com", "password": "supersecret"})
	if unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for unknown email, got %d", unknown.Code)
	}

	user, err := repo.GetByEmail(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	user.Status = StatusSuspended
	if err := repo.Update(context.Background(), user); err != nil {
		t.Fatalf("suspend user: %v", err)
	}
	suspended := postJSON(router, "/api/v1/auth/login", gin.H{"email": "bob@example.com", "password": "supersecret"})
	if suspended.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for suspended account, got %d", suspended.Code)
	}
}

func TestMeReturnsProfile(t *testing.T) {
	handler, repo := newTestHandler(t)
	gin.SetMode(gin.TestMode)

	svc := handler.Svc
	user, err := svc.Register(context.Background(), "carol@example.com", "supersecret", "Carol")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	_ = repo

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", user.ID)
		c.Next()
	})
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var body struct {
		Email    string `json:"email"`
		FullName string `json:"fullName"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Email != "carol@example.com" || body.FullName != "Carol" {
		t.Fatalf("unexpected profile: %+v", body)
	}
}

func TestUpdatePasswordRequiresCurrent(t *testing.T) {
	handler, _ := newTestHandler(t)
	gin.SetMode(gin.TestMode)

	user, err := handler.Svc.Register(context.Background(), "dave@example.com", "supersecret", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", user.ID)
		c.Next()
	})
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	wrong := postJSON(router, "/api/v1/me/password", gin.H{"currentPassword": "nope", "newPassword": "anothersecret"})
	if wrong.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", wrong.Code)
	}

	ok := postJSON(router, "/api/v1/me/password", gin.H{"currentPassword": "supersecret", "newPassword": "anothersecret"})
	if ok.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", ok.Code, ok.Body.String())
	}

	if _, err := handler.Svc.Login(context.Background(), "dave@example.com", "anothersecret"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}
