package resumes

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"jobmaster-backend/internal/shared/storage/object/local"
)

func newTestRouter(t *testing.T) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	svc := NewService(local.New(t.TempDir()), repo)
	handler := NewHandler(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router, repo
}

func docxPayload(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	doc := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` + body + `</w:t></w:r></w:p></w:body></w:document>`
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func uploadResume(t *testing.T, router *gin.Engine, fileName string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestUploadExtractsText(t *testing.T) {
	router, repo := newTestRouter(t)

	resp := uploadResume(t, router, "resume.docx", docxPayload(t, "Go engineer with Kafka experience"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created Resume
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Title != "resume.docx" {
		t.Fatalf("expected file name as default title, got %q", created.Title)
	}

	stored, err := repo.GetByID(context.Background(), "user-1", created.ID)
	if err != nil {
		t.Fatalf("load stored resume: %v", err)
	}
	if stored.ExtractedText != "Go engineer with Kafka experience" {
		t.Fatalf("unexpected extracted text: %q", stored.ExtractedText)
	}
	if stored.StorageKey == "" {
		t.Fatal("expected a storage key")
	}
}

func TestUploadEnforcesLimit(t *testing.T) {
	router, repo := newTestRouter(t)

	for i := 0; i < MaxPerUser; i++ {
		resume := Resume{
			ID:        "resume-" + string(rune('a'+i)),
			UserID:    "user-1",
			Title:     "r",
			FileName:  "r.docx",
			CreatedAt: time.Now().UTC(),
		}
		if err := repo.Create(context.Background(), resume); err != nil {
			t.Fatalf("seed resume: %v", err)
		}
	}

	resp := uploadResume(t, router, "resume.docx", docxPayload(t, "overflow"))
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := uploadResume(t, router, "notes.txt", []byte("plain text, not a resume file"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestListAndDelete(t *testing.T) {
	router, repo := newTestRouter(t)

	resume := Resume{
		ID:        "resume-1",
		UserID:    "user-1",
		Title:     "Backend resume",
		FileName:  "backend.pdf",
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil)
	listResp := httptest.NewRecorder()
	router.ServeHTTP(listResp, listReq)
	if listResp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", listResp.Code)
	}
	var listBody struct {
		Items []Resume `json:"items"`
		Limit int      `json:"limit"`
	}
	if err := json.Unmarshal(listResp.Body.Bytes(), &listBody); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listBody.Items) != 1 || listBody.Limit != MaxPerUser {
		t.Fatalf("unexpected list body: %+v", listBody)
	}

	delReq := httptest.NewRequest(http.MethodDelete, "/api/v1/resumes/resume-1", nil)
	delResp := httptest.NewRecorder()
	router.ServeHTTP(delResp, delReq)
	if delResp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", delResp.Code)
	}

	if _, err := repo.GetByID(context.Background(), "user-1", "resume-1"); err != ErrNotFound {
		t.Fatalf("expected resume gone, got %v", err)
	}
}

func TestDeleteOtherUsersResume(t *testing.T) {
	router, repo := newTestRouter(t)

	resume := Resume{ID: "resume-2", UserID: "user-2", FileName: "r.pdf", CreatedAt: time.Now().UTC()}
	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/resumes/resume-2", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
