package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/trackflow/trackflow/backend/internal/services"
	"github.com/trackflow/trackflow/backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newIssueRouter() *gin.Engine {
	bundle := store.NewMemoryStore(false)
	h := NewIssueHandler(services.NewIssueService(bundle.Issues))

	r := gin.New()
	r.GET("/api/issues", h.List)
	r.GET("/api/issues/:id", h.GetByID)
	r.POST("/api/issues", h.Create)
	r.PATCH("/api/issues/:id/status", h.UpdateStatus)
	r.DELETE("/api/issues/:id", h.Delete)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestIssueHandlerCreateAndGet(t *testing.T) {
	r := newIssueRouter()

	w := doJSON(r, "POST", "/api/issues", gin.H{"title": "Login broken", "priority": "High"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", w.Code, w.Body.String())
	}

	w = doJSON(r, "GET", "/api/issues/1", nil)
	if w.Code != http.StatusOK {
		t.Errorf("get status = %d, want 200", w.Code)
	}
}

func TestIssueHandlerNotFound(t *testing.T) {
	r := newIssueRouter()

	w := doJSON(r, "GET", "/api/issues/99", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing issue status = %d, want 404", w.Code)
	}

	w = doJSON(r, "DELETE", "/api/issues/99", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete missing issue status = %d, want 404", w.Code)
	}
}

func TestIssueHandlerValidation(t *testing.T) {
	r := newIssueRouter()

	w := doJSON(r, "POST", "/api/issues", gin.H{"title": "   "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank title status = %d, want 400", w.Code)
	}

	w = doJSON(r, "POST", "/api/issues", gin.H{"title": "x", "status": "Done"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown status status = %d, want 400", w.Code)
	}
}

func TestIssueHandlerBadID(t *testing.T) {
	r := newIssueRouter()

	w := doJSON(r, "GET", "/api/issues/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id status = %d, want 400", w.Code)
	}
}

func TestIssueHandlerUpdateStatus(t *testing.T) {
	r := newIssueRouter()

	doJSON(r, "POST", "/api/issues", gin.H{"title": "Login broken"})

	w := doJSON(r, "PATCH", "/api/issues/1/status", gin.H{"status": "In Progress"})
	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Status != "In Progress" {
		t.Errorf("status = %q, want %q", resp.Data.Status, "In Progress")
	}
}
