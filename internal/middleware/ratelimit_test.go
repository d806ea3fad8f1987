package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trackflow/trackflow/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newThrottledRouter(t *WriteThrottle) *gin.Engine {
	r := gin.New()
	r.POST("/api/issues", t.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusCreated, response.Response{Code: 0, Message: "created"})
	})
	return r
}

func postIssue(r *gin.Engine, addr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/issues", nil)
	req.RemoteAddr = addr
	r.ServeHTTP(w, req)
	return w
}

func TestWriteThrottle_AllowsWithinBurst(t *testing.T) {
	r := newThrottledRouter(NewWriteThrottle(10, 5))

	for i := 0; i < 5; i++ {
		if w := postIssue(r, "192.168.1.1:12345"); w.Code != http.StatusCreated {
			t.Errorf("request %d: expected %d, got %d", i+1, http.StatusCreated, w.Code)
		}
	}
}

func TestWriteThrottle_RejectsWhenBurstDrained(t *testing.T) {
	r := newThrottledRouter(NewWriteThrottle(1, 2))

	var last *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		last = postIssue(r, "10.0.0.1:12345")
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected %d after burst drained, got %d", http.StatusTooManyRequests, last.Code)
	}

	var body response.Response
	if err := json.Unmarshal(last.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != http.StatusTooManyRequests {
		t.Errorf("expected envelope code %d, got %d", http.StatusTooManyRequests, body.Code)
	}
}

func TestWriteThrottle_PerClientBuckets(t *testing.T) {
	r := newThrottledRouter(NewWriteThrottle(1, 1))

	if w := postIssue(r, "10.0.0.1:12345"); w.Code != http.StatusCreated {
		t.Errorf("client 1: expected %d, got %d", http.StatusCreated, w.Code)
	}
	if w := postIssue(r, "10.0.0.1:12345"); w.Code != http.StatusTooManyRequests {
		t.Errorf("client 1 drained: expected %d, got %d", http.StatusTooManyRequests, w.Code)
	}

	// A different client keeps its own full bucket.
	if w := postIssue(r, "10.0.0.2:12345"); w.Code != http.StatusCreated {
		t.Errorf("client 2: expected %d, got %d", http.StatusCreated, w.Code)
	}
}

func TestWriteThrottle_RefillsOverTime(t *testing.T) {
	r := newThrottledRouter(NewWriteThrottle(100, 1))

	if w := postIssue(r, "10.0.0.3:12345"); w.Code != http.StatusCreated {
		t.Fatalf("first write: expected %d, got %d", http.StatusCreated, w.Code)
	}
	if w := postIssue(r, "10.0.0.3:12345"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("drained: expected %d, got %d", http.StatusTooManyRequests, w.Code)
	}

	time.Sleep(50 * time.Millisecond)

	if w := postIssue(r, "10.0.0.3:12345"); w.Code != http.StatusCreated {
		t.Errorf("after refill: expected %d, got %d", http.StatusCreated, w.Code)
	}
}
