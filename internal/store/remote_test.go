package store

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/trackflow/trackflow/backend/internal/apper"
	"github.com/trackflow/trackflow/backend/internal/config"
	"github.com/trackflow/trackflow/backend/internal/models"
)

// fakeRecordStore is an in-memory stand-in for the remote table API, enough
// of it to drive the issue store.
type fakeRecordStore struct {
	mu      sync.Mutex
	issues  map[uint]apper.Record
	updates int
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{issues: make(map[uint]apper.Record)}
}

func (f *fakeRecordStore) put(id uint, issue models.Issue) {
	issue.ID = id
	f.issues[id] = issueToRecord(issue)
}

func (f *fakeRecordStore) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/tables/issues/query":
			records := make([]apper.Record, 0, len(f.issues))
			for _, rec := range f.issues {
				records = append(records, rec)
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": records})

		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/tables/issues/records/"):
			idStr := strings.TrimPrefix(r.URL.Path, "/tables/issues/records/")
			id, _ := strconv.ParseUint(idStr, 10, 32)
			rec, ok := f.issues[uint(id)]
			if !ok {
				json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": nil})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": rec})

		case r.Method == http.MethodPut && r.URL.Path == "/tables/issues/records":
			f.updates++
			var body struct {
				Records []apper.Record `json:"records"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			results := make([]map[string]interface{}, 0, len(body.Records))
			for _, rec := range body.Records {
				id := uint(rec["id"].(float64))
				f.issues[id] = rec
				results = append(results, map[string]interface{}{"success": true, "data": rec})
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "results": results})

		case r.Method == http.MethodDelete && r.URL.Path == "/tables/issues/records":
			var body struct {
				RecordIDs []uint `json:"recordIds"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			results := make([]map[string]interface{}, 0, len(body.RecordIDs))
			for _, id := range body.RecordIDs {
				delete(f.issues, id)
				results = append(results, map[string]interface{}{"success": true})
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "results": results})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newRemoteIssueStore(t *testing.T, fake *fakeRecordStore, clock Clock) (IssueStore, func()) {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	client := apper.NewClient(&config.ApperConfig{BaseURL: server.URL})
	bundle := NewRemoteStore(client, clock)
	return bundle.Issues, server.Close
}

func TestRemoteIssueStoreGetByIDMissing(t *testing.T) {
	fake := newFakeRecordStore()
	issues, done := newRemoteIssueStore(t, fake, nil)
	defer done()

	if _, err := issues.GetByID(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(42) error = %v, want ErrNotFound", err)
	}
}

func TestRemoteIssueStoreUpdateStatus(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	now := start
	clock := func() time.Time { return now }

	fake := newFakeRecordStore()
	fake.put(1, models.Issue{
		Title:           "Login broken",
		Status:          models.StatusOpen,
		Priority:        models.PriorityHigh,
		CreatedAt:       start,
		UpdatedAt:       start,
		StatusChangedAt: start,
	})

	issues, done := newRemoteIssueStore(t, fake, clock)
	defer done()

	now = start.Add(time.Hour)
	updated, err := issues.UpdateStatus(1, models.StatusInProgress)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != models.StatusInProgress {
		t.Errorf("status = %q, want %q", updated.Status, models.StatusInProgress)
	}
	if !updated.StatusChangedAt.Equal(now) {
		t.Errorf("statusChangedAt = %v, want %v", updated.StatusChangedAt, now)
	}
	if fake.updates != 1 {
		t.Errorf("backend writes = %d, want 1", fake.updates)
	}
}

func TestRemoteIssueStoreUpdateStatusNoOp(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	fake := newFakeRecordStore()
	fake.put(1, models.Issue{
		Title:           "Login broken",
		Status:          models.StatusOpen,
		Priority:        models.PriorityHigh,
		CreatedAt:       start,
		UpdatedAt:       start,
		StatusChangedAt: start,
	})

	issues, done := newRemoteIssueStore(t, fake, func() time.Time { return start.Add(time.Hour) })
	defer done()

	updated, err := issues.UpdateStatus(1, models.StatusOpen)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !updated.UpdatedAt.Equal(start) {
		t.Errorf("no-op status change refreshed updatedAt: %v", updated.UpdatedAt)
	}
	if fake.updates != 0 {
		t.Errorf("no-op status change wrote to the backend %d times", fake.updates)
	}
}

func TestRemoteIssueStoreDeleteMissing(t *testing.T) {
	fake := newFakeRecordStore()
	issues, done := newRemoteIssueStore(t, fake, nil)
	defer done()

	if err := issues.Delete(9); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(9) error = %v, want ErrNotFound", err)
	}
}

func TestRemoteIssueStoreBackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := apper.NewClient(&config.ApperConfig{BaseURL: server.URL})
	bundle := NewRemoteStore(client, nil)

	if _, err := bundle.Issues.GetAll(); !errors.Is(err, ErrBackend) {
		t.Errorf("GetAll error = %v, want ErrBackend", err)
	}
}

func TestRemoteIssueStoreBlankSearch(t *testing.T) {
	fake := newFakeRecordStore()
	fake.put(1, models.Issue{Title: "Login broken", Status: models.StatusOpen, Priority: models.PriorityHigh})

	issues, done := newRemoteIssueStore(t, fake, nil)
	defer done()

	results, err := issues.Search("   ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("blank search returned %d issues, want 0", len(results))
	}
}
