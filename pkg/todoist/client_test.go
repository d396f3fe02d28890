package todoist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-token"), srv
}

func TestTasksSendsAuthAndFilter(t *testing.T) {
	var gotAuth, gotFilter string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotFilter = r.URL.Query().Get("filter")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"1","content":"pay rent","priority":4,"labels":["pessoal"],
			 "due":{"date":"2025-05-05","datetime":"2025-05-05T09:00:00","string":"May 5 09:00"},
			 "duration":{"amount":30,"unit":"minute"}},
			{"id":"2","content":"write report","priority":2}
		]`))
	})

	tasks, err := c.Tasks(context.Background(), "hoje | atrasadas")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if gotFilter != "hoje | atrasadas" {
		t.Fatalf("expected filter pass-through, got %q", gotFilter)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}

	rent := tasks[0]
	if rent.Priority != 4 || rent.DurationMinutes != 30 {
		t.Fatalf("unexpected mapping: %+v", rent)
	}
	if rent.Due == nil || !rent.Due.HasTime {
		t.Fatalf("expected timed due, got %+v", rent.Due)
	}
	if clock, ok := rent.StartClock(); !ok || clock != "09:00" {
		t.Fatalf("expected start clock 09:00, got %q", clock)
	}

	report := tasks[1]
	if report.Due != nil || report.DurationMinutes != 0 {
		t.Fatalf("expected bare task, got %+v", report)
	}
}

func TestRescheduleSendsDueDatetime(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	due := time.Date(2025, time.May, 5, 14, 15, 0, 0, time.Local)
	if err := c.Reschedule(context.Background(), "42", due); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/tasks/42" {
		t.Fatalf("expected POST /tasks/42, got %s", gotPath)
	}
	if gotBody["due_datetime"] != "2025-05-05T14:15:00" {
		t.Fatalf("unexpected payload: %v", gotBody)
	}
}

func TestCloseAndReopen(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.Close(context.Background(), "7"); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Reopen(context.Background(), "7"); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if len(paths) != 2 || paths[0] != "/tasks/7/close" || paths[1] != "/tasks/7/reopen" {
		t.Fatalf("unexpected paths: %v", paths)
	}
}

func TestDoRetriesServerErrors(t *testing.T) {
	attempts := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	})

	if _, err := c.Tasks(context.Background(), ""); err != nil {
		t.Fatalf("expected retries to succeed, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestDoDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"bad token"}`))
	})

	_, err := c.Tasks(context.Background(), "")
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected 403 error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("client errors must not be retried, got %d attempts", attempts)
	}
}

func TestBadDueDegradesNotDrops(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"1","content":"x","due":{"date":"not a date"}}]`))
	})
	tasks, err := c.Tasks(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Due != nil {
		t.Fatalf("expected task kept with no due, got %+v", tasks)
	}
}
