package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"maze/internal/store"
)

type fakeAssistant struct {
	got   []string
	tasks []store.Task
	err   error
}

func (f *fakeAssistant) Respond(_ context.Context, cmd string) string {
	f.got = append(f.got, cmd)
	return "reply to " + cmd
}

func (f *fakeAssistant) SessionID() string { return "s-1" }

func (f *fakeAssistant) Tasks(context.Context) ([]store.Task, error) { return f.tasks, f.err }

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPostCommand(t *testing.T) {
	a := &fakeAssistant{}
	rec := do(t, New(a), http.MethodPost, "/api/command", `{"text":"  what time is it "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}

	var resp commandResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Reply != "reply to what time is it" || resp.Session != "s-1" {
		t.Fatalf("resp %+v", resp)
	}
}

func TestPostCommandRejectsEmpty(t *testing.T) {
	a := &fakeAssistant{}
	e := New(a)
	for _, body := range []string{`{"text":"   "}`, `{`} {
		if rec := do(t, e, http.MethodPost, "/api/command", body); rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status %d", body, rec.Code)
		}
	}
	if len(a.got) != 0 {
		t.Fatalf("assistant called with %v", a.got)
	}
}

func TestGetTasksNumbersPending(t *testing.T) {
	at := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	a := &fakeAssistant{tasks: []store.Task{
		{Description: "buy milk", Done: true, CreatedAt: store.Stamp(at)},
		{Description: "call mom", CreatedAt: store.Stamp(at)},
		{Description: "write report", CreatedAt: store.Stamp(at)},
	}}
	rec := do(t, New(a), http.MethodGet, "/api/tasks", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	var resp tasksResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Pending) != 2 || resp.Pending[0].Number != 1 || resp.Pending[1].Description != "write report" || resp.Pending[1].Number != 2 {
		t.Fatalf("pending %+v", resp.Pending)
	}
	if len(resp.Completed) != 1 || resp.Completed[0].Description != "buy milk" {
		t.Fatalf("completed %+v", resp.Completed)
	}
}

func TestGetTasksBusy(t *testing.T) {
	a := &fakeAssistant{err: errors.New("context canceled")}
	if rec := do(t, New(a), http.MethodGet, "/api/tasks", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	if rec := do(t, New(&fakeAssistant{}), http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}
