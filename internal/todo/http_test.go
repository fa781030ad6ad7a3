package todo

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gf-haseeb/advanced-todo-system/internal/model"
)

func newAPIForTests(t *testing.T) (http.Handler, *Manager) {
	t.Helper()

	mgr, err := NewManager(filepath.Join(t.TempDir(), "tasks.json"), zerolog.Nop())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	r := chi.NewRouter()
	r.Route("/api/v1", NewHandler(mgr, "test").Routes)
	return r, mgr
}

func jsonReq(method, path string, body any) *http.Request {
	var b []byte
	if body != nil {
		b, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func doReq(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, body
}

func TestAPI_Health(t *testing.T) {
	h, _ := newAPIForTests(t)

	rec, body := doReq(t, h, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["status"] != "healthy" {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestAPI_CreateAndGetTask(t *testing.T) {
	h, mgr := newAPIForTests(t)
	work, err := mgr.CreateList("Work", "")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	rec, body := doReq(t, h, jsonReq(http.MethodPost, "/api/v1/tasks", map[string]any{
		"list_id":  string(work.ID),
		"title":    "Buy groceries",
		"priority": "medium",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%v", rec.Code, body)
	}
	if body["success"] != true {
		t.Fatalf("expected success envelope, got %v", body)
	}
	data := body["data"].(map[string]any)
	taskID := data["id"].(string)
	if data["status"] != "pending" || data["priority"] != "medium" {
		t.Fatalf("unexpected created task: %v", data)
	}

	rec, body = doReq(t, h, httptest.NewRequest(http.MethodGet, "/api/v1/tasks/"+taskID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%v", rec.Code, body)
	}
	got := body["data"].(map[string]any)
	if got["list_id"] != string(work.ID) {
		t.Fatalf("expected owner %s, got %v", work.ID, got["list_id"])
	}
}

func TestAPI_CreateTask_MissingFields(t *testing.T) {
	h, _ := newAPIForTests(t)

	cases := []map[string]any{
		{"title": "no list"},
		{"list_id": "list_x"},
	}
	for _, body := range cases {
		rec, resp := doReq(t, h, jsonReq(http.MethodPost, "/api/v1/tasks", body))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d", body, rec.Code)
		}
		if resp["success"] != false || resp["error"] == "" {
			t.Fatalf("expected error envelope, got %v", resp)
		}
	}
}

func TestAPI_UpdateTask_UnknownFieldRejected(t *testing.T) {
	h, mgr := newAPIForTests(t)
	work, _ := mgr.CreateList("Work", "")
	task, err := mgr.CreateTask(work.ID, "Report", "", model.PriorityLow)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	rec, _ := doReq(t, h, jsonReq(http.MethodPut, "/api/v1/tasks/"+string(task.ID), map[string]any{
		"title":    "ok",
		"severity": "nope",
	}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}

	rec, body := doReq(t, h, jsonReq(http.MethodPut, "/api/v1/tasks/"+string(task.ID), map[string]any{
		"status": "completed",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%v", rec.Code, body)
	}
	if body["data"].(map[string]any)["status"] != "completed" {
		t.Fatalf("expected completed status, got %v", body)
	}
}

func TestAPI_MoveTask(t *testing.T) {
	h, mgr := newAPIForTests(t)
	a, _ := mgr.CreateList("A", "")
	b, _ := mgr.CreateList("B", "")
	task, err := mgr.CreateTask(a.ID, "Travel", "", model.PriorityHigh)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	rec, body := doReq(t, h, jsonReq(http.MethodPost, "/api/v1/tasks/"+string(task.ID)+"/move", map[string]any{
		"source_list_id": string(a.ID),
		"target_list_id": string(b.ID),
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%v", rec.Code, body)
	}

	// Same source and target is a validation error.
	rec, _ = doReq(t, h, jsonReq(http.MethodPost, "/api/v1/tasks/"+string(task.ID)+"/move", map[string]any{
		"source_list_id": string(b.ID),
		"target_list_id": string(b.ID),
	}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	// Replaying the original move is a 404: the task left the source.
	rec, _ = doReq(t, h, jsonReq(http.MethodPost, "/api/v1/tasks/"+string(task.ID)+"/move", map[string]any{
		"source_list_id": string(a.ID),
		"target_list_id": string(b.ID),
	}))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAPI_DeleteNonEmptyListConflicts(t *testing.T) {
	h, mgr := newAPIForTests(t)
	work, _ := mgr.CreateList("Work", "")
	if _, err := mgr.CreateTask(work.ID, "Keep", "", model.PriorityLow); err != nil {
		t.Fatalf("create task: %v", err)
	}

	rec, _ := doReq(t, h, httptest.NewRequest(http.MethodDelete, "/api/v1/lists/"+string(work.ID), nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	rec, _ = doReq(t, h, httptest.NewRequest(http.MethodDelete, "/api/v1/lists/"+string(work.ID)+"?cascade=true", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAPI_ListsCollection(t *testing.T) {
	h, mgr := newAPIForTests(t)

	rec, body := doReq(t, h, jsonReq(http.MethodPost, "/api/v1/lists", map[string]any{
		"name":        "Work",
		"description": "Work-related tasks",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%v", rec.Code, body)
	}

	work := mgr.Lists()[0]
	if _, err := mgr.CreateTask(work.ID, "One", "", model.PriorityLow); err != nil {
		t.Fatalf("create task: %v", err)
	}

	rec, body = doReq(t, h, httptest.NewRequest(http.MethodGet, "/api/v1/lists/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["count"] != float64(1) {
		t.Fatalf("expected count 1, got %v", body["count"])
	}

	rec, body = doReq(t, h, httptest.NewRequest(http.MethodGet, "/api/v1/lists/"+string(work.ID)+"/tasks", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["count"] != float64(1) {
		t.Fatalf("expected 1 task, got %v", body["count"])
	}
}

func TestAPI_UnknownTaskIs404(t *testing.T) {
	h, _ := newAPIForTests(t)

	rec, body := doReq(t, h, httptest.NewRequest(http.MethodGet, "/api/v1/tasks/task_missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body["success"] != false {
		t.Fatalf("expected error envelope, got %v", body)
	}
}
