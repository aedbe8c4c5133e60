package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/storage"
	"github.com/estudai/estudai/internal/storage/sqlite"
)

type testEnv struct {
	t       *testing.T
	store   *sqlite.Store
	handler http.Handler
	token   string
	userID  string
}

func setupTestServer(t *testing.T, rateLimit int) *testEnv {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "estudai.db"), nil)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	user, err := store.SignUp(ctx, storage.SignUpRequest{Email: "ana@usp.br", Password: "segredo1", Name: "Ana"})
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	session, err := store.SignIn(ctx, "ana@usp.br", "segredo1")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	srv := New(store, Options{
		RateLimitPerMinute: rateLimit,
		Location:           time.UTC,
		Now:                func() time.Time { return time.Date(2025, 11, 14, 10, 0, 0, 0, time.UTC) },
	})
	return &testEnv{t: t, store: store, handler: srv.Handler(), token: session.Token, userID: user.ID}
}

func (env *testEnv) do(method, path string, body any) (*httptest.ResponseRecorder, Envelope) {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if env.token != "" {
		req.Header.Set("Authorization", "Bearer "+env.token)
	}
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	var out Envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			env.t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, out
}

// taskList decodes the "tasks" field of an envelope's data.
func taskList(t *testing.T, env Envelope) []models.Task {
	t.Helper()
	raw, _ := json.Marshal(env.Data)
	var data struct {
		Tasks []models.Task `json:"tasks"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("decode tasks: %v", err)
	}
	return data.Tasks
}

func (env *testEnv) create(title, typ, due string) {
	env.t.Helper()
	rec, out := env.do(http.MethodPost, "/tasks", CreateTaskRequest{Title: title, Description: "desc", Type: typ, DueAt: due})
	if rec.Code != http.StatusCreated || !out.Success {
		env.t.Fatalf("POST /tasks = %d %+v", rec.Code, out)
	}
}

func TestRequiresSession(t *testing.T) {
	env := setupTestServer(t, 0)

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrong scheme", "Basic abc"},
		{"unknown token", "Bearer nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			env.handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			var out Envelope
			_ = json.Unmarshal(rec.Body.Bytes(), &out)
			if out.Success || out.Error == "" {
				t.Errorf("envelope = %+v, want failure with message", out)
			}
		})
	}
}

func TestHealthIsPublic(t *testing.T) {
	env := setupTestServer(t, 0)
	env.token = ""
	rec, out := env.do(http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK || !out.Success {
		t.Errorf("GET /health = %d %+v", rec.Code, out)
	}
}

func TestCreateAndListTasks(t *testing.T) {
	env := setupTestServer(t, 0)
	env.create("Lista de Cálculo", "trabalho", "14/11/2025 18:00")
	env.create("Prova de Física", "prova", "20/12/2025 08:00")

	rec, out := env.do(http.MethodGet, "/tasks", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /tasks = %d", rec.Code)
	}
	tasks := taskList(t, out)
	if len(tasks) != 2 || tasks[0].Title != "Lista de Cálculo" {
		t.Fatalf("tasks = %+v", tasks)
	}

	tests := []struct {
		query string
		want  int
	}{
		{"?type=prova", 1},
		{"?period=today", 1},
		{"?q=fisica", 0},
		{"?q=Física", 1},
		{"?status=completed", 0},
		{"?type=all&period=all", 2},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			_, out := env.do(http.MethodGet, "/tasks"+tt.query, nil)
			if got := len(taskList(t, out)); got != tt.want {
				t.Errorf("GET /tasks%s returned %d tasks, want %d", tt.query, got, tt.want)
			}
		})
	}

	rec, _ = env.do(http.MethodGet, "/tasks?period=someday", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad period status = %d, want 400", rec.Code)
	}
}

func TestCreateValidation(t *testing.T) {
	env := setupTestServer(t, 0)

	tests := []struct {
		name string
		req  CreateTaskRequest
	}{
		{"missing title", CreateTaskRequest{Description: "d", DueAt: "14/11/2025 10:00"}},
		{"missing due", CreateTaskRequest{Title: "t", Description: "d"}},
		{"bad due", CreateTaskRequest{Title: "t", Description: "d", DueAt: "2025-11-14"}},
		{"bad type", CreateTaskRequest{Title: "t", Description: "d", DueAt: "14/11/2025 10:00", Type: "seminario"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, out := env.do(http.MethodPost, "/tasks", tt.req)
			if rec.Code != http.StatusBadRequest || out.Success {
				t.Errorf("status = %d, envelope = %+v, want 400 failure", rec.Code, out)
			}
		})
	}
}

func TestUpdateToggleAndDelete(t *testing.T) {
	env := setupTestServer(t, 0)
	env.create("Resumo", "", "15/11/2025 09:00")
	_, out := env.do(http.MethodGet, "/tasks", nil)
	id := taskList(t, out)[0].ID
	path := "/tasks/" + itoa(id)

	title := "Resumo de Química"
	dateOnly := "16/11/2025"
	rec, out := env.do(http.MethodPatch, path, UpdateTaskRequest{Title: &title, DueAt: &dateOnly})
	if rec.Code != http.StatusOK || len(out.Warnings) != 1 {
		t.Fatalf("PATCH = %d %+v, want one warning", rec.Code, out)
	}

	rec, _ = env.do(http.MethodPatch, path, UpdateTaskRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty PATCH status = %d, want 400", rec.Code)
	}

	rec, _ = env.do(http.MethodPatch, "/tasks/999", UpdateTaskRequest{Title: &title})
	if rec.Code != http.StatusNotFound {
		t.Errorf("PATCH unknown status = %d, want 404", rec.Code)
	}

	rec, out = env.do(http.MethodPost, path+"/toggle", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d", rec.Code)
	}
	task, _ := env.store.ListTasks(context.Background(), env.userID)
	if !task[0].Completed || task[0].Title != title || *task[0].DueDate != "2025-11-15" {
		t.Errorf("after patch+toggle: %+v", task[0])
	}

	rec, _ = env.do(http.MethodPost, "/tasks/999/toggle", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("toggle unknown status = %d, want 404", rec.Code)
	}

	rec, _ = env.do(http.MethodDelete, path, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("DELETE status = %d", rec.Code)
	}
	rec, _ = env.do(http.MethodDelete, "/tasks/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("DELETE bad id status = %d, want 400", rec.Code)
	}
}

func TestBatchEndpoints(t *testing.T) {
	env := setupTestServer(t, 0)
	env.create("A", "", "15/11/2025 09:00")
	env.create("B", "", "16/11/2025 09:00")
	env.create("C", "", "17/11/2025 09:00")
	_, out := env.do(http.MethodGet, "/tasks", nil)
	tasks := taskList(t, out)

	done := true
	rec, out := env.do(http.MethodPost, "/tasks/batch-update", BatchUpdateRequest{
		IDs:   []int64{tasks[0].ID, 999},
		Patch: UpdateTaskRequest{Completed: &done},
	})
	if rec.Code != http.StatusMultiStatus || out.Success {
		t.Errorf("partial batch-update = %d %+v, want 207 failure", rec.Code, out)
	}

	rec, _ = env.do(http.MethodPost, "/tasks/batch-delete", BatchDeleteRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty batch-delete status = %d, want 400", rec.Code)
	}

	rec, out = env.do(http.MethodPost, "/tasks/batch-delete", BatchDeleteRequest{IDs: []int64{tasks[1].ID, 999, tasks[2].ID}})
	if rec.Code != http.StatusOK {
		t.Fatalf("batch-delete status = %d", rec.Code)
	}
	raw, _ := json.Marshal(out.Data)
	var result struct {
		Requested []int64 `json:"requested"`
		Deleted   []int64 `json:"deleted"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Requested) != 3 {
		t.Errorf("requested = %v, want the 3 ids sent", result.Requested)
	}
	if len(result.Deleted) != 2 || result.Deleted[0] != tasks[1].ID || result.Deleted[1] != tasks[2].ID {
		t.Errorf("deleted = %v, want only the existing ids %d and %d", result.Deleted, tasks[1].ID, tasks[2].ID)
	}
	_, out = env.do(http.MethodGet, "/tasks", nil)
	left := taskList(t, out)
	if len(left) != 1 || left[0].ID != tasks[0].ID || !left[0].Completed {
		t.Errorf("remaining = %+v", left)
	}
}

func TestAgenda(t *testing.T) {
	env := setupTestServer(t, 0)
	env.create("Prova", "prova", "14/11/2025 08:00")

	rec, out := env.do(http.MethodGet, "/agenda/2025/11", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /agenda = %d", rec.Code)
	}
	raw, _ := json.Marshal(out.Data)
	var data struct {
		Label string        `json:"label"`
		Weeks [][]AgendaDay `json:"weeks"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatal(err)
	}
	if data.Label != "novembro de 2025" || len(data.Weeks) != 6 {
		t.Errorf("label = %q, weeks = %d", data.Label, len(data.Weeks))
	}
	// November 2025 starts on a Saturday; the 14th is a Friday in week 3.
	day := data.Weeks[2][5]
	if day.Date != "2025-11-14" || len(day.Tasks) != 1 {
		t.Errorf("day = %+v", day)
	}

	rec, _ = env.do(http.MethodGet, "/agenda/2025/13", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad month status = %d, want 400", rec.Code)
	}
}

func TestSubjectsAndSchedule(t *testing.T) {
	env := setupTestServer(t, 0)
	ctx := context.Background()
	subj, err := env.store.CreateSubject(ctx, env.userID, models.Subject{Name: "Cálculo I"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.store.CreateScheduleEntry(ctx, env.userID, models.ScheduleEntry{
		SubjectID: subj.ID, Weekday: time.Monday, Start: "08:00", End: "10:00",
	}); err != nil {
		t.Fatal(err)
	}

	rec, out := env.do(http.MethodGet, "/subjects", nil)
	if rec.Code != http.StatusOK || !out.Success {
		t.Errorf("GET /subjects = %d", rec.Code)
	}

	tests := []struct {
		query string
		code  int
		count float64
	}{
		{"", http.StatusOK, 1},
		{"?day=1", http.StatusOK, 1},
		{"?day=2", http.StatusOK, 0},
		{"?day=9", http.StatusBadRequest, 0},
		{"?day=x", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run("schedule"+tt.query, func(t *testing.T) {
			rec, out := env.do(http.MethodGet, "/schedule"+tt.query, nil)
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d", rec.Code, tt.code)
			}
			if tt.code != http.StatusOK {
				return
			}
			data := out.Data.(map[string]any)
			if data["count"] != tt.count {
				t.Errorf("count = %v, want %v", data["count"], tt.count)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	env := setupTestServer(t, 2)
	for i := 0; i < 2; i++ {
		if rec, _ := env.do(http.MethodGet, "/health", nil); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
	rec, out := env.do(http.MethodGet, "/health", nil)
	if rec.Code != http.StatusTooManyRequests || out.Error != "rate limit exceeded" {
		t.Errorf("third request = %d %+v, want 429", rec.Code, out)
	}
}

func itoa(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
