package taskstore

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	apperrors "github.com/estudai/estudai/internal/errors"
	"github.com/estudai/estudai/internal/filter"
	"github.com/estudai/estudai/internal/models"
)

// fakeRemote is an in-memory TaskRemote that records calls.
type fakeRemote struct {
	records map[int64]models.TaskRecord
	nextID  int64
	listErr error
	failIDs map[int64]bool
	calls   []string
	updates map[int64][]models.TaskRecordPatch
	created []models.TaskRecord
	deleted [][]int64
}

func newFakeRemote(records ...models.TaskRecord) *fakeRemote {
	f := &fakeRemote{
		records: make(map[int64]models.TaskRecord),
		failIDs: make(map[int64]bool),
		updates: make(map[int64][]models.TaskRecordPatch),
		nextID:  1,
	}
	for _, r := range records {
		f.records[r.ID] = r
		if r.ID >= f.nextID {
			f.nextID = r.ID + 1
		}
	}
	return f
}

func (f *fakeRemote) ListTasks(_ context.Context, userID string) ([]models.TaskRecord, error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.TaskRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b models.TaskRecord) int { return int(a.ID - b.ID) })
	return out, nil
}

func (f *fakeRemote) PendingTasks(ctx context.Context, userID string) ([]models.TaskRecord, error) {
	all, err := f.ListTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	var out []models.TaskRecord
	for _, r := range all {
		if !r.Completed {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRemote) CreateTask(_ context.Context, userID string, rec models.TaskRecord) (models.TaskRecord, error) {
	f.calls = append(f.calls, "create")
	rec.ID = f.nextID
	rec.UserID = userID
	f.nextID++
	f.records[rec.ID] = rec
	f.created = append(f.created, rec)
	return rec, nil
}

func (f *fakeRemote) UpdateTask(_ context.Context, userID string, id int64, patch models.TaskRecordPatch) error {
	f.calls = append(f.calls, "update")
	if f.failIDs[id] {
		return errors.New("remote unavailable")
	}
	rec, ok := f.records[id]
	if !ok || rec.UserID != userID {
		return apperrors.ErrNotFound
	}
	f.updates[id] = append(f.updates[id], patch)
	rec.Title = patch.Title.OrElse(rec.Title)
	rec.Description = patch.Description.OrElse(rec.Description)
	rec.Type = patch.Type.OrElse(rec.Type)
	rec.Difficulty = patch.Difficulty.OrElse(rec.Difficulty)
	rec.DueDate = patch.DueDate.OrElse(rec.DueDate)
	rec.DueTime = patch.DueTime.OrElse(rec.DueTime)
	rec.Completed = patch.Completed.OrElse(rec.Completed)
	f.records[id] = rec
	return nil
}

func (f *fakeRemote) DeleteTask(ctx context.Context, userID string, id int64) error {
	return f.DeleteTasks(ctx, userID, []int64{id})
}

func (f *fakeRemote) DeleteTasks(_ context.Context, userID string, ids []int64) error {
	f.calls = append(f.calls, "delete")
	for _, id := range ids {
		if f.failIDs[id] {
			return errors.New("remote unavailable")
		}
	}
	for _, id := range ids {
		if r, ok := f.records[id]; ok && r.UserID == userID {
			delete(f.records, id)
		}
	}
	f.deleted = append(f.deleted, ids)
	return nil
}

const testUser = "user-1"

func record(id int64, typ models.TaskType, completed bool) models.TaskRecord {
	date, clock := "2025-11-15", "14:30:00"
	return models.TaskRecord{
		ID: id, UserID: testUser, Title: "task", Description: "desc", Type: typ,
		DueDate: &date, DueTime: &clock, Completed: completed,
	}
}

func setupStore(t *testing.T, records ...models.TaskRecord) (*Store, *fakeRemote) {
	t.Helper()
	remote := newFakeRemote(records...)
	store := New(remote, time.UTC)
	store.SetClock(func() time.Time { return time.Date(2025, 11, 14, 9, 0, 0, 0, time.UTC) })
	if res := store.Init(context.Background(), testUser); !res.Success {
		t.Fatalf("Init() = %+v", res)
	}
	return store, remote
}

func ids(tasks []models.Task) []int64 {
	var out []int64
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestCreateThenLoad(t *testing.T) {
	store, remote := setupStore(t)
	easy := models.DifficultyEasy

	res := store.Create(context.Background(), Draft{
		Title:       "Read ch.3",
		Description: "pages 10-40",
		Type:        models.TaskTypeActivity,
		Difficulty:  &easy,
		DueAt:       "15/11/2025 14:30",
	})
	if !res.Success {
		t.Fatalf("Create() = %+v", res)
	}

	tasks := store.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("Tasks() has %d entries, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Completed {
		t.Error("new task should not be completed")
	}
	if got.DueAt != "15/11/2025 14:30" {
		t.Errorf("DueAt = %q, want 15/11/2025 14:30", got.DueAt)
	}

	sent := remote.created[0]
	if *sent.DueDate != "2025-11-15" || *sent.DueTime != "14:30:00" {
		t.Errorf("wire due = %s %s", *sent.DueDate, *sent.DueTime)
	}
	if sent.Priority != 0 || sent.SubjectID != nil {
		t.Errorf("defaults not applied: %+v", sent)
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		field string
	}{
		{"missing title", Draft{Description: "d", DueAt: "15/11/2025 14:30"}, "title"},
		{"missing description", Draft{Title: "t", DueAt: "15/11/2025 14:30"}, "description"},
		{"missing due", Draft{Title: "t", Description: "d"}, "due"},
		{"malformed due", Draft{Title: "t", Description: "d", DueAt: "2025-11-15"}, "due"},
		{"title checked first", Draft{DueAt: "bad"}, "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, remote := setupStore(t)
			res := store.Create(context.Background(), tt.draft)
			if res.Success {
				t.Fatal("Create() should fail")
			}
			var verr *apperrors.ValidationError
			if !apperrors.As(res.Err, &verr) || verr.Field != tt.field {
				t.Errorf("error = %v, want validation error on %s", res.Err, tt.field)
			}
			if slices.Contains(remote.calls, "create") {
				t.Error("remote called despite validation failure")
			}
		})
	}
}

func TestCreateDateOnlyUsesMidnight(t *testing.T) {
	store, remote := setupStore(t)
	res := store.Create(context.Background(), Draft{Title: "t", Description: "d", DueAt: "01/12/2025"})
	if !res.Success {
		t.Fatalf("Create() = %+v", res)
	}
	if got := *remote.created[0].DueTime; got != "00:00:00" {
		t.Errorf("DueTime = %q, want 00:00:00", got)
	}
	if remote.created[0].Type != models.TaskTypeActivity {
		t.Errorf("Type = %q, want default activity", remote.created[0].Type)
	}
}

func TestCreateRequiresUser(t *testing.T) {
	remote := newFakeRemote()
	store := New(remote, time.UTC)
	res := store.Create(context.Background(), Draft{Title: "t", Description: "d", DueAt: "01/12/2025 10:00"})
	if res.Success || !errors.Is(res.Err, apperrors.ErrUnauthenticated) {
		t.Errorf("Create() without user = %+v", res)
	}
	if len(remote.calls) != 0 {
		t.Errorf("remote calls = %v, want none", remote.calls)
	}
}

func TestUpdateSendsOnlySetFields(t *testing.T) {
	store, remote := setupStore(t, record(1, models.TaskTypeExam, false))

	res := store.Update(context.Background(), 1, models.TaskPatch{Title: models.Some("Prova 2")})
	if !res.Success || len(res.Warnings) != 0 {
		t.Fatalf("Update() = %+v", res)
	}
	patch := remote.updates[1][0]
	if patch.Description.IsSet() || patch.DueDate.IsSet() || patch.Completed.IsSet() {
		t.Errorf("unset fields sent: %+v", patch)
	}
	task, _ := store.Task(1)
	if task.Title != "Prova 2" {
		t.Errorf("Title = %q after reload", task.Title)
	}
}

func TestUpdateDateWithoutTimeIsDropped(t *testing.T) {
	store, remote := setupStore(t, record(1, models.TaskTypeExam, false))

	res := store.Update(context.Background(), 1, models.TaskPatch{
		DueAt:     models.Some("20/11/2025"),
		Completed: models.Some(true),
	})
	if !res.Success {
		t.Fatalf("Update() = %+v", res)
	}
	if !slices.Contains(res.Warnings, WarnDueIgnored) {
		t.Errorf("Warnings = %v, want %q", res.Warnings, WarnDueIgnored)
	}
	patch := remote.updates[1][0]
	if patch.DueDate.IsSet() || patch.DueTime.IsSet() {
		t.Error("due change should not be sent")
	}
	task, _ := store.Task(1)
	if task.DueAt != "15/11/2025 14:30" || !task.Completed {
		t.Errorf("task = %+v", task)
	}
}

func TestUpdateWithFullDue(t *testing.T) {
	store, _ := setupStore(t, record(1, models.TaskTypeExam, false))
	res := store.Update(context.Background(), 1, models.TaskPatch{DueAt: models.Some("20/11/2025 08:05")})
	if !res.Success {
		t.Fatalf("Update() = %+v", res)
	}
	task, _ := store.Task(1)
	if task.DueAt != "20/11/2025 08:05" {
		t.Errorf("DueAt = %q", task.DueAt)
	}
}

func TestUpdateFailureKeepsCollection(t *testing.T) {
	store, remote := setupStore(t, record(1, models.TaskTypeExam, false))
	remote.failIDs[1] = true

	res := store.Update(context.Background(), 1, models.TaskPatch{Title: models.Some("x")})
	if res.Success || res.Err == nil {
		t.Fatalf("Update() = %+v, want failure", res)
	}
	task, _ := store.Task(1)
	if task.Title != "task" {
		t.Errorf("collection changed: %+v", task)
	}
}

func TestLoadFailureKeepsStaleTasks(t *testing.T) {
	store, remote := setupStore(t, record(1, models.TaskTypeExam, false))
	remote.listErr = errors.New("offline")

	res := store.Load(context.Background())
	if res.Success {
		t.Fatal("Load() should fail")
	}
	if len(store.Tasks()) != 1 {
		t.Error("stale collection should be kept on load failure")
	}
	if store.Loading() {
		t.Error("Loading() should be false once the call settles")
	}
}

func TestBatchDeleteClearsSelection(t *testing.T) {
	store, remote := setupStore(t,
		record(1, models.TaskTypeExam, false),
		record(3, models.TaskTypeExam, false),
		record(5, models.TaskTypeExam, false),
		record(7, models.TaskTypeExam, false),
	)
	store.ToggleSelected(3)
	store.ToggleSelected(7)

	res := store.BatchDelete(context.Background(), []int64{3, 7})
	if !res.Success {
		t.Fatalf("BatchDelete() = %+v", res)
	}
	if got := store.Selection(); len(got) != 0 {
		t.Errorf("Selection() = %v, want empty", got)
	}
	if got := ids(store.Tasks()); !slices.Equal(got, []int64{1, 5}) {
		t.Errorf("Tasks() ids = %v, want [1 5]", got)
	}
	if len(remote.deleted) != 1 {
		t.Errorf("DeleteTasks calls = %d, want 1", len(remote.deleted))
	}
}

func TestBatchDeleteFailureKeepsSelection(t *testing.T) {
	store, remote := setupStore(t, record(1, models.TaskTypeExam, false), record(2, models.TaskTypeExam, false))
	remote.failIDs[2] = true
	store.ToggleSelected(1)
	store.ToggleSelected(2)

	res := store.BatchDelete(context.Background(), []int64{1, 2})
	if res.Success {
		t.Fatal("BatchDelete() should fail")
	}
	if got := store.Selection(); !slices.Equal(got, []int64{1, 2}) {
		t.Errorf("Selection() = %v, want [1 2]", got)
	}
	if len(store.Tasks()) != 2 {
		t.Error("collection changed on failure")
	}
}

func TestBatchDeleteEmptySelection(t *testing.T) {
	store, remote := setupStore(t, record(1, models.TaskTypeExam, false))
	res := store.BatchDelete(context.Background(), nil)
	if res.Success || !errors.Is(res.Err, apperrors.ErrValidation) {
		t.Errorf("BatchDelete(nil) = %+v", res)
	}
	if slices.Contains(remote.calls, "delete") {
		t.Error("remote called for an empty batch")
	}
}

func TestToggleCompletionTwiceRestores(t *testing.T) {
	store, remote := setupStore(t, record(1, models.TaskTypeExam, false))
	ctx := context.Background()

	if res := store.ToggleCompletion(ctx, 1); !res.Success {
		t.Fatalf("first toggle = %+v", res)
	}
	task, _ := store.Task(1)
	if !task.Completed {
		t.Error("first toggle should complete the task")
	}
	if res := store.ToggleCompletion(ctx, 1); !res.Success {
		t.Fatalf("second toggle = %+v", res)
	}
	task, _ = store.Task(1)
	if task.Completed {
		t.Error("second toggle should restore the original state")
	}
	if len(remote.updates[1]) != 2 {
		t.Errorf("UpdateTask calls = %d, want 2", len(remote.updates[1]))
	}
}

func TestToggleUnknownTaskIsSkipped(t *testing.T) {
	store, remote := setupStore(t)
	before := len(remote.calls)

	res := store.ToggleCompletion(context.Background(), 42)
	if !res.Success {
		t.Errorf("ToggleCompletion(unknown) = %+v", res)
	}
	if len(remote.calls) != before {
		t.Errorf("remote called: %v", remote.calls[before:])
	}
}

func TestBatchUpdateReportsPerItem(t *testing.T) {
	store, remote := setupStore(t,
		record(1, models.TaskTypeExam, false),
		record(2, models.TaskTypeExam, false),
		record(3, models.TaskTypeExam, false),
	)
	remote.failIDs[2] = true

	res := store.BatchUpdate(context.Background(), []int64{1, 2, 3}, models.TaskPatch{Completed: models.Some(true)})
	if res.Success {
		t.Error("batch with a failed item should not report success")
	}
	if len(res.Items) != 3 {
		t.Fatalf("Items = %d, want 3", len(res.Items))
	}
	if got := res.Failed(); !slices.Equal(got, []int64{2}) {
		t.Errorf("Failed() = %v, want [2]", got)
	}

	// not atomic: the others stay updated
	for _, id := range []int64{1, 3} {
		task, _ := store.Task(id)
		if !task.Completed {
			t.Errorf("task %d should be completed", id)
		}
	}
	task, _ := store.Task(2)
	if task.Completed {
		t.Error("task 2 should be unchanged")
	}
}

func TestFiltersAndSelection(t *testing.T) {
	store, _ := setupStore(t,
		record(1, models.TaskTypeExam, false),
		record(2, models.TaskTypeActivity, false),
		record(3, models.TaskTypeExam, true),
	)

	store.SetFilters(filter.Selection{Type: models.TaskTypeExam})
	if got := ids(store.Visible()); !slices.Equal(got, []int64{1, 3}) {
		t.Errorf("Visible() = %v, want [1 3]", got)
	}

	store.SelectAll()
	if got := store.Selection(); !slices.Equal(got, []int64{1, 3}) {
		t.Errorf("SelectAll() selected %v", got)
	}

	store.SetFilters(filter.Selection{Type: models.TaskTypeExam, Status: filter.StatusCompleted})
	if got := store.Selection(); !slices.Equal(got, []int64{3}) {
		t.Errorf("selection after narrowing = %v, want [3]", got)
	}

	store.ToggleAll()
	if store.IsSelected(3) {
		t.Error("ToggleAll() should clear a full selection")
	}
}

func TestSearchPrunesSelection(t *testing.T) {
	a := record(1, models.TaskTypeExam, false)
	a.Title = "Cálculo"
	b := record(2, models.TaskTypeExam, false)
	b.Title = "Física"
	store, _ := setupStore(t, a, b)

	store.SelectAll()
	store.SetSearch("cálc")
	if got := ids(store.Visible()); !slices.Equal(got, []int64{1}) {
		t.Errorf("Visible() = %v", got)
	}
	if got := store.Selection(); !slices.Equal(got, []int64{1}) {
		t.Errorf("Selection() = %v, want [1]", got)
	}
}

func TestTeardown(t *testing.T) {
	store, _ := setupStore(t, record(1, models.TaskTypeExam, false))
	store.SetSearch("task")
	store.ToggleSelected(1)

	store.Teardown()
	if store.UserID() != "" || len(store.Tasks()) != 0 || len(store.Selection()) != 0 || store.Search() != "" {
		t.Error("Teardown() left session state behind")
	}
	if res := store.Load(context.Background()); !errors.Is(res.Err, apperrors.ErrUnauthenticated) {
		t.Errorf("Load() after teardown = %+v", res)
	}
}

func TestFromRecord(t *testing.T) {
	name, color := "Física", "#DC2626"
	rec := record(9, models.TaskTypeAssignment, true)
	rec.SubjectName, rec.SubjectColor = &name, &color
	rec.DueTime = nil

	task := FromRecord(rec)
	if task.DueAt != "15/11/2025 00:00" {
		t.Errorf("DueAt = %q", task.DueAt)
	}
	if task.SubjectName != name || task.SubjectColor != color || !task.Completed {
		t.Errorf("task = %+v", task)
	}

	rec.DueDate = nil
	if FromRecord(rec).DueAt != "" {
		t.Error("undated record should have empty DueAt")
	}
}
