// Package taskstore keeps one user's task collection in memory and mirrors
// every change through the remote store. Mutations never patch the local
// collection in place: they call the remote and then reload the whole list.
//
// No operation panics or returns a bare error. Every outcome is a Result so
// callers can show a notice and carry on.
package taskstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/estudai/estudai/internal/datecodec"
	apperrors "github.com/estudai/estudai/internal/errors"
	"github.com/estudai/estudai/internal/filter"
	"github.com/estudai/estudai/internal/logger"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/selection"
	"github.com/estudai/estudai/internal/storage"
	"github.com/estudai/estudai/internal/validation"
)

// WarnDueIgnored is reported when an edit carried a due date without a time.
const WarnDueIgnored = "due date ignored: expected DD/MM/YYYY HH:MM"

// Result is the outcome of a store operation.
type Result struct {
	Success  bool
	Err      error
	Warnings []string
}

// Message returns the error text, or "" on success.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

func ok(warnings ...string) Result {
	return Result{Success: true, Warnings: warnings}
}

func failed(err error) Result {
	return Result{Err: err}
}

// ItemResult is the outcome of one id in a batch.
type ItemResult struct {
	ID int64
	Result
}

// BatchResult collects per-id outcomes. The embedded Result is successful
// only when every item and the final reload succeeded.
type BatchResult struct {
	Result
	Items []ItemResult
}

// Failed returns the ids whose update did not go through.
func (b BatchResult) Failed() []int64 {
	var ids []int64
	for _, item := range b.Items {
		if !item.Success {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// Draft is a new task as entered in the create form.
type Draft struct {
	Title       string
	Description string
	Type        models.TaskType
	Difficulty  *models.Difficulty
	DueAt       string
	SubjectID   *int64
	Priority    int
}

// Store is the session-scoped task collection of one signed-in user.
type Store struct {
	remote storage.TaskRemote
	loc    *time.Location
	now    func() time.Time

	mu      sync.RWMutex
	userID  string
	tasks   []models.Task
	filters filter.Selection
	search  string
	sel     *selection.Manager
	pending int
}

// New returns an empty store over remote. Calendar days are taken in loc;
// a nil loc means time.Local.
func New(remote storage.TaskRemote, loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{
		remote: remote,
		loc:    loc,
		now:    time.Now,
		sel:    selection.New(),
	}
}

// SetClock replaces the time source used by the period filter.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Init binds the store to userID and loads its tasks.
func (s *Store) Init(ctx context.Context, userID string) Result {
	s.mu.Lock()
	s.userID = userID
	s.tasks = nil
	s.sel = selection.New()
	s.mu.Unlock()

	if userID == "" {
		return failed(apperrors.ErrUnauthenticated)
	}
	return s.Load(ctx)
}

// Teardown forgets the user and every piece of session state.
func (s *Store) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.tasks = nil
	s.filters = filter.Selection{}
	s.search = ""
	s.sel = selection.New()
}

func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Loading reports whether a remote call is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending > 0
}

// begin marks a remote call in flight and returns the bound user.
func (s *Store) begin() (string, func()) {
	s.mu.Lock()
	s.pending++
	userID := s.userID
	s.mu.Unlock()
	return userID, func() {
		s.mu.Lock()
		s.pending--
		s.mu.Unlock()
	}
}

// Load replaces the collection with the remote one. On failure the current
// collection is kept as is.
func (s *Store) Load(ctx context.Context) Result {
	userID, done := s.begin()
	defer done()
	if userID == "" {
		return failed(apperrors.ErrUnauthenticated)
	}
	return s.reload(ctx, userID)
}

func (s *Store) reload(ctx context.Context, userID string) Result {
	records, err := s.remote.ListTasks(ctx, userID)
	if err != nil {
		logger.Warn("Failed to load tasks", "user", userID, "error", err)
		return failed(fmt.Errorf("load tasks: %w", err))
	}

	tasks := make([]models.Task, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, FromRecord(rec))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Teardown or a different user while the call was in flight.
	if s.userID != userID {
		return failed(apperrors.ErrUnauthenticated)
	}
	s.tasks = tasks
	s.sel.Prune(filter.IDs(s.visibleLocked()))
	return ok()
}

// FromRecord maps a wire row to the display task.
func FromRecord(rec models.TaskRecord) models.Task {
	t := models.Task{
		ID:          rec.ID,
		UserID:      rec.UserID,
		SubjectID:   rec.SubjectID,
		Type:        rec.Type,
		Difficulty:  rec.Difficulty,
		Title:       rec.Title,
		Description: rec.Description,
		DueAt:       datecodec.FromWire(rec.DueDate, rec.DueTime),
		Completed:   rec.Completed,
		Priority:    rec.Priority,
	}
	if rec.SubjectName != nil {
		t.SubjectName = *rec.SubjectName
	}
	if rec.SubjectColor != nil {
		t.SubjectColor = *rec.SubjectColor
	}
	return t
}

// Create validates d and inserts it. A due value without a time is stored
// at 00:00.
func (s *Store) Create(ctx context.Context, d Draft) Result {
	if err := validation.Task(validation.TaskForm{Title: d.Title, Description: d.Description, DueAt: d.DueAt}); err != nil {
		return failed(err)
	}
	if d.Type == "" {
		d.Type = models.TaskTypeActivity
	}
	if !d.Type.Valid() {
		return failed(apperrors.Invalid("type", "unknown task type"))
	}
	if d.Difficulty != nil && !d.Difficulty.Valid() {
		return failed(apperrors.Invalid("difficulty", "unknown difficulty"))
	}

	userID, done := s.begin()
	defer done()
	if userID == "" {
		return failed(apperrors.ErrUnauthenticated)
	}

	parts, _ := datecodec.Decode(d.DueAt)
	dueDate := parts.Date
	dueTime := parts.TimeOrDefault() + ":00"

	rec := models.TaskRecord{
		SubjectID:   d.SubjectID,
		Title:       d.Title,
		Description: d.Description,
		Type:        d.Type,
		Difficulty:  d.Difficulty,
		DueDate:     &dueDate,
		DueTime:     &dueTime,
		Completed:   false,
		Priority:    d.Priority,
	}
	if _, err := s.remote.CreateTask(ctx, userID, rec); err != nil {
		logger.Error("Failed to create task", "user", userID, "error", err)
		return failed(fmt.Errorf("create task: %w", err))
	}
	return s.reload(ctx, userID)
}

// toRecordPatch translates a display patch. A DueAt that does not carry
// both a date and a time is dropped with a warning.
func toRecordPatch(p models.TaskPatch) (models.TaskRecordPatch, []string) {
	rp := models.TaskRecordPatch{
		Title:       p.Title,
		Description: p.Description,
		Type:        p.Type,
		Difficulty:  p.Difficulty,
		Completed:   p.Completed,
		SubjectID:   p.SubjectID,
		Priority:    p.Priority,
	}

	var warnings []string
	if due, set := p.DueAt.Get(); set {
		if date, clock, ok := datecodec.ToWire(due); ok {
			rp.DueDate = models.Some(&date)
			rp.DueTime = models.Some(&clock)
		} else {
			warnings = append(warnings, WarnDueIgnored)
		}
	}
	return rp, warnings
}

// Update sends only the fields set in p.
func (s *Store) Update(ctx context.Context, id int64, p models.TaskPatch) Result {
	if err := validation.TaskPatch(p); err != nil {
		return failed(err)
	}

	userID, done := s.begin()
	defer done()
	if userID == "" {
		return failed(apperrors.ErrUnauthenticated)
	}

	rp, warnings := toRecordPatch(p)
	if err := s.remote.UpdateTask(ctx, userID, id, rp); err != nil {
		logger.Error("Failed to update task", "user", userID, "task", id, "error", err)
		return failed(fmt.Errorf("update task %d: %w", id, err))
	}

	res := s.reload(ctx, userID)
	res.Warnings = append(warnings, res.Warnings...)
	return res
}

// Delete removes one task and clears the selection on success.
func (s *Store) Delete(ctx context.Context, id int64) Result {
	userID, done := s.begin()
	defer done()
	if userID == "" {
		return failed(apperrors.ErrUnauthenticated)
	}

	if err := s.remote.DeleteTask(ctx, userID, id); err != nil {
		logger.Error("Failed to delete task", "user", userID, "task", id, "error", err)
		return failed(fmt.Errorf("delete task %d: %w", id, err))
	}
	return s.afterDelete(ctx, userID)
}

// BatchDelete removes every id in one remote call and clears the selection
// on success.
func (s *Store) BatchDelete(ctx context.Context, ids []int64) Result {
	if len(ids) == 0 {
		return failed(apperrors.Invalid("selection", "select at least one task"))
	}

	userID, done := s.begin()
	defer done()
	if userID == "" {
		return failed(apperrors.ErrUnauthenticated)
	}

	if err := s.remote.DeleteTasks(ctx, userID, ids); err != nil {
		logger.Error("Failed to delete tasks", "user", userID, "count", len(ids), "error", err)
		return failed(fmt.Errorf("delete tasks: %w", err))
	}
	return s.afterDelete(ctx, userID)
}

func (s *Store) afterDelete(ctx context.Context, userID string) Result {
	s.mu.Lock()
	s.sel.Clear()
	s.mu.Unlock()
	return s.reload(ctx, userID)
}

// ToggleCompletion flips the completed flag of a task using the local copy.
// An id that is not in the collection is skipped without a remote call.
func (s *Store) ToggleCompletion(ctx context.Context, id int64) Result {
	s.mu.RLock()
	var current *models.Task
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			t := s.tasks[i]
			current = &t
			break
		}
	}
	s.mu.RUnlock()
	if current == nil {
		logger.Debug("Toggle skipped for unknown task", "task", id)
		return ok()
	}

	userID, done := s.begin()
	defer done()
	if userID == "" {
		return failed(apperrors.ErrUnauthenticated)
	}

	patch := models.TaskRecordPatch{Completed: models.Some(!current.Completed)}
	if err := s.remote.UpdateTask(ctx, userID, id, patch); err != nil {
		logger.Error("Failed to toggle task", "user", userID, "task", id, "error", err)
		return failed(fmt.Errorf("toggle task %d: %w", id, err))
	}
	return s.reload(ctx, userID)
}

// BatchUpdate applies p to each id in order and reloads once at the end.
// It is not atomic: ids before a failure stay updated.
func (s *Store) BatchUpdate(ctx context.Context, ids []int64, p models.TaskPatch) BatchResult {
	if len(ids) == 0 {
		return BatchResult{Result: failed(apperrors.Invalid("selection", "select at least one task"))}
	}
	if err := validation.TaskPatch(p); err != nil {
		return BatchResult{Result: failed(err)}
	}

	userID, done := s.begin()
	defer done()
	if userID == "" {
		return BatchResult{Result: failed(apperrors.ErrUnauthenticated)}
	}

	rp, warnings := toRecordPatch(p)
	out := BatchResult{Items: make([]ItemResult, 0, len(ids))}
	failures := 0
	for _, id := range ids {
		if err := s.remote.UpdateTask(ctx, userID, id, rp); err != nil {
			logger.Warn("Batch update failed for task", "user", userID, "task", id, "error", err)
			out.Items = append(out.Items, ItemResult{ID: id, Result: failed(fmt.Errorf("update task %d: %w", id, err))})
			failures++
			continue
		}
		out.Items = append(out.Items, ItemResult{ID: id, Result: ok()})
	}

	out.Result = s.reload(ctx, userID)
	out.Warnings = append(warnings, out.Warnings...)
	if failures > 0 && out.Success {
		out.Success = false
		out.Err = fmt.Errorf("%d of %d tasks were not updated", failures, len(ids))
	}
	return out
}

// Tasks returns a copy of the full collection.
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Task(nil), s.tasks...)
}

// Task returns the local copy of one task.
func (s *Store) Task(id int64) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// Visible returns the tasks that pass the filters and the search query.
func (s *Store) Visible() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visibleLocked()
}

func (s *Store) visibleLocked() []models.Task {
	return filter.Apply(s.tasks, s.filters, s.search, s.now().In(s.loc))
}

func (s *Store) Filters() filter.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetFilters replaces the filter criteria and drops selected ids that are
// no longer visible.
func (s *Store) SetFilters(sel filter.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = sel
	s.sel.Prune(filter.IDs(s.visibleLocked()))
}

func (s *Store) Search() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}

func (s *Store) SetSearch(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = query
	s.sel.Prune(filter.IDs(s.visibleLocked()))
}

// Selection returns the selected ids in ascending order.
func (s *Store) Selection() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel.IDs()
}

func (s *Store) IsSelected(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel.Contains(id)
}

func (s *Store) ToggleSelected(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Toggle(id)
}

// SelectAll selects exactly the visible tasks.
func (s *Store) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.SelectAll(filter.IDs(s.visibleLocked()))
}

// ToggleAll selects every visible task, or clears the selection when they
// are all selected already.
func (s *Store) ToggleAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.ToggleAll(filter.IDs(s.visibleLocked()))
}

func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Clear()
}

func (s *Store) SelectionMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel.Active()
}

// EnterSelectionMode starts multi-select; ExitSelectionMode leaves it and
// clears the selection.
func (s *Store) EnterSelectionMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Enter()
}

func (s *Store) ExitSelectionMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Exit()
}
