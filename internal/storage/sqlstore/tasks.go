package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/estudai/estudai/internal/constants"
	apperrors "github.com/estudai/estudai/internal/errors"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/realtime"
)

const taskColumns = `
	t.id, t.user_id, t.subject_id, t.title, t.description, t.type, t.difficulty,
	t.due_date, t.due_time, t.completed, t.priority, t.created_at, t.updated_at,
	sub.name, sub.color`

const taskFrom = `
	FROM tasks t LEFT JOIN subjects sub ON sub.id = t.subject_id`

// Undated tasks sort after every dated one.
const taskOrder = `
	ORDER BY CASE WHEN t.due_date IS NULL THEN 1 ELSE 0 END, t.due_date, t.due_time, t.id`

func scanTask(row interface{ Scan(...any) error }) (models.TaskRecord, error) {
	var rec models.TaskRecord
	var subjectID sql.NullInt64
	var difficulty, dueDate, dueTime, subjectName, subjectColor sql.NullString
	var typ string

	err := row.Scan(
		&rec.ID, &rec.UserID, &subjectID, &rec.Title, &rec.Description, &typ, &difficulty,
		&dueDate, &dueTime, &rec.Completed, &rec.Priority, &rec.CreatedAt, &rec.UpdatedAt,
		&subjectName, &subjectColor,
	)
	if err != nil {
		return models.TaskRecord{}, err
	}

	rec.Type = models.TaskType(typ)
	rec.SubjectID = nullInt(subjectID)
	if difficulty.Valid {
		d := models.Difficulty(difficulty.String)
		rec.Difficulty = &d
	}
	rec.DueDate = nullString(dueDate)
	rec.DueTime = nullString(dueTime)
	rec.SubjectName = nullString(subjectName)
	rec.SubjectColor = nullString(subjectColor)
	return rec, nil
}

func (s *Store) listTasks(ctx context.Context, userID string, pendingOnly bool) ([]models.TaskRecord, error) {
	query := "SELECT" + taskColumns + taskFrom + " WHERE t.user_id = ?"
	args := []any{userID}
	if pendingOnly {
		query += " AND t.completed = ?"
		args = append(args, false)
	}
	query += taskOrder

	rows, err := s.query(ctx, s.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var records []models.TaskRecord
	for rows.Next() {
		rec, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) ListTasks(ctx context.Context, userID string) ([]models.TaskRecord, error) {
	return s.listTasks(ctx, userID, false)
}

func (s *Store) PendingTasks(ctx context.Context, userID string) ([]models.TaskRecord, error) {
	return s.listTasks(ctx, userID, true)
}

func (s *Store) getTask(ctx context.Context, userID string, id int64) (models.TaskRecord, error) {
	row := s.queryRow(ctx, s.db, "SELECT"+taskColumns+taskFrom+" WHERE t.user_id = ? AND t.id = ?", userID, id)
	rec, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TaskRecord{}, fmt.Errorf("task %d: %w", id, apperrors.ErrNotFound)
	}
	return rec, err
}

// ownsSubject reports an error unless subjectID is nil or one of userID's subjects.
func (s *Store) ownsSubject(ctx context.Context, userID string, subjectID *int64) error {
	if subjectID == nil {
		return nil
	}
	var count int
	if err := s.queryRow(ctx, s.db, "SELECT COUNT(*) FROM subjects WHERE id = ? AND user_id = ?", *subjectID, userID).Scan(&count); err != nil {
		return fmt.Errorf("check subject: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("subject %d: %w", *subjectID, apperrors.ErrNotFound)
	}
	return nil
}

// CreateTask inserts rec for userID. ID, ownership and timestamps are assigned here.
func (s *Store) CreateTask(ctx context.Context, userID string, rec models.TaskRecord) (models.TaskRecord, error) {
	if err := s.ownsSubject(ctx, userID, rec.SubjectID); err != nil {
		return models.TaskRecord{}, err
	}

	ts := s.timestamp()
	var id int64
	err := s.queryRow(ctx, s.db, `
		INSERT INTO tasks (user_id, subject_id, title, description, type, difficulty,
		                   due_date, due_time, completed, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		userID, rec.SubjectID, rec.Title, rec.Description, string(rec.Type), difficultyArg(rec.Difficulty),
		rec.DueDate, rec.DueTime, rec.Completed, rec.Priority, ts, ts,
	).Scan(&id)
	if err != nil {
		return models.TaskRecord{}, fmt.Errorf("insert task: %w", err)
	}

	s.publish(ctx, constants.TableTasks, realtime.ActionInsert, userID, id)
	return s.getTask(ctx, userID, id)
}

// UpdateTask applies the set fields of patch. An empty patch is a no-op.
func (s *Store) UpdateTask(ctx context.Context, userID string, id int64, patch models.TaskRecordPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	var u updateSet
	if v, ok := patch.Title.Get(); ok {
		u.set("title", v)
	}
	if v, ok := patch.Description.Get(); ok {
		u.set("description", v)
	}
	if v, ok := patch.Type.Get(); ok {
		u.set("type", string(v))
	}
	if v, ok := patch.Difficulty.Get(); ok {
		u.set("difficulty", difficultyArg(v))
	}
	if v, ok := patch.DueDate.Get(); ok {
		u.set("due_date", v)
	}
	if v, ok := patch.DueTime.Get(); ok {
		u.set("due_time", v)
	}
	if v, ok := patch.Completed.Get(); ok {
		u.set("completed", v)
	}
	if v, ok := patch.SubjectID.Get(); ok {
		if err := s.ownsSubject(ctx, userID, v); err != nil {
			return err
		}
		u.set("subject_id", v)
	}
	if v, ok := patch.Priority.Get(); ok {
		u.set("priority", v)
	}
	u.set("updated_at", s.timestamp())

	args := append(u.args, id, userID)
	res, err := s.exec(ctx, s.db, "UPDATE tasks SET "+u.clause()+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		return fmt.Errorf("update task %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task %d: %w", id, apperrors.ErrNotFound)
	}

	s.publish(ctx, constants.TableTasks, realtime.ActionUpdate, userID, id)
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, userID string, id int64) error {
	res, err := s.exec(ctx, s.db, "DELETE FROM tasks WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task %d: %w", id, apperrors.ErrNotFound)
	}

	s.publish(ctx, constants.TableTasks, realtime.ActionDelete, userID, id)
	return nil
}

// DeleteTasks removes every listed task owned by userID in one statement.
// Ids that do not exist are ignored.
func (s *Store) DeleteTasks(ctx context.Context, userID string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	args := make([]any, 0, len(ids)+1)
	args = append(args, userID)
	for _, id := range ids {
		args = append(args, id)
	}
	if _, err := s.exec(ctx, s.db, "DELETE FROM tasks WHERE user_id = ? AND id IN ("+inList(len(ids))+")", args...); err != nil {
		return fmt.Errorf("delete tasks: %w", err)
	}

	s.publish(ctx, constants.TableTasks, realtime.ActionDelete, userID, ids...)
	return nil
}

func difficultyArg(d *models.Difficulty) any {
	if d == nil {
		return nil
	}
	return string(*d)
}
