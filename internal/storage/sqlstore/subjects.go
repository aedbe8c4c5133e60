package sqlstore

import (
	"context"
	"fmt"

	"github.com/estudai/estudai/internal/constants"
	apperrors "github.com/estudai/estudai/internal/errors"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/realtime"
	"github.com/estudai/estudai/internal/validation"
)

func (s *Store) ListSubjects(ctx context.Context, userID string) ([]models.Subject, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT id, user_id, name, instructor, code, color, created_at, updated_at
		FROM subjects WHERE user_id = ?
		ORDER BY LOWER(name), id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		var sub models.Subject
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.Instructor, &sub.Code, &sub.Color,
			&sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, sub)
	}
	return subjects, rows.Err()
}

func (s *Store) CreateSubject(ctx context.Context, userID string, sub models.Subject) (models.Subject, error) {
	if err := validation.Subject(sub); err != nil {
		return models.Subject{}, err
	}
	if sub.Color == "" {
		sub.Color = constants.DefaultSubjectColor
	}

	ts := s.timestamp()
	err := s.queryRow(ctx, s.db, `
		INSERT INTO subjects (user_id, name, instructor, code, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		userID, sub.Name, sub.Instructor, sub.Code, sub.Color, ts, ts,
	).Scan(&sub.ID)
	if err != nil {
		return models.Subject{}, fmt.Errorf("insert subject: %w", err)
	}

	sub.UserID = userID
	sub.CreatedAt, sub.UpdatedAt = ts, ts
	s.publish(ctx, constants.TableSubjects, realtime.ActionInsert, userID, sub.ID)
	return sub, nil
}

func (s *Store) UpdateSubject(ctx context.Context, userID string, id int64, patch models.SubjectPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	if err := validation.SubjectPatch(patch); err != nil {
		return err
	}

	var u updateSet
	if v, ok := patch.Name.Get(); ok {
		u.set("name", v)
	}
	if v, ok := patch.Instructor.Get(); ok {
		u.set("instructor", v)
	}
	if v, ok := patch.Code.Get(); ok {
		u.set("code", v)
	}
	if v, ok := patch.Color.Get(); ok {
		u.set("color", v)
	}
	u.set("updated_at", s.timestamp())

	args := append(u.args, id, userID)
	res, err := s.exec(ctx, s.db, "UPDATE subjects SET "+u.clause()+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		return fmt.Errorf("update subject %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("subject %d: %w", id, apperrors.ErrNotFound)
	}

	s.publish(ctx, constants.TableSubjects, realtime.ActionUpdate, userID, id)
	return nil
}

// DeleteSubject removes the subject, its schedule entries, and untags its tasks.
func (s *Store) DeleteSubject(ctx context.Context, userID string, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := s.exec(ctx, tx, "UPDATE tasks SET subject_id = NULL WHERE subject_id = ? AND user_id = ?", id, userID); err != nil {
		return fmt.Errorf("untag tasks: %w", err)
	}
	if _, err := s.exec(ctx, tx, "DELETE FROM schedule_entries WHERE subject_id = ? AND user_id = ?", id, userID); err != nil {
		return fmt.Errorf("delete schedule entries: %w", err)
	}
	res, err := s.exec(ctx, tx, "DELETE FROM subjects WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete subject %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("subject %d: %w", id, apperrors.ErrNotFound)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.publish(ctx, constants.TableSubjects, realtime.ActionDelete, userID, id)
	s.publish(ctx, constants.TableSchedule, realtime.ActionDelete, userID)
	s.publish(ctx, constants.TableTasks, realtime.ActionUpdate, userID)
	return nil
}
