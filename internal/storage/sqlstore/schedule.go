package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/estudai/estudai/internal/constants"
	apperrors "github.com/estudai/estudai/internal/errors"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/realtime"
	"github.com/estudai/estudai/internal/utils"
	"github.com/estudai/estudai/internal/validation"
)

const scheduleSelect = `
	SELECT e.id, e.user_id, e.subject_id, e.weekday, e.start_time, e.end_time, e.location, e.notes,
	       e.created_at, e.updated_at, sub.name, sub.color
	FROM schedule_entries e JOIN subjects sub ON sub.id = e.subject_id
	WHERE e.user_id = ?`

func (s *Store) listSchedule(ctx context.Context, query string, args ...any) ([]models.ScheduleEntry, error) {
	rows, err := s.query(ctx, s.db, query+" ORDER BY e.weekday, e.start_time, e.id", args...)
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	defer rows.Close()

	var entries []models.ScheduleEntry
	for rows.Next() {
		var e models.ScheduleEntry
		var weekday int
		if err := rows.Scan(&e.ID, &e.UserID, &e.SubjectID, &weekday, &e.Start, &e.End, &e.Location, &e.Notes,
			&e.CreatedAt, &e.UpdatedAt, &e.SubjectName, &e.SubjectColor); err != nil {
			return nil, fmt.Errorf("scan schedule entry: %w", err)
		}
		e.Weekday = time.Weekday(weekday)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) ListSchedule(ctx context.Context, userID string) ([]models.ScheduleEntry, error) {
	return s.listSchedule(ctx, scheduleSelect, userID)
}

// ScheduleForDay returns one weekday's classes, 0 being Sunday.
func (s *Store) ScheduleForDay(ctx context.Context, userID string, day int) ([]models.ScheduleEntry, error) {
	if day < 0 || day > 6 {
		return nil, apperrors.Invalid("weekday", "must be between 0 (Sunday) and 6 (Saturday)")
	}
	return s.listSchedule(ctx, scheduleSelect+" AND e.weekday = ?", userID, day)
}

func (s *Store) CreateScheduleEntry(ctx context.Context, userID string, e models.ScheduleEntry) (models.ScheduleEntry, error) {
	if err := validation.ScheduleEntry(e); err != nil {
		return models.ScheduleEntry{}, err
	}
	if err := s.ownsSubject(ctx, userID, &e.SubjectID); err != nil {
		return models.ScheduleEntry{}, err
	}
	e.Start, _ = utils.NormalizeClock(e.Start)
	e.End, _ = utils.NormalizeClock(e.End)

	ts := s.timestamp()
	var id int64
	err := s.queryRow(ctx, s.db, `
		INSERT INTO schedule_entries (user_id, subject_id, weekday, start_time, end_time, location, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		userID, e.SubjectID, int(e.Weekday), e.Start, e.End, e.Location, e.Notes, ts, ts,
	).Scan(&id)
	if err != nil {
		return models.ScheduleEntry{}, fmt.Errorf("insert schedule entry: %w", err)
	}

	s.publish(ctx, constants.TableSchedule, realtime.ActionInsert, userID, id)

	entries, err := s.listSchedule(ctx, scheduleSelect+" AND e.id = ?", userID, id)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	if len(entries) == 0 {
		return models.ScheduleEntry{}, fmt.Errorf("schedule entry %d: %w", id, apperrors.ErrNotFound)
	}
	return entries[0], nil
}

// UpdateScheduleEntry merges patch over the stored entry and validates the result.
func (s *Store) UpdateScheduleEntry(ctx context.Context, userID string, id int64, patch models.ScheduleEntryPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	current, err := s.listSchedule(ctx, scheduleSelect+" AND e.id = ?", userID, id)
	if err != nil {
		return err
	}
	if len(current) == 0 {
		return fmt.Errorf("schedule entry %d: %w", id, apperrors.ErrNotFound)
	}

	merged := current[0]
	merged.SubjectID = patch.SubjectID.OrElse(merged.SubjectID)
	merged.Weekday = patch.Weekday.OrElse(merged.Weekday)
	merged.Start = patch.Start.OrElse(merged.Start)
	merged.End = patch.End.OrElse(merged.End)
	merged.Location = patch.Location.OrElse(merged.Location)
	merged.Notes = patch.Notes.OrElse(merged.Notes)

	if err := validation.ScheduleEntry(merged); err != nil {
		return err
	}
	if patch.SubjectID.IsSet() {
		if err := s.ownsSubject(ctx, userID, &merged.SubjectID); err != nil {
			return err
		}
	}
	merged.Start, _ = utils.NormalizeClock(merged.Start)
	merged.End, _ = utils.NormalizeClock(merged.End)

	_, err = s.exec(ctx, s.db, `
		UPDATE schedule_entries
		SET subject_id = ?, weekday = ?, start_time = ?, end_time = ?, location = ?, notes = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		merged.SubjectID, int(merged.Weekday), merged.Start, merged.End, merged.Location, merged.Notes,
		s.timestamp(), id, userID)
	if err != nil {
		return fmt.Errorf("update schedule entry %d: %w", id, err)
	}

	s.publish(ctx, constants.TableSchedule, realtime.ActionUpdate, userID, id)
	return nil
}

func (s *Store) DeleteScheduleEntry(ctx context.Context, userID string, id int64) error {
	res, err := s.exec(ctx, s.db, "DELETE FROM schedule_entries WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete schedule entry %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("schedule entry %d: %w", id, apperrors.ErrNotFound)
	}

	s.publish(ctx, constants.TableSchedule, realtime.ActionDelete, userID, id)
	return nil
}
