// Package filter decides which tasks are visible for a filter selection and
// a free-text search.
package filter

import (
	"strings"
	"time"

	"github.com/estudai/estudai/internal/datecodec"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/utils"
)

// Selection is the user-chosen filter criteria. The zero value of every
// field means "all": an empty Type or Difficulty does not narrow.
type Selection struct {
	Period     Period            `json:"period"`
	Type       models.TaskType   `json:"type"`
	Difficulty models.Difficulty `json:"difficulty"`
	Status     Status            `json:"status"`
}

// IsActive reports whether any criterion narrows the task list.
func (s Selection) IsActive() bool {
	return !isAllPeriod(s.Period) || s.Type != "" || s.Difficulty != "" || s.Status == StatusCompleted
}

func isAllPeriod(p Period) bool {
	return p == "" || p == PeriodAll
}

// Include reports whether task passes every criterion of sel. now is used
// for the period criterion and its location decides the calendar day.
func Include(task models.Task, sel Selection, now time.Time) bool {
	if sel.Type != "" && task.Type != sel.Type {
		return false
	}
	if sel.Difficulty != "" && (task.Difficulty == nil || *task.Difficulty != sel.Difficulty) {
		return false
	}
	if sel.Status == StatusCompleted && !task.Completed {
		return false
	}
	return inPeriod(task, sel.Period, now)
}

func inPeriod(task models.Task, period Period, now time.Time) bool {
	if isAllPeriod(period) {
		return true
	}

	due, ok := datecodec.Parse(task.DueAt, now.Location())
	if !ok {
		return false
	}

	today := utils.StartOfDay(now)
	switch period {
	case PeriodToday:
		return utils.CalendarDaysBetween(today, due) == 0
	case PeriodThisWeek:
		start := utils.StartOfWeek(today)
		return !due.Before(start) && due.Before(start.AddDate(0, 0, 7))
	case PeriodThisMonth:
		return due.Year() == today.Year() && due.Month() == today.Month()
	case PeriodNext7Days:
		days := utils.CalendarDaysBetween(today, due)
		return days >= 0 && days <= 7
	}
	return true
}

// MatchesSearch reports whether query occurs in the task's title or
// description, ignoring case. An empty query matches everything.
func MatchesSearch(task models.Task, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(task.Title), q) ||
		strings.Contains(strings.ToLower(task.Description), q)
}

// Apply returns the tasks that pass both sel and query, keeping their order.
func Apply(tasks []models.Task, sel Selection, query string, now time.Time) []models.Task {
	visible := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if Include(t, sel, now) && MatchesSearch(t, query) {
			visible = append(visible, t)
		}
	}
	return visible
}

// IDs returns the identifiers of tasks in order.
func IDs(tasks []models.Task) []int64 {
	ids := make([]int64, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}
