// Package reminder picks the pending tasks that are due soon enough to
// warn about.
package reminder

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/estudai/estudai/internal/datecodec"
	"github.com/estudai/estudai/internal/models"
)

// Due is a task that falls inside the alert window.
type Due struct {
	Task  models.Task
	At    time.Time
	Until time.Duration
}

// DueSoon returns pending tasks due between now and now plus the alert lead
// time, soonest first. It returns nothing when notifications or due alerts
// are turned off. Overdue and undated tasks are skipped.
func DueSoon(tasks []models.Task, settings models.Settings, now time.Time) []Due {
	if !settings.NotificationsEnabled || !settings.DueAlerts {
		return nil
	}
	window := time.Duration(settings.AlertLeadHours) * time.Hour
	limit := now.Add(window)

	var out []Due
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		at, ok := datecodec.Parse(t.DueAt, now.Location())
		if !ok || at.Before(now) || at.After(limit) {
			continue
		}
		out = append(out, Due{Task: t, At: at, Until: at.Sub(now)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At.Before(out[j].At)
	})
	return out
}

// Message renders one reminder line, e.g. "PROVA Cálculo I vence em 3h (15/11/2025 14:30)".
func Message(d Due) string {
	return fmt.Sprintf("%s %s vence em %s (%s)", d.Task.Type.Label(), d.Task.Title, humanize(d.Until), d.Task.DueAt)
}

// Summary is the notification title for a batch of reminders.
func Summary(due []Due) string {
	switch len(due) {
	case 0:
		return ""
	case 1:
		return "1 tarefa próxima do prazo"
	}
	return fmt.Sprintf("%d tarefas próximas do prazo", len(due))
}

// Body joins the messages of due, one per line.
func Body(due []Due) string {
	lines := make([]string, 0, len(due))
	for _, d := range due {
		lines = append(lines, Message(d))
	}
	return strings.Join(lines, "\n")
}

func humanize(d time.Duration) string {
	if d < time.Hour {
		return fmt.Sprintf("%dmin", int(d.Minutes()))
	}
	hours := int(d.Hours())
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}
	days, rest := hours/24, hours%24
	if rest == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd %dh", days, rest)
}
