package filter

import (
	"fmt"
	"strings"

	"github.com/estudai/estudai/internal/models"
)

// Period narrows tasks by due date relative to today.
type Period string

const (
	PeriodAll       Period = "ALL"
	PeriodToday     Period = "TODAY"
	PeriodThisWeek  Period = "THIS_WEEK"
	PeriodThisMonth Period = "THIS_MONTH"
	PeriodNext7Days Period = "NEXT_7_DAYS"
)

// Periods lists the period options in display order.
var Periods = []Period{PeriodAll, PeriodToday, PeriodThisWeek, PeriodThisMonth, PeriodNext7Days}

func (p Period) Label() string {
	switch p {
	case PeriodToday:
		return "Hoje"
	case PeriodThisWeek:
		return "Esta semana"
	case PeriodThisMonth:
		return "Este mês"
	case PeriodNext7Days:
		return "Próximos 7 dias"
	}
	return allLabel
}

// Status narrows tasks by completion. There is no "pending" value.
type Status string

const (
	StatusAll       Status = "ALL"
	StatusCompleted Status = "COMPLETED"
)

var Statuses = []Status{StatusAll, StatusCompleted}

func (s Status) Label() string {
	if s == StatusCompleted {
		return "Concluídas"
	}
	return allLabel
}

const allLabel = "Todos"

// ParsePeriod accepts the option name or its label, case-insensitively.
func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if matchesOption(s, string(p), p.Label()) {
			return p, nil
		}
	}
	switch normalize(s) {
	case "", "all":
		return PeriodAll, nil
	case "today":
		return PeriodToday, nil
	case "week", "this-week":
		return PeriodThisWeek, nil
	case "month", "this-month":
		return PeriodThisMonth, nil
	case "next7", "next-7-days":
		return PeriodNext7Days, nil
	}
	return "", fmt.Errorf("invalid period: %q", s)
}

// ParseStatus accepts the option name or its label, case-insensitively.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if matchesOption(s, string(st), st.Label()) {
			return st, nil
		}
	}
	switch normalize(s) {
	case "", "all":
		return StatusAll, nil
	case "completed", "done":
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("invalid status: %q", s)
}

// ParseType accepts "all"/"Todos" (returns "") or any task type spelling.
func ParseType(s string) (models.TaskType, error) {
	if isAll(s) {
		return "", nil
	}
	return models.ParseTaskType(s)
}

// ParseDifficulty accepts "all"/"Todos" (returns "") or any difficulty spelling.
func ParseDifficulty(s string) (models.Difficulty, error) {
	if isAll(s) {
		return "", nil
	}
	return models.ParseDifficulty(s)
}

func isAll(s string) bool {
	n := normalize(s)
	return n == "" || n == "all" || n == "todos"
}

func matchesOption(s string, names ...string) bool {
	n := normalize(s)
	for _, name := range names {
		if n == normalize(name) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
