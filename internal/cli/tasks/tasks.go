package tasks

import (
	"fmt"
	"strings"

	"github.com/estudai/estudai/internal/models"
)

type TaskCmd struct {
	Add         TaskAddCmd         `cmd:"" help:"Add a new task."`
	Edit        TaskEditCmd        `cmd:"" help:"Edit an existing task."`
	Delete      TaskDeleteCmd      `cmd:"" help:"Delete a task."`
	List        TaskListCmd        `cmd:"" help:"List tasks with filters."`
	Toggle      TaskToggleCmd      `cmd:"" help:"Toggle a task between pending and completed."`
	BatchDelete TaskBatchDeleteCmd `cmd:"" name:"batch-delete" help:"Delete several tasks at once."`
	BatchUpdate TaskBatchUpdateCmd `cmd:"" name:"batch-update" help:"Apply the same change to several tasks."`
	Pending     TaskPendingCmd     `cmd:"" help:"List incomplete tasks."`
}

// printTask writes the one-line summary used by list and pending.
func printTask(t models.Task, showIDs bool) {
	status := " "
	if t.Completed {
		status = "x"
	}

	idStr := ""
	if showIDs {
		idStr = fmt.Sprintf(" (ID: %d)", t.ID)
	}

	due := t.DueAt
	if due == "" {
		due = "sem prazo"
	}

	fmt.Printf("  [%s] %-9s %s%s - %s (dificuldade %s)\n",
		status, t.Type.Label(), t.Title, idStr, due, t.DifficultyLabel())

	var details []string
	if t.SubjectName != "" {
		details = append(details, t.SubjectName)
	}
	if t.Priority != 0 {
		details = append(details, fmt.Sprintf("priority %d", t.Priority))
	}
	if len(details) > 0 {
		fmt.Printf("      %s\n", strings.Join(details, ", "))
	}
}
