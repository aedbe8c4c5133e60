package system

import (
	"context"
	"testing"

	"github.com/estudai/estudai/internal/cli/clitest"
	apperrors "github.com/estudai/estudai/internal/errors"
)

func TestDebugDBPathCmd(t *testing.T) {
	ctx, _ := clitest.Setup(t)

	if err := (&DebugDBPathCmd{}).Run(ctx); err != nil {
		t.Errorf("debug db-path command failed: %v", err)
	}
}

func TestDebugDumpTaskCmd(t *testing.T) {
	ctx, _ := clitest.Setup(t)
	addTask(t, ctx, "Cálculo", "14/11/2025 13:00")

	store, _, err := ctx.Tasks(context.Background())
	if err != nil {
		t.Fatalf("Tasks() error = %v", err)
	}
	id := store.Tasks()[0].ID

	if err := (&DebugDumpTaskCmd{ID: id}).Run(ctx); err != nil {
		t.Errorf("debug dump-task failed: %v", err)
	}

	err = (&DebugDumpTaskCmd{ID: id + 100}).Run(ctx)
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestDebugDumpCmds(t *testing.T) {
	ctx, _ := clitest.Setup(t)
	addTask(t, ctx, "Cálculo", "14/11/2025 13:00")

	tests := []struct {
		name string
		run  func() error
	}{
		{"tasks", func() error { return (&DebugDumpTasksCmd{}).Run(ctx) }},
		{"raw tasks", func() error { return (&DebugDumpTasksCmd{Raw: true}).Run(ctx) }},
		{"schedule", func() error { return (&DebugDumpScheduleCmd{}).Run(ctx) }},
		{"settings", func() error { return (&DebugDumpSettingsCmd{}).Run(ctx) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); err != nil {
				t.Errorf("dump %s failed: %v", tt.name, err)
			}
		})
	}
}
