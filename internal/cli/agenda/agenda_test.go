package agenda

import (
	"testing"

	"github.com/estudai/estudai/internal/cli/clitest"
	"github.com/estudai/estudai/internal/cli/tasks"
)

func TestAgendaCmd(t *testing.T) {
	ctx, _ := clitest.Setup(t)

	add := &tasks.TaskAddCmd{Title: "Lista 3", Description: "Exercícios 1 a 10", Due: "14/11/2025 18:00", Type: "atividade"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("task add failed: %v", err)
	}

	tests := []struct {
		name    string
		cmd     *AgendaCmd
		wantErr bool
	}{
		{"current month", &AgendaCmd{}, false},
		{"explicit month", &AgendaCmd{Month: "2025-12"}, false},
		{"day detail", &AgendaCmd{Day: "14/11/2025"}, false},
		{"invalid month", &AgendaCmd{Month: "2025/12"}, true},
		{"invalid day", &AgendaCmd{Day: "2025-11-14"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
