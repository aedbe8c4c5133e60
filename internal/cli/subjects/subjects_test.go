package subjects

import (
	"context"
	"testing"

	"github.com/estudai/estudai/internal/cli"
	"github.com/estudai/estudai/internal/cli/clitest"
	"github.com/estudai/estudai/internal/constants"
	apperrors "github.com/estudai/estudai/internal/errors"
	"github.com/estudai/estudai/internal/models"
)

func strPtr(s string) *string { return &s }

func listSubjects(t *testing.T, ctx *cli.Context, userID string) []models.Subject {
	t.Helper()
	subjects, err := ctx.Store.ListSubjects(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListSubjects() error = %v", err)
	}
	return subjects
}

func TestSubjectAddCmd(t *testing.T) {
	ctx, user := clitest.Setup(t)

	cmd := &SubjectAddCmd{Name: "Cálculo I", Instructor: "Prof. Lima", Code: "MAT101"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("subject add failed: %v", err)
	}

	subjects := listSubjects(t, ctx, user.ID)
	if len(subjects) != 1 {
		t.Fatalf("expected 1 subject, got %d", len(subjects))
	}
	if subjects[0].Name != "Cálculo I" || subjects[0].Code != "MAT101" {
		t.Errorf("subject = %+v", subjects[0])
	}
	if subjects[0].Color != constants.DefaultSubjectColor {
		t.Errorf("Color = %q, want default %q", subjects[0].Color, constants.DefaultSubjectColor)
	}
}

func TestSubjectAddCmd_Validation(t *testing.T) {
	ctx, _ := clitest.Setup(t)

	err := (&SubjectAddCmd{Name: "  "}).Run(ctx)
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSubjectEditAndDelete(t *testing.T) {
	ctx, user := clitest.Setup(t)

	if err := (&SubjectAddCmd{Name: "Física"}).Run(ctx); err != nil {
		t.Fatalf("subject add failed: %v", err)
	}
	id := listSubjects(t, ctx, user.ID)[0].ID

	if err := (&SubjectEditCmd{ID: id}).Run(ctx); err == nil {
		t.Error("expected error for edit without changes")
	}

	if err := (&SubjectEditCmd{ID: id, Name: strPtr("Física II"), Color: strPtr("#16A34A")}).Run(ctx); err != nil {
		t.Fatalf("subject edit failed: %v", err)
	}
	got := listSubjects(t, ctx, user.ID)[0]
	if got.Name != "Física II" || got.Color != "#16A34A" {
		t.Errorf("subject = %+v, want renamed and recolored", got)
	}

	if err := (&SubjectDeleteCmd{ID: id, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("subject delete failed: %v", err)
	}
	if n := len(listSubjects(t, ctx, user.ID)); n != 0 {
		t.Errorf("expected no subjects after delete, got %d", n)
	}

	err := (&SubjectDeleteCmd{ID: id, Yes: true}).Run(ctx)
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found deleting twice, got %v", err)
	}
}

func TestSubjectListCmd(t *testing.T) {
	ctx, _ := clitest.Setup(t)

	if err := (&SubjectListCmd{}).Run(ctx); err != nil {
		t.Errorf("subject list on empty store failed: %v", err)
	}
	if err := (&SubjectAddCmd{Name: "Química", Code: "QUI110"}).Run(ctx); err != nil {
		t.Fatalf("subject add failed: %v", err)
	}
	if err := (&SubjectListCmd{}).Run(ctx); err != nil {
		t.Errorf("subject list failed: %v", err)
	}
}
