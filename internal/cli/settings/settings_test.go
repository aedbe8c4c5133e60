package settings

import (
	"context"
	"testing"

	"github.com/estudai/estudai/internal/cli/clitest"
	apperrors "github.com/estudai/estudai/internal/errors"
	"github.com/estudai/estudai/internal/models"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func TestSettingsCmd_List(t *testing.T) {
	ctx, _ := clitest.Setup(t)

	cmd := &SettingsCmd{List: true}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, user := clitest.Setup(t)

	cmd := &SettingsCmd{
		DueAlerts:      boolPtr(false),
		AlertLeadHours: intPtr(48),
		DarkTheme:      boolPtr(true),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	got, err := ctx.Store.GetSettings(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}

	want := models.DefaultSettings()
	want.DueAlerts = false
	want.AlertLeadHours = 48
	want.DarkTheme = true
	if got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
}

func TestSettingsCmd_InvalidLeadHours(t *testing.T) {
	ctx, user := clitest.Setup(t)

	cmd := &SettingsCmd{AlertLeadHours: intPtr(12)}
	err := cmd.Run(ctx)
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	got, err := ctx.Store.GetSettings(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if got.AlertLeadHours != models.DefaultSettings().AlertLeadHours {
		t.Errorf("AlertLeadHours = %d, want it unchanged", got.AlertLeadHours)
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, _ := clitest.Setup(t)

	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Errorf("expected no error without flags, got %v", err)
	}
}
