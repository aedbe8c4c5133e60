package settings

import (
	"context"
	"fmt"
	"slices"

	"github.com/estudai/estudai/internal/cli"
	"github.com/estudai/estudai/internal/constants"
	apperrors "github.com/estudai/estudai/internal/errors"
	"github.com/estudai/estudai/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	NotificationsEnabled *bool `help:"Enable or disable notifications." name:"notifications"`
	TaskReminders        *bool `help:"Enable or disable task reminders." name:"task-reminders"`
	DueAlerts            *bool `help:"Enable or disable due date alerts." name:"due-alerts"`
	AlertLeadHours       *int  `help:"Hours before the due date to alert (24, 48 or 72)." name:"alert-lead-hours"`
	DarkTheme            *bool `help:"Use the dark theme." name:"dark-theme"`
	ShowCompleted        *bool `help:"Show completed tasks." name:"show-completed"`
	AutoSync             *bool `help:"Sync changes automatically." name:"auto-sync"`
}

func (c *SettingsCmd) patch() (models.SettingsPatch, error) {
	var p models.SettingsPatch
	if c.NotificationsEnabled != nil {
		p.NotificationsEnabled = models.Some(*c.NotificationsEnabled)
	}
	if c.TaskReminders != nil {
		p.TaskReminders = models.Some(*c.TaskReminders)
	}
	if c.DueAlerts != nil {
		p.DueAlerts = models.Some(*c.DueAlerts)
	}
	if c.AlertLeadHours != nil {
		if !slices.Contains(constants.AllowedAlertLeadHours, *c.AlertLeadHours) {
			return p, apperrors.Invalid("alert_lead_hours", fmt.Sprintf("must be one of %v", constants.AllowedAlertLeadHours))
		}
		p.AlertLeadHours = models.Some(*c.AlertLeadHours)
	}
	if c.DarkTheme != nil {
		p.DarkTheme = models.Some(*c.DarkTheme)
	}
	if c.ShowCompleted != nil {
		p.ShowCompleted = models.Some(*c.ShowCompleted)
	}
	if c.AutoSync != nil {
		p.AutoSync = models.Some(*c.AutoSync)
	}
	return p, nil
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}

	if c.List {
		settings, err := ctx.Store.GetSettings(bg, user.ID)
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		printSettings(settings)
		return nil
	}

	patch, err := c.patch()
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if _, err := ctx.Store.UpdateSettings(bg, user.ID, patch); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}

func printSettings(s models.Settings) {
	fmt.Println("Notification Settings:")
	fmt.Printf("  Notifications Enabled: %v\n", s.NotificationsEnabled)
	fmt.Printf("  Task Reminders:        %v\n", s.TaskReminders)
	fmt.Printf("  Due Alerts:            %v\n", s.DueAlerts)
	fmt.Printf("  Alert Lead Time:       %dh\n", s.AlertLeadHours)
	fmt.Println("\nDisplay Settings:")
	fmt.Printf("  Dark Theme:            %v\n", s.DarkTheme)
	fmt.Printf("  Show Completed:        %v\n", s.ShowCompleted)
	fmt.Printf("  Auto Sync:             %v\n", s.AutoSync)
}
