package system

import (
	"context"
	"fmt"

	"github.com/estudai/estudai/internal/cli"
	"github.com/estudai/estudai/internal/logger"
	"github.com/estudai/estudai/internal/notifier"
	"github.com/estudai/estudai/internal/reminder"
)

type sender interface {
	Notify(ctx context.Context, title, text string) error
}

var newSender = func() sender { return notifier.New() }

type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	store, user, err := ctx.Tasks(bg)
	if err != nil {
		return err
	}
	defer store.Teardown()

	settings, err := ctx.Store.GetSettings(bg, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !settings.NotificationsEnabled || !settings.DueAlerts {
		if c.DryRun {
			fmt.Println("Due date alerts are disabled in settings.")
		}
		return nil
	}

	due := reminder.DueSoon(store.Tasks(), settings, ctx.Clock())
	if len(due) == 0 {
		if c.DryRun {
			fmt.Printf("No pending tasks due in the next %dh.\n", settings.AlertLeadHours)
		}
		return nil
	}

	title, body := reminder.Summary(due), reminder.Body(due)
	if c.DryRun {
		fmt.Println("[DryRun] " + title)
		fmt.Println(body)
		return nil
	}

	if err := newSender().Notify(bg, title, body); err != nil {
		logger.Warn("Failed to send notification", "error", err)
		return fmt.Errorf("failed to send notification: %w", err)
	}
	logger.Info("Sent due date alert", "tasks", len(due))
	return nil
}
