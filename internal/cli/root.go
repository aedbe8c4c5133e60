package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/estudai/estudai/internal/config"
	apperrors "github.com/estudai/estudai/internal/errors"
	"github.com/estudai/estudai/internal/keyring"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/realtime"
	"github.com/estudai/estudai/internal/storage"
	"github.com/estudai/estudai/internal/taskstore"
)

type Context struct {
	Store    storage.Provider
	Config   *config.Config
	Hub      realtime.Hub
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

func (c *Context) Clock() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().In(c.Loc())
}

// Loc returns the configured location, falling back to time.Local.
func (c *Context) Loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// RequireUser resolves the session token kept in the keyring.
func (c *Context) RequireUser(ctx context.Context) (models.User, error) {
	token, err := keyring.GetSessionToken()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return models.User{}, fmt.Errorf("%w: run 'estudai auth login' first", apperrors.ErrUnauthenticated)
		}
		return models.User{}, fmt.Errorf("failed to read session token: %w", err)
	}

	user, err := c.Store.CurrentUser(ctx, token)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUnauthenticated) {
			_ = keyring.DeleteSessionToken()
			return models.User{}, fmt.Errorf("%w: session expired, run 'estudai auth login'", apperrors.ErrUnauthenticated)
		}
		return models.User{}, err
	}
	return user, nil
}

// Tasks returns a task store loaded for the signed-in user.
func (c *Context) Tasks(ctx context.Context) (*taskstore.Store, models.User, error) {
	user, err := c.RequireUser(ctx)
	if err != nil {
		return nil, user, err
	}

	st := taskstore.New(c.Store, c.Loc())
	if c.Now != nil {
		st.SetClock(c.Now)
	}
	if res := st.Init(ctx, user.ID); !res.Success {
		return nil, user, res.Err
	}
	return st, user, nil
}

// Check prints any warnings of res and returns its error.
func Check(res taskstore.Result) error {
	for _, w := range res.Warnings {
		fmt.Printf("⚠ %s\n", w)
	}
	if !res.Success {
		return res.Err
	}
	return nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday, "dom": time.Sunday, "domingo": time.Sunday,
	"mon": time.Monday, "monday": time.Monday, "seg": time.Monday, "segunda": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday, "ter": time.Tuesday, "terca": time.Tuesday, "terça": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday, "qua": time.Wednesday, "quarta": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday, "qui": time.Thursday, "quinta": time.Thursday,
	"fri": time.Friday, "friday": time.Friday, "sex": time.Friday, "sexta": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday, "sab": time.Saturday, "sáb": time.Saturday, "sabado": time.Saturday, "sábado": time.Saturday,
}

// ParseWeekday accepts an English or Portuguese day name or 0-6 (0=Sunday).
func ParseWeekday(s string) (time.Weekday, error) {
	part := strings.TrimSpace(strings.ToLower(s))
	if wd, ok := weekdayNames[part]; ok {
		return wd, nil
	}
	num, err := strconv.Atoi(part)
	if err == nil && num >= 0 && num <= 6 {
		return time.Weekday(num), nil
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		wd, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		weekdays = append(weekdays, wd)
	}
	return weekdays, nil
}

// ParseIDs parses a comma-separated list of task ids.
func ParseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id: %s", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Confirm asks a yes/no question on stdin. Anything but y/yes is a no.
func Confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// Swatch renders a colored block for a #RRGGBB value.
func Swatch(color string) string {
	if color == "" {
		return " "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}
