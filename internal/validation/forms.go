package validation

import (
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/estudai/estudai/internal/constants"
	"github.com/estudai/estudai/internal/datecodec"
	apperrors "github.com/estudai/estudai/internal/errors"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/utils"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// TaskForm is the create/edit form as typed by the user.
type TaskForm struct {
	Title       string
	Description string
	DueAt       string
}

// Task checks a full form in the order the form shows its fields.
func Task(form TaskForm) error {
	if strings.TrimSpace(form.Title) == "" {
		return apperrors.Invalid("title", "is required")
	}
	if strings.TrimSpace(form.Description) == "" {
		return apperrors.Invalid("description", "is required")
	}
	if strings.TrimSpace(form.DueAt) == "" {
		return apperrors.Invalid("due", "is required")
	}
	return due(form.DueAt)
}

// due rejects values that match the display format but name no real
// calendar instant, such as 31/02 or 99:99.
func due(value string) error {
	if _, ok := datecodec.Decode(value); !ok {
		return apperrors.Invalid("due", "expected DD/MM/YYYY HH:MM")
	}
	if _, ok := datecodec.Parse(value, nil); !ok {
		return apperrors.Invalid("due", "not a valid date or time")
	}
	return nil
}

// TaskPatch checks only the fields a patch sets.
func TaskPatch(p models.TaskPatch) error {
	if title, ok := p.Title.Get(); ok && strings.TrimSpace(title) == "" {
		return apperrors.Invalid("title", "is required")
	}
	if desc, ok := p.Description.Get(); ok && strings.TrimSpace(desc) == "" {
		return apperrors.Invalid("description", "is required")
	}
	if value, ok := p.DueAt.Get(); ok {
		if strings.TrimSpace(value) == "" {
			return apperrors.Invalid("due", "is required")
		}
		if err := due(value); err != nil {
			return err
		}
	}
	if typ, ok := p.Type.Get(); ok && !typ.Valid() {
		return apperrors.Invalid("type", "unknown task type")
	}
	if d, ok := p.Difficulty.Get(); ok && d != nil && !d.Valid() {
		return apperrors.Invalid("difficulty", "unknown difficulty")
	}
	return nil
}

func Subject(s models.Subject) error {
	if strings.TrimSpace(s.Name) == "" {
		return apperrors.Invalid("name", "is required")
	}
	if s.Color != "" && !colorPattern.MatchString(s.Color) {
		return apperrors.Invalid("color", "expected #RRGGBB")
	}
	return nil
}

func SubjectPatch(p models.SubjectPatch) error {
	if name, ok := p.Name.Get(); ok && strings.TrimSpace(name) == "" {
		return apperrors.Invalid("name", "is required")
	}
	if color, ok := p.Color.Get(); ok && !colorPattern.MatchString(color) {
		return apperrors.Invalid("color", "expected #RRGGBB")
	}
	return nil
}

// ScheduleEntry checks a class slot. Times may be H:MM, HH:MM or HH:MM:SS.
func ScheduleEntry(e models.ScheduleEntry) error {
	if e.SubjectID <= 0 {
		return apperrors.Invalid("subject", "is required")
	}
	if e.Weekday < time.Sunday || e.Weekday > time.Saturday {
		return apperrors.Invalid("weekday", "must be between 0 (Sunday) and 6 (Saturday)")
	}
	if strings.TrimSpace(e.Start) == "" {
		return apperrors.Invalid("start", "is required")
	}
	if strings.TrimSpace(e.End) == "" {
		return apperrors.Invalid("end", "is required")
	}
	start, err := utils.NormalizeClock(e.Start)
	if err != nil {
		return apperrors.Invalid("start", "expected HH:MM")
	}
	end, err := utils.NormalizeClock(e.End)
	if err != nil {
		return apperrors.Invalid("end", "expected HH:MM")
	}
	if start >= end {
		return apperrors.Invalid("end", "must be after start")
	}
	return nil
}

func Profile(p models.Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.Invalid("name", "is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return apperrors.Invalid("email", "is required")
	}
	if !Email(p.Email) {
		return apperrors.Invalid("email", "is not a valid address")
	}
	return nil
}

func Settings(s models.Settings) error {
	if !slices.Contains(constants.AllowedAlertLeadHours, s.AlertLeadHours) {
		return apperrors.Invalid("alert_lead_hours", "must be 24, 48 or 72")
	}
	return nil
}

func SignUp(email, password, name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.Invalid("name", "is required")
	}
	if !Email(email) {
		return apperrors.Invalid("email", "is not a valid address")
	}
	return Password(password)
}

func Password(password string) error {
	if utf8.RuneCountInString(password) < constants.MinPasswordChars {
		return apperrors.Invalid("password", "must have at least 6 characters")
	}
	return nil
}

// Email reports whether s looks like an address.
func Email(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}
