package utils

import (
	"fmt"
	"regexp"
	"time"

	"github.com/estudai/estudai/internal/constants"
)

var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])(?::([0-5][0-9]))?$`)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Sunday that starts t's week.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// FirstOfMonth returns midnight of the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return FirstOfMonth(t).AddDate(0, 1, -1).Day()
}

// CalendarDaysBetween counts whole calendar days from a to b, ignoring the
// clock. Negative when b is before a.
func CalendarDaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// ParseMonth parses a YYYY-MM value into the first day of that month in loc.
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(constants.MonthFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (expected YYYY-MM): %w", s, err)
	}
	return t, nil
}

// NormalizeClock accepts H:MM, HH:MM or HH:MM:SS and returns HH:MM:SS.
func NormalizeClock(s string) (string, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	sec := m[3]
	if sec == "" {
		sec = "00"
	}
	hour := m[1]
	if len(hour) == 1 {
		hour = "0" + hour
	}
	return fmt.Sprintf("%s:%s:%s", hour, m[2], sec), nil
}

// ValidateClock reports whether s is a valid H:MM/HH:MM clock value.
func ValidateClock(s string) bool {
	_, err := NormalizeClock(s)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
