// Package datecodec converts between the combined display value of a due
// date (DD/MM/YYYY HH:MM) and the split date/time columns the remote store
// keeps (YYYY-MM-DD and HH:MM:SS).
//
// The conversions are plain string reassembly: no timezone conversion and no
// calendar validation happen here. Parse is the only function that builds a
// time.Time and therefore the only one that rejects impossible dates.
package datecodec

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/estudai/estudai/internal/constants"
)

var displayPattern = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})(?:\s+(\d{2}):(\d{2}))?$`)

const defaultTime = "00:00"

// Parts is a decoded display value. Date is YYYY-MM-DD, Time is HH:MM and
// empty when the display value carried no time.
type Parts struct {
	Date string
	Time string
}

func (p Parts) HasTime() bool {
	return p.Time != ""
}

// TimeOrDefault returns the time, or 00:00 when none was given.
func (p Parts) TimeOrDefault() string {
	if p.Time == "" {
		return defaultTime
	}
	return p.Time
}

// Decode splits a DD/MM/YYYY[ HH:MM] value. Anything that does not match the
// exact shape is rejected as a whole.
func Decode(display string) (Parts, bool) {
	m := displayPattern.FindStringSubmatch(display)
	if m == nil {
		return Parts{}, false
	}

	p := Parts{Date: fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])}
	if m[4] != "" {
		p.Time = m[4] + ":" + m[5]
	}
	return p, true
}

// Encode builds the zero-padded DD/MM/YYYY HH:MM display value from a wire
// date (YYYY-MM-DD) and a time (HH:MM or HH:MM:SS). An empty time encodes as
// 00:00. Returns "" when date is not shaped like YYYY-MM-DD.
func Encode(date, timeOfDay string) string {
	if len(date) < 10 || date[4] != '-' || date[7] != '-' {
		return ""
	}
	year, month, day := date[0:4], date[5:7], date[8:10]

	hm := defaultTime
	if len(timeOfDay) >= 5 {
		hm = timeOfDay[:5]
	}
	return fmt.Sprintf("%s/%s/%s %s", day, month, year, hm)
}

// ToWire converts a display value into wire date and time columns. Both the
// date and the time component must be present; a date-only value is not
// committed.
func ToWire(display string) (date, timeOfDay string, ok bool) {
	p, ok := Decode(strings.TrimSpace(display))
	if !ok || !p.HasTime() {
		return "", "", false
	}
	return p.Date, p.Time + ":00", true
}

// FromWire builds the display value from nullable wire columns. A missing
// date yields "" (no due date); a missing time yields 00:00.
func FromWire(date, timeOfDay *string) string {
	if date == nil || *date == "" {
		return ""
	}
	t := ""
	if timeOfDay != nil {
		t = *timeOfDay
	}
	return Encode(*date, t)
}

// Parse decodes display into a time in loc, using 00:00 when the time is
// omitted. Dates that do not exist on the calendar (31/02) and out of range
// clock values are rejected.
func Parse(display string, loc *time.Location) (time.Time, bool) {
	p, ok := Decode(strings.TrimSpace(display))
	if !ok {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	value := p.Date + " " + p.TimeOrDefault()
	t, err := time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Format renders t as DD/MM/YYYY HH:MM.
func Format(t time.Time) string {
	return t.Format(constants.DisplayFormat)
}

// Valid reports whether display is a complete, calendar-valid DD/MM/YYYY HH:MM value.
func Valid(display string) bool {
	p, ok := Decode(strings.TrimSpace(display))
	if !ok || !p.HasTime() {
		return false
	}
	_, ok = Parse(display, time.UTC)
	return ok
}
