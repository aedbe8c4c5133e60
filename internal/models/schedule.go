package models

import "time"

// ScheduleEntry is a recurring weekly class slot. Start and End use HH:MM:SS.
type ScheduleEntry struct {
	ID           int64        `json:"id"`
	UserID       string       `json:"user_id"`
	SubjectID    int64        `json:"subject_id"`
	Weekday      time.Weekday `json:"weekday"` // 0 = Sunday
	Start        string       `json:"start"`
	End          string       `json:"end"`
	Location     string       `json:"location,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	SubjectName  string       `json:"subject_name,omitempty"`
	SubjectColor string       `json:"subject_color,omitempty"`
	CreatedAt    string       `json:"created_at,omitempty"`
	UpdatedAt    string       `json:"updated_at,omitempty"`
}

// ShortStart returns the start time as HH:MM.
func (e ScheduleEntry) ShortStart() string {
	return shortTime(e.Start)
}

// ShortEnd returns the end time as HH:MM.
func (e ScheduleEntry) ShortEnd() string {
	return shortTime(e.End)
}

func shortTime(s string) string {
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}

type ScheduleEntryPatch struct {
	SubjectID Optional[int64]
	Weekday   Optional[time.Weekday]
	Start     Optional[string]
	End       Optional[string]
	Location  Optional[string]
	Notes     Optional[string]
}

func (p ScheduleEntryPatch) IsEmpty() bool {
	return !p.SubjectID.IsSet() && !p.Weekday.IsSet() && !p.Start.IsSet() && !p.End.IsSet() &&
		!p.Location.IsSet() && !p.Notes.IsSet()
}
