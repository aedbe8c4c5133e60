package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/schedule"
	"github.com/estudai/estudai/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingClasses   ConflictType = "overlapping_classes"
	ConflictInvalidTime          ConflictType = "invalid_time"
	ConflictMissingSubject       ConflictType = "missing_subject"
	ConflictDuplicateSubjectName ConflictType = "duplicate_subject_name"
)

// Conflict is one problem found in a user's schedule or subjects.
type Conflict struct {
	Type        ConflictType
	Description string
	Weekday     string
	Items       []string
	EntryIDs    []int64
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Validator checks a weekly schedule against the user's subjects.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateSubjects reports subjects sharing a name, ignoring case.
func (v *Validator) ValidateSubjects(subjects []models.Subject) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byName := make(map[string][]models.Subject)
	var order []string
	for _, s := range subjects {
		key := strings.ToLower(strings.TrimSpace(s.Name))
		if key == "" {
			continue
		}
		if _, seen := byName[key]; !seen {
			order = append(order, key)
		}
		byName[key] = append(byName[key], s)
	}

	for _, key := range order {
		group := byName[key]
		if len(group) < 2 {
			continue
		}
		ids := make([]int64, len(group))
		for i, s := range group {
			ids[i] = s.ID
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateSubjectName,
			Description: fmt.Sprintf("Duplicate subject name: %q (IDs: %v)", group[0].Name, ids),
			Items:       []string{group[0].Name},
			EntryIDs:    ids,
		})
	}
	return result
}

// ValidateSchedule reports malformed times, entries whose subject is gone,
// and classes that overlap on the same weekday.
func (v *Validator) ValidateSchedule(entries []models.ScheduleEntry, subjects []models.Subject) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	known := make(map[int64]bool, len(subjects))
	for _, s := range subjects {
		known[s.ID] = true
	}

	var valid []models.ScheduleEntry
	for _, e := range entries {
		day := weekdayName(e.Weekday)
		if !known[e.SubjectID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingSubject,
				Description: fmt.Sprintf("%s %s: entry %d references missing subject %d", day, e.ShortStart(), e.ID, e.SubjectID),
				Weekday:     day,
				EntryIDs:    []int64{e.ID},
			})
		}
		if !utils.ValidateClock(e.Start) || !utils.ValidateClock(e.End) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("%s: entry %d has invalid time range %s-%s", day, e.ID, e.Start, e.End),
				Weekday:     day,
				EntryIDs:    []int64{e.ID},
			})
			continue
		}
		valid = append(valid, e)
	}

	grouped := schedule.GroupByWeekday(valid)
	days := make([]int, 0, len(grouped))
	for wd := range grouped {
		days = append(days, int(wd))
	}
	sort.Ints(days)

	for _, d := range days {
		list := grouped[time.Weekday(d)]
		for i := 0; i < len(list); i++ {
			for j := i + 1; j < len(list); j++ {
				a, b := list[i], list[j]
				if !timesOverlap(a.Start, a.End, b.Start, b.End) {
					continue
				}
				day := schedule.WeekdayNames[d]
				result.Conflicts = append(result.Conflicts, Conflict{
					Type: ConflictOverlappingClasses,
					Description: fmt.Sprintf("%s: %s (%s-%s) overlaps %s (%s-%s)", day,
						label(a), a.ShortStart(), a.ShortEnd(), label(b), b.ShortStart(), b.ShortEnd()),
					Weekday:  day,
					Items:    []string{label(a), label(b)},
					EntryIDs: []int64{a.ID, b.ID},
				})
			}
		}
	}

	return result
}

func weekdayName(wd time.Weekday) string {
	if wd < time.Sunday || wd > time.Saturday {
		return fmt.Sprintf("day %d", int(wd))
	}
	return schedule.WeekdayNames[wd]
}

func label(e models.ScheduleEntry) string {
	if e.SubjectName != "" {
		return e.SubjectName
	}
	return fmt.Sprintf("entry %d", e.ID)
}

// timesOverlap checks if two clock ranges overlap. Touching ranges do not.
func timesOverlap(start1, end1, start2, end2 string) bool {
	s1, err1 := utils.NormalizeClock(start1)
	e1, err2 := utils.NormalizeClock(end1)
	s2, err3 := utils.NormalizeClock(start2)
	e2, err4 := utils.NormalizeClock(end2)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return false
	}
	// Normalized HH:MM:SS values order lexically.
	return s1 < e2 && s2 < e1
}
