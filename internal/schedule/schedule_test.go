package schedule

import (
	"testing"
	"time"

	"github.com/estudai/estudai/internal/models"
)

func diff(d models.Difficulty) *models.Difficulty {
	return &d
}

func TestMonthCellsStartingWednesday(t *testing.T) {
	// April 2026 starts on a Wednesday and has 30 days.
	cells := MonthCells(time.Date(2026, time.April, 18, 0, 0, 0, 0, time.UTC))

	if len(cells)%7 != 0 {
		t.Fatalf("len(cells) = %d, not a multiple of 7", len(cells))
	}
	for i := 0; i < 3; i++ {
		if cells[i].InCurrentMonth {
			t.Errorf("cell %d should belong to the previous month", i)
		}
	}
	if got := cells[0].Key(); got != "2026-03-29" {
		t.Errorf("first cell = %s, want 2026-03-29", got)
	}
	for i := 3; i < 33; i++ {
		if !cells[i].InCurrentMonth {
			t.Errorf("cell %d should belong to April", i)
		}
	}
	for i := 33; i < len(cells); i++ {
		if cells[i].InCurrentMonth {
			t.Errorf("cell %d should belong to the next month", i)
		}
	}
	if len(cells) != 35 {
		t.Errorf("len(cells) = %d, want 35", len(cells))
	}
}

func TestMonthCellsCompleteness(t *testing.T) {
	for year := 2024; year <= 2027; year++ {
		for month := time.January; month <= time.December; month++ {
			anchor := time.Date(year, month, 1, 12, 0, 0, 0, time.UTC)
			cells := MonthCells(anchor)

			if len(cells)%7 != 0 || len(cells) < 28 {
				t.Fatalf("%s: len(cells) = %d", anchor.Format("2006-01"), len(cells))
			}

			var inMonth []Cell
			for _, c := range cells {
				if c.InCurrentMonth {
					inMonth = append(inMonth, c)
				}
			}

			wantDays := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
			if len(inMonth) != wantDays {
				t.Errorf("%s: %d in-month cells, want %d", anchor.Format("2006-01"), len(inMonth), wantDays)
			}
			for i, c := range inMonth {
				if c.Date.Day() != i+1 {
					t.Errorf("%s: in-month cell %d is day %d", anchor.Format("2006-01"), i, c.Date.Day())
					break
				}
			}
			if cells[0].Date.Weekday() != time.Sunday {
				t.Errorf("%s: grid starts on %s, want Sunday", anchor.Format("2006-01"), cells[0].Date.Weekday())
			}
		}
	}
}

func TestMonthCellsFourWeeks(t *testing.T) {
	// February 2026 starts on a Sunday and has 28 days.
	cells := MonthCells(time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC))
	if len(cells) != 28 {
		t.Errorf("len(cells) = %d, want 28", len(cells))
	}
	if rows := Weeks(cells); len(rows) != 4 {
		t.Errorf("len(Weeks()) = %d, want 4", len(rows))
	}
}

func TestByDay(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, DueAt: "16/10/2026 14:00", Difficulty: diff(models.DifficultyEasy)},
		{ID: 2, DueAt: "16/10/2026 09:00"},
		{ID: 3, DueAt: "16/10/2026 14:00", Difficulty: diff(models.DifficultyHard)},
		{ID: 4, DueAt: "17/10/2026 08:00"},
		{ID: 5, DueAt: ""},
		{ID: 6, DueAt: "31/02/2026 10:00"},
		{ID: 7, DueAt: "not a date"},
	}

	buckets := ByDay(tasks, time.UTC)

	if len(buckets) != 2 {
		t.Fatalf("len(buckets) = %d, want 2", len(buckets))
	}

	day := buckets["2026-10-16"]
	if len(day) != 3 {
		t.Fatalf("len(2026-10-16) = %d, want 3", len(day))
	}
	wantOrder := []int64{2, 3, 1}
	for i, id := range wantOrder {
		if day[i].ID != id {
			t.Errorf("2026-10-16[%d] = task %d, want task %d", i, day[i].ID, id)
		}
	}

	if got := buckets["2026-10-17"]; len(got) != 1 || got[0].ID != 4 {
		t.Errorf("2026-10-17 = %+v, want task 4", got)
	}
}

func TestEstimateHours(t *testing.T) {
	tests := []struct {
		name string
		d    *models.Difficulty
		want float64
	}{
		{"easy", diff(models.DifficultyEasy), 1},
		{"medium", diff(models.DifficultyMedium), 1.5},
		{"hard", diff(models.DifficultyHard), 2},
		{"unset", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateHours(tt.d); got != tt.want {
				t.Errorf("EstimateHours() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTotalHours(t *testing.T) {
	tasks := []models.Task{
		{Difficulty: diff(models.DifficultyEasy)},
		{Difficulty: diff(models.DifficultyMedium)},
		{Difficulty: diff(models.DifficultyHard)},
		{},
	}
	if got := TotalHours(tasks); got != 5.5 {
		t.Errorf("TotalHours() = %v, want 5.5", got)
	}
	if got := TotalHours(nil); got != 0 {
		t.Errorf("TotalHours(nil) = %v, want 0", got)
	}
}

func TestTimeRange(t *testing.T) {
	tests := []struct {
		d    *models.Difficulty
		want string
	}{
		{diff(models.DifficultyEasy), "0.5hr ~ 1.5hr"},
		{diff(models.DifficultyMedium), "1hr ~ 2hr"},
		{diff(models.DifficultyHard), "1.5hr ~ 2.5hr"},
		{nil, "0.5hr ~ 1.5hr"},
	}

	for _, tt := range tests {
		if got := TimeRange(tt.d); got != tt.want {
			t.Errorf("TimeRange(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestDayTypes(t *testing.T) {
	tasks := []models.Task{
		{Type: models.TaskTypeExam},
		{Type: models.TaskTypeExam},
		{Type: models.TaskTypeActivity},
		{Type: models.TaskTypeAssignment},
		{Type: models.TaskTypeOther},
	}

	got := DayTypes(tasks, 3)
	want := []models.TaskType{models.TaskTypeExam, models.TaskTypeActivity, models.TaskTypeAssignment}
	if len(got) != len(want) {
		t.Fatalf("DayTypes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DayTypes()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGroupByWeekday(t *testing.T) {
	entries := []models.ScheduleEntry{
		{ID: 1, Weekday: time.Monday, Start: "10:00:00"},
		{ID: 2, Weekday: time.Monday, Start: "08:00:00"},
		{ID: 3, Weekday: time.Friday, Start: "14:00:00"},
	}

	grouped := GroupByWeekday(entries)
	monday := grouped[time.Monday]
	if len(monday) != 2 || monday[0].ID != 2 || monday[1].ID != 1 {
		t.Errorf("monday = %+v, want entries 2 then 1", monday)
	}
	if len(grouped[time.Friday]) != 1 {
		t.Errorf("friday has %d entries, want 1", len(grouped[time.Friday]))
	}
	if _, ok := grouped[time.Sunday]; ok {
		t.Error("sunday should have no bucket")
	}
}

func TestLabels(t *testing.T) {
	d := time.Date(2026, time.October, 6, 0, 0, 0, 0, time.UTC)
	if got := MonthLabel(d); got != "outubro de 2026" {
		t.Errorf("MonthLabel() = %q", got)
	}
	if got := DayLabel(d); got != "06 de outubro" {
		t.Errorf("DayLabel() = %q", got)
	}
	if WeekdayLabels[0] != "Dom" || WeekdayLabels[6] != "Sáb" {
		t.Errorf("WeekdayLabels = %v", WeekdayLabels)
	}
}
