package schedule

import (
	"sort"
	"strconv"
	"time"

	"github.com/estudai/estudai/internal/datecodec"
	"github.com/estudai/estudai/internal/models"
)

const (
	defaultEstimate = 1.0
	estimateSpread  = 0.5
	minEstimate     = 0.5
)

// ByDay buckets tasks by the local calendar day of their due date. Tasks
// whose due date is absent or does not parse appear in no bucket. Each
// bucket is ordered with SortDay.
func ByDay(tasks []models.Task, loc *time.Location) map[string][]models.Task {
	buckets := make(map[string][]models.Task)
	for _, t := range tasks {
		due, ok := datecodec.Parse(t.DueAt, loc)
		if !ok {
			continue
		}
		key := DayKey(due)
		buckets[key] = append(buckets[key], t)
	}
	for key := range buckets {
		SortDay(buckets[key], loc)
	}
	return buckets
}

// SortDay orders one day's tasks by due time, then hardest first.
func SortDay(tasks []models.Task, loc *time.Location) {
	sort.SliceStable(tasks, func(i, j int) bool {
		di, _ := datecodec.Parse(tasks[i].DueAt, loc)
		dj, _ := datecodec.Parse(tasks[j].DueAt, loc)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return difficultyRank(tasks[i]) > difficultyRank(tasks[j])
	})
}

func difficultyRank(t models.Task) int {
	if t.Difficulty == nil {
		return 0
	}
	return t.Difficulty.Rank()
}

// EstimateHours is the study-time heuristic: easy 1h, medium 1.5h, hard 2h.
// Tasks without a difficulty count as 1h.
func EstimateHours(d *models.Difficulty) float64 {
	if d == nil {
		return defaultEstimate
	}
	switch *d {
	case models.DifficultyEasy:
		return 1
	case models.DifficultyMedium:
		return 1.5
	case models.DifficultyHard:
		return 2
	}
	return defaultEstimate
}

// TotalHours sums the estimates of tasks.
func TotalHours(tasks []models.Task) float64 {
	total := 0.0
	for _, t := range tasks {
		total += EstimateHours(t.Difficulty)
	}
	return total
}

// TimeRange renders the estimate as a range, e.g. "1hr ~ 2hr".
func TimeRange(d *models.Difficulty) string {
	base := EstimateHours(d)
	low := base - estimateSpread
	if low < minEstimate {
		low = minEstimate
	}
	return FormatHours(low) + "hr ~ " + FormatHours(base+estimateSpread) + "hr"
}

// FormatHours prints hours without trailing zeros (1, 1.5, 2.25).
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// DayTypes returns up to limit distinct task types in first-seen order, used
// for the per-day markers on the grid.
func DayTypes(tasks []models.Task, limit int) []models.TaskType {
	seen := make(map[models.TaskType]bool)
	var types []models.TaskType
	for _, t := range tasks {
		if seen[t.Type] {
			continue
		}
		seen[t.Type] = true
		types = append(types, t.Type)
		if len(types) == limit {
			break
		}
	}
	return types
}

// GroupByWeekday buckets schedule entries by weekday, each ordered by start time.
func GroupByWeekday(entries []models.ScheduleEntry) map[time.Weekday][]models.ScheduleEntry {
	grouped := make(map[time.Weekday][]models.ScheduleEntry)
	for _, e := range entries {
		grouped[e.Weekday] = append(grouped[e.Weekday], e)
	}
	for wd := range grouped {
		list := grouped[wd]
		sort.SliceStable(list, func(i, j int) bool { return list[i].Start < list[j].Start })
	}
	return grouped
}
