// Package schedule builds the calendar month grid, buckets tasks by due day
// and groups weekly class entries for the agenda views.
package schedule

import (
	"fmt"
	"time"

	"github.com/estudai/estudai/internal/constants"
	"github.com/estudai/estudai/internal/utils"
)

// Cell is one day of the month grid.
type Cell struct {
	Date           time.Time
	InCurrentMonth bool
}

// Key returns the YYYY-MM-DD key used by ByDay.
func (c Cell) Key() string {
	return DayKey(c.Date)
}

// WeekdayLabels are the column headers of the grid, Sunday first.
var WeekdayLabels = [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// WeekdayNames are the full weekday names, Sunday first.
var WeekdayNames = [7]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

var monthNames = [12]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// MonthCells returns the complete weeks covering anchor's month: trailing
// days of the previous month up to the first weekday, every day of the
// month, then days of the next month until the length is a multiple of 7.
func MonthCells(anchor time.Time) []Cell {
	first := utils.FirstOfMonth(anchor)
	lead := int(first.Weekday())
	days := utils.DaysInMonth(first)

	total := lead + days
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	cells := make([]Cell, 0, total)
	start := first.AddDate(0, 0, -lead)
	for i := 0; i < total; i++ {
		d := start.AddDate(0, 0, i)
		cells = append(cells, Cell{
			Date:           d,
			InCurrentMonth: d.Month() == first.Month() && d.Year() == first.Year(),
		})
	}
	return cells
}

// Weeks splits cells into rows of seven.
func Weeks(cells []Cell) [][]Cell {
	var rows [][]Cell
	for i := 0; i+7 <= len(cells); i += 7 {
		rows = append(rows, cells[i:i+7])
	}
	return rows
}

// DayKey formats t's calendar day as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// MonthLabel renders "outubro de 2026".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s de %d", monthNames[t.Month()-1], t.Year())
}

// DayLabel renders "16 de outubro".
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%02d de %s", t.Day(), monthNames[t.Month()-1])
}
