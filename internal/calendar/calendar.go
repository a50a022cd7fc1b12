// Package calendar lays out the days of a month as Sunday-first weeks.
package calendar

import (
	"time"

	"github.com/klabast/wb-services/feriados/internal/holidays"
)

// Week holds seven day-of-month numbers, Sunday first. Zero marks a slot
// that belongs to the previous or next month.
type Week [7]int

// WeekdayNames are the column headers, Sunday first.
var WeekdayNames = [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

var monthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthName returns the Portuguese name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return m.String()
	}
	return monthNames[m-1]
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Month returns the weeks of the month. The first week starts on the Sunday
// on or before day 1 and the last one ends on the Saturday on or after the
// last day.
func Month(year int, month time.Month) []Week {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	col := int(first.Weekday())
	n := DaysIn(year, month)

	var weeks []Week
	var w Week
	for day := 1; day <= n; day++ {
		w[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, w)
			w = Week{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, w)
	}
	return weeks
}

// Cell is one day slot annotated with its holiday name, if any.
type Cell struct {
	Day     int    `json:"day"`
	Holiday string `json:"holiday,omitempty"`
}

// Annotate lays out month and looks every day up in set.
func Annotate(set *holidays.Set, month time.Month) [][7]Cell {
	weeks := Month(set.Year(), month)
	out := make([][7]Cell, len(weeks))
	for i, w := range weeks {
		for j, day := range w {
			if day == 0 {
				continue
			}
			out[i][j].Day = day
			if name, ok := set.LookupDate(month, day); ok {
				out[i][j].Holiday = name
			}
		}
	}
	return out
}
