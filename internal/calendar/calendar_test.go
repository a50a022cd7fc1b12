package calendar

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/klabast/wb-services/feriados/internal/holidays"
)

func TestMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  []Week
	}{
		// 1 Feb 2015 is a Sunday and February has exactly four weeks.
		{2015, time.February, []Week{
			{1, 2, 3, 4, 5, 6, 7},
			{8, 9, 10, 11, 12, 13, 14},
			{15, 16, 17, 18, 19, 20, 21},
			{22, 23, 24, 25, 26, 27, 28},
		}},
		// 1 Dec 2024 is a Sunday, 31 Dec a Tuesday.
		{2024, time.December, []Week{
			{1, 2, 3, 4, 5, 6, 7},
			{8, 9, 10, 11, 12, 13, 14},
			{15, 16, 17, 18, 19, 20, 21},
			{22, 23, 24, 25, 26, 27, 28},
			{29, 30, 31, 0, 0, 0, 0},
		}},
		// 1 Mar 2025 is a Saturday.
		{2025, time.March, []Week{
			{0, 0, 0, 0, 0, 0, 1},
			{2, 3, 4, 5, 6, 7, 8},
			{9, 10, 11, 12, 13, 14, 15},
			{16, 17, 18, 19, 20, 21, 22},
			{23, 24, 25, 26, 27, 28, 29},
			{30, 31, 0, 0, 0, 0, 0},
		}},
	}

	for _, c := range cases {
		got := Month(c.year, c.month)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("Month(%d, %s) mismatch (-want +got):\n%s", c.year, c.month, diff)
		}
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2025, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestAnnotate(t *testing.T) {
	set, err := holidays.Build(2024)
	if err != nil {
		t.Fatal(err)
	}

	var marked []Cell
	for _, w := range Annotate(set, time.December) {
		for _, c := range w {
			if c.Holiday != "" {
				marked = append(marked, c)
			}
		}
	}

	want := []Cell{{Day: 25, Holiday: "Natal"}}
	if diff := cmp.Diff(want, marked); diff != "" {
		t.Errorf("Annotate(2024, December) mismatch (-want +got):\n%s", diff)
	}
}

func TestMonthName(t *testing.T) {
	if got := MonthName(time.March); got != "Março" {
		t.Errorf("MonthName(March) = %q", got)
	}
}
