package holidays

import (
	"errors"
	"fmt"
	"time"
)

// Supported year range. Dates are proleptic Gregorian: years before 1583 are
// computed as if the Gregorian calendar had always been in effect.
const (
	MinYear = 1
	MaxYear = 9999
)

var (
	// ErrInvalidYear is returned for years outside [MinYear, MaxYear].
	ErrInvalidYear = errors.New("invalid year")

	// ErrInvalidDate is returned when a month/day pair is not a calendar day.
	ErrInvalidDate = errors.New("invalid date")
)

// ValidYear reports whether year is inside the supported range.
func ValidYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

func checkYear(year int) error {
	if !ValidYear(year) {
		return fmt.Errorf("%w: %d (supported %d-%d)", ErrInvalidYear, year, MinYear, MaxYear)
	}
	return nil
}

// Easter calculates Easter Sunday using the Meeus/Jones/Butcher algorithm.
// Every division truncates; Go's integer division does exactly that for the
// non-negative operands involved.
func Easter(year int) (Date, error) {
	if err := checkYear(year); err != nil {
		return Date{}, err
	}

	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := time.Month((h + l - 7*m + 114) / 31)
	day := ((h + l - 7*m + 114) % 31) + 1

	if month != time.March && month != time.April {
		return Date{}, fmt.Errorf("easter %d: %w: month %d", year, ErrInvalidDate, int(month))
	}
	return NewDate(year, month, day)
}
