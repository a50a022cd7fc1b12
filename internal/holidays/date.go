package holidays

import (
	"fmt"
	"time"
)

// Date is a civil date in the proleptic Gregorian calendar.
// The zero value is not a valid date; construct with NewDate.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate returns the date for year, month and day, or ErrInvalidDate when the
// triple does not name a real calendar day (e.g. 30/02).
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, int(month), day)
	}
	return Date{year: year, month: month, day: day}, nil
}

// DateOf returns the civil date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func (d Date) Year() int             { return d.year }
func (d Date) Month() time.Month     { return d.month }
func (d Date) Day() int              { return d.day }
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// AddDays shifts the date by n days, rolling over month and year boundaries.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

// Key returns the DD/MM lookup key of the date.
func (d Date) Key() string {
	return Key(d.month, d.day)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// Key formats a day of the year as the zero-padded DD/MM string used to index
// a Set. Renderers must build their lookup keys through this function.
func Key(month time.Month, day int) string {
	return fmt.Sprintf("%02d/%02d", day, int(month))
}
