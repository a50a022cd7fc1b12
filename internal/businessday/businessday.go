// Package businessday answers workday questions for Brazilian national
// holidays on top of a rickar/cal business calendar.
package businessday

import (
	"time"

	"github.com/rickar/cal/v2"

	"github.com/klabast/wb-services/feriados/internal/holidays"
)

// Calendar is a Monday to Friday business calendar without national holidays.
type Calendar struct {
	bc *cal.BusinessCalendar
}

// New registers every fixed and movable holiday with a fresh business
// calendar. Dates come from holidays.Build, so collisions resolve the same
// way as in a Set.
func New() *Calendar {
	bc := cal.NewBusinessCalendar()
	for _, h := range holidays.FixedHolidays {
		bc.AddHoliday(&cal.Holiday{
			Name:  h.Name,
			Month: h.Month,
			Day:   h.Day,
			Func:  fromSet(holidays.Key(h.Month, h.Day)),
		})
	}
	for _, h := range holidays.MovableHolidays {
		bc.AddHoliday(&cal.Holiday{
			Name:   h.Name,
			Offset: h.Offset,
			Func:   easterOffset,
		})
	}
	return &Calendar{bc: bc}
}

// fromSet resolves a fixed holiday through the year's Set, returning the zero
// time when a movable holiday took its key.
func fromSet(key string) cal.HolidayFn {
	return func(h *cal.Holiday, year int) time.Time {
		set, err := holidays.Build(year)
		if err != nil {
			return time.Time{}
		}
		e, ok := set.Entry(key)
		if !ok || e.Name != h.Name {
			return time.Time{}
		}
		return e.Date.Time()
	}
}

func easterOffset(h *cal.Holiday, year int) time.Time {
	easter, err := holidays.Easter(year)
	if err != nil {
		return time.Time{}
	}
	return easter.AddDays(h.Offset).Time()
}

// IsWorkday reports whether t falls on a weekday that is not a holiday.
func (c *Calendar) IsWorkday(t time.Time) bool {
	return c.bc.IsWorkday(civil(t))
}

// Holiday returns the name of the holiday on t, if any.
func (c *Calendar) Holiday(t time.Time) (string, bool) {
	actual, _, h := c.bc.IsHoliday(civil(t))
	if !actual || h == nil {
		return "", false
	}
	return h.Name, true
}

// NextWorkday returns the first workday strictly after t. ok is false when
// no workday remains before the end of holidays.MaxYear.
func (c *Calendar) NextWorkday(t time.Time) (next time.Time, ok bool) {
	d := civil(t).AddDate(0, 0, 1)
	for d.Year() <= holidays.MaxYear {
		if c.bc.IsWorkday(d) {
			return d, true
		}
		d = d.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

// LastN returns up to n workdays on or before from, most recent first. The
// walk stops at the start of holidays.MinYear, so fewer than n may be returned.
func (c *Calendar) LastN(n int, from time.Time) []time.Time {
	out := make([]time.Time, 0, n)
	d := civil(from)
	for len(out) < n && d.Year() >= holidays.MinYear {
		if c.bc.IsWorkday(d) {
			out = append(out, d)
		}
		d = d.AddDate(0, 0, -1)
	}
	return out
}

// civil drops the clock and zone of t, keeping its calendar day.
func civil(t time.Time) time.Time {
	return holidays.DateOf(t).Time()
}
