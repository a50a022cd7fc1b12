// Package holidays computes the Brazilian national holidays of a year.
//
// A Set is built from a fixed table of constant-date holidays and from the
// holidays that move with Easter. It is keyed by the DD/MM string returned by
// Key, which is what calendar renderers look up day by day.
package holidays

import (
	"sort"
	"time"
)

// Kind tells whether a holiday has a constant date or moves with Easter.
type Kind string

const (
	Fixed   Kind = "fixo"
	Movable Kind = "movel"
)

// FixedHoliday is a holiday celebrated on the same month and day every year.
type FixedHoliday struct {
	Month time.Month
	Day   int
	Name  string
}

// MovableHoliday is a holiday defined as a day offset from Easter Sunday.
type MovableHoliday struct {
	Name   string
	Offset int
}

// Entry is one holiday occurrence within a Set.
type Entry struct {
	Date Date
	Name string
	Kind Kind
}

// Key returns the DD/MM key of the entry.
func (e Entry) Key() string { return e.Date.Key() }

// FixedHolidays lists the national holidays with a constant date.
var FixedHolidays = []FixedHoliday{
	{time.January, 1, "Confraternização Universal"},
	{time.April, 21, "Tiradentes"},
	{time.May, 1, "Dia do Trabalho"},
	{time.September, 7, "Independência do Brasil"},
	{time.October, 12, "Nossa Senhora Aparecida"},
	{time.November, 2, "Finados"},
	{time.November, 15, "Proclamação da República"},
	{time.December, 25, "Natal"},
}

// MovableHolidays lists the holidays derived from Easter, in insertion order.
var MovableHolidays = []MovableHoliday{
	{"Carnaval", -47},
	{"Sexta-feira Santa", -2},
	{"Páscoa", 0},
	{"Corpus Christi", 60},
}

// Set maps DD/MM keys to the holidays of a single year.
type Set struct {
	year    int
	easter  Date
	entries map[string]Entry
}

// Build returns the holidays of year. Fixed holidays are inserted first and
// movable ones after them, so a movable holiday falling on a fixed date
// replaces its name (Páscoa on 21/04 in 2019, for instance).
func Build(year int) (*Set, error) {
	easter, err := Easter(year)
	if err != nil {
		return nil, err
	}

	s := &Set{
		year:    year,
		easter:  easter,
		entries: make(map[string]Entry, len(FixedHolidays)+len(MovableHolidays)),
	}

	for _, h := range FixedHolidays {
		d, err := NewDate(year, h.Month, h.Day)
		if err != nil {
			return nil, err
		}
		s.put(Entry{Date: d, Name: h.Name, Kind: Fixed})
	}

	for _, h := range MovableHolidays {
		s.put(Entry{Date: easter.AddDays(h.Offset), Name: h.Name, Kind: Movable})
	}

	return s, nil
}

func (s *Set) put(e Entry) {
	s.entries[e.Key()] = e
}

// Year returns the year the set was built for.
func (s *Set) Year() int { return s.year }

// Easter returns the Easter Sunday the movable holidays were derived from.
func (s *Set) Easter() Date { return s.easter }

// Len returns the number of distinct holiday days.
func (s *Set) Len() int { return len(s.entries) }

// Lookup returns the holiday name stored under a DD/MM key.
func (s *Set) Lookup(key string) (string, bool) {
	e, ok := s.entries[key]
	return e.Name, ok
}

// LookupDate returns the holiday name for a day of the set's year.
func (s *Set) LookupDate(month time.Month, day int) (string, bool) {
	return s.Lookup(Key(month, day))
}

// Entry returns the full entry stored under key.
func (s *Set) Entry(key string) (Entry, bool) {
	e, ok := s.entries[key]
	return e, ok
}

// Map returns a copy of the DD/MM to name mapping.
func (s *Set) Map() map[string]string {
	m := make(map[string]string, len(s.entries))
	for k, e := range s.entries {
		m[k] = e.Name
	}
	return m
}

// Entries returns the holidays sorted by date.
func (s *Set) Entries() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// InMonth returns the holidays of one month sorted by day.
func (s *Set) InMonth(month time.Month) []Entry {
	var out []Entry
	for _, e := range s.Entries() {
		if e.Date.Month() == month {
			out = append(out, e)
		}
	}
	return out
}

// Equal reports whether both sets hold the same year and entries.
func (s *Set) Equal(other *Set) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.year != other.year || len(s.entries) != len(other.entries) {
		return false
	}
	for k, e := range s.entries {
		if o, ok := other.entries[k]; !ok || o != e {
			return false
		}
	}
	return true
}
