package app

import (
	"github.com/klabast/wb-services/feriados/internal/calendar"
	"github.com/klabast/wb-services/feriados/internal/holidays"
)

// HolidayEntry is one holiday as exported in JSON
type HolidayEntry struct {
	Date    string `json:"date"`
	Key     string `json:"key"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Weekday string `json:"weekday"`
}

// HolidaysResponse is the JSON view of a holiday set
type HolidaysResponse struct {
	Year     int               `json:"year"`
	Easter   string            `json:"easter"`
	Holidays map[string]string `json:"holidays"`
	Entries  []HolidayEntry    `json:"entries"`
}

// MonthView is one annotated month grid
type MonthView struct {
	Month    int                `json:"month"`
	Name     string             `json:"name"`
	Weekdays [7]string          `json:"weekdays"`
	Weeks    [][7]calendar.Cell `json:"weeks"`
	Holidays []HolidayEntry     `json:"holidays"`
}

// CalendarResponse holds the requested months of a year
type CalendarResponse struct {
	Year   int         `json:"year"`
	Months []MonthView `json:"months"`
}

// WorkdayResponse answers a business day query
type WorkdayResponse struct {
	Date    string `json:"date"`
	Workday bool   `json:"workday"`
	Holiday string `json:"holiday,omitempty"`
	Next    string `json:"next_workday,omitempty"`
}

// NewHolidaysResponse converts a set into its JSON view
func NewHolidaysResponse(set *holidays.Set) HolidaysResponse {
	return HolidaysResponse{
		Year:     set.Year(),
		Easter:   set.Easter().String(),
		Holidays: set.Map(),
		Entries:  toEntries(set.Entries()),
	}
}

func toEntries(entries []holidays.Entry) []HolidayEntry {
	out := make([]HolidayEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, HolidayEntry{
			Date:    e.Date.String(),
			Key:     e.Key(),
			Name:    e.Name,
			Kind:    string(e.Kind),
			Weekday: calendar.WeekdayNames[e.Date.Weekday()],
		})
	}
	return out
}
