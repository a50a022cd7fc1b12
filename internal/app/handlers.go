package app

import (
	"net/http"
	"strconv"
	"time"

	"github.com/klabast/wb-services/feriados/internal/calendar"
	"github.com/klabast/wb-services/feriados/internal/holidays"
	"github.com/klabast/wb-services/feriados/internal/log"
)

// GetConfig returns the supported range and the current year's holidays
func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	currentYear := s.now().Year()

	config := map[string]interface{}{
		"currentYear": currentYear,
		"minYear":     holidays.MinYear,
		"maxYear":     holidays.MaxYear,
		"weekdays":    calendar.WeekdayNames,
		"formats":     []string{FormatICS, FormatCSV, FormatJSON},
	}
	if set, err := BuildSet(currentYear); err == nil {
		config["holidays"] = set.Map()
	} else {
		log.Warn("No holidays for current year %d: %v", currentYear, err)
	}
	writeJSON(w, config)
}

// HandleHolidays returns the holidays of a year
// Query param: year (optional, defaults to current year)
func (s *Server) HandleHolidays(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	set := setForRequest(w, r, s.now())
	if set == nil {
		return
	}
	writeJSON(w, NewHolidaysResponse(set))
}

// HandleCalendar returns annotated month grids
// Query params: year (optional), month (optional, 1-12; all months if omitted)
func (s *Server) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	months := make([]time.Month, 0, 12)
	if ms := r.URL.Query().Get("month"); ms != "" {
		m, err := strconv.Atoi(ms)
		if err != nil || m < 1 || m > 12 {
			http.Error(w, ErrInvalidMonth, http.StatusBadRequest)
			return
		}
		months = append(months, time.Month(m))
	} else {
		for m := time.January; m <= time.December; m++ {
			months = append(months, m)
		}
	}

	set := setForRequest(w, r, s.now())
	if set == nil {
		return
	}

	resp := CalendarResponse{Year: set.Year()}
	for _, m := range months {
		resp.Months = append(resp.Months, MonthView{
			Month:    int(m),
			Name:     calendar.MonthName(m),
			Weekdays: calendar.WeekdayNames,
			Weeks:    calendar.Annotate(set, m),
			Holidays: toEntries(set.InMonth(m)),
		})
	}
	writeJSON(w, resp)
}

// HandleWorkday answers whether a date is a business day
// Query param: date (YYYY-MM-DD, defaults to today)
func (s *Server) HandleWorkday(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	day := s.now()
	if ds := r.URL.Query().Get("date"); ds != "" {
		var err error
		day, err = time.Parse("2006-01-02", ds)
		if err != nil {
			http.Error(w, ErrInvalidDateFormat, http.StatusBadRequest)
			return
		}
	}
	if !holidays.ValidYear(day.Year()) {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return
	}

	resp := WorkdayResponse{
		Date:    day.Format("2006-01-02"),
		Workday: s.workdays.IsWorkday(day),
	}
	if next, ok := s.workdays.NextWorkday(day); ok {
		resp.Next = next.Format("2006-01-02")
	}
	if name, ok := s.workdays.Holiday(day); ok {
		resp.Holiday = name
	}
	writeJSON(w, resp)
}

// HandleDownload handles export downloads in ICS, CSV or JSON format
func (s *Server) HandleDownload(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case FormatICS, FormatCSV, FormatJSON:
	default:
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
		return
	}

	reminder, err := ParseReminder(r)
	if err != nil {
		http.Error(w, ErrInvalidReminder, http.StatusBadRequest)
		return
	}

	set := setForRequest(w, r, s.now())
	if set == nil {
		return
	}

	switch format {
	case FormatICS:
		GenerateICS(w, set, reminder)
	case FormatCSV:
		GenerateCSV(w, set)
	case FormatJSON:
		GenerateJSON(w, set)
	}
}

// HandleSubscribe handles calendar subscription requests
// Returns an ICS feed covering the years around the current one
func (s *Server) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	currentYear := s.now().Year()
	var sets []*holidays.Set
	for year := currentYear - SubscriptionYearsBack; year <= currentYear+SubscriptionYearsAhead; year++ {
		set, err := BuildSet(year)
		if err != nil {
			// Only happens at the edges of the supported range
			log.Warn("Skipping %d in subscription feed: %v", year, err)
			continue
		}
		sets = append(sets, set)
	}

	GenerateSubscriptionICS(w, sets)
}
