package app

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/klabast/wb-services/feriados/internal/calendar"
	"github.com/klabast/wb-services/feriados/internal/holidays"
	"github.com/klabast/wb-services/feriados/internal/log"
)

// Reminder asks for one alarm per event at Time (HH:MM) DaysBefore days
// ahead of the holiday.
type Reminder struct {
	DaysBefore int
	Time       string
}

// ParseReminder reads the reminder and reminderDays query parameters.
// It returns nil when no reminder was requested.
func ParseReminder(r *http.Request) (*Reminder, error) {
	at := r.URL.Query().Get("reminder")
	if at == "" {
		return nil, nil
	}
	if _, _, err := parseClock(at); err != nil {
		return nil, err
	}

	days := 1
	if s := r.URL.Query().Get("reminderDays"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return nil, errors.Errorf("invalid reminderDays %q", s)
		}
		days = n
	}
	return &Reminder{DaysBefore: days, Time: at}, nil
}

func parseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("invalid time %q (expected HH:MM)", s)
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, errors.Errorf("invalid time %q (expected HH:MM)", s)
	}
	return hour, minute, nil
}

// EventUID is the stable identifier of a holiday occurrence. Calendar clients
// and CalDAV servers rely on it to update instead of duplicate.
func EventUID(e holidays.Entry) string {
	return fmt.Sprintf("%s-%s@%s", e.Date, slug(e.Name), ICSUIDDomain)
}

// slug lowercases name and keeps ASCII letters and digits, replacing
// accented vowels and joining words with dashes.
func slug(name string) string {
	replacer := strings.NewReplacer(
		"á", "a", "à", "a", "â", "a", "ã", "a",
		"é", "e", "ê", "e", "í", "i",
		"ó", "o", "ô", "o", "õ", "o", "ú", "u", "ç", "c",
	)
	s := replacer.Replace(strings.ToLower(name))

	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
		} else if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// NewICSCalendar returns an empty VCALENDAR with the product headers set.
func NewICSCalendar(name string) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ICSProductID)
	cal.Props.SetText("CALSCALE", "GREGORIAN")
	cal.Props.SetText("X-WR-CALNAME", name)
	cal.Props.SetText("X-WR-TIMEZONE", ICSTimezone)
	return cal
}

// HolidayEvent converts a holiday into an all-day VEVENT.
func HolidayEvent(e holidays.Entry, stamp time.Time) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, EventUID(e))
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	event.Props.SetDate(ical.PropDateTimeStart, e.Date.Time())
	event.Props.SetDate(ical.PropDateTimeEnd, e.Date.AddDays(1).Time())
	event.Props.SetText(ical.PropSummary, e.Name)
	event.Props.SetText(ical.PropDescription, fmt.Sprintf("Feriado nacional (%s): %s", kindLabel(e.Kind), e.Name))
	event.Props.SetText(ical.PropTransparency, "TRANSPARENT")
	return event
}

func kindLabel(k holidays.Kind) string {
	if k == holidays.Movable {
		return "móvel"
	}
	return "fixo"
}

// AddAlarm adds a display alarm to an all-day event. The trigger is relative
// to the event start at midnight, so an alarm at 18:00 two days before is
// -P1DT6H0M.
func AddAlarm(event *ical.Event, eventDate time.Time, daysBefore int, alarmTime string, description string) error {
	hour, minute, err := parseClock(alarmTime)
	if err != nil {
		return err
	}

	alarmDate := eventDate.AddDate(0, 0, -daysBefore)
	alarmDateTime := time.Date(alarmDate.Year(), alarmDate.Month(), alarmDate.Day(), hour, minute, 0, 0, time.UTC)
	eventStart := time.Date(eventDate.Year(), eventDate.Month(), eventDate.Day(), 0, 0, 0, 0, time.UTC)

	totalMinutes := int(alarmDateTime.Sub(eventStart).Minutes())
	isNegative := totalMinutes < 0
	if isNegative {
		totalMinutes = -totalMinutes
	}

	days := totalMinutes / (24 * 60)
	remainingMinutes := totalMinutes % (24 * 60)
	hours := remainingMinutes / 60
	minutes := remainingMinutes % 60

	trigger := fmt.Sprintf("P%dDT%dH%dM", days, hours, minutes)
	if isNegative {
		trigger = "-" + trigger
	}

	alarm := ical.NewComponent(ical.CompAlarm)
	alarm.Props.SetText(ical.PropAction, "DISPLAY")
	alarm.Props.SetText(ical.PropDescription, "Lembrete: "+description)
	triggerProp := ical.NewProp(ical.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
	return nil
}

// EncodeICS writes the holidays of sets as one calendar. Subscriptions get
// METHOD:PUBLISH and a refresh hint; reminders are ignored for them since
// most clients drop alarms from subscribed calendars.
func EncodeICS(w io.Writer, name string, sets []*holidays.Set, reminder *Reminder, subscription bool) error {
	cal := NewICSCalendar(name)
	if subscription {
		cal.Props.SetText("METHOD", "PUBLISH")
		cal.Props.SetText("X-PUBLISHED-TTL", "PT12H")
	}

	stamp := time.Now()
	for _, set := range sets {
		for _, e := range set.Entries() {
			event := HolidayEvent(e, stamp)
			if reminder != nil && !subscription {
				if err := AddAlarm(event, e.Date.Time(), reminder.DaysBefore, reminder.Time, e.Name); err != nil {
					return err
				}
			}
			cal.Children = append(cal.Children, event.Component)
		}
	}

	return ical.NewEncoder(w).Encode(cal)
}

type csvRow struct {
	Date    string `csv:"data"`
	Key     string `csv:"dia"`
	Weekday string `csv:"dia_semana"`
	Name    string `csv:"feriado"`
	Kind    string `csv:"tipo"`
}

// EncodeCSV writes one row per holiday, sorted by date.
func EncodeCSV(w io.Writer, set *holidays.Set) error {
	entries := set.Entries()
	rows := make([]*csvRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, &csvRow{
			Date:    e.Date.String(),
			Key:     e.Key(),
			Weekday: calendar.WeekdayNames[e.Date.Weekday()],
			Name:    e.Name,
			Kind:    string(e.Kind),
		})
	}
	return gocsv.Marshal(rows, w)
}

// EncodeJSON writes the JSON view of the set.
func EncodeJSON(w io.Writer, set *holidays.Set) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewHolidaysResponse(set))
}

func attachment(w http.ResponseWriter, year int, ext string) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%d.%s", ExportPrefix, year, ext))
}

// GenerateICS serves the year as an ICS download with optional reminders
func GenerateICS(w http.ResponseWriter, set *holidays.Set, reminder *Reminder) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	attachment(w, set.Year(), FormatICS)

	name := fmt.Sprintf("Feriados nacionais %d", set.Year())
	if err := EncodeICS(w, name, []*holidays.Set{set}, reminder, false); err != nil {
		log.Error("Error encoding ICS export: %v", err)
		http.Error(w, ErrFailedToGenerateICS, http.StatusInternalServerError)
	}
}

// GenerateCSV serves the year as a CSV download
func GenerateCSV(w http.ResponseWriter, set *holidays.Set) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	attachment(w, set.Year(), FormatCSV)

	if err := EncodeCSV(w, set); err != nil {
		log.Error("Error encoding CSV export: %v", err)
		http.Error(w, ErrFailedToGenerateCSV, http.StatusInternalServerError)
	}
}

// GenerateJSON serves the year as a JSON download
func GenerateJSON(w http.ResponseWriter, set *holidays.Set) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	attachment(w, set.Year(), FormatJSON)

	if err := EncodeJSON(w, set); err != nil {
		log.Error("Error encoding JSON export: %v", err)
		http.Error(w, ErrFailedToGenerateJSON, http.StatusInternalServerError)
	}
}

// GenerateSubscriptionICS serves an ICS subscription feed.
// Unlike GenerateICS there is no Content-Disposition header (calendar apps
// need inline content) and no VALARM blocks.
func GenerateSubscriptionICS(w http.ResponseWriter, sets []*holidays.Set) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")

	if err := EncodeICS(w, "Feriados nacionais", sets, nil, true); err != nil {
		log.Error("Error encoding ICS subscription: %v", err)
		http.Error(w, ErrFailedToGenerateICS, http.StatusInternalServerError)
	}
}
