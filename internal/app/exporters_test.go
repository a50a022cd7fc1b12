package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/wb-services/feriados/internal/holidays"
)

func mustBuild(t *testing.T, year int) *holidays.Set {
	t.Helper()
	set, err := holidays.Build(year)
	require.NoError(t, err)
	return set
}

func TestGenerateICS(t *testing.T) {
	set := mustBuild(t, 2025)
	w := httptest.NewRecorder()

	GenerateICS(w, set, &Reminder{DaysBefore: 1, Time: "19:00"})

	resp := w.Result()
	body := w.Body.String()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/calendar")
	assert.Equal(t, "attachment; filename=feriados_2025.ics", resp.Header.Get("Content-Disposition"))

	for _, field := range []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + ICSProductID,
		"X-WR-CALNAME:Feriados nacionais 2025",
		"BEGIN:VEVENT",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		assert.Contains(t, body, field)
	}

	// All-day events
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20251225")
	assert.Contains(t, body, "DTEND;VALUE=DATE:20251226")
	assert.Contains(t, body, "SUMMARY:Natal")
	assert.Contains(t, body, "UID:2025-12-25-natal@feriados")
	assert.Contains(t, body, "UID:2025-04-18-sexta-feira-santa@feriados")

	assert.Equal(t, set.Len(), strings.Count(body, "BEGIN:VEVENT"))
	assert.Equal(t, set.Len(), strings.Count(body, "BEGIN:VALARM"), "one alarm per holiday")
	assert.Contains(t, body, "ACTION:DISPLAY")
	assert.Contains(t, body, "TRIGGER:-P0DT5H0M")
	assert.NotContains(t, body, "METHOD:PUBLISH")
}

func TestGenerateICSParses(t *testing.T) {
	set := mustBuild(t, 2024)
	w := httptest.NewRecorder()
	GenerateICS(w, set, nil)

	cal, err := ical.NewDecoder(w.Body).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, set.Len())

	seen := make(map[string]string)
	for _, ev := range events {
		summary, err := ev.Props.Text(ical.PropSummary)
		require.NoError(t, err)
		start, err := ev.DateTimeStart(time.UTC)
		require.NoError(t, err)
		seen[holidays.Key(start.Month(), start.Day())] = summary
	}
	assert.Equal(t, set.Map(), seen)
}

func TestAddAlarm(t *testing.T) {
	tests := []struct {
		name        string
		eventDate   time.Time
		daysBefore  int
		alarmTime   string
		description string
		wantTrigger string
	}{
		{
			name:        "2 days before at 18:00",
			eventDate:   time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
			daysBefore:  2,
			alarmTime:   "18:00",
			description: "Natal",
			wantTrigger: "-P1DT6H0M",
		},
		{
			name:        "1 day before at 19:00",
			eventDate:   time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
			daysBefore:  1,
			alarmTime:   "19:00",
			description: "Natal",
			wantTrigger: "-P0DT5H0M",
		},
		{
			name:        "Same day at 07:00",
			eventDate:   time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC),
			daysBefore:  0,
			alarmTime:   "07:00",
			description: "Tiradentes",
			wantTrigger: "P0DT7H0M",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := ical.NewEvent()
			require.NoError(t, AddAlarm(event, tt.eventDate, tt.daysBefore, tt.alarmTime, tt.description))

			require.Len(t, event.Children, 1)
			alarm := event.Children[0]
			assert.Equal(t, ical.CompAlarm, alarm.Name)
			assert.Equal(t, tt.wantTrigger, alarm.Props.Get(ical.PropTrigger).Value)
			assert.Equal(t, "DISPLAY", alarm.Props.Get(ical.PropAction).Value)

			desc, err := alarm.Props.Text(ical.PropDescription)
			require.NoError(t, err)
			assert.Contains(t, desc, tt.description)
		})
	}
}

func TestAddAlarmInvalidTime(t *testing.T) {
	for _, at := range []string{"", "7", "25:00", "07:60", "aa:bb"} {
		err := AddAlarm(ical.NewEvent(), time.Now(), 1, at, "x")
		assert.Error(t, err, "alarm time %q", at)
	}
}

func TestGenerateCSV(t *testing.T) {
	w := httptest.NewRecorder()
	GenerateCSV(w, mustBuild(t, 2025))

	resp := w.Result()
	body := w.Body.String()

	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 13)
	assert.Equal(t, "data,dia,dia_semana,feriado,tipo", lines[0])
	assert.Equal(t, "2025-01-01,01/01,Qua,Confraternização Universal,fixo", lines[1])
	assert.Contains(t, body, "2025-03-04,04/03,Ter,Carnaval,movel")
	assert.Equal(t, "2025-12-25,25/12,Qui,Natal,fixo", lines[12])
}

func TestGenerateJSON(t *testing.T) {
	w := httptest.NewRecorder()
	GenerateJSON(w, mustBuild(t, 2025))

	resp := w.Result()
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var got HolidaysResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 2025, got.Year)
	assert.Equal(t, "2025-04-20", got.Easter)
	assert.Equal(t, "Páscoa", got.Holidays["20/04"])
	assert.Len(t, got.Entries, 12)
	assert.Equal(t, "Confraternização Universal", got.Entries[0].Name)
}

func TestEncodeICSSkipsRemindersForSubscriptions(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeICS(&buf, "x", []*holidays.Set{mustBuild(t, 2025)}, &Reminder{DaysBefore: 1, Time: "08:00"}, true)
	require.NoError(t, err)
	assert.Zero(t, strings.Count(buf.String(), "BEGIN:VALARM"))
}

func TestParseReminder(t *testing.T) {
	tests := []struct {
		query   string
		want    *Reminder
		wantErr bool
	}{
		{"", nil, false},
		{"reminder=08:30", &Reminder{DaysBefore: 1, Time: "08:30"}, false},
		{"reminder=18:00&reminderDays=2", &Reminder{DaysBefore: 2, Time: "18:00"}, false},
		{"reminder=25:00", nil, true},
		{"reminder=08:00&reminderDays=-1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/download?"+tt.query, nil)
			got, err := ParseReminder(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "confraternizacao-universal", slug("Confraternização Universal"))
	assert.Equal(t, "sexta-feira-santa", slug("Sexta-feira Santa"))
	assert.Equal(t, "proclamacao-da-republica", slug("Proclamação da República"))
	assert.Equal(t, "independencia-do-brasil", slug("Independência do Brasil"))
}
