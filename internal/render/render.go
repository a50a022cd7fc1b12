// Package render draws holiday-marked calendars on a terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/klabast/wb-services/feriados/internal/calendar"
	"github.com/klabast/wb-services/feriados/internal/holidays"
)

// Renderer draws the given months of a holiday set.
type Renderer interface {
	Render(set *holidays.Set, months []time.Month) error
}

const cellWidth = 5

// Terminal renders box-drawn month tables. Everything goes to the writer it
// was created with; there is no package-level output.
type Terminal struct {
	out     io.Writer
	holiday *color.Color
	title   *color.Color
	legend  *color.Color
}

// NewTerminal returns a renderer writing to w. With useColor false the
// output is plain text.
func NewTerminal(w io.Writer, useColor bool) *Terminal {
	t := &Terminal{
		out:     w,
		holiday: color.New(color.FgRed, color.Bold),
		title:   color.New(color.Bold),
		legend:  color.New(color.Bold, color.Underline),
	}
	for _, c := range []*color.Color{t.holiday, t.title, t.legend} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return t
}

// AllMonths is January through December.
func AllMonths() []time.Month {
	months := make([]time.Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, m)
	}
	return months
}

// Render draws one table per month followed by that month's holidays and,
// at the end, the general legend.
func (t *Terminal) Render(set *holidays.Set, months []time.Month) error {
	w := &errWriter{w: t.out}

	for _, m := range months {
		t.month(w, set, m)

		if hs := set.InMonth(m); len(hs) > 0 {
			w.printf("\n%s\n", t.legend.Sprint("Feriados deste mês:"))
			for _, h := range hs {
				w.printf("%s\n", t.holiday.Sprintf("- %s: %s", h.Key(), h.Name))
			}
		}
		w.printf("\n\n")
	}

	w.printf("\n%s\n", t.legend.Sprint("Legenda Geral:"))
	w.printf("%s Feriados\n", t.holiday.Sprint("Vermelho:"))
	return w.err
}

func (t *Terminal) month(w *errWriter, set *holidays.Set, m time.Month) {
	title := fmt.Sprintf("Calendário %s %d", calendar.MonthName(m), set.Year())
	width := 7*(cellWidth+1) + 1
	w.printf("%s\n", t.title.Sprint(center(title, width)))

	w.printf("%s\n", border('┌', '┬', '┐'))
	var header []string
	for _, name := range calendar.WeekdayNames {
		header = append(header, center(name, cellWidth))
	}
	w.printf("│%s│\n", strings.Join(header, "│"))

	for _, week := range calendar.Month(set.Year(), m) {
		w.printf("%s\n", border('├', '┼', '┤'))
		cells := make([]string, 7)
		for i, day := range week {
			if day == 0 {
				cells[i] = strings.Repeat(" ", cellWidth)
				continue
			}
			cell := center(fmt.Sprint(day), cellWidth)
			if _, ok := set.LookupDate(m, day); ok {
				cell = t.holiday.Sprint(cell)
			}
			cells[i] = cell
		}
		w.printf("│%s│\n", strings.Join(cells, "│"))
	}
	w.printf("%s\n", border('└', '┴', '┘'))
}

// RenderList prints the holidays of the set, one per line, sorted by date.
func (t *Terminal) RenderList(set *holidays.Set) error {
	w := &errWriter{w: t.out}
	w.printf("%s\n", t.title.Sprintf("Feriados nacionais %d (Páscoa: %s)", set.Year(), set.Easter().Key()))
	for _, e := range set.Entries() {
		w.printf("%s  %-3s  %s\n", e.Key(), calendar.WeekdayNames[e.Date.Weekday()], e.Name)
	}
	return w.err
}

func border(left, mid, right rune) string {
	seg := strings.Repeat("─", cellWidth)
	parts := make([]string, 7)
	for i := range parts {
		parts[i] = seg
	}
	return string(left) + strings.Join(parts, string(mid)) + string(right)
}

// center pads s with spaces to width runes.
func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
