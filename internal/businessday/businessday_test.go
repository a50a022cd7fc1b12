package businessday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/wb-services/feriados/internal/holidays"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestIsWorkday(t *testing.T) {
	c := New()

	tests := []struct {
		date string
		want bool
	}{
		{"2024-03-29", false}, // Sexta-feira Santa
		{"2024-03-30", false}, // Saturday
		{"2024-04-01", true},
		{"2025-03-04", false}, // Carnaval
		{"2025-03-05", true},
		{"2025-06-19", false}, // Corpus Christi
		{"2025-12-25", false},
		{"2025-12-26", true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsWorkday(date(t, tt.date)))
		})
	}
}

func TestHoliday(t *testing.T) {
	c := New()

	name, ok := c.Holiday(date(t, "2024-03-29"))
	assert.True(t, ok)
	assert.Equal(t, "Sexta-feira Santa", name)

	// 2019: Easter on Tiradentes, the movable holiday wins as in a Set.
	name, ok = c.Holiday(date(t, "2019-04-21"))
	assert.True(t, ok)
	assert.Equal(t, "Páscoa", name)

	_, ok = c.Holiday(date(t, "2024-04-02"))
	assert.False(t, ok)
}

func TestHolidayMatchesSet(t *testing.T) {
	c := New()
	for _, year := range []int{2000, 2019, 2024, 2025, 2038} {
		set, err := holidays.Build(year)
		require.NoError(t, err)
		for _, e := range set.Entries() {
			name, ok := c.Holiday(e.Date.Time())
			assert.True(t, ok, "%s should be a holiday", e.Date)
			assert.Equal(t, e.Name, name, "holiday on %s", e.Date)
		}
	}
}

func TestNextWorkday(t *testing.T) {
	c := New()
	got, ok := c.NextWorkday(date(t, "2024-03-28"))
	require.True(t, ok)
	assert.Equal(t, "2024-04-01", got.Format("2006-01-02"))
}

func TestNextWorkdayEndOfRange(t *testing.T) {
	c := New()

	got, ok := c.NextWorkday(date(t, "9999-12-30"))
	require.True(t, ok)
	assert.Equal(t, "9999-12-31", got.Format("2006-01-02"))

	// 9999-12-31 is a Friday; the following Monday is in year 10000.
	got, ok = c.NextWorkday(date(t, "9999-12-31"))
	assert.False(t, ok)
	assert.True(t, got.IsZero())
}

func TestLastN(t *testing.T) {
	c := New()

	days := c.LastN(3, date(t, "2025-01-02"))

	var got []string
	for _, d := range days {
		got = append(got, d.Format("2006-01-02"))
	}
	assert.Equal(t, []string{"2025-01-02", "2024-12-31", "2024-12-30"}, got)
}

func TestLastNStartOfRange(t *testing.T) {
	c := New()

	// 0001-01-01 is Confraternização Universal, 02 and 03 are Tuesday and Wednesday.
	days := c.LastN(5, date(t, "0001-01-03"))

	var got []string
	for _, d := range days {
		got = append(got, d.Format("2006-01-02"))
	}
	assert.Equal(t, []string{"0001-01-03", "0001-01-02"}, got)
}

func TestCivilIgnoresZone(t *testing.T) {
	c := New()
	loc := time.FixedZone("BRT", -3*60*60)
	// Late evening of Christmas in Brazil is already the 26th in UTC.
	evening := time.Date(2025, time.December, 25, 23, 0, 0, 0, loc)
	assert.False(t, c.IsWorkday(evening))
}
