package dateparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	d, ok := Parse(s)
	require.True(t, ok, "expected %q to parse", s)
	return d
}

func TestParse_NotationsAgree(t *testing.T) {
	want := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, mustParse(t, "2025-03-04"))
	assert.Equal(t, want, mustParse(t, "03/04/2025"))
	assert.Equal(t, want, mustParse(t, "4 Mar. 2025"))
	assert.Equal(t, want, mustParse(t, "4 mar 2025"))
}

func TestParse_ISOWithTimeSuffix(t *testing.T) {
	d := mustParse(t, "2024-01-05T13:22:00Z")
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), d)
}

func TestParse_ISOBeatsSlashAmbiguity(t *testing.T) {
	// ISO is tried first, so this is January 5th, never May 1st.
	d := mustParse(t, "2024-01-05")
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 5, d.Day())
}

func TestParse_SlashMonthFirst(t *testing.T) {
	d := mustParse(t, "01/15/2025")
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 15, d.Day())
}

func TestParse_SlashDayFirstFallback(t *testing.T) {
	d := mustParse(t, "25/12/2024")
	assert.Equal(t, time.December, d.Month())
	assert.Equal(t, 25, d.Day())
}

func TestParse_TwoDigitYear(t *testing.T) {
	d := mustParse(t, "03/04/25")
	assert.Equal(t, 2025, d.Year())
}

func TestParse_SpelledSept(t *testing.T) {
	d := mustParse(t, "12 Sept 2024")
	assert.Equal(t, time.September, d.Month())
}

func TestParse_InvalidCalendarDate(t *testing.T) {
	_, ok := Parse("2024-02-30")
	assert.False(t, ok, "Feb 30 is not a real date")
}

func TestParse_NoMatch(t *testing.T) {
	for _, s := range []string{"", "NETFLIX.COM", "12-34", "banana 2024", "99/99/2024"} {
		_, ok := Parse(s)
		assert.False(t, ok, "expected %q not to parse", s)
	}
}

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("2025-03-04"))
	assert.True(t, IsDate(" 03/04/2025 "))
	assert.False(t, IsDate("COFFEE SHOP"))
}
