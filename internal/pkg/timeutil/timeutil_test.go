package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock_Variants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		minutes int
	}{
		{"09:00", 540},
		{"00:00", 0},
		{"23:59", 1439},
		{"9:30", 570},
		{"9.30", 570},
		{"7", 420},
		{" 08:15 ", 495},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.minutes, got, "input %q", tt.input)
	}
}

func TestParseClock_Malformed(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "abc", "25:00", "12:60", "-1:00", "1:2:3", "12:xx"} {
		_, err := ParseClock(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestCombine(t *testing.T) {
	t.Parallel()

	got, err := Combine("2024-03-04", "09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC), got)

	_, err = Combine("04-03-2024", "09:30")
	assert.Error(t, err)

	_, err = Combine("2024-03-04", "nope")
	assert.Error(t, err)
}

func TestHoursBetween_RoundsToTwoDecimals(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 8.0, HoursBetween(start, start.Add(8*time.Hour)))
	assert.Equal(t, 0.33, HoursBetween(start, start.Add(20*time.Minute)))
	assert.Equal(t, -1.5, HoursBetween(start, start.Add(-90*time.Minute)))
}

func TestAdjustOvernight(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 4, 22, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 4, 6, 0, 0, 0, time.UTC)

	adjusted := AdjustOvernight(start, end, true)
	assert.Equal(t, time.Date(2024, 3, 5, 6, 0, 0, 0, time.UTC), adjusted)

	// Not flagged: left alone even when end precedes start.
	assert.Equal(t, end, AdjustOvernight(start, end, false))

	// Already ordered: no adjustment regardless of the flag.
	late := time.Date(2024, 3, 4, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, late, AdjustOvernight(start, late, true))
}

func TestCrossesMidnight(t *testing.T) {
	t.Parallel()

	assert.True(t, CrossesMidnight(22*60, 6*60))
	assert.True(t, CrossesMidnight(9*60, 9*60))
	assert.False(t, CrossesMidnight(9*60, 17*60))
}

func TestWeekStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		date string
		want string
	}{
		{"2024-03-04", "2024-03-04"}, // Monday
		{"2024-03-07", "2024-03-04"}, // Thursday
		{"2024-03-10", "2024-03-04"}, // Sunday
		{"2024-03-11", "2024-03-11"}, // next Monday
	}

	for _, tt := range tests {
		got, err := WeekStart(tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "date %s", tt.date)
	}
}

func TestNextPrevDate(t *testing.T) {
	t.Parallel()

	next, err := NextDate("2024-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", next) // leap year

	prev, err := PrevDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", prev)
}
