package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_DropsTimeOfDay(t *testing.T) {
	moment := time.Date(2026, 3, 1, 23, 45, 12, 500, time.UTC)
	assert.Equal(t, Date(2026, 3, 1), DateOf(moment))
}

func TestSameDay_AcrossTimezones(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Almaty")
	require.NoError(t, err)

	// 02:00 in Almaty on March 2nd is still March 1st in UTC.
	local := time.Date(2026, 3, 2, 2, 0, 0, 0, loc)
	utc := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	assert.True(t, SameDay(local, utc))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", Date(2026, 3, 1), Date(2026, 3, 1), 0},
		{"next day", Date(2026, 3, 1), Date(2026, 3, 2), 1},
		{"gap", Date(2026, 3, 1), Date(2026, 3, 5), 4},
		{"backwards", Date(2026, 3, 5), Date(2026, 3, 1), -4},
		{"across leap day", Date(2024, 2, 28), Date(2024, 3, 1), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.a, tt.b))
		})
	}
}

func TestFormatMinutes_TruncatesFraction(t *testing.T) {
	assert.Equal(t, "0 hours and 42 minutes", FormatMinutes(42.9))
	assert.Equal(t, "2 hours and 5 minutes", FormatMinutes(125))
	assert.Equal(t, "0 hours and 0 minutes", FormatMinutes(-3))
}

func TestMinutesBetween_ClampsNegative(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	minutes, clamped := MinutesBetween(start, start.Add(90*time.Second))
	assert.InDelta(t, 1.5, minutes, 0.0001)
	assert.False(t, clamped)

	minutes, clamped = MinutesBetween(start, start.Add(-time.Minute))
	assert.Zero(t, minutes)
	assert.True(t, clamped)
}

func TestParseClock(t *testing.T) {
	hour, minute, err := ParseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, 8, hour)
	assert.Equal(t, 30, minute)

	_, _, err = ParseClock("25:00")
	assert.Error(t, err)

	_, _, err = ParseClock("morning")
	assert.Error(t, err)
}
