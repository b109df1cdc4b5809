package calendar_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-companion/internal/calendar"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func newCalendar(t *testing.T, now time.Time, tz string) *calendar.Calendar {
	t.Helper()
	cal, err := calendar.New(MockClock{CurrentTime: now}, tz)
	require.NoError(t, err)
	return cal
}

func TestNew_UnknownTimezone(t *testing.T) {
	_, err := calendar.New(calendar.RealClock{}, "Mars/Olympus_Mons")
	assert.Error(t, err)
}

func TestToday_ConvertsToReferenceZone(t *testing.T) {
	// 23:30 UTC on June 1 is already June 2 in Tokyo. "Today" must follow the
	// reference zone, not the instant's original zone.
	now := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	cal := newCalendar(t, now, "Asia/Tokyo")

	today := cal.Today()
	assert.Equal(t, 2025, today.Year())
	assert.Equal(t, time.June, today.Month())
	assert.Equal(t, 2, today.Day())
	assert.Equal(t, 0, today.Hour())
}

func TestCurrentHour(t *testing.T) {
	now := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	cal := newCalendar(t, now, "UTC")
	assert.Equal(t, 23, cal.CurrentHour())

	tokyo := newCalendar(t, now, "Asia/Tokyo")
	assert.Equal(t, 8, tokyo.CurrentHour(), "23:30 UTC is 08:30 next day in Tokyo")
}

func TestIsSameMonthDay(t *testing.T) {
	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want bool
	}{
		{
			name: "same month and day, different year",
			a:    time.Date(1990, 6, 1, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "same day, different month",
			a:    time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "same month, different day",
			a:    time.Date(1990, 6, 2, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.IsSameMonthDay(tt.a, tt.b))
		})
	}
}

func TestDaysUntil_BoundaryValues(t *testing.T) {
	from := time.Date(2025, 6, 10, 14, 45, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
		want   int
	}{
		{"same day ignores time of day", time.Date(2025, 6, 10, 1, 0, 0, 0, time.UTC), 0},
		{"tomorrow", time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), 1},
		{"yesterday", time.Date(2025, 6, 9, 23, 59, 59, 0, time.UTC), -1},
		{"four days overdue", time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC), -4},
		{"a week out", time.Date(2025, 6, 17, 8, 0, 0, 0, time.UTC), 7},
		{"across month boundary", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.DaysUntil(tt.target, from))
		})
	}
}

func TestDaysUntil_SymmetricAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	// March 30, 2025 is the spring-forward day in Paris (23-hour day).
	before := time.Date(2025, 3, 29, 12, 0, 0, 0, loc)
	after := time.Date(2025, 3, 31, 12, 0, 0, 0, loc)

	assert.Equal(t, 2, calendar.DaysUntil(after, before))
	assert.Equal(t, -2, calendar.DaysUntil(before, after), "rounding must be symmetric in both directions")
}

func TestAreConsecutiveDays(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want bool
	}{
		{
			name: "plain consecutive",
			a:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "same day",
			a:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "two day gap",
			a:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "reversed order",
			a:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "across DST spring forward (23h day)",
			a:    time.Date(2025, 3, 29, 0, 0, 0, 0, loc),
			b:    time.Date(2025, 3, 30, 0, 0, 0, 0, loc),
			want: true,
		},
		{
			name: "month boundary",
			a:    time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "year boundary",
			a:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.AreConsecutiveDays(tt.a, tt.b))
		})
	}
}

func TestParseDate_TableDriven(t *testing.T) {
	cal := newCalendar(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "UTC")

	tests := []struct {
		name        string
		value       string
		wantYear    int
		wantMonth   time.Month
		wantDay     int
		wantKnown   bool
		wantErr     bool
	}{
		{"ISO8601 standard", "1990-10-25", 1990, time.October, 25, true, false},
		{"basic format", "19901025", 1990, time.October, 25, true, false},
		{"RFC3339", "1990-10-25T00:00:00Z", 1990, time.October, 25, true, false},
		{"truncated month-day", "--10-25", 2000, time.October, 25, false, false},
		{"truncated basic", "--1025", 2000, time.October, 25, false, false},
		{"leapling truncated", "--02-29", 2000, time.February, 29, false, false},
		{"garbage", "not-a-date", 0, 0, 0, false, true},
		{"empty", "", 0, 0, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known, err := cal.ParseDate(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				var perr *calendar.ParseError
				assert.True(t, errors.As(err, &perr), "error should be a *ParseError")
				assert.Contains(t, perr.Error(), tt.value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, got.Year())
			assert.Equal(t, tt.wantMonth, got.Month())
			assert.Equal(t, tt.wantDay, got.Day())
			assert.Equal(t, tt.wantKnown, known)
		})
	}
}
