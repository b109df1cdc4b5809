package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-companion/internal/calendar"
	"github.com/tartampluch/go-companion/internal/config"
	"github.com/tartampluch/go-companion/internal/notify"
)

func newSnoozer(t *testing.T, now time.Time, tz string) *notify.Snoozer {
	t.Helper()
	cal, err := calendar.New(MockClock{CurrentTime: now}, tz)
	require.NoError(t, err)
	return &notify.Snoozer{Cal: cal}
}

func TestSnoozer_Until_Later(t *testing.T) {
	now := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	s := newSnoozer(t, now, "UTC")

	got := s.Until(config.SnoozeOptionLater)
	assert.Equal(t, now.Add(3*time.Hour), got)
}

func TestSnoozer_Until_Tomorrow(t *testing.T) {
	now := time.Date(2025, 6, 1, 22, 45, 0, 0, time.UTC)
	s := newSnoozer(t, now, "UTC")

	got := s.Until(config.SnoozeOptionTomorrow)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), got,
		"tomorrow means 09:00 on the next calendar day, not +24h")
}

func TestSnoozer_Until_TomorrowAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	// March 29, 2025 at 20:00 Paris time; clocks spring forward overnight.
	now := time.Date(2025, 3, 29, 20, 0, 0, 0, loc)
	s := newSnoozer(t, now, "Europe/Paris")

	got := s.Until(config.SnoozeOptionTomorrow)
	assert.Equal(t, 9, got.Hour(), "must land on 09:00 wall clock despite the 23h day")
	assert.Equal(t, 30, got.Day())
}

func TestSnoozer_Until_Week(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	s := newSnoozer(t, now, "UTC")

	got := s.Until(config.SnoozeOptionWeek)
	assert.Equal(t, now.Add(7*24*time.Hour), got)
}

func TestSnoozer_Until_UnknownFallsBackToLater(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	s := newSnoozer(t, now, "UTC")

	got := s.Until("fortnight")
	assert.Equal(t, now.Add(3*time.Hour), got)
}

func TestSnoozer_IsSnoozeExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newSnoozer(t, now, "UTC")

	past := now.Add(-time.Minute)
	exact := now
	future := now.Add(time.Minute)

	tests := []struct {
		name string
		n    notify.Notification
		want bool
	}{
		{"never snoozed", notify.Notification{}, true},
		{"deadline passed", notify.Notification{SnoozedUntil: &past}, true},
		{"deadline is exactly now", notify.Notification{SnoozedUntil: &exact}, true},
		{"deadline in the future", notify.Notification{SnoozedUntil: &future}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.IsSnoozeExpired(tt.n))
		})
	}
}
