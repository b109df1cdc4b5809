package notify

import (
	"log/slog"
	"time"

	"github.com/tartampluch/go-companion/internal/calendar"
	"github.com/tartampluch/go-companion/internal/config"
)

// Snoozer computes snooze deadlines and decides when a snoozed notification
// should reappear. All wall-clock math happens in the reference zone.
type Snoozer struct {
	Cal *calendar.Calendar
}

// IsSnoozeExpired reports whether the notification is free of any active
// snooze: either it was never snoozed, or "now" is at or past the deadline.
func (s *Snoozer) IsSnoozeExpired(n Notification) bool {
	if n.SnoozedUntil == nil {
		return true
	}
	return !s.Cal.Now().Before(*n.SnoozedUntil)
}

// Until computes the snooze deadline for a named option.
// "tomorrow" lands on 09:00 wall-clock time of the next calendar day, not
// now+24h, so it stays at 09:00 across a DST transition.
// An unknown option falls back to the "later" behavior rather than erroring,
// preserving compatibility with persisted snooze choices; the fallback is
// logged so typos still surface.
func (s *Snoozer) Until(option string) time.Time {
	now := s.Cal.Now()

	switch option {
	case config.SnoozeOptionLater:
		return now.Add(config.SnoozeLaterDuration)
	case config.SnoozeOptionTomorrow:
		next := calendar.Midnight(now).AddDate(0, 0, 1)
		return time.Date(next.Year(), next.Month(), next.Day(),
			config.SnoozeTomorrowHour, 0, 0, 0, s.Cal.Location())
	case config.SnoozeOptionWeek:
		return now.Add(config.SnoozeWeekDuration)
	default:
		slog.Warn(config.MsgSnoozeUnknown,
			config.LogKeyComponent, config.CompNotify,
			config.LogKeyOption, option,
		)
		return now.Add(config.SnoozeLaterDuration)
	}
}
