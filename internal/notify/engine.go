package notify

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-companion/internal/calendar"
	"github.com/tartampluch/go-companion/internal/config"
	"github.com/tartampluch/go-companion/internal/contacts"
)

// Engine derives notifications from contact records.
// Derivation is a pure function of the contact list and "today": no state is
// kept between passes, so it is safe to re-run on every refresh and replace
// the prior set wholesale.
type Engine struct {
	Cal *calendar.Calendar

	// FormatBirthday and FormatReminder allow the display layer to inject
	// localized subtitles. Nil falls back to the English defaults.
	FormatBirthday func(name string, daysUntil int) string
	FormatReminder func(daysUntil int) string
}

// Derive produces zero or more notifications per contact for the given day.
// Each contact can yield at most one birthday and one reminder notification,
// each under a deterministic ID, so repeated passes never accumulate duplicates.
func (e *Engine) Derive(list []contacts.Contact, today time.Time) []Notification {
	start := time.Now()
	now := e.Cal.Now()

	var out []Notification
	for _, c := range list {
		if !c.HasDates() {
			continue
		}
		if n, ok := e.birthdayNotification(c, today, now); ok {
			out = append(out, n)
		}
		if n, ok := e.reminderNotification(c, today, now); ok {
			out = append(out, n)
		}
	}

	slog.Debug(config.MsgDeriveDone,
		config.LogKeyComponent, config.CompNotify,
		config.LogKeyCount, len(out),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return out
}

// birthdayNotification applies the birthday rule: high priority today and
// tomorrow, medium at 2-3 days out, silence beyond.
func (e *Engine) birthdayNotification(c contacts.Contact, today, now time.Time) (Notification, bool) {
	if c.DateOfBirth == nil {
		return Notification{}, false
	}

	days := daysUntilBirthday(*c.DateOfBirth, today)
	if days > config.BirthdayWindowDays {
		return Notification{}, false
	}

	priority := PriorityHigh
	title := config.TitleBirthdayUpcoming
	switch {
	case days == 0:
		title = config.TitleBirthdayToday
	case days == 1:
		// tomorrow, still high
	default:
		priority = PriorityMedium
	}

	subtitle := e.birthdaySubtitle(c.Name, days)

	return Notification{
		ID:        fmt.Sprintf(config.FormatBirthdayID, c.ID),
		Type:      TypeBirthday,
		Priority:  priority,
		Title:     title,
		Subtitle:  subtitle,
		CreatedAt: now,
		Metadata: map[string]any{
			config.MetaContactID:   c.ID,
			config.MetaContactName: c.Name,
			config.MetaDaysUntil:   days,
		},
	}, true
}

// reminderNotification applies the reach-out rule keyed on the signed
// whole-day distance to the contact-again date.
func (e *Engine) reminderNotification(c contacts.Contact, today, now time.Time) (Notification, bool) {
	if c.ContactAgainDate == nil {
		return Notification{}, false
	}

	days := calendar.DaysUntil(*c.ContactAgainDate, today)
	if days > config.ReminderLowMaxDays {
		return Notification{}, false
	}

	var priority Priority
	switch {
	case days <= 1:
		// Overdue, due today and due tomorrow all demand attention now.
		priority = PriorityHigh
	case days <= config.ReminderMediumMaxDays:
		priority = PriorityMedium
	default:
		priority = PriorityLow
	}

	return Notification{
		ID:        fmt.Sprintf(config.FormatReminderID, c.ID),
		Type:      TypeContactReminder,
		Priority:  priority,
		Title:     config.TitleContactReminder,
		Subtitle:  e.reminderSubtitle(days),
		CreatedAt: now,
		Metadata: map[string]any{
			config.MetaContactID:   c.ID,
			config.MetaContactName: c.Name,
			config.MetaIsOverdue:   days < 0,
			config.MetaDaysUntil:   days,
		},
	}, true
}

func (e *Engine) birthdaySubtitle(name string, days int) string {
	if e.FormatBirthday != nil {
		return e.FormatBirthday(name, days)
	}
	return DefaultBirthdaySubtitle(name, days)
}

func (e *Engine) reminderSubtitle(days int) string {
	if e.FormatReminder != nil {
		return e.FormatReminder(days)
	}
	return DefaultReminderSubtitle(days)
}

// DefaultBirthdaySubtitle renders the English birthday wording.
func DefaultBirthdaySubtitle(name string, days int) string {
	switch days {
	case 0:
		return fmt.Sprintf(config.FormatBirthdayToday, name)
	case 1:
		return fmt.Sprintf(config.FormatBirthdayTomorrow, name)
	default:
		return fmt.Sprintf(config.FormatBirthdayInDays, name, days)
	}
}

// DefaultReminderSubtitle renders the English reach-out wording.
func DefaultReminderSubtitle(days int) string {
	switch {
	case days < 0:
		overdue := -days
		if overdue == 1 {
			return fmt.Sprintf(config.FormatOverdueSingular, overdue)
		}
		return fmt.Sprintf(config.FormatOverduePlural, overdue)
	case days == 0:
		return config.SubtitleDueToday
	case days == 1:
		return config.SubtitleDueTomorrow
	default:
		return fmt.Sprintf(config.FormatDueInDays, days)
	}
}

// daysUntilBirthday computes the whole-day distance from today to the next
// occurrence of the birthday's month/day, ignoring the birth year.
// Go's time.Date normalizes Feb 29 to March 1 in non-leap years, matching the
// app's leapling behavior.
func daysUntilBirthday(dob, today time.Time) int {
	if calendar.IsSameMonthDay(dob, today) {
		return 0
	}

	loc := today.Location()
	candidate := time.Date(today.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, loc)
	if candidate.Before(calendar.Midnight(today)) {
		candidate = time.Date(today.Year()+1, dob.Month(), dob.Day(), 0, 0, 0, 0, loc)
	}
	return calendar.DaysUntil(candidate, today)
}
