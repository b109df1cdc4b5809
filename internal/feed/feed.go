// Package feed renders contacts into an iCalendar document so birthdays and
// reach-out dates show up in any subscribed calendar client.
package feed

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-companion/internal/calendar"
	"github.com/tartampluch/go-companion/internal/config"
	"github.com/tartampluch/go-companion/internal/contacts"
)

// Builder converts a contact snapshot into ICS bytes.
type Builder struct {
	Cal *calendar.Calendar

	// FormatSummary allows the display layer to inject localized event
	// summaries. Nil falls back to the English default.
	FormatSummary func(name string, age int, yearKnown bool) string
}

// Build renders the full calendar. A contact without dates contributes
// nothing; an empty result is still a valid (stub) VCALENDAR.
func (b *Builder) Build(list []contacts.Contact) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	now := b.Cal.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	stats := struct{ contactsIn, events, today int }{len(list), 0, 0}

	for _, c := range list {
		var events []*ical.Event

		if c.DateOfBirth != nil {
			bdayEvents, isToday := b.birthdayEvents(c, now)
			if isToday {
				stats.today++
			}
			events = append(events, bdayEvents...)
		}
		if c.ContactAgainDate != nil {
			events = append(events, b.reachOutEvent(c))
		}

		for _, e := range events {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
			stats.events++
		}
	}

	log := slog.With(config.LogKeyComponent, config.CompFeed)

	if len(cal.Children) == 0 {
		log.Info(config.MsgFeedGenerated, config.LogKeyCount, 0)
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	log.Info(config.MsgFeedGenerated,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.contactsIn),
			slog.Int(config.LogKeyCount, stats.events),
			slog.Int(config.LogKeyToday, stats.today),
		),
	)
	return buf.Bytes(), nil
}

// birthdayEvents generates one all-day event per year for the previous,
// current and next year, so calendar clients that scroll back or forward see
// the events without an immediate refresh. No event is generated before the
// person is born.
func (b *Builder) birthdayEvents(c contacts.Contact, now time.Time) ([]*ical.Event, bool) {
	loc := b.Cal.Location()
	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}

	var events []*ical.Event
	isToday := false
	todayYear, todayMonth, todayDay := now.Date()

	for _, y := range targetYears {
		if c.YearKnown && y < c.DateOfBirth.Year() {
			continue
		}

		age := 0
		if c.YearKnown {
			age = y - c.DateOfBirth.Year()
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, c.ID, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, b.summary(c.Name, age, c.YearKnown))

		eventDate := time.Date(y, c.DateOfBirth.Month(), c.DateOfBirth.Day(), 0, 0, 0, 0, loc)
		if y == todayYear && eventDate.Month() == todayMonth && eventDate.Day() == todayDay {
			isToday = true
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		events = append(events, event)
	}
	return events, isToday
}

// reachOutEvent generates a single all-day event with a display alarm on the
// contact-again date.
func (b *Builder) reachOutEvent(c contacts.Contact) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID,
		fmt.Sprintf(config.FormatUID, c.ID, c.ContactAgainDate.Year(), config.ICalDomain)+"-reachout")

	summary := fmt.Sprintf("%s: %s", config.TitleContactReminder, c.Name)
	event.Props.SetText(config.PropSummary, summary)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(*c.ContactAgainDate)
	event.Props.Set(dtStartProp)

	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, summary)
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = "PT0S"
	alarm.Props.Set(triggerProp)
	event.Children = append(event.Children, alarm)

	return event
}

func (b *Builder) summary(name string, age int, yearKnown bool) string {
	if b.FormatSummary != nil {
		return b.FormatSummary(name, age, yearKnown)
	}
	if yearKnown {
		return fmt.Sprintf("%s: %s (%d)", config.TitleBirthdayUpcoming, name, age)
	}
	return fmt.Sprintf("%s: %s", config.TitleBirthdayUpcoming, name)
}
