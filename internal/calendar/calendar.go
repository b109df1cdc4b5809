package calendar

import (
	"fmt"
	"math"
	"time"

	"github.com/tartampluch/go-companion/internal/config"
)

// ParseError reports a date value that could not be parsed.
// A bad date indicates a data-integrity problem upstream, so it is propagated
// rather than swallowed.
type ParseError struct {
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", config.ErrDateParse, e.Value)
}

// Calendar answers "today" and day-arithmetic questions in a single fixed
// reference time zone. Binding the zone once here keeps day-boundary behavior
// consistent for a user whose device zone changes.
type Calendar struct {
	clock Clock
	loc   *time.Location
}

// New creates a Calendar bound to the given IANA zone name.
func New(clock Clock, timezone string) (*Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTimezoneLoad, err)
	}
	return &Calendar{clock: clock, loc: loc}, nil
}

// Location exposes the reference zone for collaborators that construct
// wall-clock timestamps (the snooze evaluator, the feed builder).
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in the reference zone.
func (c *Calendar) Now() time.Time {
	return c.clock.Now().In(c.loc)
}

// Today returns the current date at midnight in the reference zone.
func (c *Calendar) Today() time.Time {
	return Midnight(c.Now())
}

// CurrentHour returns the hour-of-day [0,23] in the reference zone.
// Exposed for hour-sensitive greetings in the display layer.
func (c *Calendar) CurrentHour() int {
	return c.Now().Hour()
}

// IsSameMonthDay reports whether a and b share month and day-of-month,
// ignoring year. This is the basis for birthday matching.
func IsSameMonthDay(a, b time.Time) bool {
	return a.Month() == b.Month() && a.Day() == b.Day()
}

// DaysUntil returns the signed whole-day difference between target and from,
// positive if target is in the future. Both sides are midnight-aligned in
// their own location before comparison, and the hour difference is rounded so
// that DST transitions (23h or 25h days) never shift the result.
func DaysUntil(target, from time.Time) int {
	t := Midnight(target)
	f := Midnight(from)
	return int(math.Round(t.Sub(f).Hours() / 24))
}

// AreConsecutiveDays reports whether b is exactly one calendar day after a.
// The comparison is date-only: adding one calendar day to a and matching
// year/month/day avoids the ~24h-apart trap across DST transitions.
func AreConsecutiveDays(a, b time.Time) bool {
	next := a.AddDate(0, 0, 1)
	ny, nm, nd := next.Date()
	by, bm, bd := b.Date()
	return ny == by && nm == bm && nd == bd
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Midnight truncates t to 00:00:00 in its own location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a calendar date in any of the supported layouts.
// Truncated vCard forms (--MM-DD) get a leap-year placeholder so Feb 29 stays
// representable; the second return value reports whether the year was present.
func (c *Calendar) ParseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.ParseInLocation(f, value, c.loc); err == nil {
			return Midnight(t), true, nil
		}
	}

	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			safeDate := time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
			return safeDate, false, nil
		}
	}

	return time.Time{}, false, &ParseError{Value: value}
}
