package feed_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-companion/internal/calendar"
	"github.com/tartampluch/go-companion/internal/contacts"
	"github.com/tartampluch/go-companion/internal/feed"
)

type mockClock struct {
	now time.Time
}

func (m mockClock) Now() time.Time { return m.now }

func newBuilder(t *testing.T, now time.Time) *feed.Builder {
	t.Helper()
	cal, err := calendar.New(mockClock{now: now}, "UTC")
	require.NoError(t, err)
	return &feed.Builder{Cal: cal}
}

func dateRef(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestBuild_EmptyContactsYieldsStub(t *testing.T) {
	b := newBuilder(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	got, err := b.Build(nil)
	require.NoError(t, err)

	ics := string(got)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "END:VCALENDAR")
	assert.NotContains(t, ics, "BEGIN:VEVENT")
}

func TestBuild_BirthdayYearRange(t *testing.T) {
	b := newBuilder(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	list := []contacts.Contact{{
		ID: "r1", Name: "Range Test",
		DateOfBirth: dateRef(1990, 12, 31), YearKnown: true,
	}}

	got, err := b.Build(list)
	require.NoError(t, err)

	ics := string(got)
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20241231", "previous year present")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20251231", "current year present")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20261231", "next year present")
	assert.Equal(t, 3, strings.Count(ics, "BEGIN:VEVENT"))
}

func TestBuild_NoEventsBeforeBirth(t *testing.T) {
	b := newBuilder(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	list := []contacts.Contact{{
		ID: "baby", Name: "Baby",
		DateOfBirth: dateRef(2025, 5, 1), YearKnown: true,
	}}

	got, err := b.Build(list)
	require.NoError(t, err)

	ics := string(got)
	assert.NotContains(t, ics, "DTSTART;VALUE=DATE:20240501")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20250501")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20260501")
	assert.Equal(t, 2, strings.Count(ics, "BEGIN:VEVENT"))
}

func TestBuild_ReachOutEventWithAlarm(t *testing.T) {
	b := newBuilder(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	list := []contacts.Contact{{
		ID: "ro", Name: "Robin",
		ContactAgainDate: dateRef(2025, 6, 5),
	}}

	got, err := b.Build(list)
	require.NoError(t, err)

	ics := string(got)
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20250605")
	assert.Contains(t, ics, "BEGIN:VALARM")
	assert.Contains(t, ics, "ACTION:DISPLAY")
	assert.Contains(t, ics, "Robin")
}

func TestBuild_InjectedSummaryFormatter(t *testing.T) {
	b := newBuilder(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	b.FormatSummary = func(name string, age int, yearKnown bool) string {
		return "Anniversaire: " + name
	}

	list := []contacts.Contact{{
		ID: "f", Name: "Fleur",
		DateOfBirth: dateRef(1990, 7, 14), YearKnown: true,
	}}

	got, err := b.Build(list)
	require.NoError(t, err)
	assert.Contains(t, string(got), "SUMMARY:Anniversaire: Fleur")
}
