// Package streak owns the daily check-in streak: one persisted record, a
// same-day-idempotent check-in transition and a day-gap reset rule.
package streak

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tartampluch/go-companion/internal/calendar"
	"github.com/tartampluch/go-companion/internal/config"
	"github.com/tartampluch/go-companion/internal/store"
)

// Data is the persisted streak record. Dates are day-granularity strings in
// the reference zone so the record stays readable and zone-stable on disk.
type Data struct {
	CurrentStreak   int      `json:"currentStreak"`
	LongestStreak   int      `json:"longestStreak"`
	LastCheckInDate string   `json:"lastCheckInDate,omitempty"`
	StreakDates     []string `json:"streakDates"`
	TotalCheckIns   int      `json:"totalCheckIns"`
}

// Tracker drives the streak state machine for a single user.
// It is the only mutator of the record: load once per session, mutate in
// memory on check-ins, persist after every successful mutation.
type Tracker struct {
	cal *calendar.Calendar
	kv  store.KV

	data Data
}

// NewTracker creates a Tracker over the given calendar and store.
func NewTracker(cal *calendar.Calendar, kv store.KV) *Tracker {
	return &Tracker{cal: cal, kv: kv}
}

// Data returns a copy of the current in-memory record.
func (t *Tracker) Data() Data {
	d := t.data
	d.StreakDates = append([]string(nil), t.data.StreakDates...)
	return d
}

// Load reads the persisted record and validates it for staleness: a last
// check-in that is neither today nor yesterday breaks the streak. Only the
// counter resets; longest streak, history and totals are never touched.
//
// Read failures degrade to the all-zero default record instead of failing the
// caller: a missing streak is annoying, a crash at startup is worse.
func (t *Tracker) Load(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompStreak)

	var d Data
	err := t.kv.Get(ctx, config.StorageKeyStreak, &d)
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Debug(config.MsgStateMissing)
		t.data = Data{}
		return
	case err != nil:
		log.Warn(config.MsgStateLoadFailed, config.LogKeyError, err)
		t.data = Data{}
		return
	}

	t.data = d

	if d.LastCheckInDate == "" {
		log.Debug(config.MsgStateLoaded, config.LogKeyStreak, d.CurrentStreak)
		return
	}

	today := t.cal.Today()
	last, err := time.ParseInLocation(config.DateFormatFullDash, d.LastCheckInDate, t.cal.Location())
	if err != nil {
		// A corrupt date cannot prove continuity, so the counter resets.
		log.Warn(config.MsgStateLoadFailed,
			config.LogKeyValue, d.LastCheckInDate,
			config.LogKeyError, err,
		)
		t.data.CurrentStreak = 0
		return
	}

	if !calendar.SameDay(last, today) && !calendar.AreConsecutiveDays(last, today) {
		log.Info(config.MsgStreakBroken,
			config.LogKeyLastDate, d.LastCheckInDate,
			config.LogKeyGapDays, calendar.DaysUntil(today, last),
			config.LogKeyLongest, d.LongestStreak,
		)
		t.data.CurrentStreak = 0
		return
	}

	log.Debug(config.MsgStateLoaded,
		config.LogKeyStreak, d.CurrentStreak,
		config.LogKeyLastDate, d.LastCheckInDate,
	)
}

// RecordCheckIn registers today's check-in and reports whether the streak
// counter advanced. A repeat call on the same calendar day is a no-op.
//
// A failed save keeps the in-memory record correct for this session; the
// increment is at risk only until the next successful persist.
func (t *Tracker) RecordCheckIn(ctx context.Context) bool {
	log := slog.With(config.LogKeyComponent, config.CompStreak)

	today := t.cal.Today()
	todayStr := today.Format(config.DateFormatFullDash)

	if t.data.LastCheckInDate == todayStr {
		log.Debug(config.MsgCheckInRepeat, config.LogKeyLastDate, todayStr)
		return false
	}

	continuous := t.data.LastCheckInDate == ""
	if !continuous {
		if last, err := time.ParseInLocation(config.DateFormatFullDash, t.data.LastCheckInDate, t.cal.Location()); err == nil {
			continuous = calendar.AreConsecutiveDays(last, today)
		}
	}

	if continuous {
		t.data.CurrentStreak++
	} else {
		t.data.CurrentStreak = 1
	}
	if t.data.CurrentStreak > t.data.LongestStreak {
		t.data.LongestStreak = t.data.CurrentStreak
	}

	t.data.LastCheckInDate = todayStr
	t.data.StreakDates = append(t.data.StreakDates, todayStr)
	t.data.TotalCheckIns++

	if err := t.kv.Set(ctx, config.StorageKeyStreak, t.data); err != nil {
		log.Warn(config.MsgStateSaveFailed, config.LogKeyError, err)
	}

	log.Info(config.MsgCheckInDone,
		config.LogKeyStreak, t.data.CurrentStreak,
		config.LogKeyLongest, t.data.LongestStreak,
		config.LogKeyCheckIns, t.data.TotalCheckIns,
	)
	return true
}
