package notify

import (
	"sort"
	"time"
)

// SortByPriority returns a new slice ordered by the display total order:
// priority rank first, then birthdays before all other types at equal
// priority, then newest first. The sort is stable so equal elements keep
// their input order and sorting is idempotent.
func SortByPriority(list []Notification) []Notification {
	out := make([]Notification, len(list))
	copy(out, list)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
			return ra < rb
		}

		aBday := a.Type == TypeBirthday
		bBday := b.Type == TypeBirthday
		if aBday != bBday {
			return aBday
		}

		return a.CreatedAt.After(b.CreatedAt)
	})

	return out
}

// SelectBanner picks the single notification to surface prominently: the
// highest-ranked high-priority element that is neither dismissed nor under an
// active snooze. Only one banner exists at a time; everything else stays
// queryable but is never auto-surfaced.
//
// An expired snooze no longer blocks selection, so a snoozed notification
// reappears once "now" passes its snooze deadline.
func SelectBanner(list []Notification, now time.Time) *Notification {
	for _, n := range SortByPriority(list) {
		if n.Priority != PriorityHigh {
			// The list is priority-ordered; nothing below can qualify.
			return nil
		}
		if n.IsDismissed {
			continue
		}
		if n.SnoozedUntil != nil && now.Before(*n.SnoozedUntil) {
			continue
		}
		banner := n
		return &banner
	}
	return nil
}
