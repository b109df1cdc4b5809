// Package notify derives, ranks and snoozes ephemeral notifications from
// contact records. Notifications are recomputed on every pass and never
// persisted; read/dismiss state is owned by the display layer.
package notify

import "time"

// Type classifies a notification by its source.
type Type string

const (
	TypeBirthday        Type = "birthday"
	TypeContactReminder Type = "contact_reminder"
	TypeInsight         Type = "insight"
	TypeAchievement     Type = "achievement"
	TypeAnnouncement    Type = "announcement"
)

// Priority orders notifications for display.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank maps a priority onto its sort position, high first.
// Unknown values sink below low rather than crashing the sort.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Notification is one ephemeral alert derived from a contact (or injected by
// another subsystem: insights, achievements, announcements).
//
// ID, Priority and Subtitle are pure functions of the source contact's date and
// "today"; re-deriving with the same inputs yields an identical notification
// except CreatedAt.
type Notification struct {
	ID        string
	Type      Type
	Priority  Priority
	Title     string
	Subtitle  string
	CreatedAt time.Time

	// IsRead and IsDismissed are mutated by the display layer only.
	IsRead      bool
	IsDismissed bool

	// SnoozedUntil suppresses the notification until the given instant.
	SnoozedUntil *time.Time

	// Metadata carries display back-references (contact id/name, overdue
	// flag). It is never consulted by logic in this package.
	Metadata map[string]any
}
