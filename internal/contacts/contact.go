package contacts

import "time"

// Contact is a read-only snapshot of one person, supplied by the contact
// management layer. Only the fields the notification rules need are carried.
type Contact struct {
	// ID is an opaque stable identifier, unique across the collection.
	ID string

	// Name is the display name.
	Name string

	// DateOfBirth is the contact's birthday. The year may be a placeholder;
	// only month and day are semantically used for birthday matching.
	DateOfBirth *time.Time

	// YearKnown indicates whether DateOfBirth carried a real year or just --MM-DD.
	YearKnown bool

	// ContactAgainDate marks when the user intends to reach out again.
	ContactAgainDate *time.Time
}

// HasDates reports whether the contact can produce any notification at all.
func (c Contact) HasDates() bool {
	return c.DateOfBirth != nil || c.ContactAgainDate != nil
}
