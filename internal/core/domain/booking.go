package domain

import "time"

// Booking records a meeting created on a connected calendar.
// Kept in the booking log so callers can re-list what was created.
type Booking struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`
	// UserID is the calendar owner's identity key.
	UserID string `json:"user_id"`
	// CalendarID is the Google calendar the event was created on.
	CalendarID string `json:"calendar_id"`
	// EventID is the identifier Google assigned to the created event.
	EventID string `json:"event_id"`

	// Summary is the event title.
	Summary string `json:"summary"`
	// Start and End bound the meeting.
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// Attendees are invitee email addresses.
	Attendees []string `json:"attendees,omitempty"`

	// CreatedAt is when the booking was recorded.
	CreatedAt time.Time `json:"created_at"`
}
