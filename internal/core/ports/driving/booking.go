package driving

import (
	"context"
	"time"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
)

// OpenSlotsResult is the outcome of an availability query made on a
// user's behalf.
type OpenSlotsResult struct {
	// Slots are the offerable start instants, ordered.
	Slots []time.Time

	// Theoretical is true when the calendar could not be read and the
	// slots are unfiltered candidates. Callers surface a non-blocking
	// warning but still offer the slots.
	Theoretical bool
}

// BookingService composes the token lifecycle and the availability
// engine: find open slots, create meetings.
type BookingService interface {
	// OpenSlots returns bookable slots for a user's calendar. Calendar
	// read failures degrade to theoretical slots rather than blocking.
	OpenSlots(ctx context.Context, userID, calendarID string, req domain.SlotRequest) (*OpenSlotsResult, error)

	// Book creates a calendar event starting at start and records it in
	// the booking log.
	Book(ctx context.Context, userID, calendarID, summary string, start time.Time, durationMinutes int, attendees []string) (*domain.Booking, error)

	// List returns the user's recorded bookings, newest first.
	List(ctx context.Context, userID string) ([]domain.Booking, error)
}
