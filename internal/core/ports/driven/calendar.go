package driven

import (
	"context"
	"time"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
)

// CalendarAPI is the Google Calendar collaborator.
type CalendarAPI interface {
	// FreeBusy returns the busy intervals on a calendar over [start, end).
	// Read failures of any kind are wrapped in domain.ErrAvailabilityUnknown.
	FreeBusy(ctx context.Context, client TokenProvider, calendarID string, start, end time.Time) ([]domain.BusyInterval, error)

	// CreateEvent creates the event described by the booking and returns
	// the provider-assigned event ID.
	CreateEvent(ctx context.Context, client TokenProvider, booking *domain.Booking) (string, error)
}
