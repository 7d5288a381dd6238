package driven

import (
	"context"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
)

// BookingStore persists the log of bookings created through Bookline.
type BookingStore interface {
	// Save records a booking.
	Save(ctx context.Context, booking domain.Booking) error

	// ListByUser returns all bookings created for a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
}
