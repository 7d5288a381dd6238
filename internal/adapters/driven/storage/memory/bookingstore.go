package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driven"
)

// Ensure BookingStore implements the interface.
var _ driven.BookingStore = (*BookingStore)(nil)

// BookingStore is an in-memory implementation of driven.BookingStore.
type BookingStore struct {
	mu       sync.RWMutex
	bookings map[string]domain.Booking
}

// NewBookingStore creates a new in-memory booking store.
func NewBookingStore() *BookingStore {
	return &BookingStore{
		bookings: make(map[string]domain.Booking),
	}
}

// Save records a booking.
func (s *BookingStore) Save(_ context.Context, booking domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[booking.ID] = booking
	return nil
}

// ListByUser returns the user's bookings, newest first.
func (s *BookingStore) ListByUser(_ context.Context, userID string) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Booking, 0)
	for _, booking := range s.bookings {
		if booking.UserID == userID {
			result = append(result, booking)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
