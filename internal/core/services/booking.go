package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driven"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driving"
	"github.com/quill-labs/bookline-cli/internal/logger"
)

// Ensure Booking implements the interface.
var _ driving.BookingService = (*Booking)(nil)

// Booking composes the token lifecycle and the availability engine into
// the caller-facing booking operations.
type Booking struct {
	tokens       driving.TokenLifecycle
	availability driving.AvailabilityService
	calendar     driven.CalendarAPI
	bookings     driven.BookingStore

	now   func() time.Time
	newID func() string
}

// NewBooking creates the booking service. bookings may be nil; created
// events are then not recorded locally.
func NewBooking(
	tokens driving.TokenLifecycle,
	availability driving.AvailabilityService,
	calendar driven.CalendarAPI,
	bookings driven.BookingStore,
) *Booking {
	return &Booking{
		tokens:       tokens,
		availability: availability,
		calendar:     calendar,
		bookings:     bookings,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// OpenSlots returns bookable slots for the user's calendar.
//
// A calendar read failure is not fatal: the result degrades to the
// theoretical candidate set with Theoretical set, so a transient
// free/busy outage never blocks the user from picking a time.
func (b *Booking) OpenSlots(ctx context.Context, userID, calendarID string, req domain.SlotRequest) (*driving.OpenSlotsResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	client, err := b.tokens.GetClient(ctx, userID)
	if err != nil {
		return nil, err
	}

	slots, err := b.availability.FetchRealAvailability(ctx, client, calendarID, req)
	if err != nil {
		if !errors.Is(err, domain.ErrAvailabilityUnknown) {
			return nil, err
		}
		logger.Warn("calendar %s unreadable, offering theoretical slots: %v", calendarID, err)
		return &driving.OpenSlotsResult{
			Slots:       b.availability.CandidateSlotsRange(req),
			Theoretical: true,
		}, nil
	}

	return &driving.OpenSlotsResult{Slots: slots}, nil
}

// Book creates a calendar event and records it in the booking log.
func (b *Booking) Book(
	ctx context.Context,
	userID, calendarID, summary string,
	start time.Time,
	durationMinutes int,
	attendees []string,
) (*domain.Booking, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidInput)
	}
	if summary == "" {
		return nil, fmt.Errorf("%w: summary must not be empty", domain.ErrInvalidInput)
	}

	client, err := b.tokens.GetClient(ctx, userID)
	if err != nil {
		return nil, err
	}

	booking := domain.Booking{
		ID:         b.newID(),
		UserID:     userID,
		CalendarID: calendarID,
		Summary:    summary,
		Start:      start.UTC(),
		End:        start.Add(time.Duration(durationMinutes) * time.Minute).UTC(),
		Attendees:  attendees,
		CreatedAt:  b.now().UTC(),
	}

	eventID, err := b.calendar.CreateEvent(ctx, client, &booking)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	booking.EventID = eventID

	if b.bookings != nil {
		// The event already exists upstream; a log write failure is
		// reported but does not undo the booking.
		if err := b.bookings.Save(ctx, booking); err != nil {
			logger.Warn("booking %s created but not recorded: %v", booking.ID, err)
		}
	}

	return &booking, nil
}

// List returns the user's recorded bookings, newest first.
func (b *Booking) List(ctx context.Context, userID string) ([]domain.Booking, error) {
	if b.bookings == nil {
		return nil, domain.ErrNotImplemented
	}
	return b.bookings.ListByUser(ctx, userID)
}
