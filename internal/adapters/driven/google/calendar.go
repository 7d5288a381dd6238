package google

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driven"
)

// Ensure Calendar implements the interface.
var _ driven.CalendarAPI = (*Calendar)(nil)

// Calendar wraps the Google Calendar v3 API behind driven.CalendarAPI.
type Calendar struct {
	limiter *RateLimiter
}

// NewCalendar creates the Calendar API adapter.
func NewCalendar() *Calendar {
	return &Calendar{
		limiter: NewRateLimiter(ServiceCalendar),
	}
}

// FreeBusy returns the busy intervals on a calendar over [start, end).
// Every failure is reported as domain.ErrAvailabilityUnknown so callers
// can degrade to theoretical slots.
func (c *Calendar) FreeBusy(ctx context.Context, client driven.TokenProvider, calendarID string, start, end time.Time) ([]domain.BusyInterval, error) {
	if calendarID == "" {
		calendarID = "primary"
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAvailabilityUnknown, err)
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(NewTokenSource(ctx, client)))
	if err != nil {
		return nil, fmt.Errorf("%w: create calendar service: %v", domain.ErrAvailabilityUnknown, err)
	}

	resp, err := svc.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: start.UTC().Format(time.RFC3339),
		TimeMax: end.UTC().Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		c.recordRateLimit(err)
		return nil, fmt.Errorf("%w: freebusy query: %v", domain.ErrAvailabilityUnknown, WrapError(err))
	}

	info, ok := resp.Calendars[calendarID]
	if !ok {
		return nil, fmt.Errorf("%w: calendar %s absent from freebusy response", domain.ErrAvailabilityUnknown, calendarID)
	}
	if len(info.Errors) > 0 {
		return nil, fmt.Errorf("%w: calendar %s: %s", domain.ErrAvailabilityUnknown, calendarID, info.Errors[0].Reason)
	}

	intervals := make([]domain.BusyInterval, 0, len(info.Busy))
	for _, period := range info.Busy {
		interval, err := parseBusyPeriod(period)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrAvailabilityUnknown, err)
		}
		intervals = append(intervals, interval)
	}
	return intervals, nil
}

// CreateEvent creates the event described by the booking and returns
// the provider-assigned event ID.
func (c *Calendar) CreateEvent(ctx context.Context, client driven.TokenProvider, booking *domain.Booking) (string, error) {
	calendarID := booking.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(NewTokenSource(ctx, client)))
	if err != nil {
		return "", fmt.Errorf("create calendar service: %w", err)
	}

	event := &calendar.Event{
		Summary: booking.Summary,
		Start:   &calendar.EventDateTime{DateTime: booking.Start.UTC().Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: booking.End.UTC().Format(time.RFC3339)},
	}
	for _, email := range booking.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	created, err := svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		c.recordRateLimit(err)
		return "", fmt.Errorf("insert event: %w", WrapError(err))
	}
	return created.Id, nil
}

// recordRateLimit feeds 429 responses back into the limiter's backoff.
func (c *Calendar) recordRateLimit(err error) {
	if IsRateLimited(err) {
		c.limiter.RecordRateLimitError(0)
	}
}

// parseBusyPeriod converts an API time period to a half-open interval.
func parseBusyPeriod(period *calendar.TimePeriod) (domain.BusyInterval, error) {
	start, err := time.Parse(time.RFC3339, period.Start)
	if err != nil {
		return domain.BusyInterval{}, fmt.Errorf("parse busy start %q: %w", period.Start, err)
	}
	end, err := time.Parse(time.RFC3339, period.End)
	if err != nil {
		return domain.BusyInterval{}, fmt.Errorf("parse busy end %q: %w", period.End, err)
	}
	return domain.BusyInterval{Start: start.UTC(), End: end.UTC()}, nil
}
