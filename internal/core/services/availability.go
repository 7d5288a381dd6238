package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driven"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driving"
)

// Ensure Availability implements the interface.
var _ driving.AvailabilityService = (*Availability)(nil)

// Availability computes bookable start instants from working-hour
// parameters and, when a calendar can be read, real busy intervals.
type Availability struct {
	calendar driven.CalendarAPI
	now      func() time.Time
}

// NewAvailability creates the slot engine.
func NewAvailability(calendar driven.CalendarAPI) *Availability {
	return &Availability{
		calendar: calendar,
		now:      time.Now,
	}
}

// GenerateCandidateSlots produces the theoretical slots for one day.
//
// Slots start at the work start hour and are spaced by duration+buffer.
// When day is the current date (in the request's zone), the first
// candidate instead rounds up to the next multiple of the duration from
// now, so no already-past slot is ever offered. A rounded first
// candidate at or past the work end yields an empty day; the day is
// treated as fully booked rather than rolling over to tomorrow.
func (a *Availability) GenerateCandidateSlots(day time.Time, req domain.SlotRequest, now time.Time) []time.Time {
	loc, err := req.Location()
	if err != nil {
		return nil
	}

	localDay := day.In(loc)
	if !req.WeekdayAllowed(localDay.Weekday()) {
		return nil
	}

	year, month, dom := localDay.Date()
	workStart := time.Date(year, month, dom, req.WorkStartHour, 0, 0, 0, loc)
	workEnd := time.Date(year, month, dom, req.WorkEndHour, 0, 0, 0, loc)

	first := workStart
	localNow := now.In(loc)
	if sameDate(localNow, localDay) {
		rounded := roundUpToDuration(localNow, req.Duration())
		if !rounded.Before(workEnd) {
			return nil
		}
		if rounded.After(first) {
			first = rounded
		}
	}

	var slots []time.Time
	for t := first; !t.Add(req.Duration()).After(workEnd); t = t.Add(req.Step()) {
		slots = append(slots, t.UTC())
	}
	return slots
}

// FetchRealAvailability returns the request range's candidate slots with
// busy calendar intervals subtracted.
func (a *Availability) FetchRealAvailability(
	ctx context.Context,
	client driven.TokenProvider,
	calendarID string,
	req domain.SlotRequest,
) ([]time.Time, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rangeEnd := req.EffectiveRangeEnd()
	busy, err := a.calendar.FreeBusy(ctx, client, calendarID, req.RangeStart, rangeEnd)
	if err != nil {
		if errors.Is(err, domain.ErrAvailabilityUnknown) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrAvailabilityUnknown, err)
	}

	candidates := a.CandidateSlotsRange(req)

	slots := make([]time.Time, 0, len(candidates))
	for _, t := range candidates {
		if overlapsAny(t, req.Duration(), busy) {
			continue
		}
		slots = append(slots, t)
	}
	return slots, nil
}

// SelectSlotsForDay filters a precomputed batch down to one calendar day.
func (a *Availability) SelectSlotsForDay(slots []time.Time, day time.Time, loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.UTC
	}
	target := day.In(loc)

	selected := make([]time.Time, 0, len(slots))
	for _, t := range slots {
		if sameDate(t.In(loc), target) {
			selected = append(selected, t)
		}
	}
	return selected
}

// CandidateSlotsRange generates candidates for every calendar day
// touched by [req.RangeStart, req.EffectiveRangeEnd()), clipped to the
// range bounds. Iteration is anchored at local midnight so a range
// ending mid-day still yields the final day's in-range candidates.
func (a *Availability) CandidateSlotsRange(req domain.SlotRequest) []time.Time {
	loc, err := req.Location()
	if err != nil {
		return nil
	}

	now := a.now()
	rangeEnd := req.EffectiveRangeEnd()
	start := req.RangeStart.In(loc)
	year, month, dom := start.Date()

	var slots []time.Time
	for day := time.Date(year, month, dom, 0, 0, 0, 0, loc); day.Before(rangeEnd); day = day.AddDate(0, 0, 1) {
		for _, t := range a.GenerateCandidateSlots(day, req, now) {
			if t.Before(req.RangeStart) || !t.Before(rangeEnd) {
				continue
			}
			slots = append(slots, t)
		}
	}
	return slots
}

// overlapsAny reports whether a meeting starting at t overlaps any busy
// interval.
func overlapsAny(t time.Time, duration time.Duration, busy []domain.BusyInterval) bool {
	for _, b := range busy {
		if b.Overlaps(t, duration) {
			return true
		}
	}
	return false
}

// sameDate reports whether two instants fall on the same calendar date.
// Both must already be in the same location.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// roundUpToDuration rounds t up to the next multiple of d from midnight
// of t's day. An instant already on a boundary is returned unchanged.
func roundUpToDuration(t time.Time, d time.Duration) time.Time {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())

	elapsed := t.Sub(midnight)
	steps := elapsed / d
	if elapsed%d != 0 {
		steps++
	}
	return midnight.Add(steps * d)
}
