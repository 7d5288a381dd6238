package driving

import (
	"context"
	"time"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driven"
)

// AvailabilityService computes bookable start instants.
type AvailabilityService interface {
	// GenerateCandidateSlots produces the theoretical slots for one day,
	// ignoring real calendar state. Strictly increasing, no duplicates.
	// now anchors the same-day cutoff: on the current date the first
	// candidate rounds up from now, and a day whose rounded first
	// candidate falls past working hours yields no slots at all.
	GenerateCandidateSlots(day time.Time, req domain.SlotRequest, now time.Time) []time.Time

	// CandidateSlotsRange produces the theoretical slots for every
	// calendar day touched by [req.RangeStart, req.EffectiveRangeEnd()),
	// clipped to the range bounds. Partial first and last days
	// contribute only their in-range candidates.
	CandidateSlotsRange(req domain.SlotRequest) []time.Time

	// FetchRealAvailability returns candidate slots over the request
	// range with busy calendar intervals subtracted. A calendar read
	// failure is reported as domain.ErrAvailabilityUnknown; callers
	// degrade to CandidateSlotsRange output.
	FetchRealAvailability(ctx context.Context, client driven.TokenProvider, calendarID string, req domain.SlotRequest) ([]time.Time, error)

	// SelectSlotsForDay filters a precomputed multi-day batch down to
	// one calendar day in the given location.
	SelectSlotsForDay(slots []time.Time, day time.Time, loc *time.Location) []time.Time
}
