package domain

import (
	"fmt"
	"time"
)

// DefaultRangeDays bounds an availability query when the caller does not
// supply an explicit end date.
const DefaultRangeDays = 60

// DefaultWeekdays is Monday through Friday.
var DefaultWeekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
}

// SlotRequest holds the parameters of one availability query.
type SlotRequest struct {
	// RangeStart and RangeEnd bound the query. RangeEnd is exclusive.
	// A zero RangeEnd defaults to RangeStart + DefaultRangeDays.
	RangeStart time.Time `json:"range_start"`
	RangeEnd   time.Time `json:"range_end"`

	// DurationMinutes is the meeting length. Must be positive.
	DurationMinutes int `json:"duration_minutes"`
	// BufferMinutes is dead time kept after each meeting before the next
	// candidate starts.
	BufferMinutes int `json:"buffer_minutes"`

	// WorkStartHour and WorkEndHour bound the working day, 0-23, local
	// to TimeZone. Slots start at or after WorkStartHour and finish at or
	// before WorkEndHour.
	WorkStartHour int `json:"work_start_hour"`
	WorkEndHour   int `json:"work_end_hour"`

	// TimeZone is an IANA zone name. Empty means UTC.
	TimeZone string `json:"time_zone,omitempty"`

	// AllowedWeekdays restricts which days produce slots.
	// Empty means DefaultWeekdays (Monday-Friday).
	AllowedWeekdays []time.Weekday `json:"allowed_weekdays,omitempty"`
}

// Validate checks the request invariants.
func (r *SlotRequest) Validate() error {
	if r.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidInput, r.DurationMinutes)
	}
	if r.BufferMinutes < 0 {
		return fmt.Errorf("%w: buffer must not be negative, got %d", ErrInvalidInput, r.BufferMinutes)
	}
	if r.WorkStartHour < 0 || r.WorkStartHour > 23 || r.WorkEndHour < 0 || r.WorkEndHour > 23 {
		return fmt.Errorf("%w: work hours must be within 0-23", ErrInvalidInput)
	}
	if r.WorkStartHour >= r.WorkEndHour {
		return fmt.Errorf("%w: work start hour %d must be before work end hour %d",
			ErrInvalidInput, r.WorkStartHour, r.WorkEndHour)
	}
	for _, wd := range r.AllowedWeekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("%w: invalid weekday %d", ErrInvalidInput, wd)
		}
	}
	if _, err := r.Location(); err != nil {
		return fmt.Errorf("%w: unknown time zone %q", ErrInvalidInput, r.TimeZone)
	}
	return nil
}

// Location resolves the request's time zone, defaulting to UTC.
func (r *SlotRequest) Location() (*time.Location, error) {
	if r.TimeZone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(r.TimeZone)
}

// Duration is the meeting length.
func (r *SlotRequest) Duration() time.Duration {
	return time.Duration(r.DurationMinutes) * time.Minute
}

// Step is the spacing between consecutive candidate starts.
func (r *SlotRequest) Step() time.Duration {
	return time.Duration(r.DurationMinutes+r.BufferMinutes) * time.Minute
}

// Weekdays returns the allowed weekdays, applying the default when unset.
func (r *SlotRequest) Weekdays() []time.Weekday {
	if len(r.AllowedWeekdays) == 0 {
		return DefaultWeekdays
	}
	return r.AllowedWeekdays
}

// WeekdayAllowed reports whether the given weekday can produce slots.
func (r *SlotRequest) WeekdayAllowed(wd time.Weekday) bool {
	for _, allowed := range r.Weekdays() {
		if allowed == wd {
			return true
		}
	}
	return false
}

// EffectiveRangeEnd returns the exclusive end of the query range,
// clamped to DefaultRangeDays past RangeStart.
func (r *SlotRequest) EffectiveRangeEnd() time.Time {
	limit := r.RangeStart.AddDate(0, 0, DefaultRangeDays)
	if r.RangeEnd.IsZero() || r.RangeEnd.After(limit) {
		return limit
	}
	return r.RangeEnd
}

// BusyInterval is a half-open [Start, End) period already occupied on a
// calendar. Produced by the calendar API; never persisted.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether a meeting of the given duration starting at t
// would overlap the interval.
func (b BusyInterval) Overlaps(t time.Time, duration time.Duration) bool {
	return t.Before(b.End) && b.Start.Before(t.Add(duration))
}
