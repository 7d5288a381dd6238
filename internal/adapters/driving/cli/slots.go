package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
)

var (
	slotsCalendar  string
	slotsDuration  int
	slotsBuffer    int
	slotsDays      int
	slotsStartHour int
	slotsEndHour   int
	slotsTimeZone  string
	slotsFrom      string
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List open meeting slots",
	Long: `List open meeting slots on the connected calendar.

Candidate slots are generated within working hours, spaced by the meeting
duration plus an optional buffer, and filtered against real calendar
busy intervals. When the calendar cannot be read, the unfiltered
candidates are shown with a warning.`,
	RunE: runSlots,
}

func init() {
	slotsCmd.Flags().StringVar(&slotsCalendar, "calendar", "primary", "Calendar ID to query")
	slotsCmd.Flags().IntVar(&slotsDuration, "duration", 30, "Meeting duration in minutes")
	slotsCmd.Flags().IntVar(&slotsBuffer, "buffer", 0, "Buffer between meetings in minutes")
	slotsCmd.Flags().IntVar(&slotsDays, "days", 7, "Number of days to search")
	slotsCmd.Flags().IntVar(&slotsStartHour, "start-hour", 9, "Working day start hour (0-23)")
	slotsCmd.Flags().IntVar(&slotsEndHour, "end-hour", 17, "Working day end hour (0-23)")
	slotsCmd.Flags().StringVar(&slotsTimeZone, "timezone", "", "IANA time zone for working hours (default UTC)")
	slotsCmd.Flags().StringVar(&slotsFrom, "from", "", "Range start as RFC 3339 or YYYY-MM-DD (default now)")

	rootCmd.AddCommand(slotsCmd)
}

func runSlots(cmd *cobra.Command, _ []string) error {
	if bookingService == nil {
		return errors.New("booking service not configured")
	}
	userID, err := currentUserID(cmd)
	if err != nil {
		return err
	}

	req, err := buildSlotRequest()
	if err != nil {
		return err
	}

	result, err := bookingService.OpenSlots(cmd.Context(), userID, slotsCalendar, req)
	if err != nil {
		return err
	}

	if result.Theoretical {
		cmd.PrintErrln("Warning: calendar could not be read; showing slots that ignore existing meetings.")
	}
	if len(result.Slots) == 0 {
		cmd.Println("No open slots in the requested range.")
		return nil
	}

	loc, _ := req.Location()
	printSlots(cmd, result.Slots, loc)
	return nil
}

// buildSlotRequest assembles the availability query from the flags.
func buildSlotRequest() (domain.SlotRequest, error) {
	start := time.Now().UTC()
	if slotsFrom != "" {
		parsed, err := parseInstant(slotsFrom)
		if err != nil {
			return domain.SlotRequest{}, err
		}
		start = parsed
	}

	req := domain.SlotRequest{
		RangeStart:      start,
		RangeEnd:        start.AddDate(0, 0, slotsDays),
		DurationMinutes: slotsDuration,
		BufferMinutes:   slotsBuffer,
		WorkStartHour:   slotsStartHour,
		WorkEndHour:     slotsEndHour,
		TimeZone:        slotsTimeZone,
	}
	if err := req.Validate(); err != nil {
		return domain.SlotRequest{}, err
	}
	return req, nil
}

// parseInstant accepts RFC 3339 or a bare date.
func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse time %q (want RFC 3339 or YYYY-MM-DD)", domain.ErrInvalidInput, s)
}

// printSlots groups slots by local date.
func printSlots(cmd *cobra.Command, slots []time.Time, loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}

	lastDate := ""
	for _, slot := range slots {
		local := slot.In(loc)
		date := local.Format("Mon 2 Jan 2006")
		if date != lastDate {
			cmd.Printf("%s\n", date)
			lastDate = date
		}
		cmd.Printf("  %s\n", local.Format("15:04"))
	}
}
