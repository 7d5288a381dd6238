package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
)

var (
	bookCalendar  string
	bookStart     string
	bookDuration  int
	bookAttendees []string
)

var bookCmd = &cobra.Command{
	Use:   "book <summary>",
	Short: "Book a meeting on the connected calendar",
	Args:  cobra.ExactArgs(1),
	RunE:  runBook,
}

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List meetings booked through Bookline",
	RunE:  runBookings,
}

func init() {
	bookCmd.Flags().StringVar(&bookCalendar, "calendar", "primary", "Calendar ID to book on")
	bookCmd.Flags().StringVar(&bookStart, "start", "", "Start time as RFC 3339 or YYYY-MM-DD (required)")
	bookCmd.Flags().IntVar(&bookDuration, "duration", 30, "Meeting duration in minutes")
	bookCmd.Flags().StringSliceVar(&bookAttendees, "attendee", nil, "Attendee email (repeatable)")
	_ = bookCmd.MarkFlagRequired("start")

	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(bookingsCmd)
}

func runBook(cmd *cobra.Command, args []string) error {
	if bookingService == nil {
		return errors.New("booking service not configured")
	}
	userID, err := currentUserID(cmd)
	if err != nil {
		return err
	}

	start, err := parseInstant(bookStart)
	if err != nil {
		return err
	}

	booking, err := bookingService.Book(cmd.Context(), userID, bookCalendar, args[0], start, bookDuration, bookAttendees)
	if err != nil {
		return err
	}

	cmd.Printf("Booked %q from %s to %s (event %s)\n",
		booking.Summary,
		booking.Start.Format(time.RFC3339),
		booking.End.Format(time.RFC3339),
		booking.EventID)
	return nil
}

func runBookings(cmd *cobra.Command, _ []string) error {
	if bookingService == nil {
		return errors.New("booking service not configured")
	}
	userID, err := currentUserID(cmd)
	if err != nil {
		return err
	}

	bookings, err := bookingService.List(cmd.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotImplemented) {
			return errors.New("booking history is not available without local storage")
		}
		return err
	}
	if len(bookings) == 0 {
		cmd.Println("No bookings recorded.")
		return nil
	}

	for _, b := range bookings {
		cmd.Printf("%s  %s - %s  %s\n",
			b.Start.Format("2006-01-02"),
			b.Start.Format("15:04"),
			b.End.Format("15:04"),
			b.Summary)
	}
	return nil
}
