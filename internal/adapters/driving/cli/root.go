// Package cli implements the bookline command-line interface using cobra.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driven"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driving"
	"github.com/quill-labs/bookline-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	tokenService   driving.TokenLifecycle
	bookingService driving.BookingService
	sheetsAPI      driven.SheetsAPI
	identityAPI    driven.IdentityAPI
	configStore    driven.ConfigStore
	oauthApp       *domain.OAuthApp

	// federationImporter stores identity-provider federation records.
	federationImporter FederationImporter
)

// FederationImporter is the write side of the federation store,
// exposed separately because the credential chain only reads.
type FederationImporter interface {
	ImportFederationRecord(ctx context.Context, record domain.FederationRecord) error
}

// Services bundles everything the commands need.
type Services struct {
	Tokens     driving.TokenLifecycle
	Bookings   driving.BookingService
	Endpoint   driven.TokenEndpoint
	Sheets     driven.SheetsAPI
	Identity   driven.IdentityAPI
	Config     driven.ConfigStore
	App        *domain.OAuthApp
	Federation FederationImporter
}

// SetServices wires the service implementations into the commands.
// Must be called before Execute.
func SetServices(s Services) {
	tokenService = s.Tokens
	bookingService = s.Bookings
	tokenExchanger = s.Endpoint
	sheetsAPI = s.Sheets
	identityAPI = s.Identity
	configStore = s.Config
	oauthApp = s.App
	federationImporter = s.Federation
}

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "bookline",
	Short: "Book meetings on Google Calendar from the terminal",
	Long: `Bookline connects a Google account, computes open meeting slots from
your working hours and real calendar availability, and books meetings.

Start by connecting your Google account:

  bookline connect

Then look for open slots and book one:

  bookline slots --duration 30
  bookline book "Intro call" --start 2026-03-18T15:00:00Z --duration 30`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Enable verbose logging to stderr")
	rootCmd.PersistentFlags().String("user", "", "Acting user ID (defaults to the configured default user)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// currentUserID resolves the acting user: the --user flag when given,
// otherwise the configured default.
func currentUserID(cmd *cobra.Command) (string, error) {
	if flag, err := cmd.Flags().GetString("user"); err == nil && flag != "" {
		return flag, nil
	}
	if configStore != nil {
		if id := configStore.GetString("user.id"); id != "" {
			return id, nil
		}
	}
	return "", errors.New("no user configured: run 'bookline connect' first or pass --user")
}
