package main

import (
	"fmt"
	"os"

	"github.com/quill-labs/bookline-cli/internal/adapters/driven/config/file"
	"github.com/quill-labs/bookline-cli/internal/adapters/driven/google"
	"github.com/quill-labs/bookline-cli/internal/adapters/driven/oauth"
	"github.com/quill-labs/bookline-cli/internal/adapters/driven/storage/sqlite"
	"github.com/quill-labs/bookline-cli/internal/adapters/driving/cli"
	"github.com/quill-labs/bookline-cli/internal/core/domain"
	"github.com/quill-labs/bookline-cli/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	app := &domain.OAuthApp{
		ClientID:     configStore.GetString("google.client_id"),
		ClientSecret: configStore.GetString("google.client_secret"),
		Scopes:       domain.DefaultScopes,
	}

	endpoint := oauth.NewEndpoint()
	calendarAPI := google.NewCalendar()
	sheetsAPI := google.NewSheets()
	identityAPI := google.NewIdentity()

	tokenService := services.NewTokenService(app, store.CredentialStore(), endpoint, store.FederationStore())
	availability := services.NewAvailability(calendarAPI)
	bookingService := services.NewBooking(tokenService, availability, calendarAPI, store.BookingStore())

	cli.SetServices(cli.Services{
		Tokens:     tokenService,
		Bookings:   bookingService,
		Endpoint:   endpoint,
		Sheets:     sheetsAPI,
		Identity:   identityAPI,
		Config:     configStore,
		App:        app,
		Federation: store,
	})

	return cli.Execute()
}
