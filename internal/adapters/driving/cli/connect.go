package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quill-labs/bookline-cli/internal/adapters/driving/oauth"
	"github.com/quill-labs/bookline-cli/internal/core/domain"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driven"
	"github.com/quill-labs/bookline-cli/internal/logger"
)

// consentTimeout bounds how long connect waits for the browser consent.
const consentTimeout = 5 * time.Minute

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect a Google account",
	Long: `Connect a Google account via the browser consent flow.

A local callback server receives the authorisation code, the code is
exchanged for tokens, and the tokens are stored keyed by user ID. The
account email doubles as the user ID unless --user is given.

The OAuth client must be configured first:

  bookline config set google.client_id YOUR_CLIENT_ID
  bookline config set google.client_secret YOUR_CLIENT_SECRET`,
	RunE: runConnect,
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Remove the stored Google credentials",
	RunE:  runDisconnect,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored credential state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(disconnectCmd)
	rootCmd.AddCommand(statusCmd)
}

func runConnect(cmd *cobra.Command, _ []string) error {
	if tokenService == nil {
		return errors.New("token service not configured")
	}
	app, err := resolveApp()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	// Loopback server for the consent redirect
	state := oauth.GenerateState()
	callback := oauth.NewCallbackServer(0, state)
	if err := callback.Start(); err != nil {
		return fmt.Errorf("start callback server: %w", err)
	}
	defer callback.Stop()

	authURL := buildAuthURL(app, callback.RedirectURI(), state)
	cmd.Println("Opening your browser for Google consent...")
	cmd.Println("If it does not open, visit:")
	cmd.Println("  " + authURL)
	if err := oauth.OpenBrowser(authURL); err != nil {
		logger.Debug("open browser: %v", err)
	}

	code, err := callback.WaitForCode(consentTimeout)
	if err != nil {
		return fmt.Errorf("waiting for consent: %w", err)
	}

	record, err := exchangeCode(ctx, app, code, callback.RedirectURI())
	if err != nil {
		return err
	}

	// The account email identifies the user unless --user overrides it
	userID, _ := cmd.Flags().GetString("user")
	if record.AccountEmail == "" && identityAPI != nil {
		email, err := identityAPI.FetchEmail(ctx, record.AccessToken)
		if err != nil {
			logger.Warn("could not resolve account email: %v", err)
		} else {
			record.AccountEmail = email
		}
	}
	if userID == "" {
		userID = record.AccountEmail
	}
	if userID == "" {
		return errors.New("could not determine a user ID: pass --user")
	}
	record.UserID = userID

	if err := tokenService.Connect(ctx, *record); err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}

	if configStore != nil && configStore.GetString("user.id") == "" {
		if err := configStore.Set("user.id", userID); err != nil {
			logger.Warn("could not save default user: %v", err)
		}
	}

	cmd.Printf("Connected %s\n", userID)
	return nil
}

func runDisconnect(cmd *cobra.Command, _ []string) error {
	if tokenService == nil {
		return errors.New("token service not configured")
	}
	userID, err := currentUserID(cmd)
	if err != nil {
		return err
	}

	if err := tokenService.Disconnect(cmd.Context(), userID); err != nil {
		return err
	}
	cmd.Printf("Disconnected %s\n", userID)
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if tokenService == nil {
		return errors.New("token service not configured")
	}
	userID, err := currentUserID(cmd)
	if err != nil {
		return err
	}

	record, err := tokenService.Status(cmd.Context(), userID)
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("%s is not connected\n", userID)
		return nil
	}
	if err != nil {
		return err
	}

	cmd.Printf("User:    %s\n", record.UserID)
	if record.AccountEmail != "" {
		cmd.Printf("Account: %s\n", record.AccountEmail)
	}
	switch {
	case record.Expiry.IsZero():
		cmd.Println("Token:   valid (no recorded expiry)")
	case record.IsExpired(time.Now()):
		cmd.Printf("Token:   expired at %s", record.Expiry.Format(time.RFC3339))
		if record.HasRefreshToken() {
			cmd.Print(" (will refresh on next use)")
		}
		cmd.Println()
	default:
		cmd.Printf("Token:   valid until %s\n", record.Expiry.Format(time.RFC3339))
	}
	return nil
}

// resolveApp builds the OAuth app from the injected defaults and the
// config store.
func resolveApp() (*domain.OAuthApp, error) {
	app := &domain.OAuthApp{Scopes: domain.DefaultScopes}
	if oauthApp != nil {
		*app = *oauthApp
	}
	if configStore != nil {
		if v := configStore.GetString("google.client_id"); v != "" {
			app.ClientID = v
		}
		if v := configStore.GetString("google.client_secret"); v != "" {
			app.ClientSecret = v
		}
		if scopes := configStore.GetStringSlice("google.scopes"); len(scopes) > 0 {
			app.Scopes = scopes
		}
	}
	if !app.Configured() {
		return nil, errors.New("google OAuth client not configured: set google.client_id and google.client_secret")
	}
	return app, nil
}

// buildAuthURL constructs the Google consent URL.
func buildAuthURL(app *domain.OAuthApp, redirectURI, state string) string {
	authURL := app.AuthURL
	if authURL == "" {
		authURL = "https://accounts.google.com/o/oauth2/v2/auth"
	}

	params := url.Values{}
	params.Set("client_id", app.ClientID)
	params.Set("redirect_uri", redirectURI)
	params.Set("response_type", "code")
	params.Set("scope", strings.Join(app.Scopes, " "))
	params.Set("state", state)
	params.Set("access_type", "offline")
	params.Set("prompt", "consent")

	return authURL + "?" + params.Encode()
}

// tokenExchanger is injected by SetServices.
var tokenExchanger driven.TokenEndpoint

func exchangeCode(ctx context.Context, app *domain.OAuthApp, code, redirectURI string) (*domain.CredentialRecord, error) {
	if tokenExchanger == nil {
		return nil, errors.New("token endpoint not configured")
	}
	record, err := tokenExchanger.Exchange(ctx, app, code, redirectURI)
	if err != nil {
		return nil, fmt.Errorf("exchange authorisation code: %w", err)
	}
	return record, nil
}
