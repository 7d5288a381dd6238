package domain

// OAuthApp stores the OAuth application credentials from the Google
// developer console. One app serves every connected user account.
type OAuthApp struct {
	// ClientID is the OAuth client ID from the developer console.
	ClientID string `json:"client_id"`
	// ClientSecret is the OAuth client secret from the developer console.
	ClientSecret string `json:"client_secret"`
	// Scopes are the OAuth scopes to request during consent.
	Scopes []string `json:"scopes"`
	// AuthURL is the authorisation endpoint (optional override for tests).
	AuthURL string `json:"auth_url,omitempty"`
	// TokenURL is the token exchange endpoint (optional override for tests).
	TokenURL string `json:"token_url,omitempty"`
	// RedirectURI is the callback URI (default: http://localhost:PORT/callback).
	RedirectURI string `json:"redirect_uri,omitempty"`
}

// DefaultScopes are the scopes Bookline needs: identity, calendar
// booking, and spreadsheet sync.
var DefaultScopes = []string{
	"openid",
	"email",
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive.file",
}

// Configured returns true if the app carries usable client credentials.
func (a *OAuthApp) Configured() bool {
	return a.ClientID != "" && a.ClientSecret != ""
}
