package driven

import "context"

// TokenProvider is an authenticated handle for calling Google APIs on a
// user's behalf. Implementations refresh transparently when the token
// they hold expires mid-use.
type TokenProvider interface {
	// GetToken returns a valid access token.
	// If the current token is expired, it will be refreshed automatically.
	GetToken(ctx context.Context) (string, error)

	// UserID returns the identity key the tokens belong to.
	UserID() string
}
