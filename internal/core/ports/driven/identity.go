package driven

import "context"

// IdentityAPI resolves the account behind an access token.
type IdentityAPI interface {
	// FetchEmail returns the email address of the token's account.
	FetchEmail(ctx context.Context, accessToken string) (string, error)
}
