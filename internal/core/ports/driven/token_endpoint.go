package driven

import (
	"context"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
)

// TokenEndpoint talks to the OAuth provider's token endpoint.
// Implementations perform a single attempt per call; callers needing
// retries add their own wrapper.
type TokenEndpoint interface {
	// Exchange swaps an authorisation code for a token set.
	// Used once, at the end of the interactive connect flow.
	Exchange(ctx context.Context, app *domain.OAuthApp, code, redirectURI string) (*domain.CredentialRecord, error)

	// Refresh performs the refresh-token grant. The returned record
	// carries the new access token and expiry, and the rotated refresh
	// token when the provider issued one (empty otherwise). It has no
	// UserID; persistence is the caller's responsibility.
	//
	// Failures are wrapped in domain.ErrRefreshFailed.
	Refresh(ctx context.Context, app *domain.OAuthApp, refreshToken string) (*domain.CredentialRecord, error)
}
