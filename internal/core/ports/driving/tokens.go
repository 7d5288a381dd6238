package driving

import (
	"context"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driven"
)

// TokenLifecycle owns acquisition, storage, expiry detection and refresh
// of a user's Google OAuth credentials.
type TokenLifecycle interface {
	// GetClient returns a live authenticated handle for the user,
	// refreshing or bootstrapping credentials as needed.
	//
	// Resolution order: stored record (no network call when still
	// valid), refresh-token exchange, federated identity metadata.
	// Returns domain.ErrNoCredential when every source comes up empty,
	// domain.ErrPersistence when the store itself fails.
	GetClient(ctx context.Context, userID string) (driven.TokenProvider, error)

	// Refresh exchanges the record's refresh token for a new token set.
	// Pure with respect to storage: the caller persists the result.
	Refresh(ctx context.Context, record *domain.CredentialRecord) (*domain.CredentialRecord, error)

	// Connect stores a freshly-obtained token set for a user, as
	// produced by the interactive consent flow.
	Connect(ctx context.Context, record domain.CredentialRecord) error

	// Disconnect deletes the user's stored credentials. Idempotent.
	Disconnect(ctx context.Context, userID string) error

	// Status returns the stored record without refreshing it.
	// Returns domain.ErrNotFound when the user has never connected.
	Status(ctx context.Context, userID string) (*domain.CredentialRecord, error)
}
