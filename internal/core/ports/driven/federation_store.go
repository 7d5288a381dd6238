package driven

import (
	"context"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
)

// FederationStore reads identity-provider federation records. These are
// written by the identity provider during social login, never by Bookline;
// this port is strictly read-only.
type FederationStore interface {
	// GetByUserID retrieves the federation record for a user.
	// Returns domain.ErrNotFound when the user has no federated identity.
	GetByUserID(ctx context.Context, userID string) (*domain.FederationRecord, error)
}
