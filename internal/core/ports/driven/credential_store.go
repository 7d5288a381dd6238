package driven

import (
	"context"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
)

// CredentialStore persists Google OAuth token records, keyed by user ID.
// At most one record exists per user; Upsert replaces any existing record
// for the same user atomically (last writer wins under concurrent refresh).
//
// Store failures must be surfaced wrapped in domain.ErrPersistence so the
// credential resolution chain can distinguish "nothing stored" from "the
// store is down".
type CredentialStore interface {
	// GetByUserID retrieves the record for a user.
	// Returns domain.ErrNotFound when no record exists.
	GetByUserID(ctx context.Context, userID string) (*domain.CredentialRecord, error)

	// Upsert creates or replaces the record for record.UserID.
	Upsert(ctx context.Context, record domain.CredentialRecord) error

	// Delete removes the record for a user. Deleting a missing record
	// is not an error.
	Delete(ctx context.Context, userID string) error

	// List returns all stored records.
	List(ctx context.Context) ([]domain.CredentialRecord, error)
}
