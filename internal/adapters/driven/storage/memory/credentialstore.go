package memory

import (
	"context"
	"sync"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore is an in-memory implementation of driven.CredentialStore.
// Useful for tests and ephemeral sessions; nothing survives process exit.
type CredentialStore struct {
	mu      sync.RWMutex
	records map[string]domain.CredentialRecord
}

// NewCredentialStore creates a new in-memory credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		records: make(map[string]domain.CredentialRecord),
	}
}

// GetByUserID retrieves the record for a user.
func (s *CredentialStore) GetByUserID(_ context.Context, userID string) (*domain.CredentialRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// Upsert creates or replaces the record for record.UserID.
func (s *CredentialStore) Upsert(_ context.Context, record domain.CredentialRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.UserID] = record
	return nil
}

// Delete removes the record for a user.
func (s *CredentialStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, userID)
	return nil
}

// List returns all stored records.
func (s *CredentialStore) List(_ context.Context) ([]domain.CredentialRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.CredentialRecord, 0, len(s.records))
	for _, record := range s.records {
		result = append(result, record)
	}
	return result, nil
}
