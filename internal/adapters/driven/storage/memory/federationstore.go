package memory

import (
	"context"
	"sync"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driven"
)

// Ensure FederationStore implements the interface.
var _ driven.FederationStore = (*FederationStore)(nil)

// FederationStore is an in-memory implementation of driven.FederationStore.
// The read path is what the credential chain exercises; Put exists so
// tests and imports can seed records.
type FederationStore struct {
	mu      sync.RWMutex
	records map[string]domain.FederationRecord
}

// NewFederationStore creates a new in-memory federation store.
func NewFederationStore() *FederationStore {
	return &FederationStore{
		records: make(map[string]domain.FederationRecord),
	}
}

// GetByUserID retrieves the federation record for a user.
func (s *FederationStore) GetByUserID(_ context.Context, userID string) (*domain.FederationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// Put stores a federation record, replacing any existing one for the
// same user.
func (s *FederationStore) Put(record domain.FederationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.UserID] = record
}
