package cli

import (
	"context"
	"time"

	"github.com/quill-labs/bookline-cli/internal/adapters/driven/storage/memory"
	"github.com/quill-labs/bookline-cli/internal/core/domain"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driven"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driving"
)

// --- Mock implementations for CLI testing ---

type mockProvider struct {
	userID string
}

func (p *mockProvider) GetToken(_ context.Context) (string, error) { return "test-token", nil }
func (p *mockProvider) UserID() string                             { return p.userID }

type mockTokenLifecycle struct {
	statusRecord *domain.CredentialRecord
	statusErr    error
	connected    []domain.CredentialRecord
	disconnected []string
	getClientErr error
}

func (m *mockTokenLifecycle) GetClient(_ context.Context, userID string) (driven.TokenProvider, error) {
	if m.getClientErr != nil {
		return nil, m.getClientErr
	}
	return &mockProvider{userID: userID}, nil
}

func (m *mockTokenLifecycle) Refresh(_ context.Context, record *domain.CredentialRecord) (*domain.CredentialRecord, error) {
	return record, nil
}

func (m *mockTokenLifecycle) Connect(_ context.Context, record domain.CredentialRecord) error {
	m.connected = append(m.connected, record)
	return nil
}

func (m *mockTokenLifecycle) Disconnect(_ context.Context, userID string) error {
	m.disconnected = append(m.disconnected, userID)
	return nil
}

func (m *mockTokenLifecycle) Status(_ context.Context, _ string) (*domain.CredentialRecord, error) {
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return m.statusRecord, nil
}

type mockBookingService struct {
	slotsResult *driving.OpenSlotsResult
	slotsErr    error
	booking     *domain.Booking
	bookErr     error
	bookings    []domain.Booking
	listErr     error

	lastSummary string
	lastStart   time.Time
}

func (m *mockBookingService) OpenSlots(_ context.Context, _, _ string, _ domain.SlotRequest) (*driving.OpenSlotsResult, error) {
	if m.slotsErr != nil {
		return nil, m.slotsErr
	}
	return m.slotsResult, nil
}

func (m *mockBookingService) Book(_ context.Context, _, _, summary string, start time.Time, _ int, _ []string) (*domain.Booking, error) {
	m.lastSummary = summary
	m.lastStart = start
	if m.bookErr != nil {
		return nil, m.bookErr
	}
	return m.booking, nil
}

func (m *mockBookingService) List(_ context.Context, _ string) ([]domain.Booking, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.bookings, nil
}

type mockSheets struct {
	createdID string
	createErr error
	appended  [][]string
	headers   []string
}

func (m *mockSheets) CreateSpreadsheet(_ context.Context, _ driven.TokenProvider, _ string, _ []string) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	return m.createdID, nil
}

func (m *mockSheets) AppendRow(_ context.Context, _ driven.TokenProvider, _ string, values []string) error {
	m.appended = append(m.appended, values)
	return nil
}

func (m *mockSheets) UpdateHeader(_ context.Context, _ driven.TokenProvider, _ string, headers []string) error {
	m.headers = headers
	return nil
}

type mockIdentity struct {
	email string
	err   error
}

func (m *mockIdentity) FetchEmail(_ context.Context, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.email, nil
}

type mockImporter struct {
	imported []domain.FederationRecord
	err      error
}

func (m *mockImporter) ImportFederationRecord(_ context.Context, record domain.FederationRecord) error {
	if m.err != nil {
		return m.err
	}
	m.imported = append(m.imported, record)
	return nil
}

// testServices holds the mocks wired by setupTestServices so tests can
// inspect what the commands did.
type testServices struct {
	tokens   *mockTokenLifecycle
	bookings *mockBookingService
	sheets   *mockSheets
	identity *mockIdentity
	config   *memory.ConfigStore
	importer *mockImporter
}

// setupTestServices wires mock services into the package globals and
// returns them with a cleanup restoring the previous state.
func setupTestServices() (*testServices, func()) {
	prev := Services{
		Tokens:     tokenService,
		Bookings:   bookingService,
		Endpoint:   tokenExchanger,
		Sheets:     sheetsAPI,
		Identity:   identityAPI,
		Config:     configStore,
		App:        oauthApp,
		Federation: federationImporter,
	}

	mocks := &testServices{
		tokens:   &mockTokenLifecycle{},
		bookings: &mockBookingService{},
		sheets:   &mockSheets{createdID: "sheet-1"},
		identity: &mockIdentity{email: "user@example.com"},
		config:   memory.NewConfigStore(),
		importer: &mockImporter{},
	}
	_ = mocks.config.Set("user.id", "user@example.com")

	SetServices(Services{
		Tokens:     mocks.tokens,
		Bookings:   mocks.bookings,
		Sheets:     mocks.sheets,
		Identity:   mocks.identity,
		Config:     mocks.config,
		Federation: mocks.importer,
	})

	return mocks, func() { SetServices(prev) }
}
