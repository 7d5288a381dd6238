package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driven"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driving"
	"github.com/quill-labs/bookline-cli/internal/logger"
)

// Ensure TokenService implements the interface.
var _ driving.TokenLifecycle = (*TokenService)(nil)

// federationBootstrapTTL bounds how long a federated access token is
// trusted when a refresh token came with it. Federation metadata does
// not record the token's real expiry, so assume it is nearly stale and
// let the refresh source take over on the next resolution.
const federationBootstrapTTL = 5 * time.Minute

// TokenService owns the credential lifecycle for connected Google
// accounts. Each call is independent; the service holds no credential
// state between calls beyond what the stores persist.
type TokenService struct {
	app        *domain.OAuthApp
	store      driven.CredentialStore
	endpoint   driven.TokenEndpoint
	federation driven.FederationStore
	rules      []domain.ExtractionRule

	now func() time.Time
}

// NewTokenService creates the credential lifecycle service.
// federation may be nil; the federated bootstrap source is then skipped.
func NewTokenService(
	app *domain.OAuthApp,
	store driven.CredentialStore,
	endpoint driven.TokenEndpoint,
	federation driven.FederationStore,
) *TokenService {
	return &TokenService{
		app:        app,
		store:      store,
		endpoint:   endpoint,
		federation: federation,
		rules:      domain.DefaultExtractionRules,
		now:        time.Now,
	}
}

// credentialSource is one strategy in the resolution chain. resolve
// returns (record, nil) on success, (nil, nil) when the source has
// nothing for this user, and (nil, err) when it failed. A failure
// wrapped in domain.ErrPersistence aborts the chain; any other failure
// is logged and the next source is tried.
type credentialSource struct {
	name    string
	resolve func(ctx context.Context, userID string) (*domain.CredentialRecord, error)
}

// GetClient returns a live authenticated handle for the user.
func (s *TokenService) GetClient(ctx context.Context, userID string) (driven.TokenProvider, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user ID", domain.ErrInvalidInput)
	}

	record, err := s.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &tokenClient{svc: s, record: *record}, nil
}

// resolve walks the credential source chain and returns the first
// usable record.
func (s *TokenService) resolve(ctx context.Context, userID string) (*domain.CredentialRecord, error) {
	// The stored-but-expired record is stashed by the store source so
	// the refresh source can pick it up.
	var expired *domain.CredentialRecord

	sources := []credentialSource{
		{
			name: "store",
			resolve: func(ctx context.Context, userID string) (*domain.CredentialRecord, error) {
				record, err := s.store.GetByUserID(ctx, userID)
				if errors.Is(err, domain.ErrNotFound) {
					return nil, nil
				}
				if err != nil {
					return nil, persistenceError(err)
				}
				if record.IsExpired(s.now()) {
					expired = record
					return nil, nil
				}
				return record, nil
			},
		},
		{
			name: "refresh",
			resolve: func(ctx context.Context, userID string) (*domain.CredentialRecord, error) {
				if expired == nil || !expired.HasRefreshToken() {
					return nil, nil
				}
				refreshed, err := s.Refresh(ctx, expired)
				if err != nil {
					return nil, err
				}
				if err := s.upsert(ctx, refreshed); err != nil {
					return nil, err
				}
				return refreshed, nil
			},
		},
		{
			name: "federation",
			resolve: func(ctx context.Context, userID string) (*domain.CredentialRecord, error) {
				if s.federation == nil {
					return nil, nil
				}
				fed, err := s.federation.GetByUserID(ctx, userID)
				if errors.Is(err, domain.ErrNotFound) {
					return nil, nil
				}
				if err != nil {
					return nil, fmt.Errorf("read federation record: %w", err)
				}
				access, refresh, ok := fed.ExtractTokens(s.rules)
				if !ok {
					return nil, nil
				}
				// Bootstrap the primary store from the federated
				// identity. With a refresh token in hand the access
				// token is trusted only briefly, so a dead federated
				// token recovers through the refresh source instead of
				// wedging until disconnect. Without one there is
				// nothing to refresh with; the record never expires.
				record := &domain.CredentialRecord{
					UserID:       userID,
					AccessToken:  access,
					RefreshToken: refresh,
					TokenType:    "Bearer",
				}
				if record.HasRefreshToken() {
					record.Expiry = s.now().Add(federationBootstrapTTL)
				}
				if err := s.upsert(ctx, record); err != nil {
					return nil, err
				}
				return record, nil
			},
		},
	}

	for _, src := range sources {
		record, err := src.resolve(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrPersistence) {
				return nil, err
			}
			// Non-fatal: keep the cause for operators, try the next
			// source.
			logger.Warn("credential source %q failed for user %s: %v", src.name, userID, err)
			continue
		}
		if record != nil {
			return record, nil
		}
	}

	return nil, fmt.Errorf("%w: user %s must reconnect their Google account", domain.ErrNoCredential, userID)
}

// Refresh exchanges the record's refresh token for a new token set.
// It does not persist anything; that is the caller's responsibility.
func (s *TokenService) Refresh(ctx context.Context, record *domain.CredentialRecord) (*domain.CredentialRecord, error) {
	if !record.HasRefreshToken() {
		return nil, fmt.Errorf("%w: no refresh token for user %s", domain.ErrRefreshFailed, record.UserID)
	}

	refreshed, err := s.endpoint.Refresh(ctx, s.app, record.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRefreshFailed, err)
	}

	result := *record
	result.AccessToken = refreshed.AccessToken
	result.Expiry = refreshed.Expiry
	if refreshed.TokenType != "" {
		result.TokenType = refreshed.TokenType
	}
	// Google only rotates the refresh token sometimes; keep the old one
	// when the response omits it.
	if refreshed.RefreshToken != "" {
		result.RefreshToken = refreshed.RefreshToken
	}
	return &result, nil
}

// Connect stores a freshly-obtained token set for a user.
func (s *TokenService) Connect(ctx context.Context, record domain.CredentialRecord) error {
	if record.UserID == "" {
		return fmt.Errorf("%w: record has no user ID", domain.ErrInvalidInput)
	}
	if !record.Usable() {
		return fmt.Errorf("%w: record carries no tokens", domain.ErrInvalidInput)
	}
	return s.upsert(ctx, &record)
}

// Disconnect deletes the user's stored credentials. Idempotent.
func (s *TokenService) Disconnect(ctx context.Context, userID string) error {
	if err := s.store.Delete(ctx, userID); err != nil {
		return persistenceError(err)
	}
	return nil
}

// Status returns the stored record without refreshing it.
func (s *TokenService) Status(ctx context.Context, userID string) (*domain.CredentialRecord, error) {
	record, err := s.store.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, persistenceError(err)
	}
	return record, nil
}

// upsert writes the record with fresh timestamps.
func (s *TokenService) upsert(ctx context.Context, record *domain.CredentialRecord) error {
	now := s.now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	if err := s.store.Upsert(ctx, *record); err != nil {
		return persistenceError(err)
	}
	return nil
}

// persistenceError tags store failures so the resolution chain treats
// them as hard errors.
func persistenceError(err error) error {
	if errors.Is(err, domain.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
}

// tokenClient is the authenticated handle GetClient hands out. It keeps
// a snapshot of the resolved record and re-resolves through the service
// if the snapshot expires mid-use.
type tokenClient struct {
	svc *TokenService

	mu     sync.Mutex
	record domain.CredentialRecord
}

var _ driven.TokenProvider = (*tokenClient)(nil)

// GetToken returns a valid access token, refreshing if necessary.
func (c *tokenClient) GetToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.record.IsExpired(c.svc.now()) {
		return c.record.AccessToken, nil
	}

	record, err := c.svc.resolve(ctx, c.record.UserID)
	if err != nil {
		return "", err
	}
	c.record = *record
	return c.record.AccessToken, nil
}

// UserID returns the identity key the tokens belong to.
func (c *tokenClient) UserID() string {
	return c.record.UserID
}
