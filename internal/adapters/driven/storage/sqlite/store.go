package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/quill-labs/bookline-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/quill-labs/bookline-cli/internal/core/domain"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.bookline/data/bookline.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".bookline", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "bookline.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CredentialStore returns a CredentialStore interface backed by this store.
func (s *Store) CredentialStore() driven.CredentialStore {
	return &credentialStore{store: s}
}

// FederationStore returns a FederationStore interface backed by this store.
func (s *Store) FederationStore() driven.FederationStore {
	return &federationStore{store: s}
}

// BookingStore returns a BookingStore interface backed by this store.
func (s *Store) BookingStore() driven.BookingStore {
	return &bookingStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// persistErr tags a storage failure so callers can treat it as a hard
// error distinct from "not found".
func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrPersistence, err)
}

// ==================== Credential Store ====================

// credentialStore implements driven.CredentialStore.
type credentialStore struct {
	store *Store
}

var _ driven.CredentialStore = (*credentialStore)(nil)

// GetByUserID retrieves the credential record for a user.
func (s *credentialStore) GetByUserID(ctx context.Context, userID string) (*domain.CredentialRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT user_id, account_email, access_token, refresh_token, token_type, expiry, created_at, updated_at
		FROM credentials WHERE user_id = ?
	`, userID)

	record, err := scanCredential(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, persistErr("reading credential record", err)
	}
	return record, nil
}

// Upsert creates or replaces the record for record.UserID.
func (s *credentialStore) Upsert(ctx context.Context, record domain.CredentialRecord) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO credentials (user_id, account_email, access_token, refresh_token, token_type, expiry, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			account_email = excluded.account_email,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_type = excluded.token_type,
			expiry = excluded.expiry,
			updated_at = excluded.updated_at
	`, record.UserID, record.AccountEmail, record.AccessToken, record.RefreshToken,
		record.TokenType, nullTime(record.Expiry), record.CreatedAt, record.UpdatedAt)

	if err != nil {
		return persistErr("saving credential record", err)
	}
	return nil
}

// Delete removes the record for a user. Deleting a missing record is
// not an error.
func (s *credentialStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM credentials WHERE user_id = ?", userID); err != nil {
		return persistErr("deleting credential record", err)
	}
	return nil
}

// List returns all stored records.
func (s *credentialStore) List(ctx context.Context) ([]domain.CredentialRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT user_id, account_email, access_token, refresh_token, token_type, expiry, created_at, updated_at
		FROM credentials ORDER BY user_id
	`)
	if err != nil {
		return nil, persistErr("listing credential records", err)
	}
	defer rows.Close()

	var records []domain.CredentialRecord
	for rows.Next() {
		record, err := scanCredential(rows)
		if err != nil {
			return nil, persistErr("scanning credential record", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("listing credential records", err)
	}
	return records, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCredential(row scanner) (*domain.CredentialRecord, error) {
	var record domain.CredentialRecord
	var expiry sql.NullTime
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&record.UserID, &record.AccountEmail, &record.AccessToken,
		&record.RefreshToken, &record.TokenType, &expiry, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if expiry.Valid {
		record.Expiry = expiry.Time.UTC()
	}
	if createdAt.Valid {
		record.CreatedAt = createdAt.Time.UTC()
	}
	if updatedAt.Valid {
		record.UpdatedAt = updatedAt.Time.UTC()
	}
	return &record, nil
}

// nullTime maps the zero time to NULL so "never expires" round-trips.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}

// ==================== Federation Store ====================

// federationStore implements driven.FederationStore. The credential
// chain only reads; ImportFederationRecord on the parent Store is the
// write path.
type federationStore struct {
	store *Store
}

var _ driven.FederationStore = (*federationStore)(nil)

// GetByUserID retrieves the federation record for a user.
func (s *federationStore) GetByUserID(ctx context.Context, userID string) (*domain.FederationRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT user_id, provider, metadata, linked_at
		FROM federation_identities WHERE user_id = ?
	`, userID)

	var record domain.FederationRecord
	var metadataJSON string
	var linkedAt sql.NullTime
	if err := row.Scan(&record.UserID, &record.Provider, &metadataJSON, &linkedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, persistErr("reading federation record", err)
	}

	if err := json.Unmarshal([]byte(metadataJSON), &record.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshalling federation metadata: %w", err)
	}
	if linkedAt.Valid {
		record.LinkedAt = linkedAt.Time.UTC()
	}
	return &record, nil
}

// ImportFederationRecord stores an identity-provider federation record,
// replacing any existing one for the same user.
func (s *Store) ImportFederationRecord(ctx context.Context, record domain.FederationRecord) error {
	metadataJSON, err := json.Marshal(record.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling federation metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO federation_identities (user_id, provider, metadata, linked_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			provider = excluded.provider,
			metadata = excluded.metadata,
			linked_at = excluded.linked_at
	`, record.UserID, record.Provider, string(metadataJSON), nullTime(record.LinkedAt))

	if err != nil {
		return persistErr("saving federation record", err)
	}
	return nil
}

// ==================== Booking Store ====================

// bookingStore implements driven.BookingStore.
type bookingStore struct {
	store *Store
}

var _ driven.BookingStore = (*bookingStore)(nil)

// Save records a created booking.
func (s *bookingStore) Save(ctx context.Context, booking domain.Booking) error {
	attendeesJSON, err := json.Marshal(booking.Attendees)
	if err != nil {
		return fmt.Errorf("marshalling attendees: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO bookings (id, user_id, calendar_id, event_id, summary, start_at, end_at, attendees, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			event_id = excluded.event_id,
			summary = excluded.summary,
			start_at = excluded.start_at,
			end_at = excluded.end_at,
			attendees = excluded.attendees
	`, booking.ID, booking.UserID, booking.CalendarID, booking.EventID, booking.Summary,
		booking.Start.UTC(), booking.End.UTC(), string(attendeesJSON), booking.CreatedAt.UTC())

	if err != nil {
		return persistErr("saving booking", err)
	}
	return nil
}

// ListByUser returns the user's bookings, newest first.
func (s *bookingStore) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, user_id, calendar_id, event_id, summary, start_at, end_at, attendees, created_at
		FROM bookings WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, persistErr("listing bookings", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var booking domain.Booking
		var attendeesJSON string
		var start, end, createdAt time.Time
		if err := rows.Scan(&booking.ID, &booking.UserID, &booking.CalendarID, &booking.EventID,
			&booking.Summary, &start, &end, &attendeesJSON, &createdAt); err != nil {
			return nil, persistErr("scanning booking", err)
		}
		booking.Start = start.UTC()
		booking.End = end.UTC()
		booking.CreatedAt = createdAt.UTC()
		if err := json.Unmarshal([]byte(attendeesJSON), &booking.Attendees); err != nil {
			return nil, fmt.Errorf("unmarshalling attendees: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("listing bookings", err)
	}
	return bookings, nil
}
