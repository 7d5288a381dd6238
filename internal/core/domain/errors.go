package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Credential Lifecycle Errors.

	// ErrNoCredential indicates no usable token was found anywhere.
	// The user must go through the interactive consent flow again.
	ErrNoCredential = errors.New("no credential available")

	// ErrRefreshFailed indicates the refresh-token exchange was rejected
	// or failed on the network. Non-fatal on its own: the credential
	// resolution chain continues with the next source.
	ErrRefreshFailed = errors.New("token refresh failed")

	// ErrPersistence indicates the credential store itself failed.
	// Fatal: no credential can be confirmed when the store is unreachable.
	ErrPersistence = errors.New("credential store unavailable")

	// Availability Errors.

	// ErrAvailabilityUnknown indicates the calendar free/busy read failed.
	// Callers degrade to theoretical candidate slots with a warning;
	// the user is never blocked from attempting a booking.
	ErrAvailabilityUnknown = errors.New("calendar availability unknown")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
