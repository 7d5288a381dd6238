package domain

import "time"

// CredentialRecord stores one user's Google OAuth token set.
// Each user has at most one record (upsert semantics keyed on UserID).
//
// Records are owned by the credential store; services hold only transient
// in-memory copies for the duration of a single operation.
type CredentialRecord struct {
	// UserID is the opaque identity key the record is keyed on.
	UserID string `json:"user_id"`

	// AccountEmail is the Google account email from the userinfo endpoint.
	// Informational only; the store key is UserID.
	AccountEmail string `json:"account_email,omitempty"`

	// AccessToken is the short-lived bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is the long-lived token used to obtain new access tokens.
	// May be empty when Google did not issue one (re-consent without
	// prompt=consent, or a federation bootstrap that only carried an
	// access token).
	RefreshToken string `json:"refresh_token,omitempty"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type,omitempty"`
	// Expiry is the absolute UTC instant the access token expires.
	Expiry time.Time `json:"expiry"`

	// CreatedAt is when the record was first persisted.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the record was last refreshed or rewritten.
	UpdatedAt time.Time `json:"updated_at"`
}

// IsExpired returns true if the access token has expired at the given instant.
// A zero Expiry is treated as never expiring.
func (r *CredentialRecord) IsExpired(now time.Time) bool {
	if r.Expiry.IsZero() {
		return false
	}
	return !now.Before(r.Expiry)
}

// HasRefreshToken returns true if a refresh token is available.
func (r *CredentialRecord) HasRefreshToken() bool {
	return r.RefreshToken != ""
}

// Usable returns true if the record carries any token at all.
func (r *CredentialRecord) Usable() bool {
	return r.AccessToken != "" || r.RefreshToken != ""
}
