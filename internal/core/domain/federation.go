package domain

import (
	"strings"
	"time"
)

// FederationRecord is identity-provider-linked account metadata captured
// during a social-login flow. Providers embed previously-issued OAuth
// tokens in this metadata under provider-specific field names; the record
// is read-only from Bookline's perspective and acts as the secondary
// credential source when the primary store has nothing usable.
type FederationRecord struct {
	// UserID links the record to Bookline's user identity.
	UserID string `json:"user_id"`
	// Provider names the identity provider (e.g. "google").
	Provider string `json:"provider"`
	// Metadata is the provider's opaque key-value document.
	// Nested maps are allowed.
	Metadata map[string]any `json:"metadata"`
	// LinkedAt is when the federation was established.
	LinkedAt time.Time `json:"linked_at"`
}

// ExtractionRule names one candidate field-path pair for the embedded
// access and refresh tokens. Paths use dot notation into nested maps.
//
// Providers have shipped tokens under several shapes over time, so the
// extraction is an ordered rule list rather than a hardcoded field: the
// first rule whose access path yields a non-empty string wins.
type ExtractionRule struct {
	AccessPath  string
	RefreshPath string
}

// DefaultExtractionRules is the priority-ordered list of known token
// shapes in federation metadata.
var DefaultExtractionRules = []ExtractionRule{
	{AccessPath: "provider_token", RefreshPath: "provider_refresh_token"},
	{AccessPath: "access_token", RefreshPath: "refresh_token"},
	{AccessPath: "app_metadata.provider_token", RefreshPath: "app_metadata.provider_refresh_token"},
	{AccessPath: "user_metadata.provider_token", RefreshPath: "user_metadata.provider_refresh_token"},
}

// ExtractTokens evaluates the rules in order against the record's
// metadata and returns the first matching access/refresh token pair.
// The refresh token may be empty even on a match; ok reports whether an
// access token was found at all.
func (f *FederationRecord) ExtractTokens(rules []ExtractionRule) (accessToken, refreshToken string, ok bool) {
	if len(rules) == 0 {
		rules = DefaultExtractionRules
	}
	for _, rule := range rules {
		access := lookupPath(f.Metadata, rule.AccessPath)
		if access == "" {
			continue
		}
		return access, lookupPath(f.Metadata, rule.RefreshPath), true
	}
	return "", "", false
}

// lookupPath resolves a dot-notation path into nested string-keyed maps
// and returns the string value at the leaf, or "" if any step is missing
// or not a string.
func lookupPath(m map[string]any, path string) string {
	if path == "" || m == nil {
		return ""
	}

	parts := strings.Split(path, ".")
	current := m
	for i, part := range parts {
		val, exists := current[part]
		if !exists {
			return ""
		}
		if i == len(parts)-1 {
			str, isStr := val.(string)
			if !isStr {
				return ""
			}
			return str
		}
		nested, isMap := val.(map[string]any)
		if !isMap {
			return ""
		}
		current = nested
	}
	return ""
}
