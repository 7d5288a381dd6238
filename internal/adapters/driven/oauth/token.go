// Package oauth implements the provider token endpoint port over plain HTTP.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
	"github.com/quill-labs/bookline-cli/internal/core/ports/driven"
)

// GoogleAuthURL and GoogleTokenURL are the default Google OAuth 2.0
// endpoints used when the app does not override them.
const (
	GoogleAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	GoogleTokenURL = "https://oauth2.googleapis.com/token"
)

// Ensure Endpoint implements the interface.
var _ driven.TokenEndpoint = (*Endpoint)(nil)

// Endpoint talks to the OAuth provider's token endpoint. One HTTP
// request per call, no retries.
type Endpoint struct {
	client *http.Client
	now    func() time.Time
}

// NewEndpoint creates a token endpoint adapter.
func NewEndpoint() *Endpoint {
	return &Endpoint{
		client: &http.Client{Timeout: 30 * time.Second},
		now:    time.Now,
	}
}

// tokenResponse holds the provider's token endpoint response.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// Exchange swaps an authorisation code for a token set.
func (e *Endpoint) Exchange(ctx context.Context, app *domain.OAuthApp, code, redirectURI string) (*domain.CredentialRecord, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("client_id", app.ClientID)
	data.Set("client_secret", app.ClientSecret)
	data.Set("code", code)
	data.Set("redirect_uri", redirectURI)

	resp, err := e.post(ctx, app, data)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	return e.toRecord(resp), nil
}

// Refresh performs the refresh-token grant.
func (e *Endpoint) Refresh(ctx context.Context, app *domain.OAuthApp, refreshToken string) (*domain.CredentialRecord, error) {
	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("client_id", app.ClientID)
	data.Set("client_secret", app.ClientSecret)
	data.Set("refresh_token", refreshToken)

	resp, err := e.post(ctx, app, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRefreshFailed, err)
	}
	return e.toRecord(resp), nil
}

// post sends a form-encoded request to the app's token URL and decodes
// the response.
func (e *Endpoint) post(ctx context.Context, app *domain.OAuthApp, data url.Values) (*tokenResponse, error) {
	tokenURL := app.TokenURL
	if tokenURL == "" {
		tokenURL = GoogleTokenURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error       string `json:"error"`
			Description string `json:"error_description"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("token error: %s - %s", errResp.Error, errResp.Description)
		}
		return nil, fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	return &tokenResp, nil
}

// toRecord maps a token response to a credential record. The record has
// no user ID; attribution belongs to the caller.
func (e *Endpoint) toRecord(resp *tokenResponse) *domain.CredentialRecord {
	record := &domain.CredentialRecord{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
	}
	if resp.ExpiresIn > 0 {
		record.Expiry = e.now().Add(time.Duration(resp.ExpiresIn) * time.Second).UTC()
	}
	return record
}
