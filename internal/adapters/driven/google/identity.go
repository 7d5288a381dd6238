package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/quill-labs/bookline-cli/internal/core/ports/driven"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Ensure Identity implements the interface.
var _ driven.IdentityAPI = (*Identity)(nil)

// Identity resolves the account behind an access token via the Google
// userinfo endpoint.
type Identity struct {
	client *http.Client
	url    string
}

// NewIdentity creates the identity adapter.
func NewIdentity() *Identity {
	return &Identity{
		client: &http.Client{Timeout: 30 * time.Second},
		url:    userInfoURL,
	}
}

// userInfo contains the user's basic profile information from Google.
type userInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// FetchEmail returns the email address of the token's account.
func (i *Identity) FetchEmail(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := i.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("user info request failed with status %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("decode user info: %w", err)
	}
	return info.Email, nil
}
