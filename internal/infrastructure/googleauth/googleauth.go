// Package googleauth wraps the OAuth2 authorization-code flow against
// Google for per-user delegated Drive access.
package googleauth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"finance-tracker-api/config"
	"finance-tracker-api/internal/application/apperrors"
)

// drive.file limits access to files the app created; the user's wider
// Drive contents stay invisible.
const driveFileScope = "https://www.googleapis.com/auth/drive.file"

const revokeEndpoint = "https://oauth2.googleapis.com/revoke"

type Client struct {
	conf *oauth2.Config
	http *http.Client
}

func New(cfg config.Drive) *Client {
	return &Client{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{driveFileScope},
			Endpoint:     google.Endpoint,
		},
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Scopes() []string { return c.conf.Scopes }

// AuthCodeURL builds the consent URL. Offline access plus forced consent
// guarantees Google returns a refresh token on first approval.
func (c *Client) AuthCodeURL(state string) string {
	return c.conf.AuthCodeURL(
		state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: code exchange rejected: %v", apperrors.ErrUpstream, err)
	}
	return tok, nil
}

// Refresh trades a stored refresh token for a fresh access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	ts := c.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	tok, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: token refresh failed: %v", apperrors.ErrUpstream, err)
	}
	return tok, nil
}

// Revoke invalidates the token provider-side.
func (c *Client) Revoke(ctx context.Context, token string) error {
	form := url.Values{"token": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, revokeEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: revoke request failed: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: revoke returned status %d", apperrors.ErrUpstream, resp.StatusCode)
	}
	return nil
}
