package ports

import (
	"context"

	"golang.org/x/oauth2"
)

// OAuthClient abstracts the provider-side OAuth2 flow so services can be
// tested without the real authorization server.
type OAuthClient interface {
	Scopes() []string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	Revoke(ctx context.Context, token string) error
}
