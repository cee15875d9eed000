package ports

import (
	"context"

	"finance-tracker-api/internal/domain/driveauth"
)

// AccessTokenProvider is the narrow surface storage implementations need:
// a fresh per-user access token for one remote call.
type AccessTokenProvider interface {
	AccessToken(ctx context.Context, userID string) (string, error)
}

type DriveAuthService interface {
	AccessTokenProvider

	AuthorizationURL() string
	ExchangeCode(ctx context.Context, userID, code string) (*driveauth.Exchange, error)
	Revoke(ctx context.Context, userID string) error
	Connected(ctx context.Context, userID string) (bool, error)
}
