package driveauth

import "time"

type (
	// Credential is the one-per-user delegated-storage credential. The
	// refresh token is stored encrypted (see infrastructure/secrets).
	Credential struct {
		UserID                string
		EncryptedRefreshToken string
		Scopes                []string
		LastValidatedAt       time.Time
	}

	// Exchange is the result of a successful OAuth code exchange.
	// RefreshStored is false when the provider omitted the refresh token
	// (repeat consent) and an earlier stored credential remains in use.
	Exchange struct {
		AccessToken   string
		ExpiresAt     time.Time
		RefreshStored bool
	}
)
