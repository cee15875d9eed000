package driveauth

import "time"

type (
	AuthorizeResponse struct {
		URL string `json:"url"`
	}

	ExchangeRequest struct {
		Code string `json:"code"`
	}

	ExchangeResponse struct {
		AccessToken   string    `json:"access_token"`
		ExpiresAt     time.Time `json:"expires_at"`
		RefreshStored bool      `json:"refresh_stored"`
	}

	StatusResponse struct {
		Connected bool `json:"connected"`
	}
)
