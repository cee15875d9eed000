package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"finance-tracker-api/internal/application/apperrors"
	"finance-tracker-api/internal/application/ports"
	domain "finance-tracker-api/internal/domain/driveauth"
	"finance-tracker-api/internal/infrastructure/secrets"
)

// DriveAuthService owns the per-user delegated-storage credential
// lifecycle. Refresh tokens are stored encrypted; access tokens are minted
// per call and never persisted.
type DriveAuthService struct {
	oauth    ports.OAuthClient
	creds    domain.Repository
	secrets  *secrets.Encryptor
	log      *zap.Logger
	mCounter *prometheus.CounterVec
}

func NewDriveAuthService(
	oauth ports.OAuthClient,
	creds domain.Repository,
	encryptor *secrets.Encryptor,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.DriveAuthService {
	return &DriveAuthService{
		oauth:    oauth,
		creds:    creds,
		secrets:  encryptor,
		log:      logger,
		mCounter: mCounter,
	}
}

func (ds *DriveAuthService) AuthorizationURL() string {
	return ds.oauth.AuthCodeURL("")
}

func (ds *DriveAuthService) ExchangeCode(ctx context.Context, userID, code string) (*domain.Exchange, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: authorization code is required", apperrors.ErrInvalidInput)
	}

	tok, err := ds.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	// Repeat consent flows may omit the refresh token; the previously
	// stored credential stays in effect then.
	stored := false
	if tok.RefreshToken != "" {
		blob, err := ds.secrets.Encrypt(tok.RefreshToken)
		if err != nil {
			return nil, err
		}
		if err = ds.creds.Upsert(ctx, &domain.Credential{
			UserID:                userID,
			EncryptedRefreshToken: blob,
			Scopes:                ds.oauth.Scopes(),
		}); err != nil {
			return nil, err
		}
		stored = true
	} else {
		ds.log.Info("code exchange returned no refresh token, keeping stored credential",
			zap.String("user_id", userID))
	}

	ds.mCounter.WithLabelValues("drive_connections_total").Inc()

	return &domain.Exchange{
		AccessToken:   tok.AccessToken,
		ExpiresAt:     tok.Expiry,
		RefreshStored: stored,
	}, nil
}

func (ds *DriveAuthService) AccessToken(ctx context.Context, userID string) (string, error) {
	cred, err := ds.creds.Fetch(ctx, userID)
	if err != nil {
		return "", err
	}

	refreshToken, err := ds.secrets.Decrypt(cred.EncryptedRefreshToken)
	if err != nil {
		return "", err
	}

	tok, err := ds.oauth.Refresh(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	if err = ds.creds.Touch(ctx, userID, time.Now().UTC()); err != nil {
		ds.log.Warn("update credential validation time",
			zap.String("user_id", userID), zap.Error(err))
	}

	return tok.AccessToken, nil
}

// Revoke is best effort provider-side: a failed revocation is logged, the
// local credential row is deleted regardless.
func (ds *DriveAuthService) Revoke(ctx context.Context, userID string) error {
	cred, err := ds.creds.Fetch(ctx, userID)
	if err == nil {
		if refreshToken, dErr := ds.secrets.Decrypt(cred.EncryptedRefreshToken); dErr == nil {
			if rErr := ds.oauth.Revoke(ctx, refreshToken); rErr != nil {
				ds.log.Warn("provider-side token revocation failed",
					zap.String("user_id", userID), zap.Error(rErr))
			}
		}
	} else if !errors.Is(err, apperrors.ErrNotConnected) {
		return err
	}

	return ds.creds.Delete(ctx, userID)
}

func (ds *DriveAuthService) Connected(ctx context.Context, userID string) (bool, error) {
	_, err := ds.creds.Fetch(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotConnected) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
