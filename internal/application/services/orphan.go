package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"finance-tracker-api/internal/application/apperrors"
	"finance-tracker-api/internal/application/ports"
	domain "finance-tracker-api/internal/domain/attachment"
	"finance-tracker-api/internal/domain/driveauth"
)

// OrphanService reconciles remote storage against tracked metadata.
// Reconciliation is scoped per user: with delegated credentials there is
// no principal that can enumerate every user's storage.
type OrphanService struct {
	storage     ports.StorageProvider
	attachments domain.Repository
	creds       driveauth.Repository
	interval    time.Duration
	log         *zap.Logger
}

func NewOrphanService(
	storage ports.StorageProvider,
	attachments domain.Repository,
	creds driveauth.Repository,
	interval time.Duration,
	logger *zap.Logger,
) *OrphanService {
	return &OrphanService{
		storage:     storage,
		attachments: attachments,
		creds:       creds,
		interval:    interval,
		log:         logger,
	}
}

func (os *OrphanService) ScanOrphans(ctx context.Context, userID string) (domain.Orphans, error) {
	files, err := os.storage.ListUserFiles(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids, err := os.attachments.FetchDriveFileIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	tracked := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		tracked[id] = struct{}{}
	}

	now := time.Now().UTC()
	var orphans domain.Orphans
	for _, f := range files {
		if _, ok := tracked[f.RemoteID]; ok {
			continue
		}
		orphans = append(orphans, domain.Orphan{
			RemoteID:   f.RemoteID,
			Filename:   f.Filename,
			SizeBytes:  f.SizeBytes,
			DetectedAt: now,
		})
	}

	return orphans, nil
}

func (os *OrphanService) DeleteOrphan(ctx context.Context, userID, remoteID string) error {
	return os.storage.Delete(ctx, userID, remoteID)
}

// AdoptOrphan has no implementation: an orphan cannot be attached to a
// record without knowing which user's record it belongs to, and delegated
// credentials give no cross-user view. The method exists for interface
// stability.
func (os *OrphanService) AdoptOrphan(ctx context.Context, userID, remoteID string) error {
	return fmt.Errorf("%w: orphan adoption is not available under per-user delegated credentials", apperrors.ErrUnsupported)
}

// Worker periodically scans every connected user's storage and logs what
// it finds. Deletion stays manual.
func (os *OrphanService) Worker(ctx context.Context) {
	os.log.Info("starting orphan scan worker", zap.Duration("interval", os.interval))

	defer func() {
		os.log.Info("orphan scan worker gracefully stopped")
	}()

	ticker := time.NewTicker(os.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			os.scanAll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (os *OrphanService) scanAll(ctx context.Context) {
	userIDs, err := os.creds.FetchUserIDs(ctx)
	if err != nil {
		os.log.Error("orphan scan: list connected users", zap.Error(err))
		return
	}

	for _, userID := range userIDs {
		orphans, err := os.ScanOrphans(ctx, userID)
		if err != nil {
			os.log.Warn("orphan scan failed",
				zap.String("user_id", userID), zap.Error(err))
			continue
		}
		if len(orphans) > 0 {
			os.log.Warn("orphan files detected",
				zap.String("user_id", userID),
				zap.Int("count", len(orphans)),
			)
		}
	}
}
