package services

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"finance-tracker-api/internal/application/ports"
	domain "finance-tracker-api/internal/domain/attachment"
)

// PurgeResult is the per-run accounting of the retention purger.
type PurgeResult struct {
	Purged      int
	DriveErrors int
	DBErrors    int
}

// PurgeService hard-deletes REMOVED attachments whose retention window has
// passed. Items are processed one at a time to bound concurrent load on
// the remote provider.
type PurgeService struct {
	storage     ports.StorageProvider
	attachments domain.Repository
	interval    time.Duration
	log         *zap.Logger
	mCounter    *prometheus.CounterVec
}

func NewPurgeService(
	storage ports.StorageProvider,
	attachments domain.Repository,
	interval time.Duration,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) *PurgeService {
	return &PurgeService{
		storage:     storage,
		attachments: attachments,
		interval:    interval,
		log:         logger,
		mCounter:    mCounter,
	}
}

func (ps *PurgeService) Run(ctx context.Context) (PurgeResult, error) {
	expired, err := ps.attachments.FetchExpired(ctx, time.Now().UTC())
	if err != nil {
		return PurgeResult{}, err
	}

	var res PurgeResult
	for _, a := range expired {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}

		// A failed remote delete does not block metadata deletion; the
		// next scan of the user's storage surfaces the leftover file.
		if err := ps.storage.Delete(ctx, a.UploadedByUserID, a.DriveFileID); err != nil {
			res.DriveErrors++
			ps.log.Warn("purge: drive delete failed",
				zap.String("attachment_id", a.ID.String()),
				zap.String("drive_file_id", a.DriveFileID),
				zap.Error(err),
			)
		}

		if err := ps.attachments.HardDelete(ctx, a.ID); err != nil {
			res.DBErrors++
			ps.log.Error("purge: metadata delete failed",
				zap.String("attachment_id", a.ID.String()),
				zap.Error(err),
			)
			continue
		}
		res.Purged++
	}

	ps.mCounter.WithLabelValues("attachments_purged_total").Add(float64(res.Purged))

	return res, nil
}

func (ps *PurgeService) Worker(ctx context.Context) {
	ps.log.Info("starting retention purge worker", zap.Duration("interval", ps.interval))

	defer func() {
		ps.log.Info("retention purge worker gracefully stopped")
	}()

	ticker := time.NewTicker(ps.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			res, err := ps.Run(ctx)
			if err != nil {
				ps.log.Error("retention purge run failed", zap.Error(err))
				continue
			}
			ps.log.Info("retention purge run finished",
				zap.Int("purged", res.Purged),
				zap.Int("drive_errors", res.DriveErrors),
				zap.Int("db_errors", res.DBErrors),
			)
		case <-ctx.Done():
			return
		}
	}
}
