package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"finance-tracker-api/internal/application/apperrors"
	"finance-tracker-api/internal/application/ports"
	domain "finance-tracker-api/internal/domain/bulkimport"
	"finance-tracker-api/internal/infrastructure/checksum"
)

const jobQueueSize = 32

type (
	queuedJob struct {
		jobID  uuid.UUID
		userID string
		files  []domain.File
	}

	// BulkImportService runs multi-file ingestion on a background worker.
	// The job row is the only durable record of progress: the per-job
	// checksum dedup set lives in memory and a job interrupted by a
	// process restart is abandoned at its last persisted counters.
	BulkImportService struct {
		attachments ports.AttachmentService
		jobs        domain.Repository
		concurrency int
		queue       chan queuedJob
		log         *zap.Logger
		mCounter    *prometheus.CounterVec
	}
)

func NewBulkImportService(
	attachments ports.AttachmentService,
	jobs domain.Repository,
	concurrency int,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.BulkImportService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BulkImportService{
		attachments: attachments,
		jobs:        jobs,
		concurrency: concurrency,
		queue:       make(chan queuedJob, jobQueueSize),
		log:         logger,
		mCounter:    mCounter,
	}
}

func (bs *BulkImportService) Start(ctx context.Context, userID string, files []domain.File) (*domain.Job, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: at least one file is required", apperrors.ErrInvalidInput)
	}

	job, err := bs.jobs.Create(ctx, &domain.Job{
		InitiatedByUserID: userID,
		TotalFiles:        len(files),
		Status:            domain.StatusRunning,
	})
	if err != nil {
		return nil, err
	}

	select {
	case bs.queue <- queuedJob{jobID: job.ID, userID: userID, files: files}:
	default:
		// Queue full. Cancel rather than leave a running row nothing will
		// ever process.
		if _, cErr := bs.jobs.UpdateStatus(ctx, job.ID, domain.StatusCanceled); cErr != nil {
			bs.log.Error("cancel unqueued bulk job", zap.String("job_id", job.ID.String()), zap.Error(cErr))
		}
		return nil, fmt.Errorf("%w: bulk import queue is full", apperrors.ErrUpstream)
	}

	return job, nil
}

func (bs *BulkImportService) JobStatus(ctx context.Context, jobID uuid.UUID) (*domain.Job, error) {
	return bs.jobs.FetchByID(ctx, jobID)
}

func (bs *BulkImportService) Cancel(ctx context.Context, jobID uuid.UUID) (*domain.Job, error) {
	job, err := bs.jobs.FetchByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status.Terminal() {
		return job, nil
	}

	return bs.jobs.UpdateStatus(ctx, jobID, domain.StatusCanceled)
}

func (bs *BulkImportService) Worker(ctx context.Context) {
	bs.log.Info("starting bulk import worker")

	defer func() {
		bs.log.Info("bulk import worker gracefully stopped")
	}()

	for {
		select {
		case j := <-bs.queue:
			bs.process(ctx, j)
		case <-ctx.Done():
			return
		}
	}
}

// process handles one job: sequential fixed-size batches, bounded
// parallelism within a batch, counters persisted once per batch boundary.
// Cancellation is cooperative and observed between batches.
func (bs *BulkImportService) process(ctx context.Context, j queuedJob) {
	var (
		mu       sync.Mutex
		seen     = make(map[string]struct{})
		counters domain.Counters
	)

	canceled := false
	for start := 0; start < len(j.files); start += bs.concurrency {
		if ctx.Err() != nil {
			canceled = true
			break
		}
		if status, err := bs.jobs.FetchStatus(ctx, j.jobID); err == nil && status == domain.StatusCanceled {
			canceled = true
			break
		}

		end := min(start+bs.concurrency, len(j.files))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(bs.concurrency)
		for _, f := range j.files[start:end] {
			f := f
			g.Go(func() error {
				bs.processFile(gctx, j, f, &mu, seen, &counters)
				return nil
			})
		}
		_ = g.Wait()

		if _, err := bs.jobs.UpdateProgress(ctx, j.jobID, counters, domain.StatusRunning); err != nil {
			bs.log.Error("persist bulk job progress",
				zap.String("job_id", j.jobID.String()), zap.Error(err))
		}
	}

	final := domain.StatusCompleted
	if canceled {
		final = domain.StatusCanceled
	}
	if _, err := bs.jobs.UpdateProgress(ctx, j.jobID, counters, final); err != nil {
		bs.log.Error("finalize bulk job",
			zap.String("job_id", j.jobID.String()), zap.Error(err))
	}

	bs.mCounter.WithLabelValues("bulk_jobs_processed_total").Inc()
	bs.log.Info("bulk import job finished",
		zap.String("job_id", j.jobID.String()),
		zap.String("status", string(final)),
		zap.Int("uploaded", counters.Uploaded),
		zap.Int("duplicate", counters.Duplicate),
		zap.Int("skipped", counters.Skipped),
		zap.Int("errors", counters.Error),
	)
}

// processFile classifies one file: duplicate checksum, skipped (no target
// record), uploaded, or error. Per-file failures never abort the batch.
func (bs *BulkImportService) processFile(
	ctx context.Context,
	j queuedJob,
	f domain.File,
	mu *sync.Mutex,
	seen map[string]struct{},
	counters *domain.Counters,
) {
	sum := checksum.Sum(f.Data)

	mu.Lock()
	if _, dup := seen[sum]; dup {
		counters.Duplicate++
		mu.Unlock()
		return
	}
	seen[sum] = struct{}{}
	mu.Unlock()

	if f.RecordID == nil {
		mu.Lock()
		counters.Skipped++
		mu.Unlock()
		return
	}

	_, err := bs.attachments.Upload(ctx, j.userID, ports.UploadInput{
		RecordType: f.RecordType,
		RecordID:   *f.RecordID,
		Filename:   f.Filename,
		MimeType:   f.MimeType,
		Data:       f.Data,
		Checksum:   sum,
	})
	if err != nil {
		bs.log.Warn("bulk file upload failed",
			zap.String("job_id", j.jobID.String()),
			zap.String("filename", f.Filename),
			zap.Error(err),
		)
		mu.Lock()
		counters.Error++
		mu.Unlock()
		return
	}

	mu.Lock()
	counters.Uploaded++
	mu.Unlock()
}
