package ports

import (
	"context"

	"github.com/google/uuid"

	"finance-tracker-api/internal/domain/bulkimport"
)

type BulkImportService interface {
	// Start creates a running job row and queues processing on the
	// background worker; it does not wait for any file to be handled.
	Start(ctx context.Context, userID string, files []bulkimport.File) (*bulkimport.Job, error)
	JobStatus(ctx context.Context, jobID uuid.UUID) (*bulkimport.Job, error)
	// Cancel is idempotent: jobs already in a terminal state are returned
	// unchanged.
	Cancel(ctx context.Context, jobID uuid.UUID) (*bulkimport.Job, error)
	// Worker consumes queued jobs until ctx is canceled.
	Worker(ctx context.Context)
}
