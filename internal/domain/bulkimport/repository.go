package bulkimport

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, req *Job) (*Job, error)
	FetchByID(ctx context.Context, id uuid.UUID) (*Job, error)
	FetchStatus(ctx context.Context, id uuid.UUID) (Status, error)
	UpdateProgress(ctx context.Context, id uuid.UUID, c Counters, status Status) (*Job, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Job, error)
}
