package bulkimport

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"finance-tracker-api/internal/application/apperrors"
	domain "finance-tracker-api/internal/domain/bulkimport"
	"finance-tracker-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) scanOne(row pgx.Row) (*domain.Job, error) {
	j := new(Job)

	err := row.Scan(
		&j.ID,
		&j.InitiatedByUserID,
		&j.TotalFiles,
		&j.Status,

		&j.UploadedCount,
		&j.DuplicateCount,
		&j.ErrorCount,
		&j.SkippedCount,

		&j.StartedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: bulk import job", apperrors.ErrNotFound)
		}
		return nil, err
	}

	return fromDBModel(j), nil
}

func (r *Repository) Create(ctx context.Context, req *domain.Job) (*domain.Job, error) {
	row := r.db.QueryRow(
		ctx,
		InsertJob,
		req.InitiatedByUserID, req.TotalFiles, string(req.Status),
	)

	return r.scanOne(row)
}

func (r *Repository) FetchByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return r.scanOne(r.db.QueryRow(ctx, SelectJobByID, id))
}

func (r *Repository) FetchStatus(ctx context.Context, id uuid.UUID) (domain.Status, error) {
	var s string
	if err := r.db.QueryRow(ctx, SelectJobStatus, id).Scan(&s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: bulk import job", apperrors.ErrNotFound)
		}
		return "", err
	}

	return domain.Status(s), nil
}

func (r *Repository) UpdateProgress(ctx context.Context, id uuid.UUID, c domain.Counters, status domain.Status) (*domain.Job, error) {
	row := r.db.QueryRow(
		ctx,
		UpdateJobProgress,
		id, c.Uploaded, c.Duplicate, c.Error, c.Skipped, string(status),
	)

	return r.scanOne(row)
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (*domain.Job, error) {
	return r.scanOne(r.db.QueryRow(ctx, UpdateJobStatus, id, string(status)))
}

func fromDBModel(model *Job) *domain.Job {
	return &domain.Job{
		ID:                model.ID,
		InitiatedByUserID: model.InitiatedByUserID,
		TotalFiles:        model.TotalFiles,
		Status:            domain.Status(model.Status),

		UploadedCount:  model.UploadedCount,
		DuplicateCount: model.DuplicateCount,
		ErrorCount:     model.ErrorCount,
		SkippedCount:   model.SkippedCount,

		StartedAt: model.StartedAt,
	}
}
