package attachment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"finance-tracker-api/internal/application/apperrors"
	domain "finance-tracker-api/internal/domain/attachment"
	"finance-tracker-api/internal/domain/record"
	"finance-tracker-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) scanOne(row pgx.Row) (*domain.Attachment, error) {
	a := new(Attachment)

	err := row.Scan(
		&a.ID,
		&a.LinkedExpenseID,
		&a.LinkedIncomeID,

		&a.DriveFileID,
		&a.MimeType,
		&a.SizeBytes,
		&a.OriginalFilename,
		&a.Checksum,
		&a.WebViewLink,

		&a.UploadedByUserID,

		&a.RecordType,
		&a.RecordDate,
		&a.AmountMinorUnits,
		&a.CategoryID,

		&a.Status,
		&a.ReplacedByAttachmentID,
		&a.RetentionExpiresAt,

		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: attachment", apperrors.ErrNotFound)
		}
		return nil, err
	}

	return fromDBModel(a), nil
}

func (r *Repository) scanMany(rows pgx.Rows) (domain.Attachments, error) {
	defer rows.Close()

	var as Attachments
	for rows.Next() {
		a := new(Attachment)

		if err := rows.Scan(
			&a.ID,
			&a.LinkedExpenseID,
			&a.LinkedIncomeID,

			&a.DriveFileID,
			&a.MimeType,
			&a.SizeBytes,
			&a.OriginalFilename,
			&a.Checksum,
			&a.WebViewLink,

			&a.UploadedByUserID,

			&a.RecordType,
			&a.RecordDate,
			&a.AmountMinorUnits,
			&a.CategoryID,

			&a.Status,
			&a.ReplacedByAttachmentID,
			&a.RetentionExpiresAt,

			&a.CreatedAt,
		); err != nil {
			return nil, err
		}

		as = append(as, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&as), nil
}

func (r *Repository) Create(ctx context.Context, req *domain.Attachment) (*domain.Attachment, error) {
	row := r.db.QueryRow(
		ctx,
		InsertAttachment,
		req.LinkedExpenseID, req.LinkedIncomeID, req.DriveFileID, req.MimeType, req.SizeBytes,
		req.OriginalFilename, req.Checksum, req.WebViewLink, req.UploadedByUserID,
		string(req.RecordType), req.RecordDate, req.AmountMinorUnits, req.CategoryID,
		string(req.Status),
	)

	return r.scanOne(row)
}

func (r *Repository) FetchByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	return r.scanOne(r.db.QueryRow(ctx, SelectAttachmentByID, id))
}

func (r *Repository) FetchActiveByRecord(ctx context.Context, recordType record.Type, recordID uuid.UUID) (domain.Attachments, error) {
	rows, err := r.db.Query(ctx, SelectActiveByRecord, string(recordType), recordID)
	if err != nil {
		return nil, err
	}

	return r.scanMany(rows)
}

func (r *Repository) CountActiveByRecord(ctx context.Context, recordType record.Type, recordID uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, CountActiveByRecord, string(recordType), recordID).Scan(&n); err != nil {
		return 0, err
	}

	return n, nil
}

func (r *Repository) MarkRemoved(ctx context.Context, id uuid.UUID, replacedBy *uuid.UUID, retentionExpiresAt time.Time) (*domain.Attachment, error) {
	row := r.db.QueryRow(ctx, MarkAttachmentRemoved, id, replacedBy, retentionExpiresAt)

	return r.scanOne(row)
}

func (r *Repository) FetchExpired(ctx context.Context, now time.Time) (domain.Attachments, error) {
	rows, err := r.db.Query(ctx, SelectExpiredAttachments, now)
	if err != nil {
		return nil, err
	}

	return r.scanMany(rows)
}

func (r *Repository) HardDelete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, DeleteAttachmentByID, id)
	return err
}

func (r *Repository) FetchDriveFileIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx, SelectDriveFileIDsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
