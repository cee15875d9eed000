package attachment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"finance-tracker-api/internal/domain/record"
)

type Repository interface {
	Create(ctx context.Context, req *Attachment) (*Attachment, error)
	FetchByID(ctx context.Context, id uuid.UUID) (*Attachment, error)
	FetchActiveByRecord(ctx context.Context, recordType record.Type, recordID uuid.UUID) (Attachments, error)
	CountActiveByRecord(ctx context.Context, recordType record.Type, recordID uuid.UUID) (int, error)
	MarkRemoved(ctx context.Context, id uuid.UUID, replacedBy *uuid.UUID, retentionExpiresAt time.Time) (*Attachment, error)
	FetchExpired(ctx context.Context, now time.Time) (Attachments, error)
	HardDelete(ctx context.Context, id uuid.UUID) error
	FetchDriveFileIDs(ctx context.Context, userID string) ([]string, error)
}
