package ports

import (
	"context"

	"github.com/google/uuid"

	"finance-tracker-api/internal/domain/attachment"
	"finance-tracker-api/internal/domain/record"
)

type (
	// UploadInput carries one file destined for a financial record.
	// Checksum is optional; it is computed from Data when empty.
	UploadInput struct {
		RecordType record.Type
		RecordID   uuid.UUID
		Filename   string
		MimeType   string
		Data       []byte
		Checksum   string
	}

	ReplaceInput struct {
		Filename string
		MimeType string
		Data     []byte
		Checksum string
	}
)

type AttachmentService interface {
	Upload(ctx context.Context, userID string, in UploadInput) (*attachment.Attachment, error)
	Replace(ctx context.Context, userID string, attachmentID uuid.UUID, in ReplaceInput) (*attachment.Attachment, error)
	Remove(ctx context.Context, userID string, attachmentID uuid.UUID) (*attachment.Attachment, error)
	List(ctx context.Context, recordType record.Type, recordID uuid.UUID) (attachment.Attachments, error)
}
