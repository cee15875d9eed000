package attachment

import (
	"time"

	"github.com/google/uuid"

	"finance-tracker-api/internal/domain/record"
)

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusRemoved Status = "REMOVED"
)

// RetentionWindow is the grace period between soft delete and physical purge.
const RetentionWindow = 90 * 24 * time.Hour

type (
	// Attachment is the metadata row for one uploaded receipt file.
	// Exactly one of LinkedExpenseID / LinkedIncomeID is set. RecordType,
	// RecordDate, AmountMinorUnits and CategoryID are denormalized from the
	// owning record so reports never join.
	Attachment struct {
		ID              uuid.UUID
		LinkedExpenseID *uuid.UUID
		LinkedIncomeID  *uuid.UUID

		DriveFileID      string
		MimeType         string
		SizeBytes        uint64
		OriginalFilename string
		Checksum         string
		WebViewLink      string

		UploadedByUserID string

		RecordType       record.Type
		RecordDate       time.Time
		AmountMinorUnits int64
		CategoryID       uuid.UUID

		Status                 Status
		ReplacedByAttachmentID *uuid.UUID
		RetentionExpiresAt     *time.Time

		CreatedAt time.Time
	}
	Attachments []*Attachment
)

// LinkedRecordID returns the id of the owning financial record.
func (a *Attachment) LinkedRecordID() uuid.UUID {
	if a.LinkedExpenseID != nil {
		return *a.LinkedExpenseID
	}
	if a.LinkedIncomeID != nil {
		return *a.LinkedIncomeID
	}
	return uuid.Nil
}
