package attachment

import (
	"time"

	"github.com/google/uuid"
)

type (
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

		RecordType       string
		RecordDate       time.Time
		AmountMinorUnits int64
		CategoryID       uuid.UUID

		Status                 string
		ReplacedByAttachmentID *uuid.UUID
		RetentionExpiresAt     *time.Time

		CreatedAt time.Time
	}
	Attachments []*Attachment
)
