package attachment

import (
	"time"

	"github.com/google/uuid"
)

type (
	Attachment struct {
		ID                 uuid.UUID  `json:"id"`
		Filename           string     `json:"filename"`
		MimeType           string     `json:"mime_type"`
		SizeBytes          uint64     `json:"size_bytes"`
		Checksum           string     `json:"checksum"`
		WebViewLink        string     `json:"web_view_link"`
		Status             string     `json:"status"`
		CreatedAt          time.Time  `json:"created_at"`
		RetentionExpiresAt *time.Time `json:"retention_expires_at,omitempty"`
	}
	Attachments  []Attachment
	ResponseData struct {
		Data Attachments `json:"data"`
	}

	Orphan struct {
		RemoteID   string    `json:"remote_id"`
		Filename   string    `json:"filename"`
		SizeBytes  uint64    `json:"size_bytes"`
		DetectedAt time.Time `json:"detected_at"`
	}
	OrphansResponse struct {
		Orphans []Orphan `json:"orphans"`
		Count   int      `json:"count"`
	}
)
