package bulkimport

import (
	"time"

	"github.com/google/uuid"

	"finance-tracker-api/internal/domain/record"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

// Terminal reports whether no further transitions exist for the status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

type (
	// Job tracks one asynchronous batch upload. Counters lag true progress
	// by up to one batch: they are persisted at batch boundaries only.
	Job struct {
		ID                uuid.UUID
		InitiatedByUserID string
		TotalFiles        int
		Status            Status

		UploadedCount  int
		DuplicateCount int
		ErrorCount     int
		SkippedCount   int

		StartedAt time.Time
	}

	// Counters is the running per-job accounting mutated during processing.
	Counters struct {
		Uploaded  int
		Duplicate int
		Error     int
		Skipped   int
	}

	// File is one ingestion candidate. RecordID is optional: files without
	// a target record are counted as skipped.
	File struct {
		Filename   string
		MimeType   string
		Data       []byte
		RecordType record.Type
		RecordID   *uuid.UUID
	}
)
