package bulkimport

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID                uuid.UUID
	InitiatedByUserID string
	TotalFiles        int
	Status            string

	UploadedCount  int
	DuplicateCount int
	ErrorCount     int
	SkippedCount   int

	StartedAt time.Time
}
