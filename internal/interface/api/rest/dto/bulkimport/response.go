package bulkimport

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	JobID          uuid.UUID `json:"job_id"`
	Status         string    `json:"status"`
	TotalFiles     int       `json:"total_files"`
	UploadedCount  int       `json:"uploaded_count"`
	DuplicateCount int       `json:"duplicate_count"`
	ErrorCount     int       `json:"error_count"`
	SkippedCount   int       `json:"skipped_count"`
	StartedAt      time.Time `json:"started_at"`
}
