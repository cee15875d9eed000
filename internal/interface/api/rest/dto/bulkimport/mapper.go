package bulkimport

import (
	domain "finance-tracker-api/internal/domain/bulkimport"
)

func ToResponseJob(jDomain domain.Job) Job {
	return Job{
		JobID:          jDomain.ID,
		Status:         string(jDomain.Status),
		TotalFiles:     jDomain.TotalFiles,
		UploadedCount:  jDomain.UploadedCount,
		DuplicateCount: jDomain.DuplicateCount,
		ErrorCount:     jDomain.ErrorCount,
		SkippedCount:   jDomain.SkippedCount,
		StartedAt:      jDomain.StartedAt,
	}
}
