package bulkimport

const jobColumns = `
		  id, initiated_by_user_id, total_files, status,
		  uploaded_count, duplicate_count, error_count, skipped_count, started_at`

const (
	InsertJob = `
		INSERT INTO bulk_import_jobs (initiated_by_user_id, total_files, status)
		VALUES ($1, $2, $3)
		RETURNING` + jobColumns

	SelectJobByID = `
		SELECT` + jobColumns + `
		FROM bulk_import_jobs
		WHERE id = $1
	`
	SelectJobStatus = `
		SELECT status
		FROM bulk_import_jobs
		WHERE id = $1
	`
	UpdateJobProgress = `
		UPDATE bulk_import_jobs
		SET uploaded_count = $2,
		    duplicate_count = $3,
		    error_count = $4,
		    skipped_count = $5,
		    status = $6
		WHERE id = $1
		RETURNING` + jobColumns

	UpdateJobStatus = `
		UPDATE bulk_import_jobs
		SET status = $2
		WHERE id = $1
		RETURNING` + jobColumns
)
