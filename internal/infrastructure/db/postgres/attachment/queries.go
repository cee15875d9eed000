package attachment

const attachmentColumns = `
		  id, linked_expense_id, linked_income_id, drive_file_id, mime_type, size_bytes,
		  original_filename, checksum, web_view_link, uploaded_by_user_id,
		  record_type, record_date, amount_minor_units, category_id,
		  status, replaced_by_attachment_id, retention_expires_at, created_at`

const (
	InsertAttachment = `
		INSERT INTO attachments (
		  linked_expense_id, linked_income_id, drive_file_id, mime_type, size_bytes,
		  original_filename, checksum, web_view_link, uploaded_by_user_id,
		  record_type, record_date, amount_minor_units, category_id, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING` + attachmentColumns

	SelectAttachmentByID = `
		SELECT` + attachmentColumns + `
		FROM attachments
		WHERE id = $1
	`
	SelectActiveByRecord = `
		SELECT` + attachmentColumns + `
		FROM attachments
		WHERE status = 'ACTIVE'
		  AND record_type = $1
		  AND (linked_expense_id = $2 OR linked_income_id = $2)
		ORDER BY created_at ASC
	`
	CountActiveByRecord = `
		SELECT count(*)
		FROM attachments
		WHERE status = 'ACTIVE'
		  AND record_type = $1
		  AND (linked_expense_id = $2 OR linked_income_id = $2)
	`
	MarkAttachmentRemoved = `
		UPDATE attachments
		SET status = 'REMOVED',
		    replaced_by_attachment_id = $2,
		    retention_expires_at = $3
		WHERE id = $1
		RETURNING` + attachmentColumns

	SelectExpiredAttachments = `
		SELECT` + attachmentColumns + `
		FROM attachments
		WHERE status = 'REMOVED' AND retention_expires_at < $1
		ORDER BY retention_expires_at ASC
	`
	DeleteAttachmentByID = `
		DELETE FROM attachments
		WHERE id = $1
	`
	SelectDriveFileIDsByUser = `
		SELECT drive_file_id
		FROM attachments
		WHERE uploaded_by_user_id = $1
	`
)
