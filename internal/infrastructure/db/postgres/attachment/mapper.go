package attachment

import (
	domain "finance-tracker-api/internal/domain/attachment"
	"finance-tracker-api/internal/domain/record"
)

func fromDBModel(model *Attachment) *domain.Attachment {
	var a = &domain.Attachment{
		ID:              model.ID,
		LinkedExpenseID: model.LinkedExpenseID,
		LinkedIncomeID:  model.LinkedIncomeID,

		DriveFileID:      model.DriveFileID,
		MimeType:         model.MimeType,
		SizeBytes:        model.SizeBytes,
		OriginalFilename: model.OriginalFilename,
		Checksum:         model.Checksum,
		WebViewLink:      model.WebViewLink,

		UploadedByUserID: model.UploadedByUserID,

		RecordType:       record.Type(model.RecordType),
		RecordDate:       model.RecordDate,
		AmountMinorUnits: model.AmountMinorUnits,
		CategoryID:       model.CategoryID,

		Status:                 domain.Status(model.Status),
		ReplacedByAttachmentID: model.ReplacedByAttachmentID,
		RetentionExpiresAt:     model.RetentionExpiresAt,

		CreatedAt: model.CreatedAt,
	}

	return a
}

func fromDBModels(models *Attachments) domain.Attachments {
	as := make(domain.Attachments, len(*models))
	for idx, a := range *models {
		as[idx] = fromDBModel(a)
	}

	return as
}
