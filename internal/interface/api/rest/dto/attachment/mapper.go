package attachment

import (
	domain "finance-tracker-api/internal/domain/attachment"
)

func ToResponseAttachment(aDomain domain.Attachment) Attachment {
	var a = Attachment{
		ID:                 aDomain.ID,
		Filename:           aDomain.OriginalFilename,
		MimeType:           aDomain.MimeType,
		SizeBytes:          aDomain.SizeBytes,
		Checksum:           aDomain.Checksum,
		WebViewLink:        aDomain.WebViewLink,
		Status:             string(aDomain.Status),
		CreatedAt:          aDomain.CreatedAt,
		RetentionExpiresAt: aDomain.RetentionExpiresAt,
	}

	return a
}

func ToResponseAttachments(aDomain domain.Attachments) Attachments {
	as := make(Attachments, len(aDomain))
	for idx, a := range aDomain {
		as[idx] = ToResponseAttachment(*a)
	}

	return as
}

func ToResponseOrphans(oDomain domain.Orphans) OrphansResponse {
	orphans := make([]Orphan, len(oDomain))
	for idx, o := range oDomain {
		orphans[idx] = Orphan{
			RemoteID:   o.RemoteID,
			Filename:   o.Filename,
			SizeBytes:  o.SizeBytes,
			DetectedAt: o.DetectedAt,
		}
	}

	return OrphansResponse{
		Orphans: orphans,
		Count:   len(orphans),
	}
}
