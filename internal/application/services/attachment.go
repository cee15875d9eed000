package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"finance-tracker-api/internal/application/apperrors"
	"finance-tracker-api/internal/application/ports"
	domain "finance-tracker-api/internal/domain/attachment"
	"finance-tracker-api/internal/domain/record"
	"finance-tracker-api/internal/infrastructure/checksum"
	"finance-tracker-api/internal/infrastructure/mq"
	attachmentDTO "finance-tracker-api/internal/interface/api/rest/dto/attachment"
)

// AttachmentService owns the attachment lifecycle: it is the only writer
// of attachment rows apart from the purger's terminal hard delete.
type AttachmentService struct {
	storage     ports.StorageProvider
	limits      *LimitChecker
	attachments domain.Repository
	records     record.Lookup
	mq          ports.RabbitMQ
	mCounter    *prometheus.CounterVec
	logger      *zap.Logger
}

func NewAttachmentService(
	storage ports.StorageProvider,
	limits *LimitChecker,
	attachments domain.Repository,
	records record.Lookup,
	rbMQ ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.AttachmentService {
	return &AttachmentService{
		storage:     storage,
		limits:      limits,
		attachments: attachments,
		records:     records,
		mq:          rbMQ,
		mCounter:    mCounter,
		logger:      logger,
	}
}

func (as *AttachmentService) Upload(ctx context.Context, userID string, in ports.UploadInput) (*domain.Attachment, error) {
	if len(in.Data) == 0 {
		return nil, fmt.Errorf("%w: file is required", apperrors.ErrInvalidInput)
	}

	rec, err := as.records.Fetch(ctx, in.RecordType, in.RecordID)
	if err != nil {
		return nil, err
	}
	if err = as.limits.AssertCanAttach(ctx, in.RecordType, in.RecordID); err != nil {
		return nil, err
	}

	out, err := as.createAttachment(ctx, userID, rec, in.RecordType, in)
	if err != nil {
		return nil, err
	}

	as.publish(userID, mq.ActionUploaded, out)
	as.mCounter.WithLabelValues("attachments_uploaded_total").Inc()

	return out, nil
}

// Replace uploads the new file as a fresh attachment on the same record,
// then soft-deletes the old one. The new-then-old write order guarantees a
// crash mid-operation never leaves the record with zero ACTIVE attachments
// while an unlinked replacement exists remotely.
func (as *AttachmentService) Replace(ctx context.Context, userID string, attachmentID uuid.UUID, in ports.ReplaceInput) (*domain.Attachment, error) {
	if len(in.Data) == 0 {
		return nil, fmt.Errorf("%w: file is required", apperrors.ErrInvalidInput)
	}

	old, err := as.attachments.FetchByID(ctx, attachmentID)
	if err != nil {
		return nil, err
	}
	if old.Status != domain.StatusActive {
		return nil, fmt.Errorf("%w: only ACTIVE attachments can be replaced", apperrors.ErrInvalidInput)
	}

	rec, err := as.records.Fetch(ctx, old.RecordType, old.LinkedRecordID())
	if err != nil {
		return nil, err
	}

	// A new remote object, not an in-place overwrite: the superseded row
	// keeps its own drive file until the purger reclaims both.
	newAttachment, err := as.createAttachment(ctx, userID, rec, old.RecordType, ports.UploadInput{
		RecordType: old.RecordType,
		RecordID:   rec.ID,
		Filename:   in.Filename,
		MimeType:   in.MimeType,
		Data:       in.Data,
		Checksum:   in.Checksum,
	})
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().UTC().Add(domain.RetentionWindow)
	if _, err = as.attachments.MarkRemoved(ctx, old.ID, &newAttachment.ID, expiresAt); err != nil {
		return nil, err
	}

	as.publish(userID, mq.ActionReplaced, newAttachment)
	as.mCounter.WithLabelValues("attachments_replaced_total").Inc()

	return newAttachment, nil
}

// Remove soft-deletes: remote storage is untouched until the retention
// window passes and the purger reclaims the file.
func (as *AttachmentService) Remove(ctx context.Context, userID string, attachmentID uuid.UUID) (*domain.Attachment, error) {
	a, err := as.attachments.FetchByID(ctx, attachmentID)
	if err != nil {
		return nil, err
	}
	if a.Status == domain.StatusRemoved {
		return nil, fmt.Errorf("%w: attachment already removed", apperrors.ErrInvalidInput)
	}

	expiresAt := time.Now().UTC().Add(domain.RetentionWindow)
	out, err := as.attachments.MarkRemoved(ctx, a.ID, nil, expiresAt)
	if err != nil {
		return nil, err
	}

	as.publish(userID, mq.ActionRemoved, out)
	as.mCounter.WithLabelValues("attachments_removed_total").Inc()

	return out, nil
}

func (as *AttachmentService) List(ctx context.Context, recordType record.Type, recordID uuid.UUID) (domain.Attachments, error) {
	return as.attachments.FetchActiveByRecord(ctx, recordType, recordID)
}

func (as *AttachmentService) createAttachment(
	ctx context.Context,
	userID string,
	rec *record.Record,
	recordType record.Type,
	in ports.UploadInput,
) (*domain.Attachment, error) {
	sum := in.Checksum
	if sum == "" {
		sum = checksum.Sum(in.Data)
	}

	if _, err := as.storage.EnsureUserRoot(ctx, userID); err != nil {
		return nil, err
	}

	filename := sanitizeFileName(in.Filename)
	remote, err := as.storage.Upload(ctx, userID, in.Data, filename, in.MimeType)
	if err != nil {
		return nil, err
	}

	mimeType := remote.MimeType
	if mimeType == "" {
		mimeType = in.MimeType
	}
	sizeBytes := remote.SizeBytes
	if sizeBytes == 0 {
		sizeBytes = uint64(len(in.Data))
	}

	a := &domain.Attachment{
		DriveFileID:      remote.RemoteID,
		MimeType:         mimeType,
		SizeBytes:        sizeBytes,
		OriginalFilename: filename,
		Checksum:         sum,
		WebViewLink:      remote.WebViewLink,

		UploadedByUserID: userID,

		RecordType:       recordType,
		RecordDate:       rec.Date,
		AmountMinorUnits: rec.AmountMinorUnits,
		CategoryID:       rec.CategoryID,

		Status: domain.StatusActive,
	}
	switch recordType {
	case record.TypeExpense:
		a.LinkedExpenseID = &rec.ID
	case record.TypeIncome:
		a.LinkedIncomeID = &rec.ID
	}

	return as.attachments.Create(ctx, a)
}

func (as *AttachmentService) publish(userID, action string, a *domain.Attachment) {
	as.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  action,
		UserID:  userID,
		Payload: attachmentDTO.ToResponseAttachment(*a),
	}
}
