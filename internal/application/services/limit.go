package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"finance-tracker-api/internal/application/apperrors"
	"finance-tracker-api/internal/domain/attachment"
	"finance-tracker-api/internal/domain/record"
)

// LimitChecker enforces the per-record attachment quota. The check is
// read-then-decide: it is not atomic with the subsequent insert, so a
// concurrent pair of uploads can land one attachment over the limit.
type LimitChecker struct {
	attachments  attachment.Repository
	maxPerRecord int
}

func NewLimitChecker(attachments attachment.Repository, maxPerRecord int) *LimitChecker {
	return &LimitChecker{
		attachments:  attachments,
		maxPerRecord: maxPerRecord,
	}
}

func (lc *LimitChecker) AssertCanAttach(ctx context.Context, recordType record.Type, recordID uuid.UUID) error {
	n, err := lc.attachments.CountActiveByRecord(ctx, recordType, recordID)
	if err != nil {
		return err
	}
	if n >= lc.maxPerRecord {
		return fmt.Errorf("%w: record already has %d of %d attachments",
			apperrors.ErrQuotaExceeded, n, lc.maxPerRecord)
	}

	return nil
}
