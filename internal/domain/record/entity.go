// Package record models the financial records (expenses, incomes) that
// attachments link to. Record CRUD is owned elsewhere; this package only
// carries the read-side shape the attachment core consumes.
package record

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"finance-tracker-api/internal/application/apperrors"
)

type Type string

const (
	TypeExpense Type = "expense"
	TypeIncome  Type = "income"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeExpense:
		return TypeExpense, nil
	case TypeIncome:
		return TypeIncome, nil
	}
	return "", fmt.Errorf("%w: record type must be expense or income", apperrors.ErrInvalidInput)
}

type Record struct {
	ID               uuid.UUID
	UserID           string
	Date             time.Time
	AmountMinorUnits int64
	CategoryID       uuid.UUID
}
