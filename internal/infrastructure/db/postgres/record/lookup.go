// Package record is the read-side adapter for the expense/income tables
// owned by the (separately built) CRUD layer.
package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"finance-tracker-api/internal/application/apperrors"
	domain "finance-tracker-api/internal/domain/record"
	"finance-tracker-api/internal/infrastructure/db/postgres"
)

type Lookup struct {
	db postgres.DB
}

func NewLookup(db postgres.DB) domain.Lookup {
	return &Lookup{db: db}
}

func (l *Lookup) Fetch(ctx context.Context, recordType domain.Type, id uuid.UUID) (*domain.Record, error) {
	var query string
	switch recordType {
	case domain.TypeExpense:
		query = SelectExpense
	case domain.TypeIncome:
		query = SelectIncome
	default:
		return nil, fmt.Errorf("%w: unknown record type %q", apperrors.ErrInvalidInput, recordType)
	}

	rec := new(domain.Record)
	err := l.db.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Date,
		&rec.AmountMinorUnits,
		&rec.CategoryID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s record", apperrors.ErrNotFound, recordType)
		}
		return nil, err
	}

	return rec, nil
}
