package record

import (
	"context"

	"github.com/google/uuid"
)

type Lookup interface {
	Fetch(ctx context.Context, recordType Type, id uuid.UUID) (*Record, error)
}
