package driveauth

import (
	"context"
	"time"
)

type Repository interface {
	Upsert(ctx context.Context, req *Credential) error
	Fetch(ctx context.Context, userID string) (*Credential, error)
	Touch(ctx context.Context, userID string, validatedAt time.Time) error
	Delete(ctx context.Context, userID string) error
	FetchUserIDs(ctx context.Context) ([]string, error)
}
