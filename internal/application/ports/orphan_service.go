package ports

import (
	"context"

	"finance-tracker-api/internal/domain/attachment"
)

type OrphanService interface {
	// ScanOrphans diffs the user's remote files against tracked drive file
	// ids and returns the remote-but-untracked remainder.
	ScanOrphans(ctx context.Context, userID string) (attachment.Orphans, error)
	// DeleteOrphan removes the remote object directly. Irreversible.
	DeleteOrphan(ctx context.Context, userID, remoteID string) error
	// AdoptOrphan always fails with ErrUnsupported: there is no cross-user
	// adoption path under per-user delegated credentials. Kept for
	// interface stability.
	AdoptOrphan(ctx context.Context, userID, remoteID string) error
}
