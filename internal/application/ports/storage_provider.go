package ports

import "context"

// StorageFile is the provider-neutral shape of a stored remote object.
type StorageFile struct {
	RemoteID    string
	Filename    string
	MimeType    string
	SizeBytes   uint64
	WebViewLink string
}

// StorageProvider abstracts the user-delegated remote object store.
// Every call authenticates as the given user; there is no service-account
// credential.
type StorageProvider interface {
	// EnsureUserRoot resolves (creating if absent) the per-user application
	// root container and returns its remote id.
	EnsureUserRoot(ctx context.Context, userID string) (string, error)
	Upload(ctx context.Context, userID string, data []byte, filename, mimeType string) (*StorageFile, error)
	Replace(ctx context.Context, userID, oldRemoteID string, data []byte, filename, mimeType string) (*StorageFile, error)
	Delete(ctx context.Context, userID, remoteID string) error
	ListUserFiles(ctx context.Context, userID string) ([]StorageFile, error)
	// ListAllFiles is a documented capability gap under per-user delegated
	// credentials: implementations return an empty list, never enumerate.
	ListAllFiles(ctx context.Context) ([]StorageFile, error)
}
