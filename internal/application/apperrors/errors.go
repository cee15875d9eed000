// Package apperrors defines the error taxonomy shared by services and the
// REST layer. Controllers map these sentinels to HTTP status codes with
// errors.Is; services wrap them with context via fmt.Errorf("%w: ...").
package apperrors

import "errors"

var (
	// ErrInvalidInput - missing file, malformed request, non-ACTIVE replace
	// target, already-removed remove target. Client error, never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound - missing attachment, financial record or bulk job.
	ErrNotFound = errors.New("not found")

	// ErrQuotaExceeded - per-record attachment limit reached.
	ErrQuotaExceeded = errors.New("attachment quota exceeded")

	// ErrNotConnected - no stored delegated-storage credential for the user;
	// the caller should prompt re-authorization.
	ErrNotConnected = errors.New("drive not connected")

	// ErrUnsupported - operation has no implementation under the per-user
	// delegated-credential model.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrUpstream - remote storage or OAuth provider failure.
	ErrUpstream = errors.New("upstream provider error")
)
