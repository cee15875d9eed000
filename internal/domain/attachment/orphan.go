package attachment

import "time"

// Orphan is a remote file with no corresponding Attachment row, found by
// diffing remote storage against tracked drive file ids.
type Orphan struct {
	RemoteID   string
	Filename   string
	SizeBytes  uint64
	DetectedAt time.Time
}

type Orphans []Orphan
