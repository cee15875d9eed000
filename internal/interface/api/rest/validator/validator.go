package validator

import (
	"errors"
	"regexp"

	"github.com/google/uuid"

	"finance-tracker-api/internal/domain/record"
)

var checksumRe = regexp.MustCompile(`^[0-9a-f]{64}$`)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

func ValidateRecordType(s string) (record.Type, error) {
	return record.ParseType(s)
}

// ValidateChecksum accepts an optional client-supplied SHA-256 hex digest.
// Empty means "compute server-side".
func ValidateChecksum(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if !checksumRe.MatchString(s) {
		return "", errors.New("checksum must be 64 lower-case hex characters")
	}
	return s, nil
}
