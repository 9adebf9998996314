package util

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string.
// ulid.Make uses a process-wide monotonic entropy source and is safe for concurrent use.
func NewULID() string {
	return ulid.Make().String()
}

// IsValidULID reports whether s parses as a ULID.
func IsValidULID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}

// NewSubmissionID returns a random UUID string for a submission record.
func NewSubmissionID() string {
	return uuid.NewString()
}
