package storage

import (
	"time"

	"github.com/google/uuid"
)

// Clock returns the timestamp stamped on new and updated records.
type Clock func() time.Time

// SystemClock returns UTC now truncated to the microsecond precision postgres keeps.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NewID returns a fresh opaque record identifier.
func NewID() string {
	return uuid.NewString()
}
