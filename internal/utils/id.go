package utils

import (
	"github.com/google/uuid"
	"github.com/rs/xid"
)

// GenerateID returns a time-ordered unique id. Sorting ids sorts by creation time.
func GenerateID() string {
	return xid.New().String()
}

// GenerateUUID returns a random v4 UUID.
func GenerateUUID() string {
	return uuid.NewString()
}
