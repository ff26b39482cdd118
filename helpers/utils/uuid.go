package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

// GenerateUUID returns a random v4 UUID, used for job IDs and grammar
// revisions.
func GenerateUUID() string {
	return uuid.NewString()
}

// GenerateShortID returns an 8-character hex ID.
func GenerateShortID() string {
	b := make([]byte, 4)
	rand.Read(b)
	return fmt.Sprintf("%x", b)
}
