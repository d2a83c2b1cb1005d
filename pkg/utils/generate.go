package utils

import (
	"github.com/google/uuid"
)

// GenerateSessionToken returns the opaque server-side session id.
func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}
