package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a fresh opaque identifier for notes and users.
func GenerateID() string {
	return uuid.New().String()
}

// IsValidID reports whether an identifier from a request path is
// well-formed. Malformed identifiers are a 400, not a 404.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
