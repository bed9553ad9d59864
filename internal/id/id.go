package id

import "github.com/google/uuid"

// GenerateID creates a unique random identifier (UUIDv4, canonical form).
func GenerateID() string {
	return uuid.NewString()
}

// Valid reports whether s looks like an identifier produced by GenerateID.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
