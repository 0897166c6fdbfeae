package state

import (
	"github.com/google/uuid"
)

var hostID = uuid.NewString()

// HostID identifies this process for the lifetime of the run.
func HostID() string { return hostID }

// NewSessionID returns a fresh random session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// ValidID reports whether id parses as a session identifier.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
