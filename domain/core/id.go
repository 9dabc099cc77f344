package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SessionID identifies one dashboard session
type SessionID string

// NewSessionID creates a time-ordered session identifier using UUID v7
func NewSessionID() SessionID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return SessionID(id.String())
}

// String returns the string representation
func (id SessionID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id SessionID) IsEmpty() bool {
	return id == ""
}

// ParseSessionID validates a client-supplied session identifier
func ParseSessionID(s string) (SessionID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("session ID cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid session ID: %w", err)
	}
	return SessionID(parsed.String()), nil
}
