package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	WorkspaceID ID
	UserID      ID
	BoardID     ID
	ColumnID    ID
	GroupID     ID
	ItemID      ID
)

// String conversions for domain IDs
func (id WorkspaceID) String() string { return ID(id).String() }
func (id UserID) String() string      { return ID(id).String() }
func (id BoardID) String() string     { return ID(id).String() }
func (id ColumnID) String() string    { return ID(id).String() }
func (id GroupID) String() string     { return ID(id).String() }
func (id ItemID) String() string      { return ID(id).String() }

// DefaultUserID is the actor stamped on imports when the caller supplies none (single-user mode).
const DefaultUserID UserID = "550e8400-e29b-41d4-a716-446655440000"

// ParseWorkspaceID parses a string into WorkspaceID
func ParseWorkspaceID(s string) (WorkspaceID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("workspace ID cannot be empty")
	}
	return WorkspaceID(strings.TrimSpace(s)), nil
}

// ParseBoardID parses a string into BoardID. Boards are keyed by UUID.
func ParseBoardID(s string) (BoardID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("board ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("board ID %q is not a UUID: %w", s, err)
	}
	return BoardID(s), nil
}

// ParseUserID parses a string into UserID, falling back to the default user for blank input
func ParseUserID(s string) UserID {
	if strings.TrimSpace(s) == "" {
		return DefaultUserID
	}
	return UserID(strings.TrimSpace(s))
}
