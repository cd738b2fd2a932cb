package core

import (
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// Short returns the last 12 characters, enough to tell runs apart in file names
func (id ID) Short() string {
	s := strings.ReplaceAll(string(id), "-", "")
	if len(s) <= 12 {
		return s
	}
	return s[len(s)-12:]
}

// RunID identifies one comparison run
type RunID ID

// NewRunID creates a run identifier
func NewRunID() RunID { return RunID(NewID()) }

func (id RunID) String() string { return ID(id).String() }
