package caret

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/richline/internal/markup"
)

var (
	// ErrTargetNotFound indicates the cursor node is not a text node or line
	// of the tree being scanned.
	ErrTargetNotFound = errors.New("cursor target not found in tree")

	// ErrOffsetOutOfRange indicates an offset outside [0, text length].
	ErrOffsetOutOfRange = errors.New("offset out of range")
)

// Error describes a recovered locate or resolve failure.
type Error struct {
	Op     string
	Tree   uuid.UUID
	Node   markup.NodeID
	Offset int
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op == "resolve" {
		return fmt.Sprintf("caret resolve: tree %s offset %d: %v", e.Tree, e.Offset, e.Err)
	}
	return fmt.Sprintf("caret %s: tree %s node %d offset %d: %v", e.Op, e.Tree, e.Node, e.Offset, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *Error) Unwrap() error {
	return e.Err
}
