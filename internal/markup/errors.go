package markup

import "errors"

var (
	// ErrInvalidNode indicates a NodeID that does not address a node.
	ErrInvalidNode = errors.New("invalid node")

	// ErrNotContainer indicates a child operation on a leaf node.
	ErrNotContainer = errors.New("node cannot have children")

	// ErrNotText indicates a text operation on a non-text node.
	ErrNotText = errors.New("node is not a text node")

	// ErrNotLine indicates a line operation on a node that is not a line.
	ErrNotLine = errors.New("node is not a line")

	// ErrCycle indicates an attempt to make a node its own descendant.
	ErrCycle = errors.New("node would become its own ancestor")

	// ErrUnknownKind indicates an unrecognized node kind name.
	ErrUnknownKind = errors.New("unknown node kind")

	// ErrInvalidJSON indicates malformed serialized tree data.
	ErrInvalidJSON = errors.New("invalid tree json")
)
