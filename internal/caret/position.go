package caret

import (
	"fmt"

	"github.com/dshills/richline/internal/markup"
)

// Position is a cursor location inside a rendered tree: a node and an offset
// within it. For text nodes the offset counts runes.
type Position struct {
	Node   markup.NodeID
	Offset int
}

// Start is the fallback position at the start of the surface.
var Start = Position{Node: markup.RootID, Offset: 0}

// String returns a debug representation.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Node, p.Offset)
}

// Location is the result of Locate.
type Location struct {
	// Text is the full buffer the tree represents.
	Text string

	// Offset is the linear offset of the cursor in Text.
	Offset int

	// Found reports whether the cursor node was encountered.
	Found bool
}
