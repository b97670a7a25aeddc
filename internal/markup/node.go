package markup

import "fmt"

// NodeID addresses a node inside a Tree's arena.
type NodeID int

const (
	// RootID is the surface root of every tree.
	RootID NodeID = 0

	// NoNode is the parent of the root and of detached nodes.
	NoNode NodeID = -1
)

// Kind identifies the variant of a node.
type Kind uint8

// Node kinds.
const (
	KindRoot Kind = iota
	KindLine
	KindSpan
	KindText
	KindBreak
)

// String returns the kind's lower-case name.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindLine:
		return "line"
	case KindSpan:
		return "span"
	case KindText:
		return "text"
	case KindBreak:
		return "break"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind converts a name produced by Kind.String back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "root":
		return KindRoot, nil
	case "line":
		return KindLine, nil
	case "span":
		return KindSpan, nil
	case "text":
		return KindText, nil
	case "break":
		return KindBreak, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// IsContainer reports whether nodes of this kind may have children.
func (k Kind) IsContainer() bool {
	return k == KindRoot || k == KindLine || k == KindSpan
}

// Node is a single element of the rendered tree.
type Node struct {
	Kind Kind

	// Class is the style class of a span or line. Empty means unstyled.
	Class string

	// Text is the content of a text node.
	Text string

	Parent   NodeID
	Children []NodeID
}
