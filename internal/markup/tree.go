package markup

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Tree is a rendered snapshot of a text buffer.
type Tree struct {
	id    uuid.UUID
	nodes []Node
}

// New creates a tree holding only the root.
func New() *Tree {
	return newWithID(uuid.New())
}

func newWithID(id uuid.UUID) *Tree {
	return &Tree{
		id:    id,
		nodes: []Node{{Kind: KindRoot, Parent: NoNode}},
	}
}

// ID returns the snapshot identifier.
func (t *Tree) ID() uuid.UUID {
	return t.id
}

// Len returns the number of nodes in the arena, detached nodes included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Valid reports whether id addresses a node of this tree.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns a copy of the node with the given id.
func (t *Tree) Node(id NodeID) (Node, bool) {
	if !t.Valid(id) {
		return Node{}, false
	}
	n := t.nodes[id]
	n.Children = append([]NodeID(nil), n.Children...)
	return n, true
}

// Kind returns the kind of a node. Invalid ids report KindRoot's zero value
// and should be screened with Valid.
func (t *Tree) Kind(id NodeID) Kind {
	if !t.Valid(id) {
		return 0
	}
	return t.nodes[id].Kind
}

// Class returns the style class of a node.
func (t *Tree) Class(id NodeID) string {
	if !t.Valid(id) {
		return ""
	}
	return t.nodes[id].Class
}

// Parent returns the parent of a node, or NoNode.
func (t *Tree) Parent(id NodeID) NodeID {
	if !t.Valid(id) {
		return NoNode
	}
	return t.nodes[id].Parent
}

// Children returns the ordered children of a node. The slice must not be
// modified.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.Valid(id) {
		return nil
	}
	return t.nodes[id].Children
}

// Lines returns the root's children in order. Every child of the root is a
// line; a bare text node or placeholder directly under the root counts as a
// line of its own.
func (t *Tree) Lines() []NodeID {
	return t.nodes[RootID].Children
}

// TextLen returns the number of runes in all text descendants of id.
func (t *Tree) TextLen(id NodeID) int {
	if !t.Valid(id) {
		return 0
	}
	n := &t.nodes[id]
	switch n.Kind {
	case KindText:
		return utf8.RuneCountInString(n.Text)
	case KindBreak:
		return 0
	}
	total := 0
	for _, c := range n.Children {
		total += t.TextLen(c)
	}
	return total
}

// Content returns the concatenated text of all text descendants of id.
func (t *Tree) Content(id NodeID) string {
	var b strings.Builder
	t.writeContent(&b, id)
	return b.String()
}

func (t *Tree) writeContent(b *strings.Builder, id NodeID) {
	if !t.Valid(id) {
		return
	}
	n := &t.nodes[id]
	if n.Kind == KindText {
		b.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		t.writeContent(b, c)
	}
}

// Text returns the buffer this tree represents: each line's content joined
// with newlines.
func (t *Tree) Text() string {
	var b strings.Builder
	for i, line := range t.Lines() {
		if i > 0 {
			b.WriteByte('\n')
		}
		t.writeContent(&b, line)
	}
	return b.String()
}

// Walk visits id and its descendants depth-first, left to right. Returning
// false from fn prunes the subtree below the visited node.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, n *Node) bool) {
	if !t.Valid(id) {
		return
	}
	n := &t.nodes[id]
	if !fn(id, n) {
		return
	}
	for _, c := range n.Children {
		t.Walk(c, fn)
	}
}

// AddLine appends an unstyled line to the root.
func (t *Tree) AddLine() NodeID {
	return t.add(RootID, Node{Kind: KindLine})
}

// AddClassedLine appends a line carrying a style class to the root.
func (t *Tree) AddClassedLine(class string) NodeID {
	return t.add(RootID, Node{Kind: KindLine, Class: class})
}

// AddSpan appends a styled span to parent.
func (t *Tree) AddSpan(parent NodeID, class string) NodeID {
	return t.add(parent, Node{Kind: KindSpan, Class: class})
}

// AddText appends a text node to parent.
func (t *Tree) AddText(parent NodeID, s string) NodeID {
	return t.add(parent, Node{Kind: KindText, Text: s})
}

// AddBreak appends a blank-line placeholder to parent.
func (t *Tree) AddBreak(parent NodeID) NodeID {
	return t.add(parent, Node{Kind: KindBreak})
}

// add creates a node under parent. A parent that is not a valid container
// leaves the new node detached.
func (t *Tree) add(parent NodeID, n Node) NodeID {
	id := NodeID(len(t.nodes))
	n.Parent = NoNode
	if t.Valid(parent) && t.nodes[parent].Kind.IsContainer() {
		n.Parent = parent
		t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	}
	t.nodes = append(t.nodes, n)
	return id
}

// Clone returns a deep copy of the tree under a new snapshot id. Node ids
// are preserved.
func (t *Tree) Clone() *Tree {
	c := newWithID(uuid.New())
	c.nodes = make([]Node, len(t.nodes))
	for i, n := range t.nodes {
		n.Children = append([]NodeID(nil), n.Children...)
		c.nodes[i] = n
	}
	return c
}

// PlainText builds the default rendering of text: one line per newline
// separated segment, one text node per non-empty line and a placeholder for
// each empty line.
func PlainText(text string) *Tree {
	t := New()
	for _, s := range strings.Split(text, "\n") {
		line := t.AddLine()
		if s == "" {
			t.AddBreak(line)
			continue
		}
		t.AddText(line, s)
	}
	return t
}
