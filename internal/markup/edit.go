package markup

import "fmt"

// The methods in this file let a host surface edit a displayed tree the way
// a browser edits the DOM of a contentEditable element. Transforms build
// trees with the Add methods and never need them.

// SetText replaces the content of a text node.
func (t *Tree) SetText(id NodeID, s string) error {
	if !t.Valid(id) {
		return fmt.Errorf("set text %d: %w", id, ErrInvalidNode)
	}
	if t.nodes[id].Kind != KindText {
		return fmt.Errorf("set text %d: %w", id, ErrNotText)
	}
	t.nodes[id].Text = s
	return nil
}

// AppendChild moves child to the end of parent's children, detaching it from
// its current parent first.
func (t *Tree) AppendChild(parent, child NodeID) error {
	if !t.Valid(parent) || !t.Valid(child) || child == RootID {
		return fmt.Errorf("append %d to %d: %w", child, parent, ErrInvalidNode)
	}
	if !t.nodes[parent].Kind.IsContainer() {
		return fmt.Errorf("append %d to %d: %w", child, parent, ErrNotContainer)
	}
	for p := parent; p != NoNode; p = t.nodes[p].Parent {
		if p == child {
			return fmt.Errorf("append %d to %d: %w", child, parent, ErrCycle)
		}
	}
	t.detach(child)
	t.nodes[child].Parent = parent
	t.nodes[parent].Children = append(t.nodes[parent].Children, child)
	return nil
}

// ReplaceChildren detaches every child of parent and attaches children in
// their place, in order. Called with no children it empties parent.
func (t *Tree) ReplaceChildren(parent NodeID, children ...NodeID) error {
	if !t.Valid(parent) {
		return fmt.Errorf("replace children of %d: %w", parent, ErrInvalidNode)
	}
	if !t.nodes[parent].Kind.IsContainer() {
		return fmt.Errorf("replace children of %d: %w", parent, ErrNotContainer)
	}
	for _, c := range t.nodes[parent].Children {
		t.nodes[c].Parent = NoNode
	}
	t.nodes[parent].Children = nil
	for _, c := range children {
		if err := t.AppendChild(parent, c); err != nil {
			return err
		}
	}
	return nil
}

// InsertLineAfter creates an empty line directly after line and returns it.
// NoNode inserts at the top.
func (t *Tree) InsertLineAfter(line NodeID) (NodeID, error) {
	idx := 0
	if line != NoNode {
		i, err := t.lineIndex(line)
		if err != nil {
			return NoNode, fmt.Errorf("insert line after %d: %w", line, err)
		}
		idx = i + 1
	}
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{Kind: KindLine, Parent: RootID})
	lines := t.nodes[RootID].Children
	lines = append(lines, NoNode)
	copy(lines[idx+1:], lines[idx:])
	lines[idx] = id
	t.nodes[RootID].Children = lines
	return id, nil
}

// RemoveLine detaches line from the root. The node stays in the arena.
func (t *Tree) RemoveLine(line NodeID) error {
	if _, err := t.lineIndex(line); err != nil {
		return fmt.Errorf("remove line %d: %w", line, err)
	}
	t.detach(line)
	return nil
}

// LineOf returns the root child containing id, or NoNode when id is the
// root or detached.
func (t *Tree) LineOf(id NodeID) NodeID {
	if !t.Valid(id) || id == RootID {
		return NoNode
	}
	for {
		p := t.nodes[id].Parent
		switch p {
		case NoNode:
			return NoNode
		case RootID:
			return id
		}
		id = p
	}
}

func (t *Tree) lineIndex(line NodeID) (int, error) {
	if !t.Valid(line) {
		return -1, ErrInvalidNode
	}
	if t.nodes[line].Parent != RootID {
		return -1, ErrNotLine
	}
	for i, c := range t.nodes[RootID].Children {
		if c == line {
			return i, nil
		}
	}
	return -1, ErrNotLine
}

func (t *Tree) detach(id NodeID) {
	p := t.nodes[id].Parent
	if p == NoNode {
		return
	}
	kids := t.nodes[p].Children
	for i, c := range kids {
		if c == id {
			t.nodes[p].Children = append(kids[:i:i], kids[i+1:]...)
			break
		}
	}
	t.nodes[id].Parent = NoNode
}
