package markup

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// EncodeJSON serializes the reachable part of the tree:
//
//	{"id":"...","lines":[{"kind":"line","children":[{"kind":"text","text":"a"}]}]}
//
// Empty classes and empty child lists are omitted. Each node is encoded
// once into its own fragment and spliced into its parent.
func EncodeJSON(t *Tree) ([]byte, error) {
	data, err := sjson.SetBytes([]byte(`{}`), "id", t.id.String())
	if err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	lines, err := encodeList(t, t.Lines())
	if err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	data, err = sjson.SetRawBytes(data, "lines", lines)
	if err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	return data, nil
}

// encodeList returns the JSON array of the encoded nodes.
func encodeList(t *Tree, ids []NodeID) ([]byte, error) {
	out := []byte{'['}
	for i, id := range ids {
		if i > 0 {
			out = append(out, ',')
		}
		frag, err := encodeNode(t, id)
		if err != nil {
			return nil, err
		}
		out = append(out, frag...)
	}
	return append(out, ']'), nil
}

func encodeNode(t *Tree, id NodeID) ([]byte, error) {
	n := &t.nodes[id]
	data, err := sjson.SetBytes([]byte(`{}`), "kind", n.Kind.String())
	if err != nil {
		return nil, err
	}
	if n.Class != "" {
		if data, err = sjson.SetBytes(data, "class", n.Class); err != nil {
			return nil, err
		}
	}
	if n.Kind == KindText {
		if data, err = sjson.SetBytes(data, "text", n.Text); err != nil {
			return nil, err
		}
	}
	if len(n.Children) == 0 {
		return data, nil
	}
	children, err := encodeList(t, n.Children)
	if err != nil {
		return nil, err
	}
	return sjson.SetRawBytes(data, "children", children)
}

// DecodeJSON rebuilds a tree from EncodeJSON output. Nodes receive fresh ids
// in document order; the snapshot id is kept when present.
func DecodeJSON(data []byte) (*Tree, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidJSON)
	}

	id := uuid.New()
	if v := doc.Get("id"); v.Exists() {
		parsed, err := uuid.Parse(v.String())
		if err != nil {
			return nil, fmt.Errorf("%w: id: %v", ErrInvalidJSON, err)
		}
		id = parsed
	}
	t := newWithID(id)

	lines := doc.Get("lines")
	if lines.Exists() && !lines.IsArray() {
		return nil, fmt.Errorf("%w: lines is not an array", ErrInvalidJSON)
	}
	var decodeErr error
	lines.ForEach(func(_, v gjson.Result) bool {
		decodeErr = decodeNode(t, RootID, v)
		return decodeErr == nil
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return t, nil
}

func decodeNode(t *Tree, parent NodeID, v gjson.Result) error {
	if !v.IsObject() {
		return fmt.Errorf("%w: node is not an object", ErrInvalidJSON)
	}
	kind, err := ParseKind(v.Get("kind").String())
	if err != nil {
		return err
	}
	if kind == KindRoot {
		return fmt.Errorf("%w: nested root", ErrInvalidJSON)
	}
	id := t.add(parent, Node{
		Kind:  kind,
		Class: v.Get("class").String(),
		Text:  v.Get("text").String(),
	})
	children := v.Get("children")
	if !children.Exists() {
		return nil
	}
	if !kind.IsContainer() {
		return fmt.Errorf("%w: %s node has children", ErrInvalidJSON, kind)
	}
	var childErr error
	children.ForEach(func(_, c gjson.Result) bool {
		childErr = decodeNode(t, id, c)
		return childErr == nil
	})
	return childErr
}
