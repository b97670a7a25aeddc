package caret

import (
	"strings"

	"github.com/dshills/richline/internal/markup"
)

// Locate returns the text of t and the linear offset of pos within it.
//
// Lines are scanned in order. The cursor node matches either a line itself
// (offset at the line's start) or a text node inside it; other inline nodes
// only contribute their length. Newlines count toward the offset only until
// the cursor node has been found.
//
// When pos.Node is not found the returned Location is still usable: its
// Offset is the total scanned length plus pos.Offset, and the error wraps
// ErrTargetNotFound.
func Locate(t *markup.Tree, pos Position) (Location, error) {
	var b strings.Builder
	count := 0
	found := pos.Node == markup.RootID

	for i, line := range t.Lines() {
		if i > 0 {
			b.WriteByte('\n')
			if !found {
				count++
			}
		}
		b.WriteString(t.Content(line))
		if found {
			continue
		}

		if line == pos.Node {
			found = true
			continue
		}
		before, ok := searchLine(t, line, pos.Node)
		count += before
		found = ok
	}

	loc := Location{Text: b.String(), Offset: count + pos.Offset, Found: found}
	if !found {
		return loc, &Error{Op: "locate", Tree: t.ID(), Node: pos.Node, Offset: pos.Offset, Err: ErrTargetNotFound}
	}
	return loc, nil
}

// searchLine walks the descendants of line depth-first, left to right, and
// returns the number of runes preceding target. Only text nodes match. When
// target is absent it returns the line's full length and false.
func searchLine(t *markup.Tree, line, target markup.NodeID) (int, bool) {
	count := 0
	var walk func(id markup.NodeID) bool
	walk = func(id markup.NodeID) bool {
		for _, c := range t.Children(id) {
			switch t.Kind(c) {
			case markup.KindText:
				if c == target {
					return true
				}
				count += t.TextLen(c)
			case markup.KindBreak:
			default:
				if walk(c) {
					return true
				}
			}
		}
		return false
	}
	if walk(line) {
		return count, true
	}
	return t.TextLen(line), false
}
