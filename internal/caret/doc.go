// Package caret converts between a cursor position inside a rendered tree
// and a linear offset into the text buffer the tree represents.
//
// Locate serializes: given a tree and the live cursor (node, in-node offset)
// it returns the full text and the cursor's linear offset. Resolve restores:
// given a freshly rendered tree and a linear offset it returns the exact
// (node, in-node offset) at which to place the cursor.
//
// Offsets count runes. Every newline between two lines counts as one.
//
// Resolve is left-biased: an offset sitting on the boundary between two text
// nodes resolves to the end of the earlier node. For any tree t and any
// offset o in [0, RuneCount(t.Text())]:
//
//	pos, _ := caret.Resolve(t, o)
//	loc, _ := caret.Locate(t, pos)
//	loc.Offset == o
//
// Neither direction fails hard. A target that is not in the tree or an
// offset past the end yields a usable fallback together with an *Error the
// caller is expected to log.
package caret
