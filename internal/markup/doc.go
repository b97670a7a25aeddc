// Package markup provides the rendered tree that a transform produces from
// a plain-text buffer and that a host surface displays.
//
// A Tree is an arena of nodes addressed by NodeID. The root is always
// RootID. Every child of the root is a line; lines contain inline nodes:
//
//   - Span: a styled container carrying a class name
//   - Text: a run of text, the only node kind that carries text
//   - Break: a zero-length placeholder used for blank lines
//
// Lengths and offsets are measured in runes. The content of the tree is the
// concatenation of every line's text with a single newline between
// consecutive lines, never after the last.
//
// Basic usage:
//
//	t := markup.New()
//	line := t.AddLine()
//	t.AddText(line, "a")
//	span := t.AddSpan(line, "hashtag")
//	t.AddText(span, "#")
//	t.AddText(line, "b")
//
//	t.Text()            // "a#b"
//	markup.Render(t)    // <div class="line">a<span class="hashtag">#</span>b</div>
//
// Trees are snapshots. Each one carries a random ID so that diagnostics can
// name the render an offset or position was computed against. Host surfaces
// that edit a tree in place should Clone it first.
package markup
