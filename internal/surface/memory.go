package surface

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/richline/internal/caret"
	"github.com/dshills/richline/internal/markup"
)

// Memory is an in-memory editable surface.
//
// Typing and deleting inside a text node change that node only, so styled
// spans keep their structure until the next render. Edits that cross a node
// or line boundary rewrite the affected line as a single text node.
type Memory struct {
	tree   *markup.Tree
	cursor caret.Position
}

// NewMemory creates an empty surface.
func NewMemory() *Memory {
	return &Memory{tree: markup.PlainText(""), cursor: caret.Start}
}

// Content returns the displayed tree.
func (m *Memory) Content() *markup.Tree {
	return m.tree
}

// SetContent replaces the displayed tree. The cursor is left where it was
// until the next PlaceCursor.
func (m *Memory) SetContent(t *markup.Tree) {
	if t == nil {
		t = markup.PlainText("")
	}
	m.tree = t
}

// Cursor returns the cursor position.
func (m *Memory) Cursor() caret.Position {
	return m.cursor
}

// PlaceCursor moves the cursor.
func (m *Memory) PlaceCursor(pos caret.Position) {
	m.cursor = pos
}

// Text returns the displayed text.
func (m *Memory) Text() string {
	return m.tree.Text()
}

// Offset returns the cursor's linear offset in the displayed text.
func (m *Memory) Offset() int {
	loc, _ := caret.Locate(m.tree, m.cursor)
	return loc.Offset
}

// Type inserts s at the cursor. Newlines in s split the line as Enter does.
func (m *Memory) Type(s string) {
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			m.Enter()
		}
		if part != "" {
			m.insert(part)
		}
	}
}

func (m *Memory) insert(s string) {
	if leaf, off, ok := m.textCursor(); ok {
		r := []rune(m.tree.Content(leaf))
		text := string(r[:off]) + s + string(r[off:])
		_ = m.tree.SetText(leaf, text)
		m.cursor = caret.Position{Node: leaf, Offset: off + utf8.RuneCountInString(s)}
		return
	}
	line, col, content := m.lineCursor()
	r := []rune(content)
	m.setLine(line, string(r[:col])+s+string(r[col:]), col+utf8.RuneCountInString(s))
}

// Enter splits the current line at the cursor and moves to the start of
// the new line.
func (m *Memory) Enter() {
	line, col, content := m.lineCursor()
	r := []rune(content)
	m.setLine(line, string(r[:col]), col)

	next, err := m.tree.InsertLineAfter(m.currentLine())
	if err != nil {
		next = m.tree.AddLine()
	}
	m.fillLine(next, string(r[col:]), 0)
}

// Backspace deletes the character before the cursor, joining the line with
// the previous one at a line start.
func (m *Memory) Backspace() {
	if leaf, off, ok := m.textCursor(); ok && off > 0 {
		r := []rune(m.tree.Content(leaf))
		_ = m.tree.SetText(leaf, string(r[:off-1])+string(r[off:]))
		m.cursor = caret.Position{Node: leaf, Offset: off - 1}
		return
	}
	line, col, content := m.lineCursor()
	if col > 0 {
		r := []rune(content)
		m.setLine(line, string(r[:col-1])+string(r[col:]), col-1)
		return
	}
	if line == 0 {
		return
	}
	lines := m.tree.Lines()
	prev := m.tree.Content(lines[line-1])
	cur := lines[line]
	m.setLine(line-1, prev+content, utf8.RuneCountInString(prev))
	_ = m.tree.RemoveLine(cur)
}

// Delete deletes the character after the cursor, joining the next line at
// a line end.
func (m *Memory) Delete() {
	if leaf, off, ok := m.textCursor(); ok && off < m.tree.TextLen(leaf) {
		r := []rune(m.tree.Content(leaf))
		_ = m.tree.SetText(leaf, string(r[:off])+string(r[off+1:]))
		return
	}
	line, col, content := m.lineCursor()
	r := []rune(content)
	if col < len(r) {
		m.setLine(line, string(r[:col])+string(r[col+1:]), col)
		return
	}
	lines := m.tree.Lines()
	if line+1 >= len(lines) {
		return
	}
	next := lines[line+1]
	m.setLine(line, content+m.tree.Content(next), col)
	_ = m.tree.RemoveLine(next)
}

// Left moves the cursor back one character.
func (m *Memory) Left() {
	m.moveTo(m.Offset() - 1)
}

// Right moves the cursor forward one character.
func (m *Memory) Right() {
	m.moveTo(m.Offset() + 1)
}

// Up moves the cursor to the same column of the previous line.
func (m *Memory) Up() {
	text := m.Text()
	line, col := caret.LineCol(text, m.Offset())
	if line == 0 {
		m.moveTo(0)
		return
	}
	m.moveTo(caret.OffsetOf(text, line-1, col))
}

// Down moves the cursor to the same column of the next line.
func (m *Memory) Down() {
	text := m.Text()
	line, col := caret.LineCol(text, m.Offset())
	if line == strings.Count(text, "\n") {
		m.moveTo(utf8.RuneCountInString(text))
		return
	}
	m.moveTo(caret.OffsetOf(text, line+1, col))
}

// Home moves the cursor to the start of the line.
func (m *Memory) Home() {
	text := m.Text()
	line, _ := caret.LineCol(text, m.Offset())
	m.moveTo(caret.OffsetOf(text, line, 0))
}

// End moves the cursor to the end of the line.
func (m *Memory) End() {
	text := m.Text()
	line, _ := caret.LineCol(text, m.Offset())
	m.moveTo(caret.OffsetOf(text, line, utf8.RuneCountInString(text)))
}

// moveTo places the cursor at offset, clamped to the text.
func (m *Memory) moveTo(offset int) {
	offset = max(0, min(offset, utf8.RuneCountInString(m.Text())))
	if pos, err := caret.Resolve(m.tree, offset); err == nil {
		m.cursor = pos
	}
}

// textCursor reports the cursor as a text node and an offset within it.
func (m *Memory) textCursor() (markup.NodeID, int, bool) {
	c := m.cursor
	if m.tree.Kind(c.Node) != markup.KindText || !m.tree.Valid(c.Node) {
		return markup.NoNode, 0, false
	}
	if m.tree.LineOf(c.Node) == markup.NoNode {
		return markup.NoNode, 0, false
	}
	if c.Offset < 0 || c.Offset > m.tree.TextLen(c.Node) {
		return markup.NoNode, 0, false
	}
	return c.Node, c.Offset, true
}

// lineCursor reports the cursor as a line index, a column and the line's
// text. A surface without lines gets an empty one.
func (m *Memory) lineCursor() (int, int, string) {
	if len(m.tree.Lines()) == 0 {
		m.tree.AddLine()
	}
	loc, _ := caret.Locate(m.tree, m.cursor)
	line, col := caret.LineCol(loc.Text, loc.Offset)
	lines := m.tree.Lines()
	if line >= len(lines) {
		line = len(lines) - 1
	}
	content := m.tree.Content(lines[line])
	col = min(col, utf8.RuneCountInString(content))
	return line, col, content
}

// currentLine returns the line holding the cursor.
func (m *Memory) currentLine() markup.NodeID {
	if m.tree.Parent(m.cursor.Node) == markup.RootID {
		return m.cursor.Node
	}
	return m.tree.LineOf(m.cursor.Node)
}

// setLine rewrites line index i as content and puts the cursor at col.
func (m *Memory) setLine(i int, content string, col int) {
	line := m.tree.Lines()[i]
	switch m.tree.Kind(line) {
	case markup.KindText:
		_ = m.tree.SetText(line, content)
		m.cursor = caret.Position{Node: line, Offset: col}
		return
	case markup.KindBreak:
		fresh, err := m.tree.InsertLineAfter(line)
		if err != nil {
			return
		}
		_ = m.tree.RemoveLine(line)
		line = fresh
	}
	m.fillLine(line, content, col)
}

// fillLine replaces the children of a line container with content.
func (m *Memory) fillLine(line markup.NodeID, content string, col int) {
	_ = m.tree.ReplaceChildren(line)
	if content == "" {
		m.tree.AddBreak(line)
		m.cursor = caret.Position{Node: line, Offset: 0}
		return
	}
	leaf := m.tree.AddText(line, content)
	m.cursor = caret.Position{Node: leaf, Offset: col}
}
