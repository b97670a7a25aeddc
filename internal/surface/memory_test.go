package surface

import (
	"testing"

	"github.com/dshills/richline/internal/caret"
	"github.com/dshills/richline/internal/editor"
	"github.com/dshills/richline/internal/markup"
	"github.com/dshills/richline/internal/transform"
)

// newMemoryAt displays text through tr with the cursor at offset.
func newMemoryAt(t *testing.T, tr transform.Transform, text string, offset int) *Memory {
	t.Helper()
	tree, err := tr.Transform(text)
	if err != nil {
		t.Fatal(err)
	}
	m := NewMemory()
	m.SetContent(tree)
	pos, err := caret.Resolve(tree, offset)
	if err != nil {
		t.Fatal(err)
	}
	m.PlaceCursor(pos)
	return m
}

func TestMemoryEdits(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		offset     int
		edit       func(m *Memory)
		wantText   string
		wantOffset int
	}{
		{"type into empty", "", 0, func(m *Memory) { m.Type("ab") }, "ab", 2},
		{"type mid word", "ac", 1, func(m *Memory) { m.Type("b") }, "abc", 2},
		{"type newline", "ab", 1, func(m *Memory) { m.Type("x\ny") }, "ax\nyb", 4},
		{"enter splits", "abcd", 2, func(m *Memory) { m.Enter() }, "ab\ncd", 3},
		{"enter at end", "ab", 2, func(m *Memory) { m.Enter() }, "ab\n", 3},
		{"enter on empty", "", 0, func(m *Memory) { m.Enter() }, "\n", 1},
		{"backspace", "abc", 2, func(m *Memory) { m.Backspace() }, "ac", 1},
		{"backspace at start", "abc", 0, func(m *Memory) { m.Backspace() }, "abc", 0},
		{"backspace joins lines", "ab\ncd", 3, func(m *Memory) { m.Backspace() }, "abcd", 2},
		{"backspace removes empty line", "ab\n", 3, func(m *Memory) { m.Backspace() }, "ab", 2},
		{"delete", "abc", 1, func(m *Memory) { m.Delete() }, "ac", 1},
		{"delete joins lines", "ab\ncd", 2, func(m *Memory) { m.Delete() }, "abcd", 2},
		{"delete at end", "ab", 2, func(m *Memory) { m.Delete() }, "ab", 2},
		{"type after enter", "ab", 2, func(m *Memory) { m.Enter(); m.Type("c") }, "ab\nc", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMemoryAt(t, transform.Plain, tt.text, tt.offset)
			tt.edit(m)
			if got := m.Text(); got != tt.wantText {
				t.Errorf("text = %q, want %q", got, tt.wantText)
			}
			if got := m.Offset(); got != tt.wantOffset {
				t.Errorf("offset = %d, want %d", got, tt.wantOffset)
			}
		})
	}
}

func TestMemoryTypingKeepsSpans(t *testing.T) {
	m := newMemoryAt(t, transform.NewClasses(nil), "a#b", 2)
	m.Type("x")

	want := `<div class="line">a<span class="hashtag">#x</span>b</div>`
	if got := markup.Render(m.Content()); got != want {
		t.Errorf("rendered %s, want %s", got, want)
	}
	if m.Offset() != 3 {
		t.Errorf("offset = %d, want 3", m.Offset())
	}
}

func TestMemoryEnterLeavesPlaceholders(t *testing.T) {
	m := newMemoryAt(t, transform.Plain, "", 0)
	m.Enter()

	want := `<div class="line"><br></div>` + "\n" + `<div class="line"><br></div>`
	if got := markup.Render(m.Content()); got != want {
		t.Errorf("rendered %q, want %q", got, want)
	}
	lines := m.Content().Lines()
	if m.Cursor() != (caret.Position{Node: lines[1], Offset: 0}) {
		t.Errorf("cursor = %v, want start of second line", m.Cursor())
	}
}

func TestMemoryMotion(t *testing.T) {
	const text = "hello\nhi\nworld"
	tests := []struct {
		name   string
		offset int
		move   func(m *Memory)
		want   int
	}{
		{"left", 3, (*Memory).Left, 2},
		{"left at start", 0, (*Memory).Left, 0},
		{"right crosses newline", 5, (*Memory).Right, 6},
		{"right at end", 14, (*Memory).Right, 14},
		{"down clamps column", 4, (*Memory).Down, 8},
		{"down keeps column", 7, (*Memory).Down, 10},
		{"down on last line", 10, (*Memory).Down, 14},
		{"up", 13, (*Memory).Up, 8},
		{"up on first line", 3, (*Memory).Up, 0},
		{"home", 8, (*Memory).Home, 6},
		{"end", 6, (*Memory).End, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMemoryAt(t, transform.Plain, text, tt.offset)
			tt.move(m)
			if got := m.Offset(); got != tt.want {
				t.Errorf("offset = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMemoryRightAtLineStart(t *testing.T) {
	m := newMemoryAt(t, transform.Plain, "ab\ncd", 2)
	m.Right()

	lines := m.Content().Lines()
	leaf := m.Content().Children(lines[1])[0]
	if m.Cursor() != (caret.Position{Node: leaf, Offset: 0}) {
		t.Errorf("cursor = %v, want start of %q", m.Cursor(), "cd")
	}
}

func TestMemoryWithController(t *testing.T) {
	m := NewMemory()
	c := editor.New(m, editor.WithTransform(transform.NewClasses(nil)))
	c.Mount()

	for _, s := range []string{"a", "#", "b"} {
		m.Type(s)
		if err := c.HandleInput(); err != nil {
			t.Fatal(err)
		}
	}

	want := `<div class="line">a<span class="hashtag">#</span>b</div>`
	if got := markup.Render(m.Content()); got != want {
		t.Errorf("rendered %s, want %s", got, want)
	}
	if c.Text() != "a#b" || c.Offset() != 3 {
		t.Errorf("text=%q offset=%d", c.Text(), c.Offset())
	}

	m.Left()
	m.Enter()
	if err := c.HandleInput(); err != nil {
		t.Fatal(err)
	}
	if c.Text() != "a#\nb" || c.Offset() != 3 {
		t.Errorf("text=%q offset=%d", c.Text(), c.Offset())
	}
}
