package surface

import (
	"testing"

	"github.com/dshills/richline/internal/editor"
	"github.com/dshills/richline/internal/renderer/backend"
	"github.com/dshills/richline/internal/transform"
)

func newTestTerminal(t *testing.T, width, height int, text string, tr transform.Transform) (*Terminal, *editor.Controller, *backend.NullBackend) {
	t.Helper()
	b := backend.NewNullBackend(width, height)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	term := NewTerminal(b, nil, nil)
	c := editor.New(term, editor.WithInitialText(text), editor.WithTransform(tr))
	term.Attach(c)
	c.Mount()
	return term, c, b
}

func keyRune(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}
}

func key(k backend.Key) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k}
}

func send(t *testing.T, term *Terminal, events ...backend.Event) {
	t.Helper()
	for _, ev := range events {
		if _, err := term.HandleEvent(ev); err != nil {
			t.Fatalf("HandleEvent(%+v) failed: %v", ev, err)
		}
	}
}

func TestTerminalDraw(t *testing.T) {
	term, _, b := newTestTerminal(t, 20, 5, "hello\nworld", transform.Plain)
	term.Draw()

	if got := b.Row(0); got != "hello" {
		t.Errorf("row 0 = %q", got)
	}
	if got := b.Row(1); got != "world" {
		t.Errorf("row 1 = %q", got)
	}
	if x, y, visible := b.CursorPosition(); x != 0 || y != 0 || !visible {
		t.Errorf("cursor = (%d, %d, %v)", x, y, visible)
	}
}

func TestTerminalTyping(t *testing.T) {
	term, c, b := newTestTerminal(t, 20, 5, "", transform.NewClasses(nil))
	send(t, term, keyRune('a'), keyRune('#'), keyRune('b'))
	term.Draw()

	if c.Text() != "a#b" {
		t.Errorf("text = %q", c.Text())
	}
	if got := b.Row(0); got != "a#b" {
		t.Errorf("row 0 = %q", got)
	}
	if got, want := b.GetCell(1, 0).Style, term.theme.StyleFor("hashtag"); got != want {
		t.Errorf("'#' style = %+v, want %+v", got, want)
	}
	if got := b.GetCell(0, 0).Style; got != term.theme.Base {
		t.Errorf("'a' style = %+v, want base", got)
	}
	if x, y, _ := b.CursorPosition(); x != 3 || y != 0 {
		t.Errorf("cursor = (%d, %d), want (3, 0)", x, y)
	}
}

func TestTerminalEditingKeys(t *testing.T) {
	term, c, _ := newTestTerminal(t, 20, 5, "abc", transform.Plain)
	send(t, term,
		key(backend.KeyEnd),
		key(backend.KeyBackspace),
		key(backend.KeyHome),
		key(backend.KeyDelete),
		key(backend.KeyRight),
		key(backend.KeyEnter),
		keyRune('x'),
	)

	if c.Text() != "b\nx" {
		t.Errorf("text = %q, want %q", c.Text(), "b\nx")
	}
	if c.Offset() != 3 {
		t.Errorf("offset = %d, want 3", c.Offset())
	}
}

func TestTerminalDigraph(t *testing.T) {
	tests := []struct {
		name      string
		events    []backend.Event
		wantText  string
		wantBeeps int
	}{
		{"known", []backend.Event{keyRune('e'), keyRune('\'')}, "é", 0},
		{"reversed", []backend.Event{keyRune(':'), keyRune('a')}, "ä", 0},
		{"unknown", []backend.Event{keyRune('q'), keyRune('z')}, "z", 1},
		{"cancelled", []backend.Event{keyRune('e'), key(backend.KeyEscape)}, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, c, b := newTestTerminal(t, 20, 5, "", transform.Plain)
			before := c.Stats()

			send(t, term, key(backend.KeyCtrlK))
			if !term.Composing() || c.State() != editor.StateComposing {
				t.Fatal("Ctrl-K did not start a composition")
			}
			send(t, term, tt.events...)

			after := c.Stats()
			if got := after.Renders - before.Renders; got != 1 {
				t.Errorf("renders = %d, want 1", got)
			}
			if c.Text() != tt.wantText {
				t.Errorf("text = %q, want %q", c.Text(), tt.wantText)
			}
			if b.Beeps() != tt.wantBeeps {
				t.Errorf("beeps = %d, want %d", b.Beeps(), tt.wantBeeps)
			}
			if term.Composing() || c.State() != editor.StateIdle {
				t.Error("composition still active")
			}
		})
	}
}

func TestTerminalDigraphStatus(t *testing.T) {
	term, _, b := newTestTerminal(t, 20, 3, "", transform.Plain)
	send(t, term, key(backend.KeyCtrlK), keyRune('a'))
	term.Draw()

	if got := b.Row(2); got != "-- DIGRAPH a --" {
		t.Errorf("status row = %q", got)
	}
	if got := b.Row(0); got != "a" {
		t.Errorf("preview row = %q", got)
	}
}

func TestTerminalPaste(t *testing.T) {
	term, c, _ := newTestTerminal(t, 20, 5, "", transform.Plain)
	before := c.Stats()

	send(t, term,
		backend.Event{Type: backend.EventPaste, PasteStart: true},
		keyRune('x'), keyRune('y'), key(backend.KeyEnter), keyRune('z'),
		backend.Event{Type: backend.EventPaste, PasteStart: false},
	)

	after := c.Stats()
	if got := after.Renders - before.Renders; got != 1 {
		t.Errorf("renders = %d, want 1", got)
	}
	if got := after.Ignored - before.Ignored; got != 4 {
		t.Errorf("ignored = %d, want 4", got)
	}
	if c.Text() != "xy\nz" || c.Offset() != 4 {
		t.Errorf("text=%q offset=%d", c.Text(), c.Offset())
	}
}

func TestTerminalPasteDuringDigraph(t *testing.T) {
	tests := []struct {
		name    string
		preview []backend.Event
	}{
		{"empty digraph", nil},
		{"digraph preview", []backend.Event{keyRune('e')}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var changes []string
			b := backend.NewNullBackend(20, 5)
			if err := b.Init(); err != nil {
				t.Fatal(err)
			}
			term := NewTerminal(b, nil, nil)
			c := editor.New(term,
				editor.WithInitialText("x"),
				editor.WithTransform(transform.NewClasses(nil)),
				editor.WithTextChange(func(text string) { changes = append(changes, text) }),
			)
			term.Attach(c)
			c.Mount()

			send(t, term, key(backend.KeyEnd), key(backend.KeyCtrlK))
			send(t, term, tt.preview...)
			send(t, term,
				backend.Event{Type: backend.EventPaste, PasteStart: true},
				keyRune('#'),
				backend.Event{Type: backend.EventPaste, PasteStart: false},
				keyRune('q'),
			)

			if term.Text() != "x#q" || c.Text() != "x#q" {
				t.Errorf("surface = %q, controller = %q, want x#q", term.Text(), c.Text())
			}
			if term.Composing() || c.State() != editor.StateIdle {
				t.Error("composition still active")
			}
			for _, text := range changes {
				if text == "xe" || text == "xe#" {
					t.Errorf("digraph preview leaked into text change %q", text)
				}
			}
			if last := changes[len(changes)-1]; last != "x#q" {
				t.Errorf("last text change = %q, want x#q", last)
			}
		})
	}
}

func TestTerminalScroll(t *testing.T) {
	term, _, b := newTestTerminal(t, 10, 2, "1\n2\n3\n4\n5", transform.Plain)
	for range 4 {
		send(t, term, key(backend.KeyDown))
	}
	term.Draw()

	if b.Row(0) != "4" || b.Row(1) != "5" {
		t.Errorf("rows = %q, %q", b.Row(0), b.Row(1))
	}
	if x, y, _ := b.CursorPosition(); x != 0 || y != 1 {
		t.Errorf("cursor = (%d, %d), want (0, 1)", x, y)
	}

	for range 4 {
		send(t, term, key(backend.KeyUp))
	}
	term.Draw()
	if b.Row(0) != "1" {
		t.Errorf("row 0 = %q after scrolling back", b.Row(0))
	}
}

func TestTerminalTabs(t *testing.T) {
	term, _, b := newTestTerminal(t, 20, 2, "\tx", transform.Plain)
	send(t, term, key(backend.KeyEnd))
	term.Draw()

	if got := b.Row(0); got != "    x" {
		t.Errorf("row 0 = %q", got)
	}
	if x, _, _ := b.CursorPosition(); x != 5 {
		t.Errorf("cursor x = %d, want 5", x)
	}

	term.SetTabWidth(2)
	term.SetTabWidth(0)
	term.Draw()
	if got := b.Row(0); got != "  x" {
		t.Errorf("row 0 with tab width 2 = %q", got)
	}
	if x, _, _ := b.CursorPosition(); x != 3 {
		t.Errorf("cursor x = %d, want 3", x)
	}
}

func TestTerminalUnhandledKey(t *testing.T) {
	term, _, _ := newTestTerminal(t, 20, 2, "", transform.Plain)
	handled, err := term.HandleEvent(key(backend.KeyCtrlQ))
	if handled || err != nil {
		t.Errorf("HandleEvent(Ctrl-Q) = %v, %v", handled, err)
	}
}

func TestDigraph(t *testing.T) {
	tests := []struct {
		a, b   rune
		want   rune
		wantOK bool
	}{
		{'a', ':', 'ä', true},
		{'E', 'u', '€', true},
		{'-', '>', '→', true},
		{'1', '2', '½', true},
		{'x', 'y', 'y', false},
	}
	for _, tt := range tests {
		got, ok := Digraph(tt.a, tt.b)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Digraph(%q, %q) = %q, %v; want %q, %v", tt.a, tt.b, got, ok, tt.want, tt.wantOK)
		}
	}
}
