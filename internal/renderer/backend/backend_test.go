package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/richline/internal/renderer/core"
)

func TestNullBackendCells(t *testing.T) {
	b := NewNullBackend(10, 3)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	b.SetCell(0, 1, core.NewStyledCell('h', core.DefaultStyle()))
	b.SetCell(1, 1, core.NewStyledCell('i', core.DefaultStyle()))
	b.SetCell(99, 99, core.NewStyledCell('x', core.DefaultStyle()))

	if got := b.Row(1); got != "hi" {
		t.Errorf("Row(1) = %q, want %q", got, "hi")
	}
	if got := b.GetCell(99, 99); got.Rune != ' ' {
		t.Errorf("out-of-range GetCell = %q, want blank", got.Rune)
	}

	b.Clear()
	if got := b.Row(1); got != "" {
		t.Errorf("Row(1) after Clear = %q", got)
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(10, 3)
	_ = b.Init()

	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'x'})
	ev := b.PollEvent()
	if ev.Type != EventKey || ev.Rune != 'x' {
		t.Errorf("PollEvent = %+v", ev)
	}

	b.Resize(20, 5)
	ev = b.PollEvent()
	if ev.Type != EventResize || ev.Width != 20 || ev.Height != 5 {
		t.Errorf("resize event = %+v", ev)
	}

	b.Shutdown()
	if ev := b.PollEvent(); ev.Type != EventNone {
		t.Errorf("PollEvent after Shutdown = %+v", ev)
	}
	b.Shutdown()
}

func TestNullBackendCursor(t *testing.T) {
	b := NewNullBackend(10, 3)
	_ = b.Init()

	b.ShowCursor(3, 2)
	x, y, visible := b.CursorPosition()
	if x != 3 || y != 2 || !visible {
		t.Errorf("cursor = %d,%d visible=%v", x, y, visible)
	}
	b.HideCursor()
	if _, _, visible := b.CursorPosition(); visible {
		t.Error("cursor should be hidden")
	}
}

func newSimTerminal(t *testing.T) *Terminal {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	screen.SetSize(20, 4)
	t.Cleanup(term.Shutdown)
	return term
}

func TestTerminalSetGetCell(t *testing.T) {
	term := newSimTerminal(t)

	style := core.DefaultStyle().
		WithForeground(core.ColorFromRGB(200, 100, 50)).
		WithAttributes(core.AttrBold | core.AttrUnderline)
	term.SetCell(2, 1, core.NewStyledCell('q', style))

	got := term.GetCell(2, 1)
	if got.Rune != 'q' {
		t.Errorf("rune = %q, want q", got.Rune)
	}
	if got.Style.Foreground != style.Foreground {
		t.Errorf("foreground = %v, want %v", got.Style.Foreground, style.Foreground)
	}
	if !got.Style.Attributes.Has(core.AttrBold) || !got.Style.Attributes.Has(core.AttrUnderline) {
		t.Errorf("attributes = %b", got.Style.Attributes)
	}
	if !got.Style.Background.IsDefault() {
		t.Errorf("background = %v, want default", got.Style.Background)
	}
}

func TestTerminalPostEvent(t *testing.T) {
	term := newSimTerminal(t)

	term.PostEvent(Event{Type: EventKey, Key: KeyLeft})
	if ev := term.PollEvent(); ev.Type != EventKey || ev.Key != KeyLeft {
		t.Errorf("key event = %+v", ev)
	}

	term.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'z'})
	if ev := term.PollEvent(); ev.Key != KeyRune || ev.Rune != 'z' {
		t.Errorf("rune event = %+v", ev)
	}

	ran := false
	term.PostEvent(Event{Type: EventInterrupt, Callback: func() { ran = true }})
	ev := term.PollEvent()
	if ev.Type != EventInterrupt || ev.Callback == nil {
		t.Fatalf("interrupt event = %+v", ev)
	}
	ev.Callback()
	if !ran {
		t.Error("callback did not run")
	}
}

func TestKeyMapsAgree(t *testing.T) {
	for k := KeyRune; k <= KeyCtrlQ; k++ {
		if got := fromTcellKey(toTcellKey(k)); got != k {
			t.Errorf("key %d round-trips to %d", k, got)
		}
	}

	mods := ModShift | ModAlt
	if got := fromTcellMod(toTcellMod(mods)); got != mods {
		t.Errorf("mods round-trip to %b", got)
	}
}
