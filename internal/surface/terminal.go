package surface

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/richline/internal/caret"
	"github.com/dshills/richline/internal/logging"
	"github.com/dshills/richline/internal/markup"
	"github.com/dshills/richline/internal/renderer/backend"
	"github.com/dshills/richline/internal/renderer/core"
	"github.com/dshills/richline/internal/renderer/highlight"
)

// DefaultTabWidth is the distance between tab stops unless SetTabWidth
// changes it.
const DefaultTabWidth = 4

// StatusClass is the theme class of the status row.
const StatusClass = "status"

// Editor receives the input notifications of a surface.
type Editor interface {
	HandleInput() error
	CompositionStart()
	CompositionEnd() error
}

// Terminal is an editable surface drawn to a terminal backend.
//
// Key events edit the embedded Memory and notify the attached Editor the
// way a browser fires input events. Ctrl-K starts a digraph: the two
// characters that follow are shown while composing and then replaced by
// the character they name. A bracketed paste is one composition too.
type Terminal struct {
	*Memory

	backend backend.Backend
	theme   *highlight.Theme
	editor  Editor
	log     *logging.Logger

	tabWidth  int
	top       int
	digraph   []rune
	composing bool
	pasting   bool
}

// NewTerminal creates a terminal surface. A nil theme uses the default.
func NewTerminal(b backend.Backend, theme *highlight.Theme, log *logging.Logger) *Terminal {
	if theme == nil {
		theme = highlight.DefaultTheme()
	}
	return &Terminal{
		Memory:   NewMemory(),
		backend:  b,
		theme:    theme,
		log:      log.WithComponent("surface"),
		tabWidth: DefaultTabWidth,
	}
}

// Attach sets the editor notified of input.
func (t *Terminal) Attach(e Editor) {
	t.editor = e
}

// SetTheme replaces the theme used by Draw.
func (t *Terminal) SetTheme(theme *highlight.Theme) {
	if theme != nil {
		t.theme = theme
	}
}

// SetTabWidth sets the distance between tab stops. Values below 1 are
// ignored.
func (t *Terminal) SetTabWidth(n int) {
	if n > 0 {
		t.tabWidth = n
	}
}

// Composing reports whether a digraph or paste is in progress.
func (t *Terminal) Composing() bool {
	return t.composing || t.pasting
}

// Status returns the text of the status row, empty when idle.
func (t *Terminal) Status() string {
	switch {
	case t.composing:
		return "-- DIGRAPH " + string(t.digraph) + " --"
	case t.pasting:
		return "-- PASTE --"
	}
	return ""
}

// HandleEvent applies a key, paste or resize event. It reports whether the
// event was consumed.
func (t *Terminal) HandleEvent(ev backend.Event) (bool, error) {
	switch ev.Type {
	case backend.EventKey:
		return t.handleKey(ev)
	case backend.EventPaste:
		return true, t.handlePaste(ev.PasteStart)
	case backend.EventResize:
		return true, nil
	}
	return false, nil
}

func (t *Terminal) handleKey(ev backend.Event) (bool, error) {
	if t.composing {
		return true, t.handleDigraphKey(ev)
	}

	switch ev.Key {
	case backend.KeyRune:
		t.Type(string(ev.Rune))
	case backend.KeyTab:
		t.Type("\t")
	case backend.KeyEnter:
		t.Enter()
	case backend.KeyBackspace:
		t.Backspace()
	case backend.KeyDelete:
		t.Delete()
	case backend.KeyLeft:
		t.Left()
		return true, nil
	case backend.KeyRight:
		t.Right()
		return true, nil
	case backend.KeyUp:
		t.Up()
		return true, nil
	case backend.KeyDown:
		t.Down()
		return true, nil
	case backend.KeyHome:
		t.Home()
		return true, nil
	case backend.KeyEnd:
		t.End()
		return true, nil
	case backend.KeyCtrlK:
		if t.pasting {
			return true, nil
		}
		t.composing = true
		t.digraph = t.digraph[:0]
		t.notifyStart()
		return true, nil
	default:
		return false, nil
	}
	return true, t.notify()
}

// handleDigraphKey collects the two characters of a digraph. Anything but
// a character cancels it.
func (t *Terminal) handleDigraphKey(ev backend.Event) error {
	if ev.Key != backend.KeyRune {
		return t.endDigraph(0)
	}
	t.Type(string(ev.Rune))
	t.digraph = append(t.digraph, ev.Rune)
	if err := t.notify(); err != nil {
		return err
	}
	if len(t.digraph) < 2 {
		return nil
	}
	r, ok := Digraph(t.digraph[0], t.digraph[1])
	if !ok {
		t.log.Debug("unknown digraph %q", string(t.digraph))
		t.backend.Beep()
	}
	return t.endDigraph(r)
}

// endDigraph removes the preview characters, types r unless it is zero and
// ends the composition.
func (t *Terminal) endDigraph(r rune) error {
	for range t.digraph {
		t.Backspace()
	}
	if r != 0 {
		t.Type(string(r))
	}
	t.digraph = t.digraph[:0]
	t.composing = false
	return t.notifyEnd()
}

// handlePaste brackets a paste in a composition. An open digraph is
// cancelled first so each composition start has exactly one end.
func (t *Terminal) handlePaste(start bool) error {
	if start == t.pasting {
		return nil
	}
	if start && t.composing {
		if err := t.endDigraph(0); err != nil {
			return err
		}
	}
	t.pasting = start
	if start {
		t.notifyStart()
		return nil
	}
	return t.notifyEnd()
}

func (t *Terminal) notify() error {
	if t.editor == nil {
		return nil
	}
	return t.editor.HandleInput()
}

func (t *Terminal) notifyStart() {
	if t.editor != nil {
		t.editor.CompositionStart()
	}
}

func (t *Terminal) notifyEnd() error {
	if t.editor == nil {
		return nil
	}
	return t.editor.CompositionEnd()
}

// Draw paints the visible lines and the cursor.
func (t *Terminal) Draw() {
	width, height := t.backend.Size()
	t.backend.Clear()
	if width <= 0 || height <= 0 {
		t.backend.Show()
		return
	}

	rows := height
	status := t.Status()
	if status != "" && height > 1 {
		rows--
		t.drawStatus(status, height-1, width)
	}

	tree := t.Content()
	loc, _ := caret.Locate(tree, t.Cursor())
	line, col := caret.LineCol(loc.Text, loc.Offset)
	t.scrollTo(line, rows)

	lines := tree.Lines()
	for y := 0; y < rows && t.top+y < len(lines); y++ {
		x := 0
		t.drawNode(tree, lines[t.top+y], t.theme.Base, &x, y, width)
	}

	texts := strings.Split(loc.Text, "\n")
	cx := 0
	if line < len(texts) {
		cx = advance(0, t.tabWidth, string([]rune(texts[line])[:min(col, len([]rune(texts[line])))]))
	}
	if cx < width {
		t.backend.ShowCursor(cx, line-t.top)
	} else {
		t.backend.HideCursor()
	}
	t.backend.Show()
}

// scrollTo keeps line within the rows visible from top.
func (t *Terminal) scrollTo(line, rows int) {
	if line < t.top {
		t.top = line
	}
	if rows > 0 && line >= t.top+rows {
		t.top = line - rows + 1
	}
}

// drawNode draws the text below id starting at column *x, styling each
// node by its class layered over the style of its ancestors.
func (t *Terminal) drawNode(tree *markup.Tree, id markup.NodeID, style core.Style, x *int, y, width int) {
	if class := tree.Class(id); class != "" {
		style = style.Merge(t.theme.StyleFor(class))
	}
	switch tree.Kind(id) {
	case markup.KindText:
		t.drawText(tree.Content(id), style, x, y, width)
	case markup.KindBreak:
	default:
		for _, c := range tree.Children(id) {
			t.drawNode(tree, c, style, x, y, width)
		}
	}
}

// drawText draws s one grapheme cluster per cell run, expanding tabs.
func (t *Terminal) drawText(s string, style core.Style, x *int, y, width int) {
	state := -1
	for s != "" {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if cluster == "\t" {
			next := advance(*x, t.tabWidth, cluster)
			for ; *x < next && *x < width; *x++ {
				t.backend.SetCell(*x, y, core.Cell{Rune: ' ', Width: 1, Style: style})
			}
			*x = next
			continue
		}
		if w == 0 {
			continue
		}
		if *x+w > width {
			*x += w
			return
		}
		r := []rune(cluster)[0]
		t.backend.SetCell(*x, y, core.Cell{Rune: r, Width: w, Style: style})
		*x += w
	}
}

func (t *Terminal) drawStatus(s string, y, width int) {
	style := t.theme.StyleFor(StatusClass).WithAttributes(core.AttrReverse)
	x := 0
	for _, r := range s {
		if x >= width {
			break
		}
		cell := core.NewStyledCell(r, style)
		t.backend.SetCell(x, y, cell)
		x += cell.Width
	}
	for ; x < width; x++ {
		t.backend.SetCell(x, y, core.Cell{Rune: ' ', Width: 1, Style: style})
	}
}

// advance returns the column reached by drawing s from column x.
func advance(x, tab int, s string) int {
	state := -1
	for s != "" {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if cluster == "\t" {
			x += tab - x%tab
			continue
		}
		x += w
	}
	return x
}
