package editor

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/richline/internal/caret"
	"github.com/dshills/richline/internal/logging"
	"github.com/dshills/richline/internal/markup"
	"github.com/dshills/richline/internal/transform"
)

// fakeSurface records what the controller does to it and lets tests play
// the user by editing the displayed tree directly.
type fakeSurface struct {
	tree     *markup.Tree
	cursor   caret.Position
	sets     int
	placings int
}

func (f *fakeSurface) Content() *markup.Tree        { return f.tree }
func (f *fakeSurface) SetContent(t *markup.Tree)    { f.tree = t; f.sets++ }
func (f *fakeSurface) Cursor() caret.Position       { return f.cursor }
func (f *fakeSurface) PlaceCursor(p caret.Position) { f.cursor = p; f.placings++ }

// typeAt replaces the text of the first text node on line with s and puts
// the cursor at col inside it, the way a browser edits a text node in place.
func (f *fakeSurface) typeAt(t *testing.T, line int, s string, col int) {
	t.Helper()
	tree := f.tree.Clone()
	id := tree.Lines()[line]
	var leaf markup.NodeID = markup.NoNode
	tree.Walk(id, func(n markup.NodeID, node *markup.Node) bool {
		if leaf == markup.NoNode && node.Kind == markup.KindText {
			leaf = n
		}
		return leaf == markup.NoNode
	})
	if leaf == markup.NoNode {
		if err := tree.ReplaceChildren(id); err != nil {
			t.Fatal(err)
		}
		leaf = tree.AddText(id, s)
	} else if err := tree.SetText(leaf, s); err != nil {
		t.Fatal(err)
	}
	f.tree = tree
	f.cursor = caret.Position{Node: leaf, Offset: col}
}

type recorder struct {
	texts []string
}

func (r *recorder) onChange(text string) {
	r.texts = append(r.texts, text)
}

func TestMount(t *testing.T) {
	s := &fakeSurface{}
	rec := &recorder{}
	c := New(s, WithInitialText("ab\ncd"), WithTextChange(rec.onChange))

	c.Mount()

	if s.tree == nil || s.tree.Text() != "ab\ncd" {
		t.Fatalf("surface content = %v", s.tree)
	}
	leaf := s.tree.Children(s.tree.Lines()[0])[0]
	if s.cursor != (caret.Position{Node: leaf, Offset: 0}) {
		t.Errorf("cursor = %v, want start of first line", s.cursor)
	}
	if len(rec.texts) != 1 || rec.texts[0] != "ab\ncd" {
		t.Errorf("callbacks = %q", rec.texts)
	}
	if c.State() != StateIdle || c.Offset() != 0 || c.Text() != "ab\ncd" {
		t.Errorf("state=%s offset=%d text=%q", c.State(), c.Offset(), c.Text())
	}
}

func TestMountEmpty(t *testing.T) {
	s := &fakeSurface{}
	c := New(s)
	c.Mount()

	lines := s.tree.Lines()
	if len(lines) != 1 {
		t.Fatalf("empty buffer should render one line, got %d", len(lines))
	}
	if s.cursor != (caret.Position{Node: lines[0], Offset: 0}) {
		t.Errorf("cursor = %v", s.cursor)
	}
}

func TestHashtagTyping(t *testing.T) {
	s := &fakeSurface{}
	rec := &recorder{}
	c := New(s,
		WithInitialText("ab"),
		WithTransform(transform.NewClasses(nil)),
		WithTextChange(rec.onChange))
	c.Mount()

	s.typeAt(t, 0, "a#b", 2)
	if err := c.HandleInput(); err != nil {
		t.Fatalf("HandleInput failed: %v", err)
	}

	if c.Text() != "a#b" || c.Offset() != 2 {
		t.Errorf("text=%q offset=%d", c.Text(), c.Offset())
	}
	got := markup.Render(s.tree)
	want := `<div class="line">a<span class="hashtag">#</span>b</div>`
	if got != want {
		t.Errorf("rendered %s, want %s", got, want)
	}
	loc, err := caret.Locate(s.tree, s.cursor)
	if err != nil || loc.Offset != 2 {
		t.Errorf("cursor %v locates to %d (%v), want 2", s.cursor, loc.Offset, err)
	}
	if s.tree.Kind(s.cursor.Node) != markup.KindText || s.tree.Content(s.cursor.Node) != "#" {
		t.Errorf("cursor should sit at the end of the styled '#', got %v", s.cursor)
	}
	if len(rec.texts) != 2 || rec.texts[1] != "a#b" {
		t.Errorf("callbacks = %q", rec.texts)
	}
}

func TestCompositionGuard(t *testing.T) {
	s := &fakeSurface{}
	rec := &recorder{}
	c := New(s, WithInitialText("x"), WithTextChange(rec.onChange))
	c.Mount()
	sets, placings := s.sets, s.placings

	c.CompositionStart()
	if c.State() != StateComposing {
		t.Fatalf("state = %s", c.State())
	}

	s.typeAt(t, 0, "xk", 2)
	_ = c.HandleInput()
	s.typeAt(t, 0, "x한", 2)
	_ = c.HandleInput()

	if s.sets != sets || s.placings != placings || len(rec.texts) != 1 {
		t.Fatalf("rendered during composition: sets=%d placings=%d callbacks=%d", s.sets-sets, s.placings-placings, len(rec.texts)-1)
	}
	if c.Stats().Ignored != 2 {
		t.Errorf("Ignored = %d, want 2", c.Stats().Ignored)
	}

	if err := c.CompositionEnd(); err != nil {
		t.Fatalf("CompositionEnd failed: %v", err)
	}
	if s.sets != sets+1 || s.placings != placings+1 || len(rec.texts) != 2 {
		t.Errorf("expected exactly one render: sets=%d placings=%d callbacks=%d", s.sets-sets, s.placings-placings, len(rec.texts)-1)
	}
	if c.Text() != "x한" || c.Offset() != 2 {
		t.Errorf("text=%q offset=%d", c.Text(), c.Offset())
	}
	if c.State() != StateIdle {
		t.Errorf("state = %s", c.State())
	}
}

func TestCompositionOverlap(t *testing.T) {
	s := &fakeSurface{}
	c := New(s)
	c.Mount()
	renders := c.Stats().Renders

	c.CompositionStart()
	c.CompositionStart()
	if err := c.CompositionEnd(); err != nil {
		t.Fatal(err)
	}
	if err := c.CompositionEnd(); err != nil {
		t.Fatal(err)
	}

	if got := c.Stats().Renders - renders; got != 1 {
		t.Errorf("renders = %d, want 1", got)
	}
}

func TestTransformFailureFallsBack(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})

	failing := transform.Func(func(string) (*markup.Tree, error) {
		return nil, errors.New("broken")
	})
	lossy := transform.Func(func(text string) (*markup.Tree, error) {
		return markup.PlainText(strings.TrimSuffix(text, "!")), nil
	})

	for name, tr := range map[string]transform.Transform{"error": failing, "invalid": lossy} {
		t.Run(name, func(t *testing.T) {
			buf.Reset()
			s := &fakeSurface{}
			c := New(s, WithInitialText("hi!"), WithTransform(tr), WithLogger(log))
			c.Mount()

			if s.tree.Text() != "hi!" {
				t.Errorf("surface text = %q", s.tree.Text())
			}
			if c.Stats().Fallbacks != 1 {
				t.Errorf("Fallbacks = %d", c.Stats().Fallbacks)
			}
			if !strings.Contains(buf.String(), "[ERROR]") {
				t.Errorf("expected an error log, got %q", buf.String())
			}
		})
	}
}

func TestLocateMissIsRecovered(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})
	s := &fakeSurface{}
	c := New(s, WithInitialText("abc"), WithLogger(log))
	c.Mount()

	s.cursor = caret.Position{Node: markup.NodeID(500), Offset: 0}
	if err := c.HandleInput(); err != nil {
		t.Fatal(err)
	}

	if c.Stats().LocateMisses != 1 {
		t.Errorf("LocateMisses = %d", c.Stats().LocateMisses)
	}
	if c.Text() != "abc" {
		t.Errorf("text = %q", c.Text())
	}
	if !strings.Contains(buf.String(), "[WARN]") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestResolveMissPlacesAtStart(t *testing.T) {
	s := &fakeSurface{}
	c := New(s, WithInitialText("abc"))
	c.Mount()

	// A stale cursor past the end yields an offset beyond the new text.
	leaf := s.tree.Children(s.tree.Lines()[0])[0]
	s.cursor = caret.Position{Node: leaf, Offset: 10}
	_ = c.HandleInput()

	if c.Stats().ResolveMisses != 1 {
		t.Errorf("ResolveMisses = %d", c.Stats().ResolveMisses)
	}
	if s.cursor != caret.Start {
		t.Errorf("cursor = %v, want %v", s.cursor, caret.Start)
	}
}

func TestSetText(t *testing.T) {
	s := &fakeSurface{}
	rec := &recorder{}
	c := New(s, WithInitialText("hello"), WithTextChange(rec.onChange))

	if err := c.SetText("x"); !errors.Is(err, ErrNotMounted) {
		t.Errorf("expected ErrNotMounted, got %v", err)
	}
	c.Mount()

	s.typeAt(t, 0, "hello", 5)
	_ = c.HandleInput()

	if err := c.SetText("hi"); err != nil {
		t.Fatalf("SetText failed: %v", err)
	}
	if c.Offset() != 2 {
		t.Errorf("offset = %d, want clamped to 2", c.Offset())
	}
	if s.tree.Text() != "hi" || rec.texts[len(rec.texts)-1] != "hi" {
		t.Errorf("surface=%q callbacks=%q", s.tree.Text(), rec.texts)
	}

	c.CompositionStart()
	if err := c.SetText("nope"); !errors.Is(err, ErrComposing) {
		t.Errorf("expected ErrComposing, got %v", err)
	}
}

func TestSetTransform(t *testing.T) {
	s := &fakeSurface{}
	c := New(s, WithInitialText("a-b"))
	c.Mount()

	c.SetTransform(transform.NewClasses(nil))
	want := `<div class="line">a<span class="hyphen">-</span>b</div>`
	if got := markup.Render(s.tree); got != want {
		t.Errorf("rendered %s, want %s", got, want)
	}

	c.CompositionStart()
	renders := c.Stats().Renders
	c.SetTransform(nil)
	if c.Stats().Renders != renders {
		t.Error("SetTransform rendered during composition")
	}
}

func TestHandleInputBeforeMount(t *testing.T) {
	c := New(&fakeSurface{})
	if err := c.HandleInput(); !errors.Is(err, ErrNotMounted) {
		t.Errorf("expected ErrNotMounted, got %v", err)
	}
}
