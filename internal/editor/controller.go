// Package editor keeps a plain-text buffer and the tree rendered from it in
// step while the user edits the rendered tree.
//
// Every input runs the same pipeline: locate the cursor in the tree the user
// just edited, store the text and offset, render a fresh tree with the
// transform, then resolve the offset in the new tree and place the cursor
// there. While an input method is composing, the pipeline is suspended and
// runs once when composition ends.
//
// A Controller is not safe for concurrent use. Drive it from one goroutine.
package editor

import (
	"errors"
	"unicode/utf8"

	"github.com/dshills/richline/internal/caret"
	"github.com/dshills/richline/internal/logging"
	"github.com/dshills/richline/internal/markup"
	"github.com/dshills/richline/internal/transform"
)

var (
	// ErrComposing is returned by operations refused during composition.
	ErrComposing = errors.New("input method composition in progress")

	// ErrNotMounted is returned before Mount has rendered a tree.
	ErrNotMounted = errors.New("editor not mounted")
)

// Surface is the host's editable display.
type Surface interface {
	caret.Placer

	// Content returns the tree currently displayed, including the user's
	// edits since the last SetContent.
	Content() *markup.Tree

	// SetContent replaces the displayed tree.
	SetContent(t *markup.Tree)

	// Cursor returns the live cursor position in Content.
	Cursor() caret.Position
}

// State is the controller's input state.
type State int

const (
	// StateIdle renders on every input.
	StateIdle State = iota

	// StateComposing ignores input until composition ends.
	StateComposing
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateComposing:
		return "composing"
	default:
		return "unknown"
	}
}

// Stats counts what the controller has done.
type Stats struct {
	Renders       int
	Ignored       int
	Fallbacks     int
	LocateMisses  int
	ResolveMisses int
}

// Controller synchronizes the buffer with the surface.
type Controller struct {
	surface      Surface
	transform    transform.Transform
	onTextChange func(string)
	log          *logging.Logger
	initialText  string

	text    string
	offset  int
	state   State
	mounted bool
	stats   Stats
}

// New creates a controller for surface. Nothing is rendered until Mount.
func New(surface Surface, opts ...Option) *Controller {
	c := &Controller{
		surface:   surface,
		transform: transform.Plain,
		log:       logging.NullLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent("editor")
	return c
}

// Mount renders the initial text with the cursor at offset 0.
func (c *Controller) Mount() {
	c.mounted = true
	c.state = StateIdle
	c.text = c.initialText
	c.offset = 0
	c.render()
}

// HandleInput runs the pipeline after the user changed the surface. It is
// ignored while composing.
func (c *Controller) HandleInput() error {
	if !c.mounted {
		return ErrNotMounted
	}
	if c.state == StateComposing {
		c.stats.Ignored++
		c.log.Debug("input ignored during composition")
		return nil
	}
	c.sync()
	return nil
}

// CompositionStart suspends rendering.
func (c *Controller) CompositionStart() {
	if c.state == StateComposing {
		c.log.Debug("composition already in progress")
		return
	}
	c.state = StateComposing
}

// CompositionEnd resumes rendering and runs the pipeline once.
func (c *Controller) CompositionEnd() error {
	if c.state != StateComposing {
		c.log.Debug("composition end without start")
		return nil
	}
	c.state = StateIdle
	return c.HandleInput()
}

// SetText replaces the buffer from outside the surface and re-renders. The
// offset is kept, clamped to the new text.
func (c *Controller) SetText(text string) error {
	if !c.mounted {
		return ErrNotMounted
	}
	if c.state == StateComposing {
		return ErrComposing
	}
	c.text = text
	c.offset = min(c.offset, utf8.RuneCountInString(text))
	c.render()
	return nil
}

// SetTransform swaps the transform. When mounted and idle the buffer is
// re-rendered at once; during composition the new transform takes effect
// on the next render.
func (c *Controller) SetTransform(t transform.Transform) {
	if t == nil {
		t = transform.Plain
	}
	c.transform = t
	if c.mounted && c.state == StateIdle {
		c.render()
	}
}

// Text returns the buffer as of the last completed input.
func (c *Controller) Text() string {
	return c.text
}

// Offset returns the cursor offset as of the last completed input.
func (c *Controller) Offset() int {
	return c.offset
}

// State returns the input state.
func (c *Controller) State() State {
	return c.state
}

// Stats returns the counters.
func (c *Controller) Stats() Stats {
	return c.stats
}

// sync reads the text and cursor back from the surface and re-renders.
func (c *Controller) sync() {
	tree := c.surface.Content()
	if tree == nil {
		c.log.Error("surface has no content; re-rendering stored text")
		c.render()
		return
	}
	loc, err := caret.Locate(tree, c.surface.Cursor())
	if err != nil {
		c.stats.LocateMisses++
		c.log.WithField("tree", tree.ID()).Warn("%v", err)
	}
	c.text, c.offset = loc.Text, loc.Offset
	c.render()
}

// render installs a fresh tree for the stored text, places the cursor and
// notifies the callback.
func (c *Controller) render() {
	tree := c.build(c.text)
	c.surface.SetContent(tree)
	if _, err := caret.Place(tree, c.offset, c.surface, c.log); err != nil {
		c.stats.ResolveMisses++
	}
	c.stats.Renders++
	if c.onTextChange != nil {
		c.onTextChange(c.text)
	}
}

// build runs the transform, falling back to plain rendering when it fails
// or produces a tree that does not match the text.
func (c *Controller) build(text string) *markup.Tree {
	tree, err := c.transform.Transform(text)
	if err == nil {
		err = transform.Validate(tree, text)
	}
	if err == nil {
		return tree
	}
	c.stats.Fallbacks++
	c.log.Error("transform failed, rendering plain text: %v", err)
	tree, _ = transform.Plain.Transform(text)
	return tree
}
