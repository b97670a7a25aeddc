// Package transform turns a plain-text buffer into a rendered tree.
//
// A transform must be pure: the same text always yields an equivalent tree,
// and the tree's text (lines joined with newlines) equals the input. The
// editor checks the second property with Validate and falls back to Plain
// when it does not hold.
package transform

import (
	"errors"
	"strings"

	"github.com/dshills/richline/internal/markup"
)

var (
	// ErrLengthMismatch indicates a tree whose text differs from its input.
	ErrLengthMismatch = errors.New("rendered text does not match input")

	// ErrInvalidSegment indicates a segment list that does not reproduce
	// its line.
	ErrInvalidSegment = errors.New("invalid segment")
)

// Transform renders text as a tree.
type Transform interface {
	Transform(text string) (*markup.Tree, error)
}

// Func adapts a function to the Transform interface.
type Func func(text string) (*markup.Tree, error)

// Transform calls f.
func (f Func) Transform(text string) (*markup.Tree, error) {
	return f(text)
}

// Plain is the default transform: one line per newline-separated segment,
// one text node per non-empty line and a placeholder for each empty line.
var Plain Transform = Func(func(text string) (*markup.Tree, error) {
	return markup.PlainText(text), nil
})

// Segment is a run of a line rendered with one class. An empty class is
// plain text.
type Segment struct {
	Text  string
	Class string
}

// LineFunc renders a single line as segments.
type LineFunc func(line string) ([]Segment, error)

// ByLine builds a transform that renders each line independently with fn.
// Empty lines become placeholders without calling fn.
func ByLine(fn LineFunc) Transform {
	return Func(func(text string) (*markup.Tree, error) {
		t := markup.New()
		for _, line := range strings.Split(text, "\n") {
			if line == "" {
				t.AddBreak(t.AddLine())
				continue
			}
			segs, err := fn(line)
			if err != nil {
				return nil, err
			}
			if err := AddSegments(t, line, segs); err != nil {
				return nil, err
			}
		}
		return t, nil
	})
}

// AddSegments appends a line built from segs to t. Adjacent plain segments
// are merged and empty segments dropped. The segments must concatenate to
// line.
func AddSegments(t *markup.Tree, line string, segs []Segment) error {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	if b.String() != line {
		return &SegmentError{Line: line, Got: b.String()}
	}

	id := t.AddLine()
	if line == "" {
		t.AddBreak(id)
		return nil
	}
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			t.AddText(id, plain.String())
			plain.Reset()
		}
	}
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		if s.Class == "" {
			plain.WriteString(s.Text)
			continue
		}
		flush()
		t.AddText(t.AddSpan(id, s.Class), s.Text)
	}
	flush()
	return nil
}

// SegmentError reports segments that do not reproduce their line.
type SegmentError struct {
	Line string
	Got  string
}

// Error implements the error interface.
func (e *SegmentError) Error() string {
	return "segments render " + quote(e.Got) + " for line " + quote(e.Line)
}

// Unwrap returns ErrInvalidSegment.
func (e *SegmentError) Unwrap() error {
	return ErrInvalidSegment
}

func quote(s string) string {
	const limit = 40
	r := []rune(s)
	if len(r) > limit {
		s = string(r[:limit]) + "..."
	}
	return `"` + s + `"`
}
