package caret

import (
	"github.com/dshills/richline/internal/logging"
	"github.com/dshills/richline/internal/markup"
)

// Resolve finds the node and in-node offset at which linear offset lies in t.
//
// Lines are consumed from a running remainder, one extra unit per newline.
// The first line whose length reaches the remainder is selected; an empty
// line yields (line, remainder), otherwise the line's inline nodes are
// searched the same way. A text node reaching the remainder is the answer; a
// container reaching it is searched with the same remainder. Ties go to the
// earlier node.
//
// An offset outside the text resolves to Start and the error wraps
// ErrOffsetOutOfRange.
func Resolve(t *markup.Tree, offset int) (Position, error) {
	if offset < 0 {
		return Start, outOfRange(t, offset)
	}

	remaining := offset
	for _, line := range t.Lines() {
		n := t.TextLen(line)
		if remaining-n <= 0 {
			if n == 0 {
				return Position{Node: line, Offset: remaining}, nil
			}
			if t.Kind(line) == markup.KindText {
				return Position{Node: line, Offset: remaining}, nil
			}
			if pos, ok := findTarget(t, line, remaining); ok {
				return pos, nil
			}
		}
		remaining -= n + 1
	}
	return Start, outOfRange(t, offset)
}

// findTarget searches the children of id for the node holding remaining.
// A container whose search comes up empty (it has no text) is skipped.
func findTarget(t *markup.Tree, id markup.NodeID, remaining int) (Position, bool) {
	for _, c := range t.Children(id) {
		n := t.TextLen(c)
		if remaining-n <= 0 {
			switch k := t.Kind(c); {
			case k == markup.KindText:
				return Position{Node: c, Offset: remaining}, true
			case k.IsContainer():
				if pos, ok := findTarget(t, c, remaining); ok {
					return pos, true
				}
			}
		}
		remaining -= n
	}
	return Position{}, false
}

func outOfRange(t *markup.Tree, offset int) error {
	return &Error{Op: "resolve", Tree: t.ID(), Node: markup.RootID, Offset: offset, Err: ErrOffsetOutOfRange}
}

// Placer places the visible cursor of a host surface.
type Placer interface {
	PlaceCursor(pos Position)
}

// Place resolves offset in t and hands the result to p. A fallback
// placement is logged as a warning and still performed; the resolve error
// is returned for the caller's bookkeeping.
func Place(t *markup.Tree, offset int, p Placer, log *logging.Logger) (Position, error) {
	pos, err := Resolve(t, offset)
	if err != nil {
		log.WithField("tree", t.ID()).Warn("cursor placed at start of surface: %v", err)
	}
	p.PlaceCursor(pos)
	return pos, err
}
