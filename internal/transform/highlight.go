package transform

import (
	"strings"

	"github.com/dshills/richline/internal/markup"
	"github.com/dshills/richline/internal/renderer/highlight"
)

// Highlight wraps each token a highlighter finds in a span named after the
// token type, such as "keyword.control".
type Highlight struct {
	h highlight.Highlighter
}

// NewHighlight creates a transform driven by h.
func NewHighlight(h highlight.Highlighter) *Highlight {
	return &Highlight{h: h}
}

// Language returns the highlighter's language.
func (x *Highlight) Language() string {
	return x.h.Language()
}

// Transform implements Transform. Lexer state carries across lines so
// multi-line constructs are styled throughout.
func (x *Highlight) Transform(text string) (*markup.Tree, error) {
	t := markup.New()
	state := highlight.LexerStateNormal
	for _, line := range strings.Split(text, "\n") {
		var tokens []highlight.Token
		tokens, state = x.h.HighlightLine(line, state)
		if err := AddSegments(t, line, tokenSegments(line, tokens)); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// tokenSegments splits line at token boundaries. Tokens are in rune columns,
// sorted and non-overlapping; out-of-range tokens are clipped.
func tokenSegments(line string, tokens []highlight.Token) []Segment {
	runes := []rune(line)
	segs := make([]Segment, 0, 2*len(tokens)+1)
	pos := 0
	for _, tok := range tokens {
		start, end := max(tok.Start, pos), min(tok.End, len(runes))
		if start >= end {
			continue
		}
		if start > pos {
			segs = append(segs, Segment{Text: string(runes[pos:start])})
		}
		segs = append(segs, Segment{Text: string(runes[start:end]), Class: tok.Type.String()})
		pos = end
	}
	if pos < len(runes) {
		segs = append(segs, Segment{Text: string(runes[pos:])})
	}
	return segs
}
