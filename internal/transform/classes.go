package transform

import (
	"strings"

	"github.com/dshills/richline/internal/markup"
)

// DefaultClasses wraps hashtags, asterisks and hyphens.
var DefaultClasses = map[rune]string{
	'#': "hashtag",
	'*': "asterisk",
	'-': "hyphen",
}

// Classes wraps each occurrence of a designated character in a span with
// that character's class.
type Classes struct {
	classes map[rune]string
}

// NewClasses creates a Classes transform. A nil or empty map uses
// DefaultClasses.
func NewClasses(classes map[rune]string) *Classes {
	if len(classes) == 0 {
		classes = DefaultClasses
	}
	c := &Classes{classes: make(map[rune]string, len(classes))}
	for r, class := range classes {
		c.classes[r] = class
	}
	return c
}

// Transform implements Transform.
func (c *Classes) Transform(text string) (*markup.Tree, error) {
	t := markup.New()
	for _, line := range strings.Split(text, "\n") {
		id := t.AddLine()
		if line == "" {
			t.AddBreak(id)
			continue
		}
		var run strings.Builder
		for _, r := range line {
			class, ok := c.classes[r]
			if !ok {
				run.WriteRune(r)
				continue
			}
			if run.Len() > 0 {
				t.AddText(id, run.String())
				run.Reset()
			}
			t.AddText(t.AddSpan(id, class), string(r))
		}
		if run.Len() > 0 {
			t.AddText(id, run.String())
		}
	}
	return t, nil
}
